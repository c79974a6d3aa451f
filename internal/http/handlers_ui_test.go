package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstax/rope/internal/domain/model"
	"github.com/openstax/rope/internal/service"
	"github.com/openstax/rope/internal/testutil/backendtest"
)

var (
	adminUser   = model.User{Email: "admin@rice.edu", IsAdmin: true}
	managerUser = model.User{Email: "manager@rice.edu", IsManager: true}
	plainUser   = model.User{Email: "plain@rice.edu"}
	ada         = model.MoodleUser{FirstName: "Ada", LastName: "Lovelace", Email: "ada@school.org"}
)

func TestGuard_SignedOutIsSentToLogin(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/", "/about", "/courses", "/users", "/settings", "/does-not-exist"} {
		rec := h.get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestGuard_SignedOutHTMXGetsHXRedirect(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("HX-Request", "true")
	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	assert.Empty(t, rec.Body.String())
}

func TestGuard_SignedOutSeesLogin(t *testing.T) {
	h := newHarness(t)

	rec := h.get("/login")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
	assert.Contains(t, rec.Body.String(), `name="token"`)
	assert.Empty(t, rec.Header().Get("Refresh"))
}

func TestGuard_SignedInOnLoginIsRefreshedHome(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.get("/login", session)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0; url=/", rec.Header().Get("Refresh"))
}

func TestGuard_ProbeOutageSignsOut(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)
	h.backend.Fail(http.MethodGet, "/api/user/current", http.StatusInternalServerError)

	rec := h.get("/about", session)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestNotFound(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.get("/does-not-exist", session)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found.")
}

func TestAbout(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.get("/about", session)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "About ROPE")
	assert.Contains(t, body, plainUser.Email)
	assert.NotContains(t, body, `href="/users"`, "non-admins do not see admin links")
}

func TestAbout_AdminSeesAdminLinks(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)

	rec := h.get("/about", session)

	assert.Contains(t, rec.Body.String(), `href="/users"`)
	assert.Contains(t, rec.Body.String(), `href="/settings"`)
}

func TestAbout_HTMXGetsContentOnly(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("HX-Request", "true")
	rec := h.do(req, session)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "About ROPE")
	assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
}

func TestHome_BlankForm(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.get("/", session)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Instructor Lookup")
}

func TestHome_LookupInstructor(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)
	h.backend.AddMoodleUser(ada)

	rec := h.get("/?email=ada@school.org", session)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")
	assert.Contains(t, rec.Body.String(), "Find course build")
}

func TestHome_LookupUnknownInstructor(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.get("/?email=nobody@school.org", session)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgNoMoodleAccount)
}

func TestHome_LookupBlankEmail(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.get("/?email=", session)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgEmailRequired)
}

func TestSearchBuild_NoBuildShowsCreateFormToManagers(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(managerUser)
	h.backend.AddMoodleUser(ada)
	h.backend.AddSetting(model.SettingAcademicYear, "2025-2026")
	h.backend.AddDistrict("Houston ISD", true)
	h.backend.AddDistrict("Closed ISD", false)

	rec := h.postForm("/course-builds/search", url.Values{"email": {ada.Email}}, session)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, service.MsgNoCourseBuild)
	assert.Contains(t, body, `name="school_district_name"`)
	assert.Contains(t, body, "Houston ISD")
	assert.NotContains(t, body, "Closed ISD")
	assert.Contains(t, body, `value="Lovelace"`, "form is prefilled from Moodle")
}

func TestSearchBuild_PlainUserSeesNoCreateForm(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)
	h.backend.AddMoodleUser(ada)

	rec := h.postForm("/course-builds/search", url.Values{"email": {ada.Email}}, session)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgNoCourseBuild)
	assert.NotContains(t, rec.Body.String(), `name="school_district_name"`)
}

func TestSearchBuild_ShowsExistingBuild(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(managerUser)
	h.backend.AddMoodleUser(ada)
	h.backend.AddSetting(model.SettingAcademicYear, "2025-2026")
	h.backend.AddBuild(model.CourseBuild{
		ID:              1,
		InstructorEmail: ada.Email,
		AcademicYear:    "2025-2026",
		CourseName:      "Algebra I (Lovelace)",
		Status:          model.CourseBuildStatusCompleted,
	})

	rec := h.get("/?email=ada@school.org&find=1", session)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Algebra I (Lovelace)")
	assert.Contains(t, body, "badge-success")
	assert.NotContains(t, body, `name="school_district_name"`)
}

func createForm(district string) url.Values {
	return url.Values{
		"instructor_first_name": {ada.FirstName},
		"instructor_last_name":  {ada.LastName},
		"instructor_email":      {ada.Email},
		"school_district_name":  {district},
	}
}

func TestCreateBuild(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(managerUser)
	h.backend.AddMoodleUser(ada)
	h.backend.AddSetting(model.SettingAcademicYear, "2025-2026")
	h.backend.AddDistrict("Houston ISD", true)

	rec := h.postForm("/course-builds", createForm("Houston ISD"), session)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?email=ada%40school.org&find=1", rec.Header().Get("Location"))

	builds := h.backend.Builds()
	require.Len(t, builds, 1)
	assert.Equal(t, "Houston ISD", builds[0].SchoolDistrictName)
	assert.Equal(t, managerUser.Email, builds[0].CreatorEmail)

	page := h.follow(rec, session)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), service.MsgCourseBuildCreated)
	assert.NotContains(t, page.Body.String(), `name="school_district_name"`, "the new build replaces the form")
}

func TestCreateBuild_MissingDistrict(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(managerUser)
	h.backend.AddMoodleUser(ada)

	rec := h.postForm("/course-builds", createForm(""), session)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgDistrictRequired)
	assert.Empty(t, h.backend.Builds())
}

func TestCreateBuild_MissingDistrictHTMX(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(managerUser)
	h.backend.AddMoodleUser(ada)

	req := httptest.NewRequest(http.MethodPost, "/course-builds", nil)
	req.PostForm = createForm("")
	req.Header.Set("HX-Request", "true")
	rec := h.do(req, session)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgDistrictRequired)
}

func TestCreateBuild_PlainUserForbidden(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.postForm("/course-builds", createForm("Houston ISD"), session)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgManagerOnly)
	assert.Empty(t, h.backend.Builds())
}

func TestCreateBuild_BackendFailureFlashes(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(managerUser)
	h.backend.AddMoodleUser(ada)
	h.backend.Fail(http.MethodPost, "/api/moodle/course/build", http.StatusInternalServerError)

	rec := h.postForm("/course-builds", createForm("Houston ISD"), session)

	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), service.MsgCourseBuildFailed)
}

func TestCourses_Filter(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)
	h.backend.AddBuild(model.CourseBuild{ID: 1, InstructorEmail: "ada@school.org", AcademicYear: "2025-2026", Status: model.CourseBuildStatusCreated})
	h.backend.AddBuild(model.CourseBuild{ID: 2, InstructorEmail: "grace@school.org", AcademicYear: "2024-2025", Status: model.CourseBuildStatusFailed})

	all := h.get("/courses", session)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Contains(t, all.Body.String(), "ada@school.org")
	assert.Contains(t, all.Body.String(), "grace@school.org")

	byEmail := h.get("/courses?email=ADA", session)
	assert.Contains(t, byEmail.Body.String(), "ada@school.org")
	assert.NotContains(t, byEmail.Body.String(), "grace@school.org")

	byYear := h.get("/courses?academic_year=2024", session)
	assert.NotContains(t, byYear.Body.String(), "ada@school.org")
	assert.Contains(t, byYear.Body.String(), "grace@school.org")

	none := h.get("/courses?email=nobody", session)
	assert.Contains(t, none.Body.String(), "No course builds found")
}

func TestCourses_BackendFailure(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)
	h.backend.Fail(http.MethodGet, "/api/moodle/course/build", http.StatusInternalServerError)

	rec := h.get("/courses", session)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgCourseBuildsFailed)
}

func TestAdminPages_ForbiddenForNonAdmins(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(managerUser)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users"},
		{http.MethodPost, "/users"},
		{http.MethodPost, "/users/1/permissions"},
		{http.MethodPost, "/users/1/delete"},
		{http.MethodGet, "/settings"},
		{http.MethodPost, "/settings/moodle"},
		{http.MethodPost, "/settings/districts"},
		{http.MethodPost, "/settings/districts/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.method == http.MethodGet {
				rec = h.get(tt.path, session)
			} else {
				rec = h.postForm(tt.path, url.Values{"email": {"x@rice.edu"}, "name": {"x"}}, session)
			}
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), service.MsgAdminOnly)
		})
	}
	assert.Len(t, h.backend.Users(), 1)
	assert.Empty(t, h.backend.Districts())
}

func TestUsers_List(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)
	h.backend.AddUser(managerUser)

	rec := h.get("/users", session)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), adminUser.Email)
	assert.Contains(t, rec.Body.String(), managerUser.Email)
}

func TestUsers_Add(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)

	rec := h.postForm("/users", url.Values{"email": {" new@rice.edu "}, "is_manager": {"on"}}, session)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))

	users := h.backend.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "new@rice.edu", users[1].Email)
	assert.True(t, users[1].IsManager)
	assert.False(t, users[1].IsAdmin)

	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), "Added new@rice.edu")

	again := h.get("/users", session)
	assert.NotContains(t, again.Body.String(), "Added new@rice.edu", "flashes show once")
}

func TestUsers_AddValidation(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"blank", "", "Email is required."},
		{"other domain", "someone@gmail.com", service.MsgInvalidInstitutionEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			session := h.signIn(adminUser)

			rec := h.postForm("/users", url.Values{"email": {tt.email}}, session)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Len(t, h.backend.Users(), 1)
		})
	}
}

func TestUsers_AddDuplicateFlashes(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)

	rec := h.postForm("/users", url.Values{"email": {adminUser.Email}}, session)

	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), service.MsgAddUserFailed)
}

func TestUsers_UpdatePermissions(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)
	target := h.backend.AddUser(model.User{Email: "t@rice.edu", IsManager: true})

	rec := h.postForm("/users/"+strconv.Itoa(target.ID)+"/permissions", url.Values{"is_admin": {"on"}}, session)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, u := range h.backend.Users() {
		if u.ID == target.ID {
			assert.True(t, u.IsAdmin)
			assert.False(t, u.IsManager)
			assert.Equal(t, "t@rice.edu", u.Email)
		}
	}
	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), "Updated permissions for t@rice.edu")
}

func TestUsers_Delete(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)
	target := h.backend.AddUser(model.User{Email: "gone@rice.edu"})

	rec := h.postForm("/users/"+strconv.Itoa(target.ID)+"/delete", nil, session)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Len(t, h.backend.Users(), 1)
	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), "User deleted")
}

func TestUsers_BadIDIsNotFound(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)

	rec := h.postForm("/users/abc/delete", nil, session)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettings_Page(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)
	h.backend.AddSetting(model.SettingAcademicYear, "2025-2026")
	h.backend.AddDistrict("Houston ISD", true)

	rec := h.get("/settings", session)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="setting.academic_year"`)
	assert.Contains(t, body, `value="2025-2026"`)
	assert.Contains(t, body, `name="setting.base_course_id"`)
	assert.Contains(t, body, "Houston ISD")
}

func TestSettings_SaveMoodle(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)
	h.backend.AddSetting(model.SettingAcademicYear, "2024-2025")

	rec := h.postForm("/settings/moodle", url.Values{
		"setting.academic_year":  {"2025-2026"},
		"setting.base_course_id": {"42"},
	}, session)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/settings", rec.Header().Get("Location"))

	saved := model.MoodleSettings(h.backend.Settings())
	assert.Equal(t, "2025-2026", saved.Value(model.SettingAcademicYear))
	assert.Equal(t, "42", saved.Value(model.SettingBaseCourseID))

	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), service.MsgSettingsSaved)
}

func TestSettings_SaveMoodleRejectsBadID(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)

	rec := h.postForm("/settings/moodle", url.Values{"setting.base_course_id": {"abc"}}, session)

	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), "base_course_id must be a positive number.")
	assert.Empty(t, h.backend.Settings())
}

func TestSettings_AddAndToggleDistrict(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)

	rec := h.postForm("/settings/districts", url.Values{"name": {"  Austin ISD "}}, session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), service.MsgDistrictAdded)

	districts := h.backend.Districts()
	require.Len(t, districts, 1)
	assert.Equal(t, "Austin ISD", districts[0].Name)
	assert.True(t, districts[0].Active)

	id := strconv.Itoa(*districts[0].ID)
	rec = h.postForm("/settings/districts/"+id, url.Values{"action": {"toggle"}}, session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, h.backend.Districts()[0].Active)

	rec = h.postForm("/settings/districts/"+id, url.Values{"name": {"Austin Independent"}}, session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Austin Independent", h.backend.Districts()[0].Name)
	assert.False(t, h.backend.Districts()[0].Active, "renaming keeps the active flag")
}

func TestSettings_AddBlankDistrict(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(adminUser)

	rec := h.postForm("/settings/districts", url.Values{"name": {"   "}}, session)

	page := h.follow(rec, session)
	assert.Contains(t, page.Body.String(), "District name cannot be empty")
	assert.Empty(t, h.backend.Districts())
}

func TestLogin_RelaysSessionCookie(t *testing.T) {
	h := newHarness(t, func(s *RouterServices) { s.CookieDomain = "rope.test" })
	h.backend.AddUser(plainUser)

	rec := h.postForm("/login", url.Values{"token": {plainUser.Email}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	ck := findCookie(rec.Result().Cookies(), backendtest.SessionCookie)
	require.NotNil(t, ck)
	assert.NotEmpty(t, ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, "rope.test", ck.Domain)
	assert.Equal(t, 1, h.backend.SessionCount())

	home := h.get("/", ck)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), plainUser.Email)
}

func TestLogin_UnknownAccount(t *testing.T) {
	h := newHarness(t)

	rec := h.postForm("/login", url.Values{"token": {"stranger@rice.edu"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgLoginFailed)
	assert.Nil(t, findCookie(rec.Result().Cookies(), backendtest.SessionCookie))
}

func TestLogin_FailureWhileSignedInKeepsMessage(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)

	rec := h.postForm("/login", url.Values{"token": {"stranger@rice.edu"}}, session)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgLoginFailed)
	assert.Empty(t, rec.Header().Get("Refresh"))
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)
	require.Equal(t, 1, h.backend.SessionCount())

	rec := h.postForm("/logout", nil, session)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, 0, h.backend.SessionCount())
	ck := findCookie(rec.Result().Cookies(), backendtest.SessionCookie)
	require.NotNil(t, ck)
	assert.Negative(t, ck.MaxAge)
}

func TestLogout_FailureKeepsViewerSignedIn(t *testing.T) {
	h := newHarness(t)
	session := h.signIn(plainUser)
	h.backend.Fail(http.MethodDelete, "/api/session", http.StatusInternalServerError)

	rec := h.postForm("/logout", nil, session)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, h.backend.SessionCount())

	page := h.follow(rec, session)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), service.MsgLogoutFailed)
}
