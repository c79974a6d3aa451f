package ropeapi

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestUserRoundTrip(t *testing.T) {
	users := []model.User{
		{ID: 1, Email: "a@rice.edu", IsAdmin: true},
		{ID: 2, Email: "m@rice.edu", IsManager: true},
		{ID: 3, Email: "both@rice.edu", IsAdmin: true, IsManager: true},
		{},
	}
	for _, u := range users {
		if diff := cmp.Diff(u, UserFromAPI(UserToAPI(u))); diff != "" {
			t.Errorf("user round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	id := domainauth.SignedIn("a@rice.edu", true, false)
	if diff := cmp.Diff(id, IdentityFromAPI(IdentityToAPI(id))); diff != "" {
		t.Errorf("identity round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCourseBuildRoundTrip(t *testing.T) {
	builds := []model.CourseBuild{
		{
			ID:                  9,
			InstructorFirstName: "Franklin",
			InstructorLastName:  "Saint",
			InstructorEmail:     "fsaint@rice.edu",
			SchoolDistrictName:  "snowfall_isd",
			AcademicYear:        "AY 2024",
			AcademicYearShort:   "AY24",
			CourseName:          "Algebra 1 - Franklin Saint (AY 2024)",
			CourseShortName:     "Alg1 FS AY24",
			CreatorEmail:        "manager@rice.edu",
			Status:              model.CourseBuildStatusCreated,
		},
		{
			ID:                  10,
			InstructorEmail:     "done@rice.edu",
			CourseID:            intPtr(0),
			CourseEnrollmentURL: strPtr(""),
			CourseEnrollmentKey: strPtr("key"),
			Status:              model.CourseBuildStatusCompleted,
		},
	}
	for _, b := range builds {
		if diff := cmp.Diff(b, CourseBuildFromAPI(CourseBuildToAPI(b))); diff != "" {
			t.Errorf("course build round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCourseBuildConversionDoesNotAlias(t *testing.T) {
	b := model.CourseBuild{CourseID: intPtr(5)}
	wire := CourseBuildToAPI(b)
	*wire.CourseID = 6
	assert.Equal(t, 5, *b.CourseID)
}

func TestSettingsAndDistrictsRoundTrip(t *testing.T) {
	settings := []model.MoodleSetting{
		{ID: intPtr(1), Name: "academic_year", Value: "AY 2024"},
		{Name: "course_category", Value: ""},
	}
	for _, s := range settings {
		if diff := cmp.Diff(s, MoodleSettingFromAPI(MoodleSettingToAPI(s))); diff != "" {
			t.Errorf("setting round trip mismatch (-want +got):\n%s", diff)
		}
	}

	districts := []model.SchoolDistrict{
		{ID: intPtr(3), Name: "snowfall_isd", Active: true},
		{Name: "new_isd"},
	}
	for _, d := range districts {
		if diff := cmp.Diff(d, SchoolDistrictFromAPI(SchoolDistrictToAPI(d))); diff != "" {
			t.Errorf("district round trip mismatch (-want +got):\n%s", diff)
		}
	}

	req := model.CourseBuildRequest{
		InstructorFirstName: "F", InstructorLastName: "S", InstructorEmail: "fs@rice.edu", SchoolDistrictName: "d",
	}
	if diff := cmp.Diff(req, CourseBuildRequestFromAPI(CourseBuildRequestToAPI(req))); diff != "" {
		t.Errorf("course build request round trip mismatch (-want +got):\n%s", diff)
	}

	mu := model.MoodleUser{FirstName: "F", LastName: "S", Email: "fs@rice.edu"}
	if diff := cmp.Diff(mu, MoodleUserFromAPI(MoodleUserToAPI(mu))); diff != "" {
		t.Errorf("moodle user round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCourseBuildFromWireJSON(t *testing.T) {
	payload := `{
		"id": 1,
		"instructor_firstname": "Franklin",
		"instructor_lastname": "Saint",
		"instructor_email": "fsaint@rice.edu",
		"school_district": "snowfall_isd",
		"academic_year": "AY 2024",
		"academic_year_short": "AY24",
		"course_name": "Algebra 1 - Franklin Saint (AY 2024)",
		"course_shortname": "Alg1 FS AY24",
		"course_id": null,
		"course_enrollment_key": null,
		"creator": "manager@rice.edu",
		"status": "created"
	}`

	var wire APICourseBuild
	require.NoError(t, json.Unmarshal([]byte(payload), &wire))
	got := CourseBuildFromAPI(wire)

	assert.Nil(t, got.CourseID, "null maps to nil, not zero")
	assert.Nil(t, got.CourseEnrollmentURL, "a missing key maps to nil, not empty")
	assert.Nil(t, got.CourseEnrollmentKey)
	assert.Equal(t, "snowfall_isd", got.SchoolDistrictName)
	assert.Equal(t, "Alg1 FS AY24", got.CourseShortName)
	assert.Equal(t, "manager@rice.edu", got.CreatorEmail)
	assert.Equal(t, model.CourseBuildStatusCreated, got.Status)
}

func TestOptionalIDsOmittedOnWire(t *testing.T) {
	b, err := json.Marshal(MoodleSettingToAPI(model.MoodleSetting{Name: "academic_year", Value: "AY 2024"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"academic_year","value":"AY 2024"}`, string(b))

	b, err = json.Marshal(SchoolDistrictToAPI(model.SchoolDistrict{Name: "x", Active: true}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","active":true}`, string(b))

	b, err = json.Marshal(NewUserToAPI(model.NewUserRequest{Email: "a@rice.edu", IsManager: true}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@rice.edu","is_admin":false,"is_manager":true}`, string(b))
}
