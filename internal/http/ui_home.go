package httpx

import (
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/model"
	"github.com/openstax/rope/internal/service"
)

// homeView is the state of the instructor lookup page.
type homeView struct {
	Email      string
	Instructor *model.MoodleUser
	// Searched is set once the course build lookup ran.
	Searched  bool
	Build     *model.CourseBuild
	Districts []model.SchoolDistrict
	Form      model.CourseBuildRequest
	Message   string
	Errors    map[string]string
	Status    int
}

func (h *UIHandlers) renderHome(w http.ResponseWriter, r *http.Request, v homeView) {
	_, id := viewer(r)
	showForm := v.Searched && v.Instructor != nil && v.Build == nil && id.CanManageBuilds()
	if showForm && v.Form.InstructorEmail == "" {
		v.Form = model.CourseBuildRequest{
			InstructorFirstName: v.Instructor.FirstName,
			InstructorLastName:  v.Instructor.LastName,
			InstructorEmail:     v.Instructor.Email,
		}
	}
	b := h.newPage(w, r, PageMeta{PageTitle: "Instructor Lookup", CurrentPage: PageHome}).
		With("Email", v.Email).
		With("Instructor", v.Instructor).
		With("Searched", v.Searched).
		With("Build", v.Build).
		With("ShowCreateForm", showForm).
		With("Districts", v.Districts).
		With("Form", v.Form).
		With("Message", v.Message).
		WithFieldErrors(v.Errors)
	if v.Searched && v.Instructor != nil && v.Build == nil && v.Message == "" {
		b.With("Message", service.MsgNoCourseBuild)
	}
	h.render(w, r, pageView{Data: b.Build(), Status: v.Status})
}

// formStatus is the status for a page re-rendered with an error. htmx only
// swaps successful responses, so its requests get 200.
func formStatus(r *http.Request, err error) int {
	if IsHTMX(r) {
		return http.StatusOK
	}
	return ErrorStatus(err)
}

// Home serves the instructor lookup. ?email= looks the instructor up in
// Moodle; adding find=1 also loads their course build.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has(fieldEmail) {
		h.renderHome(w, r, homeView{})
		return
	}
	email := strings.TrimSpace(q.Get(fieldEmail))
	if q.Get(fieldFind) != "" {
		h.showInstructor(w, r, email)
		return
	}

	sh, _ := viewer(r)
	instructor, err := h.Builds.LookupInstructor(r.Context(), sh.Credentials(), email)
	if err != nil {
		h.renderHome(w, r, homeView{
			Email:   email,
			Message: messageUnlessField(err),
			Errors:  fieldErrors(err),
			Status:  formStatus(r, err),
		})
		return
	}
	h.renderHome(w, r, homeView{Email: email, Instructor: &instructor})
}

// SearchBuild finds the course build for the posted instructor email.
func (h *UIHandlers) SearchBuild(w http.ResponseWriter, r *http.Request) {
	h.showInstructor(w, r, strings.TrimSpace(r.PostFormValue(fieldEmail)))
}

func (h *UIHandlers) showInstructor(w http.ResponseWriter, r *http.Request, email string) {
	sh, id := viewer(r)
	page, err := h.Builds.LoadInstructorPage(r.Context(), sh.Credentials(), email, id.CanManageBuilds())
	if err != nil {
		h.renderHome(w, r, homeView{
			Email:   email,
			Message: messageUnlessField(err),
			Errors:  fieldErrors(err),
			Status:  formStatus(r, err),
		})
		return
	}
	h.renderHome(w, r, homeView{
		Email:      email,
		Instructor: &page.Instructor,
		Searched:   true,
		Build:      page.Build,
		Districts:  page.Districts,
	})
}

// CreateBuild creates a course build for the instructor. Admins and managers only.
func (h *UIHandlers) CreateBuild(w http.ResponseWriter, r *http.Request) {
	sh, id := viewer(r)
	if !id.CanManageBuilds() {
		h.renderAbort(w, r, domainauth.RouteContext{URLPathname: r.URL.Path, AbortReason: service.MsgManagerOnly}, http.StatusForbidden)
		return
	}
	req := model.CourseBuildRequest{
		InstructorFirstName: r.PostFormValue(fieldFirstName),
		InstructorLastName:  r.PostFormValue(fieldLastName),
		InstructorEmail:     r.PostFormValue(fieldInstEmail),
		SchoolDistrictName:  r.PostFormValue(fieldDistrict),
	}
	email := strings.TrimSpace(req.InstructorEmail)
	back := "/?" + url.Values{fieldEmail: {email}, fieldFind: {"1"}}.Encode()

	_, err := h.Builds.Create(r.Context(), sh.Credentials(), req)
	if errs := fieldErrors(err); errs != nil {
		h.rerenderCreateForm(w, r, createFormState{Req: req, Errs: errs, Err: err})
		return
	}
	h.finish(w, r, outcome{RedirectTo: back, Success: service.MsgCourseBuildCreated, Err: err})
}

type createFormState struct {
	Req  model.CourseBuildRequest
	Errs map[string]string
	Err  error
}

// rerenderCreateForm shows the create form again with the viewer's input and errors.
func (h *UIHandlers) rerenderCreateForm(w http.ResponseWriter, r *http.Request, st createFormState) {
	sh, _ := viewer(r)
	email := strings.TrimSpace(st.Req.InstructorEmail)
	v := homeView{Email: email, Form: st.Req, Errors: st.Errs, Status: formStatus(r, st.Err)}

	page, err := h.Builds.LoadInstructorPage(r.Context(), sh.Credentials(), email, true)
	if err != nil {
		// Without the instructor there is no form to attach the field error to.
		v.Message = errMessage(st.Err)
		h.renderHome(w, r, v)
		return
	}
	v.Instructor = &page.Instructor
	v.Searched = true
	v.Build = page.Build
	v.Districts = page.Districts
	h.renderHome(w, r, v)
}

// messageUnlessField returns the error's message unless it belongs next to a field.
func messageUnlessField(err error) string {
	if fieldErrors(err) != nil {
		return ""
	}
	return errMessage(err)
}
