// Package backendtest runs an in-memory stand-in for rope's REST backend.
//
// It speaks the same JSON wire format as the real backend and keeps users,
// sessions, settings, districts, Moodle accounts and course builds in memory,
// so handlers and CLI commands can be tested end to end over HTTP.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/openstax/rope/internal/adapters/ropeapi"
	"github.com/openstax/rope/internal/domain/model"
)

// SessionCookie is the cookie the backend sets on login.
const SessionCookie = "ROPE.session"

// TB is the subset of testing.TB the harness needs.
type TB interface {
	Helper()
	Cleanup(func())
}

// Backend is a fake REST backend. Seed it through its methods before use.
type Backend struct {
	Server *httptest.Server

	mu          sync.Mutex
	users       []model.User
	sessions    map[string]string // session id -> email
	settings    []model.MoodleSetting
	districts   []model.SchoolDistrict
	moodleUsers map[string]model.MoodleUser
	builds      []model.CourseBuild
	failures    map[string]int // "METHOD /path" -> status
	requests    []string
	nextID      int
}

// New starts a fake backend that is closed when the test ends.
func New(t TB) *Backend {
	t.Helper()
	b := &Backend{
		sessions:    make(map[string]string),
		moodleUsers: make(map[string]model.MoodleUser),
		failures:    make(map[string]int),
		nextID:      100,
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the backend's base URL.
func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/session", b.createSession)
	mux.HandleFunc("DELETE /api/session", b.authed(b.deleteSession))
	mux.HandleFunc("GET /api/user/current", b.authed(b.currentUser))
	mux.HandleFunc("GET /api/user", b.authed(b.listUsers))
	mux.HandleFunc("POST /api/user", b.authed(b.createUser))
	mux.HandleFunc("PUT /api/user/{id}", b.authed(b.updateUser))
	mux.HandleFunc("DELETE /api/user/{id}", b.authed(b.deleteUser))
	mux.HandleFunc("GET /api/admin/settings/moodle", b.authed(b.listSettings))
	mux.HandleFunc("POST /api/admin/settings/moodle", b.authed(b.createSetting))
	mux.HandleFunc("PUT /api/admin/settings/moodle/{id}", b.authed(b.updateSetting))
	mux.HandleFunc("GET /api/admin/settings/district", b.authed(b.listDistricts))
	mux.HandleFunc("POST /api/admin/settings/district", b.authed(b.createDistrict))
	mux.HandleFunc("PUT /api/admin/settings/district/{id}", b.authed(b.updateDistrict))
	mux.HandleFunc("GET /api/moodle/user", b.authed(b.moodleUser))
	mux.HandleFunc("GET /api/moodle/course/build", b.authed(b.listBuilds))
	mux.HandleFunc("POST /api/moodle/course/build", b.authed(b.createBuild))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, key)
		status, fail := b.failures[key]
		b.mu.Unlock()
		if fail {
			http.Error(w, `{"detail":"forced failure"}`, status)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// Seeding

// AddUser registers a rope account and returns it with its assigned id.
func (b *Backend) AddUser(u model.User) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.ID == 0 {
		u.ID = b.id()
	}
	b.users = append(b.users, u)
	return u
}

// AddMoodleUser registers a Moodle account.
func (b *Backend) AddMoodleUser(u model.MoodleUser) {
	b.mu.Lock()
	b.moodleUsers[strings.ToLower(u.Email)] = u
	b.mu.Unlock()
}

// AddSetting stores a Moodle setting, assigning an id.
func (b *Backend) AddSetting(name, value string) {
	b.mu.Lock()
	id := b.id()
	b.settings = append(b.settings, model.MoodleSetting{ID: &id, Name: name, Value: value})
	b.mu.Unlock()
}

// AddDistrict stores a school district, assigning an id.
func (b *Backend) AddDistrict(name string, active bool) {
	b.mu.Lock()
	id := b.id()
	b.districts = append(b.districts, model.SchoolDistrict{ID: &id, Name: name, Active: active})
	b.mu.Unlock()
}

// AddBuild stores a course build as-is.
func (b *Backend) AddBuild(cb model.CourseBuild) {
	b.mu.Lock()
	b.builds = append(b.builds, cb)
	b.mu.Unlock()
}

// Fail makes every request matching method and path answer with status.
func (b *Backend) Fail(method, path string, status int) {
	b.mu.Lock()
	b.failures[method+" "+path] = status
	b.mu.Unlock()
}

// Recover clears a failure set with Fail.
func (b *Backend) Recover(method, path string) {
	b.mu.Lock()
	delete(b.failures, method+" "+path)
	b.mu.Unlock()
}

// SessionFor creates a session for a registered email and returns its cookie.
func (b *Backend) SessionFor(email string) *http.Cookie {
	b.mu.Lock()
	defer b.mu.Unlock()
	sid := uuid.NewString()
	b.sessions[sid] = strings.ToLower(email)
	return &http.Cookie{Name: SessionCookie, Value: sid, Path: "/"}
}

// Inspection

// Requests returns "METHOD /path" for every request received so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.requests)
}

// Users returns the stored accounts.
func (b *Backend) Users() []model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.users)
}

// Settings returns the stored Moodle settings.
func (b *Backend) Settings() []model.MoodleSetting {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.settings)
}

// Districts returns the stored districts.
func (b *Backend) Districts() []model.SchoolDistrict {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.districts)
}

// Builds returns the stored course builds.
func (b *Backend) Builds() []model.CourseBuild {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.builds)
}

// SessionCount reports how many sessions are live.
func (b *Backend) SessionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

// must be called with mu held.
func (b *Backend) id() int {
	b.nextID++
	return b.nextID
}

// must be called with mu held.
func (b *Backend) findUser(email string) (model.User, bool) {
	for _, u := range b.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return model.User{}, false
}

type authedHandler func(w http.ResponseWriter, r *http.Request, viewer model.User, sid string)

func (b *Backend) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(SessionCookie)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Not signed in")
			return
		}
		b.mu.Lock()
		email, ok := b.sessions[ck.Value]
		viewer, found := b.findUser(email)
		b.mu.Unlock()
		if !ok || !found {
			writeDetail(w, http.StatusUnauthorized, "Not signed in")
			return
		}
		next(w, r, viewer, ck.Value)
	}
}

// Sessions

// createSession treats the posted token as the signing-in email, matching a
// backend running in mock auth mode.
func (b *Backend) createSession(w http.ResponseWriter, r *http.Request) {
	var in ropeapi.APISessionRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Token == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "token required")
		return
	}
	b.mu.Lock()
	_, ok := b.findUser(in.Token)
	b.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Unauthorized user")
		return
	}
	http.SetCookie(w, b.SessionFor(in.Token))
	w.WriteHeader(http.StatusOK)
}

func (b *Backend) deleteSession(w http.ResponseWriter, _ *http.Request, _ model.User, sid string) {
	b.mu.Lock()
	delete(b.sessions, sid)
	b.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusOK)
}

func (b *Backend) currentUser(w http.ResponseWriter, _ *http.Request, viewer model.User, _ string) {
	writeJSON(w, http.StatusOK, ropeapi.APICurrentUser{
		Email: viewer.Email, IsAdmin: viewer.IsAdmin, IsManager: viewer.IsManager,
	})
}

// Users

func (b *Backend) listUsers(w http.ResponseWriter, _ *http.Request, viewer model.User, _ string) {
	if !viewer.IsAdmin {
		writeDetail(w, http.StatusForbidden, "Admin only")
		return
	}
	out := make([]ropeapi.APIUser, 0, len(b.Users()))
	for _, u := range b.Users() {
		out = append(out, ropeapi.UserToAPI(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	var in ropeapi.APIUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	if _, exists := b.findUser(in.Email); exists {
		b.mu.Unlock()
		writeDetail(w, http.StatusConflict, "User already exists")
		return
	}
	u := ropeapi.UserFromAPI(in)
	u.ID = b.id()
	b.users = append(b.users, u)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, ropeapi.UserToAPI(u))
}

func (b *Backend) updateUser(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in ropeapi.APIUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.users {
		if b.users[i].ID == id {
			b.users[i] = ropeapi.UserFromAPI(in)
			b.users[i].ID = id
			writeJSON(w, http.StatusOK, ropeapi.UserToAPI(b.users[i]))
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "User not found")
}

func (b *Backend) deleteUser(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	before := len(b.users)
	b.users = slices.DeleteFunc(b.users, func(u model.User) bool { return u.ID == id })
	if len(b.users) == before {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Settings

func (b *Backend) listSettings(w http.ResponseWriter, _ *http.Request, _ model.User, _ string) {
	out := make([]ropeapi.APIMoodleSetting, 0)
	for _, s := range b.Settings() {
		out = append(out, ropeapi.MoodleSettingToAPI(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createSetting(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	var in ropeapi.APIMoodleSetting
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	s := ropeapi.MoodleSettingFromAPI(in)
	id := b.id()
	s.ID = &id
	b.settings = append(b.settings, s)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, ropeapi.MoodleSettingToAPI(s))
}

func (b *Backend) updateSetting(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in ropeapi.APIMoodleSetting
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.settings {
		if *b.settings[i].ID == id {
			b.settings[i].Value = in.Value
			writeJSON(w, http.StatusOK, ropeapi.MoodleSettingToAPI(b.settings[i]))
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Setting not found")
}

// Districts

func (b *Backend) listDistricts(w http.ResponseWriter, _ *http.Request, _ model.User, _ string) {
	out := make([]ropeapi.APISchoolDistrict, 0)
	for _, d := range b.Districts() {
		out = append(out, ropeapi.SchoolDistrictToAPI(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createDistrict(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	var in ropeapi.APISchoolDistrict
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "name required")
		return
	}
	b.mu.Lock()
	d := ropeapi.SchoolDistrictFromAPI(in)
	id := b.id()
	d.ID = &id
	b.districts = append(b.districts, d)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, ropeapi.SchoolDistrictToAPI(d))
}

func (b *Backend) updateDistrict(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in ropeapi.APISchoolDistrict
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.districts {
		if *b.districts[i].ID == id {
			b.districts[i].Name = in.Name
			b.districts[i].Active = in.Active
			writeJSON(w, http.StatusOK, ropeapi.SchoolDistrictToAPI(b.districts[i]))
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "District not found")
}

// Moodle

func (b *Backend) moodleUser(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	email := strings.ToLower(r.URL.Query().Get("email"))
	b.mu.Lock()
	u, ok := b.moodleUsers[email]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, ropeapi.MoodleUserToAPI(u))
}

func (b *Backend) listBuilds(w http.ResponseWriter, r *http.Request, _ model.User, _ string) {
	year := r.URL.Query().Get("academic_year")
	email := r.URL.Query().Get("instructor_email")
	out := make([]ropeapi.APICourseBuild, 0)
	for _, cb := range b.Builds() {
		if year != "" && cb.AcademicYear != year {
			continue
		}
		if email != "" && !strings.EqualFold(cb.InstructorEmail, email) {
			continue
		}
		out = append(out, ropeapi.CourseBuildToAPI(cb))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createBuild(w http.ResponseWriter, r *http.Request, viewer model.User, _ string) {
	var in ropeapi.APICourseBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	req := ropeapi.CourseBuildRequestFromAPI(in)
	if err := req.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	b.mu.Lock()
	settings := model.DefaultMoodleSettings().Merge(b.settings)
	cb := model.CourseBuild{
		ID:                  b.id(),
		InstructorFirstName: req.InstructorFirstName,
		InstructorLastName:  req.InstructorLastName,
		InstructorEmail:     req.InstructorEmail,
		SchoolDistrictName:  req.SchoolDistrictName,
		AcademicYear:        settings.Value(model.SettingAcademicYear),
		AcademicYearShort:   settings.Value(model.SettingAcademicYearShort),
		CreatorEmail:        viewer.Email,
		Status:              model.CourseBuildStatusCreated,
	}
	b.builds = append(b.builds, cb)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, ropeapi.CourseBuildToAPI(cb))
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
