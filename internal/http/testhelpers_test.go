package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openstax/rope/internal/adapters/ropeapi"
	"github.com/openstax/rope/internal/domain/model"
	"github.com/openstax/rope/internal/service"
	"github.com/openstax/rope/internal/testutil/backendtest"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// harness is a router wired to real services over a fake backend.
type harness struct {
	t       *testing.T
	backend *backendtest.Backend
	handler http.Handler
}

// newHarness builds the full router. Options adjust RouterServices before the
// router is created; CSRF is off unless an option sets a key.
func newHarness(t *testing.T, opts ...func(*RouterServices)) *harness {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping")
	}

	b := backendtest.New(t)
	api, err := ropeapi.NewClient(ropeapi.Config{BaseURL: b.URL(), Logger: discardLogger()})
	require.NoError(t, err)

	obs := service.Observability{Logger: discardLogger()}
	svcs := RouterServices{
		Auth:       service.NewAuthService(service.AuthServiceOptions{Sessions: api, Observability: obs}),
		Users:      service.NewUserService(service.UserServiceOptions{API: api, Observability: obs}),
		Settings:   service.NewSettingsService(service.SettingsServiceOptions{API: api, Observability: obs}),
		Builds:     service.NewCourseBuildService(service.CourseBuildServiceOptions{API: api, Observability: obs}),
		Sessions:   api,
		Login:      LoginConfig{Mode: LoginModeMock, BaseURL: "http://rope.test"},
		SessionKey: []byte("0123456789abcdef0123456789abcdef"),
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(&svcs)
	}
	return &harness{t: t, backend: b, handler: NewRouter(svcs)}
}

// signIn registers an account and returns a session cookie for it.
func (h *harness) signIn(u model.User) *http.Cookie {
	h.t.Helper()
	h.backend.AddUser(u)
	return h.backend.SessionFor(u.Email)
}

func (h *harness) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()
	return h.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (h *harness) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req, cookies...)
}

// follow loads the redirect target of rec, carrying the session and any
// cookie rec set (the flash cookie).
func (h *harness) follow(rec *httptest.ResponseRecorder, session *http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()
	require.Equal(h.t, http.StatusSeeOther, rec.Code)
	cookies := append([]*http.Cookie{session}, rec.Result().Cookies()...)
	return h.get(rec.Header().Get("Location"), cookies...)
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
