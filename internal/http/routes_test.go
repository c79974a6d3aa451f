package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_HealthzIsUnguarded(t *testing.T) {
	h := newHarness(t)

	rec := h.get("/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_StaticAssets(t *testing.T) {
	h := newHarness(t)

	rec := h.get("/static/css/app.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	missing := h.get("/static/nope.js")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRouter_CompressesPages(t *testing.T) {
	h := newHarness(t, func(s *RouterServices) { s.Compression = &CompressionConfig{} })
	session := h.signIn(plainUser)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := h.do(req, session)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestRouter_WithoutTemplates(t *testing.T) {
	h := newHarness(t, func(s *RouterServices) { s.TemplateFS = fstest.MapFS{} })
	session := h.signIn(plainUser)

	rec := h.get("/about", session)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

var csrfInput = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func TestRouter_CSRF(t *testing.T) {
	h := newHarness(t, func(s *RouterServices) { s.CSRFKey = testCSRFKey })
	session := h.signIn(adminUser)

	t.Run("post without token is rejected", func(t *testing.T) {
		rec := h.postForm("/users", url.Values{"email": {"new@rice.edu"}}, session)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Len(t, h.backend.Users(), 1)
	})

	t.Run("post with the page token is accepted", func(t *testing.T) {
		page := h.get("/users", session)
		require.Equal(t, http.StatusOK, page.Code)
		m := csrfInput.FindStringSubmatch(page.Body.String())
		require.Len(t, m, 2, "page carries a csrf token field")

		csrfCookie := findCookie(page.Result().Cookies(), CSRFCookieName)
		require.NotNil(t, csrfCookie)

		rec := h.postForm("/users", url.Values{"email": {"new@rice.edu"}, CSRFFieldName: {m[1]}}, session, csrfCookie)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Len(t, h.backend.Users(), 2)
	})

	t.Run("google callback skips the form token", func(t *testing.T) {
		h.backend.AddUser(plainUser)
		form := url.Values{"credential": {plainUser.Email}, "g_csrf_token": {"double-submit"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "g_csrf_token", Value: "double-submit"})

		rec := h.do(req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}
