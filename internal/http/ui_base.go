package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/service"
	"github.com/openstax/rope/internal/shell"
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T        *TemplateRenderer
	Auth     *service.AuthService
	Users    *service.UserService
	Settings *service.SettingsService
	Builds   *service.CourseBuildService
	Flash    *FlashStore
	Login    LoginConfig
	// CookieDomain overrides the Domain of session cookies relayed from the backend.
	CookieDomain string
	Logger       *slog.Logger
}

// LoginConfig describes how the login page signs viewers in.
type LoginConfig struct {
	// Mode is "google" for Google Identity Services or "mock" for a plain token field.
	Mode           string
	GoogleClientID string
	// BaseURL is rope's public URL; Google posts the credential back to BaseURL/login.
	BaseURL string
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// newPage starts the template data for a page and drains pending flashes.
func (h *UIHandlers) newPage(w http.ResponseWriter, r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return NewTemplateData(r, meta).WithFlashes(h.Flash.Pop(w, r))
}

// pageView is a rendered page and its status.
type pageView struct {
	Data   map[string]any
	Status int
}

// render writes the page, or only its content block for htmx swaps.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, v pageView) {
	if h.T == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	var err error
	if WantsPartial(r) {
		err = h.T.RenderPartial(w, v.Status, v.Data)
	} else {
		err = h.T.RenderFull(w, v.Status, v.Data)
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "render failed",
			"page", v.Data["CurrentPage"],
			"error", err,
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderAbort shows the error page for route with the given status.
func (h *UIHandlers) renderAbort(w http.ResponseWriter, r *http.Request, route domainauth.RouteContext, status int) {
	msg := route.ErrorMessage()
	if h.T == nil {
		http.Error(w, msg, status)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "ROPE", PageTitle: msg}).
		With("Message", msg).
		With("Is404", route.Is404).
		Build()
	if err := h.T.RenderError(w, status, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render error page failed", "error", err)
		http.Error(w, msg, status)
	}
}

// NotFound renders the "Page not found." page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderAbort(w, r, domainauth.RouteContext{URLPathname: r.URL.Path, Is404: true}, http.StatusNotFound)
}

// viewer returns the request's shell. Guarded routes always have one.
func viewer(r *http.Request) (*shell.Shell, domainauth.Identity) {
	sh, ok := shell.FromContext(r.Context())
	if !ok {
		return nil, domainauth.SignedOut()
	}
	return sh, sh.Identity()
}

// requireAdmin renders the admin-only page for non-admins and reports whether to continue.
func (h *UIHandlers) requireAdmin(w http.ResponseWriter, r *http.Request) (*shell.Shell, bool) {
	sh, id := viewer(r)
	if sh == nil || !id.CanAdminister() {
		h.renderAbort(w, r, domainauth.RouteContext{
			URLPathname: r.URL.Path,
			AbortReason: service.MsgAdminOnly,
		}, http.StatusForbidden)
		return nil, false
	}
	return sh, true
}

// ErrorStatus maps an application error to the HTTP status a page answers with.
func ErrorStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeAuthentication:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errMessage is the inline text for err.
func errMessage(err error) string {
	return apperrors.GetMessage(err, domainauth.RouteContext{}.ErrorMessage())
}

// fieldErrors returns err as a field error map when it names a form field.
func fieldErrors(err error) map[string]string {
	if field := apperrors.GetField(err); field != "" {
		return map[string]string{field: apperrors.GetMessage(err, "Invalid value")}
	}
	return nil
}

// finish completes a form post: queue the outcome as a flash, then redirect.
func (h *UIHandlers) finish(w http.ResponseWriter, r *http.Request, o outcome) {
	switch {
	case o.Err != nil:
		h.Flash.Add(w, r, FlashError, errMessage(o.Err))
	case o.Success != "":
		h.Flash.Add(w, r, FlashSuccess, o.Success)
	}
	SeeOther(w, r, o.RedirectTo)
}

// outcome is the result of a form post.
type outcome struct {
	RedirectTo string
	Success    string
	Err        error
}
