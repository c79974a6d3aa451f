package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/openstax/rope/internal/domain/auth"
)

// Login modes.
const (
	LoginModeGoogle = "google"
	LoginModeMock   = "mock"
)

type loginView struct {
	Message string
	Status  int
}

func (h *UIHandlers) renderLogin(w http.ResponseWriter, r *http.Request, v loginView) {
	mode := h.Login.Mode
	if mode == "" {
		mode = LoginModeGoogle
	}
	b := h.newPage(w, r, PageMeta{PageTitle: "Sign in", CurrentPage: PageLogin}).
		With("LoginMode", mode).
		With("GoogleClientID", h.Login.GoogleClientID).
		With("LoginURI", strings.TrimRight(h.Login.BaseURL, "/")+domainauth.LoginPath).
		With("Message", v.Message)
	h.render(w, r, pageView{Data: b.Build(), Status: v.Status})
}

// LoginPage renders the sign-in page. The guard has already added a Refresh
// header when the viewer is signed in.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, loginView{})
}

// LoginSubmit exchanges the posted identity token for a backend session,
// relays the session cookies and sends the browser home so the next page
// load probes the new session. Google posts the token as "credential"; the
// mock form posts it as "token".
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PostFormValue(fieldCredential))
	if token == "" {
		token = strings.TrimSpace(r.PostFormValue(fieldToken))
	}

	res, err := h.Auth.Login(r.Context(), token)
	if err != nil {
		h.renderLogin(w, r, loginView{Message: errMessage(err), Status: formStatus(r, err)})
		return
	}
	h.relayCookies(w, res.Cookies)
	SeeOther(w, r, domainauth.HomePath)
}

// Logout ends the backend session. On success the store turns signed-out,
// the guard reacts by requesting /login, and the browser follows. A failed
// logout leaves the viewer signed in with an error flash.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sh, _ := viewer(r)
	if sh == nil {
		SeeOther(w, r, domainauth.LoginPath)
		return
	}

	res, err := h.Auth.Logout(r.Context(), sh.Credentials(), sh.Writer())
	if err != nil {
		h.finish(w, r, outcome{RedirectTo: domainauth.HomePath, Err: err})
		return
	}
	h.relayCookies(w, res.Cookies)

	target := sh.Verdict().RedirectTo
	if target == "" {
		target = domainauth.LoginPath
	}
	SeeOther(w, r, target)
}

// relayCookies passes the backend's Set-Cookie headers on to the browser,
// scoped to rope's cookie domain.
func (h *UIHandlers) relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		out := *c
		out.Domain = h.CookieDomain
		if out.Path == "" {
			out.Path = "/"
		}
		http.SetCookie(w, &out)
	}
}
