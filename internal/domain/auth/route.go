package auth

const (
	// LoginPath is reserved and reachable regardless of sign-in status.
	LoginPath = "/login"
	// HomePath is where signed-in viewers land after leaving the login page.
	HomePath = "/"
)

// RouteContext describes the navigation being rendered.
type RouteContext struct {
	URLPathname string
	AbortReason string
	Is404       bool
}

// IsLogin reports whether the route is the reserved login page.
func (r RouteContext) IsLogin() bool { return r.URLPathname == LoginPath }

// ErrorMessage returns the text an error page shows for this route.
func (r RouteContext) ErrorMessage() string {
	if r.AbortReason != "" {
		return r.AbortReason
	}
	if r.Is404 {
		return "Page not found."
	}
	return "Something went wrong."
}
