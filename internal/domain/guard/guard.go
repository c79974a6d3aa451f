// Package guard decides what a route renders for a given viewer identity.
//
// Evaluate is pure: it never navigates. Navigation side effects are keyed by
// (status, path) through an EffectTracker so that repeated evaluations with
// unchanged inputs request a redirect at most once.
package guard

import (
	domainauth "github.com/openstax/rope/internal/domain/auth"
)

// Regime is the observable state of the route guard.
type Regime string

const (
	// RegimePending holds content back until the session probe resolves.
	RegimePending Regime = "pending"
	// RegimeBlocked hides content from signed-out viewers and sends them to login.
	RegimeBlocked Regime = "blocked"
	// RegimeRedirectHome sends signed-in viewers away from the login page.
	RegimeRedirectHome Regime = "redirect_home"
	// RegimeAllowed renders the route unmodified.
	RegimeAllowed Regime = "allowed"
)

// Verdict is the outcome of one guard evaluation.
type Verdict struct {
	Regime Regime
	// Render reports whether routed content is rendered for this pass.
	Render bool
	// RedirectTo is the navigation the guard requests, empty when none.
	RedirectTo string
}

// Evaluate computes the verdict for an identity viewing a route.
// The login page always renders; for a signed-in viewer it also requests a
// redirect home, so the page renders and then navigates away.
func Evaluate(id domainauth.Identity, route domainauth.RouteContext) Verdict {
	if route.IsLogin() {
		if id.Status == domainauth.StatusSignedIn {
			return Verdict{Regime: RegimeRedirectHome, Render: true, RedirectTo: domainauth.HomePath}
		}
		return Verdict{Regime: RegimeAllowed, Render: true}
	}

	switch id.Status {
	case domainauth.StatusSignedIn:
		return Verdict{Regime: RegimeAllowed, Render: true}
	case domainauth.StatusNotSignedIn:
		return Verdict{Regime: RegimeBlocked, RedirectTo: domainauth.LoginPath}
	default:
		return Verdict{Regime: RegimePending}
	}
}
