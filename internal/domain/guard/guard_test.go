package guard

import (
	"testing"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/stretchr/testify/assert"
)

func route(path string) domainauth.RouteContext {
	return domainauth.RouteContext{URLPathname: path}
}

func TestEvaluate(t *testing.T) {
	signedIn := domainauth.SignedIn("a@rice.edu", false, false)

	tests := []struct {
		name     string
		id       domainauth.Identity
		path     string
		expected Verdict
	}{
		{"pending on home", domainauth.Pending(), "/", Verdict{Regime: RegimePending}},
		{"pending on login", domainauth.Pending(), "/login", Verdict{Regime: RegimeAllowed, Render: true}},
		{"signed out on about", domainauth.SignedOut(), "/about", Verdict{Regime: RegimeBlocked, RedirectTo: "/login"}},
		{"signed out on login", domainauth.SignedOut(), "/login", Verdict{Regime: RegimeAllowed, Render: true}},
		{"signed in on users", signedIn, "/users", Verdict{Regime: RegimeAllowed, Render: true}},
		{
			"signed in on login",
			signedIn,
			"/login",
			Verdict{Regime: RegimeRedirectHome, Render: true, RedirectTo: "/"},
		},
		{"login prefix is not login", domainauth.SignedOut(), "/login/extra", Verdict{Regime: RegimeBlocked, RedirectTo: "/login"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(tt.id, route(tt.path)))
		})
	}
}

func TestEvaluate_RendersIffSignedInOrLogin(t *testing.T) {
	identities := []domainauth.Identity{
		domainauth.Pending(),
		domainauth.SignedOut(),
		domainauth.SignedIn("a@rice.edu", true, false),
		domainauth.SignedIn("m@rice.edu", false, true),
	}
	paths := []string{"/", "/login", "/about", "/users", "/settings", "/courses", "/does-not-exist", ""}

	for _, id := range identities {
		for _, p := range paths {
			want := id.Status == domainauth.StatusSignedIn || p == domainauth.LoginPath
			got := Evaluate(id, route(p)).Render
			assert.Equal(t, want, got, "status=%s path=%q", id.Status, p)
		}
	}
}

func TestEvaluate_IgnoresAbortMetadata(t *testing.T) {
	r := domainauth.RouteContext{URLPathname: "/missing", Is404: true, AbortReason: "gone"}
	assert.Equal(t, Evaluate(domainauth.SignedOut(), route("/missing")), Evaluate(domainauth.SignedOut(), r))
}

func TestEffectTracker_FiresOncePerPair(t *testing.T) {
	var tr EffectTracker
	about := route("/about")

	target, fired := tr.Observe(domainauth.SignedOut(), about)
	assert.True(t, fired)
	assert.Equal(t, "/login", target)

	for range 5 {
		_, fired = tr.Observe(domainauth.SignedOut(), about)
		assert.False(t, fired, "repeated renders must not re-trigger navigation")
	}
}

func TestEffectTracker_RearmsOnTransition(t *testing.T) {
	var tr EffectTracker
	login := route("/login")
	signedIn := domainauth.SignedIn("a@rice.edu", false, false)

	_, fired := tr.Observe(domainauth.SignedOut(), login)
	assert.False(t, fired)

	target, fired := tr.Observe(signedIn, login)
	assert.True(t, fired)
	assert.Equal(t, "/", target)

	_, fired = tr.Observe(signedIn, login)
	assert.False(t, fired)

	// Leave the state and come back: a new transition fires again.
	_, fired = tr.Observe(domainauth.SignedOut(), login)
	assert.False(t, fired)
	_, fired = tr.Observe(signedIn, login)
	assert.True(t, fired)
}

func TestEffectTracker_KeyIsStatusNotRoles(t *testing.T) {
	var tr EffectTracker
	login := route("/login")

	_, fired := tr.Observe(domainauth.SignedIn("a@rice.edu", false, false), login)
	assert.True(t, fired)
	_, fired = tr.Observe(domainauth.SignedIn("a@rice.edu", true, false), login)
	assert.False(t, fired)
}

func TestEffectTracker_PendingNeverNavigates(t *testing.T) {
	var tr EffectTracker
	_, fired := tr.Observe(domainauth.Pending(), route("/"))
	assert.False(t, fired)

	target, fired := tr.Observe(domainauth.SignedOut(), route("/"))
	assert.True(t, fired)
	assert.Equal(t, "/login", target)

	tr.Reset()
	_, fired = tr.Observe(domainauth.SignedOut(), route("/"))
	assert.True(t, fired)
}
