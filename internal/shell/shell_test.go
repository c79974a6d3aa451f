package shell

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/guard"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/observability/statsd"
	"github.com/openstax/rope/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSessions answers CurrentUser from a fixed result, optionally gated.
type fakeSessions struct {
	mu    sync.Mutex
	calls int
	id    domainauth.Identity
	err   error
	gate  chan struct{}
}

func (f *fakeSessions) CurrentUser(ctx context.Context, _ ports.Credentials) (domainauth.Identity, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domainauth.Identity{}, ctx.Err()
		}
	}
	return f.id, f.err
}

func (f *fakeSessions) CreateSession(context.Context, string) ([]*http.Cookie, error) {
	return nil, errors.New("not used")
}

func (f *fakeSessions) DeleteSession(context.Context, ports.Credentials) ([]*http.Cookie, error) {
	return nil, errors.New("not used")
}

func (f *fakeSessions) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNav struct {
	mu      sync.Mutex
	targets []string
}

func (n *recordingNav) Navigate(target string) {
	n.mu.Lock()
	n.targets = append(n.targets, target)
	n.mu.Unlock()
}

func (n *recordingNav) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

func route(path string) domainauth.RouteContext {
	return domainauth.RouteContext{URLPathname: path}
}

func newShell(api ports.SessionAPI, nav ports.Navigator, sink statsd.Sink) *Shell {
	return New(Options{Probe: NewProbe(api, nil, sink), Navigator: nav, Metrics: sink})
}

func TestProbe_SignedIn(t *testing.T) {
	api := &fakeSessions{id: domainauth.SignedIn("a@rice.edu", true, false)}
	rec := &statsd.Recorder{}

	got := NewProbe(api, nil, rec).Run(context.Background(), nil)

	assert.Equal(t, domainauth.SignedIn("a@rice.edu", true, false), got)
	require.Len(t, rec.Named("auth.probe"), 1)
	assert.Equal(t, "signed_in", rec.Named("auth.probe")[0].Tags["status"])
}

func TestProbe_FailuresYieldSignedOut(t *testing.T) {
	failures := []error{
		apperrors.Authentication("401"),
		apperrors.NotFound("404"),
		apperrors.Upstream("500"),
		apperrors.Upstream("malformed"),
		context.DeadlineExceeded,
	}
	for _, err := range failures {
		api := &fakeSessions{err: err}
		got := NewProbe(api, nil, nil).Run(context.Background(), nil)
		assert.Equal(t, domainauth.SignedOut(), got, "error %v", err)
	}
}

func TestProbe_NonSignedInAnswerIsSignedOut(t *testing.T) {
	api := &fakeSessions{id: domainauth.Identity{Status: domainauth.StatusUnknown, IsAdmin: true}}
	assert.Equal(t, domainauth.SignedOut(), NewProbe(api, nil, nil).Run(context.Background(), nil))
}

func TestStore_NotifiesOnlyOnChange(t *testing.T) {
	store, w := NewStore()
	assert.Equal(t, domainauth.Pending(), store.Get())

	var seen []domainauth.Identity
	unsub := store.Subscribe(func(id domainauth.Identity) { seen = append(seen, id) })

	assert.Equal(t, WriteChanged, w.Set(domainauth.SignedIn("a@rice.edu", true, false)))
	assert.Equal(t, WriteUnchanged, w.Set(domainauth.SignedIn("a@rice.edu", true, false)))
	assert.Equal(t, WriteChanged, w.Set(domainauth.SignedIn("a@rice.edu", false, false)))

	unsub()
	unsub()
	assert.Equal(t, WriteChanged, w.Set(domainauth.SignedOut()))

	assert.Len(t, seen, 2)
	assert.Equal(t, domainauth.SignedOut(), store.Get())
}

func TestStore_WritesAfterCloseAreDropped(t *testing.T) {
	store, w := NewStore()
	called := false
	store.Subscribe(func(domainauth.Identity) { called = true })

	store.Close()
	assert.True(t, store.Closed())
	assert.Equal(t, WriteDropped, w.Set(domainauth.SignedOut()))
	assert.Equal(t, domainauth.Pending(), store.Get())
	assert.False(t, called)
	assert.Equal(t, "dropped", WriteDropped.String())
}

func TestStore_NormalizesWrites(t *testing.T) {
	store, w := NewStore()
	w.Set(domainauth.Identity{Status: domainauth.StatusNotSignedIn, Email: "x@rice.edu", IsAdmin: true})
	assert.Equal(t, domainauth.SignedOut(), store.Get())
}

func TestShell_PendingUntilProbeResolves(t *testing.T) {
	api := &fakeSessions{id: domainauth.SignedIn("a@rice.edu", false, false), gate: make(chan struct{})}
	nav := &recordingNav{}
	sh := newShell(api, nav, nil)
	defer sh.Unmount()

	sh.Mount(context.Background())
	v := sh.Navigate(route("/users"))
	assert.Equal(t, guard.RegimePending, v.Regime)
	assert.False(t, v.Render)
	assert.Empty(t, nav.Targets())

	close(api.gate)
	require.NoError(t, sh.Wait(context.Background()))
	assert.Equal(t, guard.RegimeAllowed, sh.Verdict().Regime)
	assert.Empty(t, nav.Targets())
}

func TestShell_BlockedRedirectsOnce(t *testing.T) {
	api := &fakeSessions{err: apperrors.Authentication("no session")}
	nav := &recordingNav{}
	sh := newShell(api, nav, nil)
	defer sh.Unmount()

	sh.Mount(context.Background())
	require.NoError(t, sh.Wait(context.Background()))

	for range 3 {
		v := sh.Navigate(route("/about"))
		assert.Equal(t, guard.RegimeBlocked, v.Regime)
		assert.False(t, v.Render)
	}
	assert.Equal(t, []string{"/login"}, nav.Targets())
}

func TestShell_ProbeResolutionTriggersRedirect(t *testing.T) {
	api := &fakeSessions{err: apperrors.Authentication("no session"), gate: make(chan struct{})}
	nav := &recordingNav{}
	sh := newShell(api, nav, nil)
	defer sh.Unmount()

	sh.Mount(context.Background())
	sh.Navigate(route("/about"))
	assert.Empty(t, nav.Targets())

	close(api.gate)
	require.NoError(t, sh.Wait(context.Background()))
	assert.Equal(t, []string{"/login"}, nav.Targets())
}

func TestShell_ConcurrentNavigateRedirectsOnce(t *testing.T) {
	for i := range 500 {
		api := &fakeSessions{err: apperrors.Authentication("no session"), gate: make(chan struct{})}
		nav := &recordingNav{}
		sh := newShell(api, nav, nil)
		sh.Mount(context.Background())

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			sh.Navigate(route("/about"))
		}()
		close(api.gate)
		wg.Wait()
		require.NoError(t, sh.Wait(context.Background()))

		sh.Navigate(route("/about"))
		sh.Unmount()
		require.Equal(t, []string{"/login"}, nav.Targets(), "iteration %d", i)
	}
}

func TestShell_SignedInOnLoginRendersThenRedirectsHome(t *testing.T) {
	api := &fakeSessions{id: domainauth.SignedIn("a@rice.edu", false, true)}
	nav := &recordingNav{}
	sh := newShell(api, nav, nil)
	defer sh.Unmount()

	sh.Mount(context.Background())
	require.NoError(t, sh.Wait(context.Background()))

	v := sh.Navigate(route("/login"))
	assert.Equal(t, guard.RegimeRedirectHome, v.Regime)
	assert.True(t, v.Render)
	sh.Navigate(route("/login"))
	assert.Equal(t, []string{"/"}, nav.Targets())
}

func TestShell_LogoutWriteReevaluates(t *testing.T) {
	api := &fakeSessions{id: domainauth.SignedIn("a@rice.edu", true, false)}
	nav := &recordingNav{}
	rec := &statsd.Recorder{}
	sh := newShell(api, nav, rec)
	defer sh.Unmount()

	sh.Mount(context.Background())
	require.NoError(t, sh.Wait(context.Background()))
	sh.Navigate(route("/settings"))
	assert.Empty(t, nav.Targets())

	assert.Equal(t, WriteChanged, sh.Writer().Set(domainauth.SignedOut()))
	assert.Equal(t, []string{"/login"}, nav.Targets())
	assert.Equal(t, guard.RegimeBlocked, sh.Verdict().Regime)
	assert.NotEmpty(t, rec.Named("auth.guard"))
}

func TestShell_MountProbesOnce(t *testing.T) {
	api := &fakeSessions{id: domainauth.SignedIn("a@rice.edu", false, false)}
	sh := newShell(api, nil, nil)
	defer sh.Unmount()

	for range 3 {
		sh.Mount(context.Background())
	}
	require.NoError(t, sh.Wait(context.Background()))
	assert.Equal(t, 1, api.Calls())
}

func TestShell_UnmountDropsLateProbe(t *testing.T) {
	api := &fakeSessions{id: domainauth.SignedIn("a@rice.edu", false, false), gate: make(chan struct{})}
	nav := &recordingNav{}
	rec := &statsd.Recorder{}
	sh := newShell(api, nav, rec)

	sh.Mount(context.Background())
	sh.Navigate(route("/"))
	sh.Unmount()

	assert.Equal(t, domainauth.Pending(), sh.Identity())
	assert.Empty(t, nav.Targets())
	require.Len(t, rec.Named("auth.command"), 1)
	assert.Equal(t, "dropped", rec.Named("auth.command")[0].Tags["result"])
}

func TestShell_WaitHonorsContext(t *testing.T) {
	api := &fakeSessions{gate: make(chan struct{})}
	sh := newShell(api, nil, nil)
	defer sh.Unmount()
	sh.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, sh.Wait(ctx), context.DeadlineExceeded)
}

func TestShell_WithoutProbe(t *testing.T) {
	sh := New(Options{})
	defer sh.Unmount()
	sh.Mount(context.Background())
	require.NoError(t, sh.Wait(context.Background()))
	assert.Equal(t, guard.RegimeAllowed, sh.Navigate(route("/login")).Regime)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	sh := New(Options{})
	got, ok := FromContext(WithShell(context.Background(), sh))
	require.True(t, ok)
	assert.Same(t, sh, got)
}
