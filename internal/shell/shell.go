// Package shell hosts one page load: the auth state store, the session probe
// that fills it, and the route guard that reacts to it.
//
// A Shell is mounted once, probes asynchronously, and re-runs the guard
// whenever the store changes or the route changes. The guard's navigation
// effect goes through an EffectTracker, so it fires at most once per
// (status, path) pair. Once unmounted, late writes from an abandoned probe or
// command are dropped.
package shell

import (
	"context"
	"log/slog"
	"sync"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/guard"
	"github.com/openstax/rope/internal/observability/metrics"
	"github.com/openstax/rope/internal/observability/statsd"
	"github.com/openstax/rope/internal/ports"
)

// Options configures a Shell.
type Options struct {
	Probe       *Probe
	Credentials ports.Credentials
	Navigator   ports.Navigator
	Logger      *slog.Logger
	Metrics     statsd.Sink
}

// Shell is one mounted page.
type Shell struct {
	store   *Store
	writer  *Writer
	probe   *Probe
	creds   ports.Credentials
	nav     ports.Navigator
	logger  *slog.Logger
	metrics statsd.Sink
	tracker guard.EffectTracker

	mountOnce sync.Once
	probed    chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	unsub     func()

	// evalMu serializes guard evaluations so the identity read and the
	// tracker observation happen as one step.
	evalMu sync.Mutex

	mu       sync.Mutex
	route    domainauth.RouteContext
	hasRoute bool
}

// New creates an unmounted shell with a Pending store.
func New(opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nav := opts.Navigator
	if nav == nil {
		nav = ports.NavigatorFunc(func(string) {})
	}
	store, writer := NewStore()
	return &Shell{
		store:   store,
		writer:  writer,
		probe:   opts.Probe,
		creds:   opts.Credentials,
		nav:     nav,
		logger:  logger,
		metrics: opts.Metrics,
		probed:  make(chan struct{}),
		cancel:  func() {},
	}
}

// Store exposes the read side of the auth state.
func (s *Shell) Store() *Store { return s.store }

// Identity returns the current viewer identity.
func (s *Shell) Identity() domainauth.Identity { return s.store.Get() }

// Writer returns the store's write capability for session commands.
func (s *Shell) Writer() *Writer { return s.writer }

// Credentials returns the cookies the shell forwards to the backend.
func (s *Shell) Credentials() ports.Credentials { return s.creds }

// Mount subscribes the guard to store changes and starts the session probe.
// Only the first call has any effect.
func (s *Shell) Mount(ctx context.Context) {
	s.mountOnce.Do(func() {
		s.unsub = s.store.Subscribe(func(domainauth.Identity) { s.reevaluate() })

		if s.probe == nil {
			close(s.probed)
			return
		}

		probeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.cancel = cancel
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer close(s.probed)
			id := s.probe.Run(probeCtx, s.creds)
			if res := s.writer.Set(id); res == WriteDropped {
				s.logger.DebugContext(probeCtx, "session probe resolved after unmount", "status", id.Status.String())
				metrics.EmitCommand(s.metrics, "probe", metrics.ResultDropped, nil)
			}
		}()
	})
}

// Wait blocks until the probe has resolved or ctx is done.
func (s *Shell) Wait(ctx context.Context) error {
	select {
	case <-s.probed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Navigate moves the shell to route and evaluates the guard synchronously.
// The redirect effect, if any, is requested through the Navigator, which must
// not call back into the shell.
func (s *Shell) Navigate(route domainauth.RouteContext) guard.Verdict {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()

	s.mu.Lock()
	s.route = route
	s.hasRoute = true
	s.mu.Unlock()
	return s.evaluate(route)
}

// Verdict evaluates the guard for the current route without side effects.
func (s *Shell) Verdict() guard.Verdict {
	s.mu.Lock()
	route := s.route
	s.mu.Unlock()
	return guard.Evaluate(s.store.Get(), route)
}

// Route returns the current route.
func (s *Shell) Route() domainauth.RouteContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// Unmount releases the shell. An in-flight probe is canceled and its write,
// if it still arrives, is dropped. Unmount waits for the probe goroutine.
func (s *Shell) Unmount() {
	s.store.Close()
	if s.unsub != nil {
		s.unsub()
	}
	s.cancel()
	s.wg.Wait()
}

func (s *Shell) reevaluate() {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()

	s.mu.Lock()
	route, ok := s.route, s.hasRoute
	s.mu.Unlock()
	if ok {
		s.evaluate(route)
	}
}

// evaluate must be called with evalMu held.
func (s *Shell) evaluate(route domainauth.RouteContext) guard.Verdict {
	id := s.store.Get()
	v := guard.Evaluate(id, route)
	target, fire := s.tracker.Observe(id, route)
	metrics.EmitGuard(s.metrics, string(v.Regime), fire)
	if fire {
		s.logger.Debug("route guard redirect",
			"from", route.URLPathname,
			"to", target,
			"status", id.Status.String(),
		)
		s.nav.Navigate(target)
	}
	return v
}

type ctxKey struct{}

// WithShell returns a context carrying sh.
func WithShell(ctx context.Context, sh *Shell) context.Context {
	return context.WithValue(ctx, ctxKey{}, sh)
}

// FromContext returns the shell stored in ctx.
func FromContext(ctx context.Context) (*Shell, bool) {
	sh, ok := ctx.Value(ctxKey{}).(*Shell)
	return sh, ok && sh != nil
}
