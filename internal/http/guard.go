package httpx

import (
	"log/slog"
	"net/http"
	"sync"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/observability/statsd"
	"github.com/openstax/rope/internal/ports"
	"github.com/openstax/rope/internal/shell"
)

// GuardConfig configures the per-page route guard.
type GuardConfig struct {
	Sessions ports.SessionAPI
	Logger   *slog.Logger
	Metrics  statsd.Sink
}

// responseNavigator records the guard's navigation effect for the response.
type responseNavigator struct {
	mu     sync.Mutex
	target string
}

func (n *responseNavigator) Navigate(target string) {
	n.mu.Lock()
	n.target = target
	n.mu.Unlock()
}

func (n *responseNavigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// Guarded returns a middleware that hosts each page load in a shell: it probes
// the session with the browser's cookies, evaluates the route guard for the
// request path, and makes the shell available through shell.FromContext.
//
// Blocked viewers are sent to /login without running the page. A signed-in
// viewer loading /login gets the page plus a Refresh header pointing home.
func Guarded(cfg GuardConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var probe *shell.Probe
	if cfg.Sessions != nil {
		probe = shell.NewProbe(cfg.Sessions, logger, cfg.Metrics)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nav := &responseNavigator{}
			sh := shell.New(shell.Options{
				Probe:       probe,
				Credentials: ports.Credentials(r.Cookies()),
				Navigator:   nav,
				Logger:      logger,
				Metrics:     cfg.Metrics,
			})
			sh.Mount(r.Context())
			defer sh.Unmount()

			if err := sh.Wait(r.Context()); err != nil {
				logger.DebugContext(r.Context(), "request ended before session probe", "error", err)
				return
			}

			v := sh.Navigate(domainauth.RouteContext{URLPathname: r.URL.Path})
			target := nav.Target()
			if !v.Render {
				if target == "" {
					// Pending cannot outlive Wait; treat it as an outage.
					http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
					return
				}
				SeeOther(w, r, target)
				return
			}
			// A form post on /login renders its own outcome; only page loads
			// are sent on.
			if target != "" && isPageLoad(r) {
				w.Header().Set("Refresh", "0; url="+target)
				if IsHTMX(r) {
					SetHXRedirect(w, target)
				}
			}
			next.ServeHTTP(w, r.WithContext(shell.WithShell(r.Context(), sh)))
		})
	}
}

func isPageLoad(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}
