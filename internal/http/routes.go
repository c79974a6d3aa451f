package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/openstax/rope"
	"github.com/openstax/rope/internal/observability/statsd"
	"github.com/openstax/rope/internal/ports"
	"github.com/openstax/rope/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Settings *service.SettingsService
	Builds   *service.CourseBuildService
	// Sessions backs the per-page session probe.
	Sessions ports.SessionAPI

	Login        LoginConfig
	CookieDomain string
	// CSRFKey enables CSRF protection when set.
	CSRFKey []byte
	// SessionKey signs the flash cookie; flashes are dropped when empty.
	SessionKey    []byte
	SecureCookies bool
	// Compression enables gzip when non-nil.
	Compression *CompressionConfig

	IsDev bool
	// TemplateFS overrides where templates are loaded from.
	TemplateFS fs.FS
	Logger     *slog.Logger
	Metrics    statsd.Sink
}

// NewRouter creates the HTTP handler with the full middleware chain:
// Recover, Logging, Compression, SecurityHeaders, CSRF, then the routes.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ui := setupUIHandlers(services, logger)
	mux := http.NewServeMux()
	registerRoutes(mux, routeDeps{
		UI: ui,
		Guard: Guarded(GuardConfig{
			Sessions: services.Sessions,
			Logger:   logger,
			Metrics:  services.Metrics,
		}),
		IsDev: services.IsDev,
	})

	var h http.Handler = mux
	if len(services.CSRFKey) > 0 {
		h = CSRFProtection(CSRFConfig{Key: services.CSRFKey, Secure: services.SecureCookies, Logger: logger})(h)
	}
	h = SecurityHeaders()(h)
	if services.Compression != nil {
		cfg := *services.Compression
		if cfg.Logger == nil {
			cfg.Logger = logger
		}
		h = Compression(cfg)(h)
	}
	h = Logging(logger)(h)
	return Recover(logger)(h)
}

type routeDeps struct {
	UI    *UIHandlers
	Guard func(http.Handler) http.Handler
	IsDev bool
}

func registerRoutes(mux *http.ServeMux, d routeDeps) {
	page := func(f http.HandlerFunc) http.Handler { return d.Guard(f) }
	ui := d.UI

	mux.Handle("GET /{$}", page(ui.Home))
	mux.Handle("POST /course-builds/search", page(ui.SearchBuild))
	mux.Handle("POST /course-builds", page(ui.CreateBuild))
	mux.Handle("GET /courses", page(ui.Courses))

	mux.Handle("GET /users", page(ui.UsersPage))
	mux.Handle("POST /users", page(ui.AddUser))
	mux.Handle("POST /users/{id}/permissions", page(ui.UpdatePermissions))
	mux.Handle("POST /users/{id}/delete", page(ui.DeleteUser))

	mux.Handle("GET /settings", page(ui.SettingsPage))
	mux.Handle("POST /settings/moodle", page(ui.SaveMoodleSettings))
	mux.Handle("POST /settings/districts", page(ui.AddDistrict))
	mux.Handle("POST /settings/districts/{id}", page(ui.UpdateDistrict))

	mux.Handle("GET /about", page(ui.About))
	mux.Handle("GET /login", page(ui.LoginPage))
	mux.Handle("POST /login", page(ui.LoginSubmit))
	mux.Handle("POST /logout", page(ui.Logout))

	mux.Handle("GET /healthz", healthHandler(time.Now()))
	mux.Handle("GET /static/", staticHandler(d.IsDev))

	// Everything else is a guarded "Page not found.".
	mux.Handle("/", page(ui.NotFound))
}

// setupUIHandlers creates UI handlers with a template renderer. Without
// templates the handlers still answer, with plain-text errors.
func setupUIHandlers(services RouterServices, logger *slog.Logger) *UIHandlers {
	ui := &UIHandlers{
		Auth:         services.Auth,
		Users:        services.Users,
		Settings:     services.Settings,
		Builds:       services.Builds,
		Login:        services.Login,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	if len(services.SessionKey) > 0 {
		ui.Flash = NewFlashStore(FlashConfig{Key: services.SessionKey, Secure: services.SecureCookies, Logger: logger})
	}

	templateFS := services.TemplateFS
	if templateFS == nil {
		templateFS = templateSource(services.IsDev, logger)
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return ui
	}
	ui.T = tr
	return ui
}

// templateSource reads templates from disk in dev mode and from the binary otherwise.
func templateSource(isDev bool, logger *slog.Logger) fs.FS {
	if isDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(rope.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("embedded templates unavailable; falling back to disk", slog.Any("error", err))
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

const staticPathFromRoot = "frontend/static"

// staticHandler serves /static/* from disk in dev mode and from the binary otherwise.
func staticHandler(isDev bool) http.Handler {
	var fsys http.FileSystem = http.Dir(staticPathFromRoot)
	if !isDev {
		if sub, err := fs.Sub(rope.StaticFS, staticPathFromRoot); err == nil {
			fsys = http.FS(sub)
		}
	}
	files := http.StripPrefix("/static/", http.FileServer(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	})
}
