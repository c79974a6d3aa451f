package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openstax/rope/config"
	httpx "github.com/openstax/rope/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Keys     SigningKeys
	Logger   *slog.Logger
	// ErrCh receives ListenAndServe failures. Optional.
	ErrCh chan<- error
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil || cfg.Services == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(buildRouterServices(appCfg, cfg.Services, cfg.Keys, logger))

	// Start server (logs "starting HTTP server" internally)
	return startServer(serverParams{
		logger:  logger,
		handler: handler,
		addr:    appCfg.HTTP.Addr,
		errCh:   cfg.ErrCh,
	})
}

func buildRouterServices(
	appCfg *config.AppConfig,
	svcs *ServiceContainer,
	keys SigningKeys,
	logger *slog.Logger,
) httpx.RouterServices {
	rs := httpx.RouterServices{
		Auth:     svcs.Auth,
		Users:    svcs.Users,
		Settings: svcs.Settings,
		Builds:   svcs.Builds,
		Login: httpx.LoginConfig{
			Mode:           string(appCfg.Auth.Mode),
			GoogleClientID: appCfg.Auth.GoogleClientID,
			BaseURL:        appCfg.HTTP.BaseURL,
		},
		CookieDomain:  appCfg.HTTP.CookieDomain,
		CSRFKey:       keys.CSRF,
		SessionKey:    keys.Session,
		SecureCookies: appCfg.HTTP.SecureCookies,
		IsDev:         appCfg.IsDev,
		Logger:        logger,
		Metrics:       svcs.Metrics,
	}
	if svcs.API != nil {
		rs.Sessions = svcs.API
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		rs.Compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, Logger: logger}
	}
	return rs
}

type serverParams struct {
	logger  *slog.Logger
	handler http.Handler
	addr    string
	errCh   chan<- error
}

func startServer(p serverParams) *http.Server {
	addr := p.addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           p.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		p.logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("HTTP server failed", "error", err)
			if p.errCh != nil {
				p.errCh <- err
			}
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
