package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openstax/rope/config"
	redisadapter "github.com/openstax/rope/internal/adapters/redis"
	"github.com/openstax/rope/internal/adapters/ropeapi"
	"github.com/openstax/rope/internal/observability/statsd"
	"github.com/openstax/rope/internal/ports"
	"github.com/openstax/rope/internal/service"
	"github.com/redis/go-redis/v9"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	API      *ropeapi.Client
	Auth     *service.AuthService
	Users    *service.UserService
	Settings *service.SettingsService
	Builds   *service.CourseBuildService

	// Metrics is nil when metrics are disabled.
	Metrics statsd.Sink
	closers []func() error
}

// Close releases the resources the container opened.
func (c *ServiceContainer) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	// Verifier overrides the verifier BuildVerifier would select.
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

// NewServices wires the backend client, cache and services.
func NewServices(ctx context.Context, deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service deps missing AppConfig")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &ServiceContainer{}
	if m := buildMetrics(logger, cfg.Observability.Metrics); m != nil {
		c.Metrics = m
		c.closers = append(c.closers, m.Close)
	}

	api, err := ropeapi.NewClient(ropeapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logger,
		Metrics: c.Metrics,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("backend client: %w", err), c.Close())
	}
	c.API = api

	verifier := deps.Verifier
	if verifier == nil {
		verifier, err = BuildVerifier(ctx, AuthConfig{Auth: cfg.Auth, Logger: logger})
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
	}

	obs := service.Observability{Logger: logger, Metrics: c.Metrics}
	c.Auth = service.NewAuthService(service.AuthServiceOptions{
		Sessions:      api,
		Verifier:      verifier,
		Observability: obs,
	})
	c.Users = service.NewUserService(service.UserServiceOptions{
		API:               api,
		InstitutionDomain: cfg.Auth.HostedDomain,
		Observability:     obs,
	})
	c.Settings = service.NewSettingsService(service.SettingsServiceOptions{
		API:           api,
		Observability: obs,
	})
	c.Builds = service.NewCourseBuildService(service.CourseBuildServiceOptions{
		API:           api,
		Cache:         buildMoodleUserCache(deps.RedisClient, cfg.Cache, logger),
		Observability: obs,
	})
	return c, nil
}

// buildMetrics returns nil when metrics are disabled or the sink cannot be dialed.
func buildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

//nolint:ireturn // a nil port disables caching.
func buildMoodleUserCache(client redis.UniversalClient, cfg config.CacheConfig, logger *slog.Logger) ports.MoodleUserCache {
	if client == nil || cfg.MoodleUserTTL <= 0 {
		return nil
	}
	logger.Info("moodle user lookups cached in redis", "ttl", cfg.MoodleUserTTL)
	return redisadapter.NewMoodleUserCache(client, redisadapter.MoodleUserCacheOptions{TTL: cfg.MoodleUserTTL})
}

// ServiceOrchestrationConfig contains what RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown serves HTTP until SIGINT/SIGTERM or a server error,
// then shuts the server down gracefully.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	keys, err := ResolveSigningKeys(cfg.Config, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Keys:     keys,
		Logger:   logger,
		ErrCh:    errCh,
	})

	return waitForShutdown(shutdownConfig{
		errCh:      errCh,
		httpServer: server,
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	errCh      <-chan error
	httpServer *http.Server
	logger     *slog.Logger
}

// waitForShutdown waits for shutdown signal or server error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

func gracefulStop(cfg shutdownConfig) error {
	return ShutdownHTTPServer(ShutdownConfig{
		Context: context.Background(),
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})
}
