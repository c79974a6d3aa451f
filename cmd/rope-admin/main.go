// Command rope-admin manages rope's users, settings and course builds from
// the terminal, talking to the same REST backend as the web app.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/openstax/rope/config"
	"github.com/openstax/rope/internal/adapters/ropeapi"
	"github.com/openstax/rope/internal/ports"
	"github.com/openstax/rope/internal/service"
	"github.com/openstax/rope/internal/shell"
	"github.com/spf13/cobra"
)

// cliConfig is read from the environment; flags override it.
type cliConfig struct {
	Backend      config.BackendConfig
	Session      string `env:"ROPE_SESSION"`
	HostedDomain string `env:"AUTH_HOSTED_DOMAIN" envDefault:"rice.edu"`
}

// app carries what every subcommand needs once the root flags are parsed.
type app struct {
	out    io.Writer
	logger *slog.Logger
	format outputFormat
	creds  ports.Credentials

	probe    *shell.Probe
	users    *service.UserService
	settings *service.SettingsService
	builds   *service.CourseBuildService
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			logger.Error("load .env file", "error", err)
			os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
		}
	}

	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	root := newRootCmd(cfg, os.Stdout, logger)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newRootCmd(cfg cliConfig, out io.Writer, logger *slog.Logger) *cobra.Command {
	a := &app{out: out, logger: logger}
	var format string

	root := &cobra.Command{
		Use:           "rope-admin",
		Short:         "Administer rope through its REST backend",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseOutputFormat(format)
			if err != nil {
				return err
			}
			a.format = f
			return a.connect(cfg)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Backend.BaseURL, "api-url", cfg.Backend.BaseURL, "REST backend base URL (ROPE_API_BASE_URL)")
	flags.DurationVar(&cfg.Backend.Timeout, "timeout", durationOr(cfg.Backend.Timeout, 10*time.Second), "backend request timeout")
	flags.StringVar(&cfg.Session, "session", cfg.Session, "session cookie as NAME=VALUE (ROPE_SESSION)")
	flags.StringVarP(&format, "output", "o", string(outputTable), "output format: table or json")

	root.AddCommand(
		newWhoamiCmd(a),
		newUsersCmd(a),
		newSettingsCmd(a),
		newDistrictsCmd(a),
		newBuildsCmd(a),
	)
	return root
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// connect builds the backend client and services for the parsed flags.
func (a *app) connect(cfg cliConfig) error {
	cfg.Backend.Sanitize()
	if err := cfg.Backend.Validate(); err != nil {
		return err
	}
	creds, err := parseSession(cfg.Session)
	if err != nil {
		return err
	}

	api, err := ropeapi.NewClient(ropeapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  a.logger,
	})
	if err != nil {
		return err
	}

	obs := service.Observability{Logger: a.logger}
	a.creds = creds
	a.probe = shell.NewProbe(api, a.logger, nil)
	a.users = service.NewUserService(service.UserServiceOptions{
		API:               api,
		InstitutionDomain: cfg.HostedDomain,
		Observability:     obs,
	})
	a.settings = service.NewSettingsService(service.SettingsServiceOptions{API: api, Observability: obs})
	a.builds = service.NewCourseBuildService(service.CourseBuildServiceOptions{API: api, Observability: obs})
	return nil
}

// parseSession turns "NAME=VALUE" (or a copied Cookie header) into credentials.
func parseSession(raw string) (ports.Credentials, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	cookies, err := http.ParseCookie(raw)
	if err != nil {
		return nil, fmt.Errorf("--session must look like NAME=VALUE: %w", err)
	}
	return ports.Credentials(cookies), nil
}
