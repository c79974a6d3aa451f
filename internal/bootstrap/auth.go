package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openstax/rope/config"
	"github.com/openstax/rope/internal/adapters/googleid"
	"github.com/openstax/rope/internal/ports"
)

// AuthConfig contains configuration for the login token verifier.
type AuthConfig struct {
	Auth   config.AuthConfig
	Logger *slog.Logger
}

// BuildVerifier returns the token verifier for the configured auth mode.
// Google mode discovers the issuer's signing keys, so it needs network access.
//
//nolint:ireturn // the verifier is selected by mode.
func BuildVerifier(ctx context.Context, cfg AuthConfig) (ports.TokenVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if cfg.Logger != nil {
			cfg.Logger.Warn("mock auth enabled; login tokens are not verified")
		}
		return googleid.MockVerifier{}, nil

	case config.AuthModeGoogle:
		v, err := googleid.NewVerifier(ctx, googleid.Config{
			ClientID:     cfg.Auth.GoogleClientID,
			HostedDomain: cfg.Auth.HostedDomain,
			Issuer:       cfg.Auth.Issuer,
		})
		if err != nil {
			return nil, fmt.Errorf("google id verifier: %w", err)
		}
		if cfg.Logger != nil {
			cfg.Logger.Info("google sign-in enabled", "hosted_domain", cfg.Auth.HostedDomain)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}
