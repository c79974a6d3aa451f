package bootstrap

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/openstax/rope/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SigningKeys holds the decoded CSRF and flash-cookie keys.
type SigningKeys struct {
	CSRF    []byte
	Session []byte
}

// ResolveSigningKeys decodes the configured keys. In dev mode a missing key is
// replaced by a random one, which invalidates tokens and flashes on restart.
func ResolveSigningKeys(cfg *config.AppConfig, logger *slog.Logger) (SigningKeys, error) {
	if logger == nil {
		logger = slog.Default()
	}
	csrfKey, err := resolveKey("HTTP_CSRF_KEY", cfg.HTTP.CSRFKey, cfg.IsDev, logger)
	if err != nil {
		return SigningKeys{}, err
	}
	sessionKey, err := resolveKey("HTTP_SESSION_KEY", cfg.HTTP.SessionKey, cfg.IsDev, logger)
	if err != nil {
		return SigningKeys{}, err
	}
	return SigningKeys{CSRF: csrfKey, Session: sessionKey}, nil
}

func resolveKey(name, value string, isDev bool, logger *slog.Logger) ([]byte, error) {
	if value != "" {
		key, err := config.ParseKey(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return key, nil
	}
	if !isDev {
		return nil, fmt.Errorf("%s is required", name)
	}
	key := make([]byte, config.KeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	logger.Warn("signing key not set; generated a random key for this process", "key", name)
	return key, nil
}
