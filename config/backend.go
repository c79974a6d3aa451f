package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BackendConfig configures the client for rope's REST backend.
type BackendConfig struct {
	// BaseURL is the backend's absolute http(s) URL, e.g. "https://rope-api.example.edu".
	BaseURL string `env:"ROPE_API_BASE_URL"`

	// Timeout bounds every backend request.
	Timeout time.Duration `env:"ROPE_API_TIMEOUT" envDefault:"10s"`
}

// Sanitize trims the URL and restores a usable timeout.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
}

// Validate requires an absolute http(s) base URL.
func (b *BackendConfig) Validate() error {
	if b.BaseURL == "" {
		return errors.New("ROPE_API_BASE_URL is required")
	}
	u, err := url.Parse(b.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ROPE_API_BASE_URL must be an absolute http(s) URL: %q", b.BaseURL)
	}
	return nil
}
