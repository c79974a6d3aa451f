package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// KeyLen is the length in bytes of the CSRF and session signing keys.
const KeyLen = 32

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the public URL of the application (e.g., "https://rope.example.edu").
	// Google Identity Services posts sign-in credentials back to BaseURL/login.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for relayed session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CompressionEnabled enables gzip compression for text-based responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	// Default is 6 (standard gzip default).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`

	// SecureCookies marks the CSRF and flash cookies Secure.
	SecureCookies bool `env:"HTTP_SECURE_COOKIES" envDefault:"true"`

	// CSRFKey signs CSRF tokens: 32 raw bytes or 64 hex characters.
	CSRFKey string `env:"HTTP_CSRF_KEY"`

	// SessionKey signs the flash cookie: 32 raw bytes or 64 hex characters.
	SessionKey string `env:"HTTP_SESSION_KEY"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}
	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	h.CookieDomain = strings.TrimSpace(h.CookieDomain)
	h.CSRFKey = strings.TrimSpace(h.CSRFKey)
	h.SessionKey = strings.TrimSpace(h.SessionKey)
}

// Validate checks the signing keys. Empty keys are allowed in dev mode only.
func (h *HTTPConfig) Validate(isDev bool) error {
	var errs []error
	for _, k := range []struct{ name, value string }{
		{"HTTP_CSRF_KEY", h.CSRFKey},
		{"HTTP_SESSION_KEY", h.SessionKey},
	} {
		if k.value == "" {
			if !isDev {
				errs = append(errs, fmt.Errorf("%s is required", k.name))
			}
			continue
		}
		if _, err := ParseKey(k.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k.name, err))
		}
	}
	return errors.Join(errs...)
}

// ParseKey decodes a signing key given as 32 raw bytes or 64 hex characters.
func ParseKey(s string) ([]byte, error) {
	if len(s) == KeyLen {
		return []byte(s), nil
	}
	if len(s) == 2*KeyLen {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex key: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("key must be %d bytes or %d hex characters, got %d characters", KeyLen, 2*KeyLen, len(s))
}
