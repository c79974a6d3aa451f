package config

import (
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rawKey = "0123456789abcdef0123456789abcdef"
	hexKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
)

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("APP_BASE_URL", "https://rope.example.edu/")
	t.Setenv("APP_COOKIE_DOMAIN", "example.edu")
	t.Setenv("HTTP_COMPRESSION_ENABLED", "true")
	t.Setenv("HTTP_COMPRESSION_LEVEL", "12")
	t.Setenv("HTTP_CSRF_KEY", rawKey)
	t.Setenv("HTTP_SESSION_KEY", hexKey)
	t.Setenv("ROPE_API_BASE_URL", "https://api.example.edu/")
	t.Setenv("ROPE_API_TIMEOUT", "3s")
	t.Setenv("AUTH_MODE", "Google")
	t.Setenv("GOOGLE_CLIENT_ID", "client-123.apps.googleusercontent.com")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_MOODLE_USER_TTL", "1m")
	t.Setenv("OBSERVABILITY_METRICS_PREFIX", ".rope.web.")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "https://rope.example.edu", cfg.HTTP.BaseURL)
	assert.Equal(t, "example.edu", cfg.HTTP.CookieDomain)
	assert.True(t, cfg.HTTP.CompressionEnabled)
	assert.Equal(t, 9, cfg.HTTP.CompressionLevel)
	assert.True(t, cfg.HTTP.SecureCookies)
	assert.Equal(t, "https://api.example.edu", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, AuthModeGoogle, cfg.Auth.Mode)
	assert.Equal(t, "rice.edu", cfg.Auth.HostedDomain)
	assert.Equal(t, "https://accounts.google.com", cfg.Auth.Issuer)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Minute, cfg.Cache.MoodleUserTTL)
	assert.Equal(t, "rope.web", cfg.Observability.Metrics.Prefix)

	assert.NoError(t, cfg.Validate())
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 6, cfg.HTTP.CompressionLevel)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, AuthModeGoogle, cfg.Auth.Mode)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Cache.MoodleUserTTL)
	assert.Equal(t, "rope", cfg.Observability.Metrics.Prefix)
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}

func TestAppConfig_InvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AuthMode")
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	var cfg AppConfig
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)

	t.Setenv("NODE_ENV", "production")
	cfg = AppConfig{}
	cfg.Sanitize()
	assert.False(t, cfg.IsDev)
}

func TestAppConfig_Validate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			HTTP:    HTTPConfig{CSRFKey: rawKey, SessionKey: rawKey},
			Backend: BackendConfig{BaseURL: "http://backend:8000"},
			Auth:    AuthConfig{Mode: AuthModeMock, HostedDomain: "rice.edu"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr []string
	}{
		{"valid", func(*AppConfig) {}, nil},
		{"missing backend", func(c *AppConfig) { c.Backend.BaseURL = "" }, []string{"ROPE_API_BASE_URL is required"}},
		{"relative backend", func(c *AppConfig) { c.Backend.BaseURL = "/api" }, []string{"absolute http(s) URL"}},
		{"google without client id", func(c *AppConfig) { c.Auth.Mode = AuthModeGoogle }, []string{"GOOGLE_CLIENT_ID"}},
		{"public suffix domain", func(c *AppConfig) { c.Auth.HostedDomain = "edu" }, []string{"AUTH_HOSTED_DOMAIN"}},
		{"missing keys in production", func(c *AppConfig) {
			c.HTTP.CSRFKey = ""
			c.HTTP.SessionKey = ""
		}, []string{"HTTP_CSRF_KEY is required", "HTTP_SESSION_KEY is required"}},
		{"missing keys in dev", func(c *AppConfig) {
			c.IsDev = true
			c.HTTP.CSRFKey = ""
			c.HTTP.SessionKey = ""
		}, nil},
		{"short key", func(c *AppConfig) { c.HTTP.CSRFKey = "short" }, []string{"HTTP_CSRF_KEY: key must be 32 bytes"}},
		{"several problems", func(c *AppConfig) {
			c.Backend.BaseURL = ""
			c.Auth.Mode = AuthModeGoogle
		}, []string{"ROPE_API_BASE_URL", "GOOGLE_CLIENT_ID"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	b, err := ParseKey(rawKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(rawKey), b)

	b, err = ParseKey(hexKey)
	require.NoError(t, err)
	assert.Len(t, b, KeyLen)
	assert.Equal(t, byte(0x1f), b[31])

	_, err = ParseKey(strings.Repeat("z", 2*KeyLen))
	assert.ErrorContains(t, err, "invalid hex key")

	_, err = ParseKey("too-short")
	assert.Error(t, err)
}

func TestValidateHostedDomain(t *testing.T) {
	for _, ok := range []string{"rice.edu", "cs.rice.edu", "example.co.uk"} {
		assert.NoError(t, ValidateHostedDomain(ok), ok)
	}
	for _, bad := range []string{"edu", "co.uk", "com"} {
		assert.Error(t, ValidateHostedDomain(bad), bad)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 0, BaseURL: " http://localhost:8080/ "}
	cfg.Sanitize()
	assert.Equal(t, 1, cfg.CompressionLevel)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestCacheConfig_Sanitize(t *testing.T) {
	cfg := CacheConfig{MoodleUserTTL: -time.Second}
	cfg.Sanitize()
	assert.Zero(t, cfg.MoodleUserTTL)

	r := RedisConfig{Addr: "  ", DB: -1}
	r.Sanitize()
	assert.False(t, r.Enabled())
	assert.Zero(t, r.DB)
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "rope" {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
}
