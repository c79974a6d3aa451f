package config

import (
	"strings"
	"time"
)

// RedisConfig contains Redis connection settings. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// Sanitize trims the address and clamps the database index.
func (r *RedisConfig) Sanitize() {
	r.Addr = strings.TrimSpace(r.Addr)
	if r.DB < 0 {
		r.DB = 0
	}
}

// Enabled reports whether a Redis address is configured.
func (r *RedisConfig) Enabled() bool { return r.Addr != "" }

// CacheConfig controls what rope caches in Redis.
type CacheConfig struct {
	// MoodleUserTTL is how long Moodle account lookups are remembered. 0 disables caching.
	MoodleUserTTL time.Duration `env:"CACHE_MOODLE_USER_TTL" envDefault:"5m"`
}

// Sanitize treats a negative TTL as disabled.
func (c *CacheConfig) Sanitize() {
	if c.MoodleUserTTL < 0 {
		c.MoodleUserTTL = 0
	}
}
