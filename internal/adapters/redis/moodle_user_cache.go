// Package redis provides Redis-backed adapters for rope.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openstax/rope/internal/domain/model"
	"github.com/openstax/rope/internal/ports"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "rope:moodle_user:"
	defaultTTL    = 5 * time.Minute
)

// MoodleUserCache remembers Moodle account lookups by email with a fixed TTL.
// A lookup that found no account is cached as a JSON null.
type MoodleUserCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.MoodleUserCache = (*MoodleUserCache)(nil)

// MoodleUserCacheOptions configures a MoodleUserCache.
type MoodleUserCacheOptions struct {
	Prefix string        // default "rope:moodle_user:"
	TTL    time.Duration // default 5m
}

// NewMoodleUserCache creates a Moodle user cache over client.
func NewMoodleUserCache(client redis.UniversalClient, opts MoodleUserCacheOptions) *MoodleUserCache {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MoodleUserCache{client: client, prefix: prefix, ttl: ttl}
}

type cachedMoodleUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (c *MoodleUserCache) key(email string) string {
	return c.prefix + strings.ToLower(strings.TrimSpace(email))
}

// Get returns the cached lookup for email. found is false on a cache miss.
func (c *MoodleUserCache) Get(ctx context.Context, email string) (*model.MoodleUser, bool, error) {
	if strings.TrimSpace(email) == "" {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var cached *cachedMoodleUser
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("unmarshal moodle user: %w", err)
	}
	if cached == nil {
		return nil, true, nil
	}
	return &model.MoodleUser{
		FirstName: cached.FirstName,
		LastName:  cached.LastName,
		Email:     cached.Email,
	}, true, nil
}

// Set caches the lookup result for email. A nil user records "no account".
func (c *MoodleUserCache) Set(ctx context.Context, email string, user *model.MoodleUser) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email cannot be empty")
	}

	var cached *cachedMoodleUser
	if user != nil {
		cached = &cachedMoodleUser{FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal moodle user: %w", err)
	}

	return c.client.Set(ctx, c.key(email), data, c.ttl).Err()
}

// Invalidate drops the cached lookup for email.
func (c *MoodleUserCache) Invalidate(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	return c.client.Del(ctx, c.key(email)).Err()
}
