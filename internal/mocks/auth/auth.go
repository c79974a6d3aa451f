package auth

// Package auth contains simple hand-written test doubles for the identity and
// cache ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"strings"
	"sync"

	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenVerifier   = (*StubVerifier)(nil)
	_ ports.MoodleUserCache = (*MemoryMoodleUserCache)(nil)
)

// StubVerifier accepts a fixed set of tokens.
type StubVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (ports.VerifiedToken, error)

	// Tokens maps accepted tokens to the identity they verify as.
	Tokens map[string]ports.VerifiedToken
}

// NewStubVerifier creates a StubVerifier accepting tokens.
func NewStubVerifier(tokens map[string]ports.VerifiedToken) *StubVerifier {
	return &StubVerifier{Tokens: tokens}
}

func (s *StubVerifier) Verify(ctx context.Context, token string) (ports.VerifiedToken, error) {
	if s.VerifyFunc != nil {
		return s.VerifyFunc(ctx, token)
	}
	if vt, ok := s.Tokens[token]; ok {
		return vt, nil
	}
	return ports.VerifiedToken{}, apperrors.Authentication("invalid token")
}

// MemoryMoodleUserCache is an in-memory Moodle user cache for unit tests.
type MemoryMoodleUserCache struct {
	mu      sync.Mutex
	entries map[string]*model.MoodleUser
	gets    int
	sets    int
}

// NewMemoryMoodleUserCache creates an empty cache.
func NewMemoryMoodleUserCache() *MemoryMoodleUserCache {
	return &MemoryMoodleUserCache{entries: make(map[string]*model.MoodleUser)}
}

func (m *MemoryMoodleUserCache) Get(_ context.Context, email string) (*model.MoodleUser, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	u, ok := m.entries[strings.ToLower(email)]
	if !ok || u == nil {
		return nil, ok, nil
	}
	cp := *u
	return &cp, true, nil
}

func (m *MemoryMoodleUserCache) Set(_ context.Context, email string, user *model.MoodleUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if user == nil {
		m.entries[strings.ToLower(email)] = nil
		return nil
	}
	cp := *user
	m.entries[strings.ToLower(email)] = &cp
	return nil
}

// Stats reports how many Get and Set calls the cache has seen.
func (m *MemoryMoodleUserCache) Stats() (gets, sets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets, m.sets
}
