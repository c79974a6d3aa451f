package guard

import (
	"sync"

	domainauth "github.com/openstax/rope/internal/domain/auth"
)

type effectKey struct {
	status domainauth.Status
	path   string
}

// EffectTracker fires the guard's navigation effect at most once per distinct
// (status, path) pair. Moving to a different pair re-arms it, so re-entering a
// redirecting state after a transition requests the redirect again.
// It is safe for concurrent use.
type EffectTracker struct {
	mu   sync.Mutex
	last effectKey
	seen bool
}

// Observe records the current inputs and returns the redirect target when the
// pair differs from the previous observation and the guard requests navigation.
func (t *EffectTracker) Observe(id domainauth.Identity, route domainauth.RouteContext) (string, bool) {
	key := effectKey{status: id.Status, path: route.URLPathname}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seen && t.last == key {
		return "", false
	}
	t.last = key
	t.seen = true

	v := Evaluate(id, route)
	if v.RedirectTo == "" {
		return "", false
	}
	return v.RedirectTo, true
}

// Reset forgets the last observation.
func (t *EffectTracker) Reset() {
	t.mu.Lock()
	t.seen = false
	t.last = effectKey{}
	t.mu.Unlock()
}
