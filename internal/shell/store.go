package shell

import (
	"sync"

	domainauth "github.com/openstax/rope/internal/domain/auth"
)

// WriteResult reports what a store write did.
type WriteResult int

const (
	// WriteChanged means the value changed and subscribers were notified.
	WriteChanged WriteResult = iota + 1
	// WriteUnchanged means the value was equal to the current one.
	WriteUnchanged
	// WriteDropped means the store was closed and the write was discarded.
	WriteDropped
)

func (r WriteResult) String() string {
	switch r {
	case WriteChanged:
		return "changed"
	case WriteUnchanged:
		return "unchanged"
	case WriteDropped:
		return "dropped"
	default:
		return "invalid"
	}
}

// Store is the per-page Auth State Store: a single identity slot that starts
// Pending. Reads are open to everyone; writes go through the Writer returned by
// NewStore, which is handed only to the session probe and the session commands.
type Store struct {
	mu     sync.Mutex
	id     domainauth.Identity
	closed bool
	subs   map[int]func(domainauth.Identity)
	nextID int
}

// Writer is the write capability for a Store.
type Writer struct {
	s *Store
}

// NewStore returns a Pending store and its writer.
func NewStore() (*Store, *Writer) {
	s := &Store{id: domainauth.Pending(), subs: make(map[int]func(domainauth.Identity))}
	return s, &Writer{s: s}
}

// Get returns the current identity.
func (s *Store) Get() domainauth.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Subscribe registers fn to be called with the new identity after every change.
// fn runs on the writer's goroutine without the store lock held.
func (s *Store) Subscribe(fn func(domainauth.Identity)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Close unmounts the store. Later writes are dropped and subscribers are released.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	clear(s.subs)
	s.mu.Unlock()
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Set replaces the identity. Subscribers are notified only when the value
// changes by value equality.
func (w *Writer) Set(id domainauth.Identity) WriteResult {
	id = id.Normalize()
	s := w.s

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return WriteDropped
	}
	if s.id == id {
		s.mu.Unlock()
		return WriteUnchanged
	}
	s.id = id
	subs := make([]func(domainauth.Identity), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
	return WriteChanged
}
