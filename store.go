package session

import (
	"sync"
)

var _ SessionReader = &Store{}

// Store is the in-memory holder of the current Identity: the single source
// of truth for "who is logged in" during one process lifetime. It persists
// nothing, performs no network access, and notifies subscribers on every
// change so the route guard, header, and protected views can react without
// polling.
type Store struct {
	mu       sync.RWMutex
	identity *Identity
	nextSub  int
	subs     map[int]Subscriber
	logger   Logger
}

// Subscriber receives the identity after every mutation. The second value is
// false when the session was cleared.
type Subscriber func(identity Identity, present bool)

type StoreOption func(*Store)

// WithStoreLogger overrides the default logger.
func WithStoreLogger(logger Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns an empty Store: identity absent until a sign-in commit.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		subs:   map[int]Subscriber{},
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns the current identity and whether one is present.
func (s *Store) Get() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// IsAuthenticated is derived state: true iff an identity is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Set stores the identity, clearing the transient password field first.
func (s *Store) Set(identity Identity) {
	identity = identity.Sanitized()

	s.mu.Lock()
	s.identity = &identity
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.logger.Debug("session store set", "user_id", identity.ID)
	for _, fn := range subs {
		fn(identity, true)
	}
}

// Clear drops the identity. Used on logout and token expiry.
func (s *Store) Clear() {
	s.mu.Lock()
	cleared := s.identity != nil
	s.identity = nil
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if cleared {
		s.logger.Debug("session store cleared")
	}
	for _, fn := range subs {
		fn(Identity{}, false)
	}
}

// Subscribe registers fn for change notifications and returns an
// unsubscribe function. fn is invoked after every Set and Clear, outside the
// store lock.
func (s *Store) Subscribe(fn Subscriber) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshotSubs copies the subscriber list in registration order so it can be
// invoked after the lock is released. Callers must hold mu.
func (s *Store) snapshotSubs() []Subscriber {
	out := make([]Subscriber, 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}
