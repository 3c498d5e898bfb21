package session

import "sync"

var _ TokenStore = &MemoryTokenStore{}

// MemoryTokenStore keeps the token slot for the lifetime of the process.
// Useful as a default in tests and in environments with no durable storage.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	token   string
	present bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.present
}

func (m *MemoryTokenStore) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.present = token != ""
	return nil
}

// Clear empties the slot. Idempotent: clearing an absent token is a no-op.
func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.present = false
	return nil
}
