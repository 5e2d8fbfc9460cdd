package session

import (
	"context"
	"sync"
)

// TokenStore persists the bearer token between runs
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// ChangeFeed reports tokens written to shared storage by other processes.
// The channel yields the new token ("" after a logout) and is closed when
// ctx is done.
type ChangeFeed interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// MemoryTokenStore keeps the token in process memory only
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Ensure MemoryTokenStore implements the interface
var _ TokenStore = (*MemoryTokenStore)(nil)

func (m *MemoryTokenStore) Load(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
