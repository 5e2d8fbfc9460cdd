package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/deckbuilder/internal/dependencies/idgen"
)

// MockIDs is a mock implementation of idgen.Generator for testing.
// Queued ids are returned first, then "<Prefix><n>" from a counter.
type MockIDs struct {
	mu      sync.Mutex
	queued  []string
	counter int
	Prefix  string
}

// Ensure MockIDs implements Generator
var _ idgen.Generator = (*MockIDs)(nil)

// NewMockIDs creates a MockIDs producing "id-1", "id-2", ...
func NewMockIDs() *MockIDs {
	return &MockIDs{Prefix: "id-"}
}

// NewID returns the next queued id, or the next counter value
func (m *MockIDs) NewID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queued) > 0 {
		id := m.queued[0]
		m.queued = m.queued[1:]
		return id
	}
	m.counter++
	return fmt.Sprintf("%s%d", m.Prefix, m.counter)
}

// Queue adds ids to be returned before the counter resumes
func (m *MockIDs) Queue(ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, ids...)
}
