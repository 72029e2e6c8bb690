package store

import (
	"context"
	"sync"
)

// memory keeps the score in process memory. Concurrency-safe via RWMutex.
type memory struct {
	mu    sync.RWMutex
	score int
}

// NewMemoryStore constructs an empty in-memory store
func NewMemoryStore() ScoreStore {
	return &memory{}
}

func (m *memory) Get(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.score, nil
}

func (m *memory) Set(ctx context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}
