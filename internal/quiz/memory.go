package quiz

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory quiz store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	quizzes map[string]Definition
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{quizzes: make(map[string]Definition)}
}

// Put stores or replaces a quiz definition.
func (s *MemoryStore) Put(def Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[def.ID] = def
}

// GetQuizByID returns the stored definition or ErrNotFound.
func (s *MemoryStore) GetQuizByID(_ context.Context, quizID string) (Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.quizzes[quizID]
	if !ok {
		return Definition{}, fmt.Errorf("quiz %s: %w", quizID, ErrNotFound)
	}
	return def, nil
}
