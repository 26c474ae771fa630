package memstore

import (
	"context"
	"sync"

	"github.com/anthanhphan/go-disk-register/internal/node/port"
)

// MemoryStore implements port.MessageStore with an in-process map.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[int32]string
}

var _ port.MessageStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[int32]string)}
}

func (s *MemoryStore) Put(ctx context.Context, id int32, text string) error {
	s.mu.Lock()
	s.messages[id] = text
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id int32) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.messages[id]
	if !ok {
		return "", port.ErrMessageNotFound
	}
	return text, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
