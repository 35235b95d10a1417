package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process. Entries expire after ttl of
// inactivity.
type MemoryStore struct {
	client *cache.Cache
	ttl    time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		client: cache.New(ttl, 10*time.Minute),
		ttl:    ttl,
	}
}

// Load returns a copy, so callers can mutate it freely until Save.
func (s *MemoryStore) Load(ctx context.Context, id string) (*models.SessionState, error) {
	v, ok := s.client.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return decodeState(v.([]byte))
}

func (s *MemoryStore) Save(ctx context.Context, id string, state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	s.client.Set(id, data, s.ttl)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.client.Delete(id)
	return nil
}
