package session

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
)

const lockStripes = 64

// Manager serializes read-modify-write cycles on a session. Locks are
// striped by session id and only cover this process.
type Manager struct {
	store Store
	locks [lockStripes]sync.Mutex
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Get returns the state for id, or a fresh state for an unknown session.
func (m *Manager) Get(ctx context.Context, id string) (*models.SessionState, error) {
	state, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return models.NewSessionState(), nil
	}
	return state, err
}

// Update loads the state for id, applies fn and saves the result. If fn
// returns an error nothing is saved.
func (m *Manager) Update(ctx context.Context, id string, fn func(*models.SessionState) error) (*models.SessionState, error) {
	mu := m.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	state, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	state.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, id, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (m *Manager) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &m.locks[h.Sum32()%lockStripes]
}
