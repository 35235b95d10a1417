package session

import (
	"context"
	"errors"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
)

// ErrNotFound is returned by Load when a session has no stored state.
var ErrNotFound = errors.New("session not found")

// Store persists per-browser view state.
type Store interface {
	Load(ctx context.Context, id string) (*models.SessionState, error)
	Save(ctx context.Context, id string, state *models.SessionState) error
	Delete(ctx context.Context, id string) error
}
