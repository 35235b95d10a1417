package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Cache key constants
const (
	SessionStateKey = "copilot:session:%s"
)

// RedisStore shares session state between replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*models.SessionState, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(SessionStateKey, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return decodeState(data)
}

// Save writes the state and refreshes its expiry.
func (s *RedisStore) Save(ctx context.Context, id string, state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := s.client.Set(ctx, fmt.Sprintf(SessionStateKey, id), data, s.ttl).Err(); err != nil {
		s.logger.WithError(err).WithField("session_id", id).Error("Failed to save session state")
		return err
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, fmt.Sprintf(SessionStateKey, id)).Err()
}

// decodeState keeps evaluation scores as json.Number so they render the
// way the backend wrote them.
func decodeState(data []byte) (*models.SessionState, error) {
	var state models.SessionState
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &state, nil
}
