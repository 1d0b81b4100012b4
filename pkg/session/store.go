package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/campusworks/records-api/pkg/config"
)

// ErrNotFound is returned when a session ID does not resolve to a live
// session (never created, expired, or cleared by logout).
var ErrNotFound = errors.New("session not found")

// Identity is the authenticated caller stored server-side for the lifetime
// of a session. RelatedID points at the student or teacher row backing a
// non-admin account.
type Identity struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	RelatedID *int64 `json:"related_id,omitempty"`
}

// Store is the server-side session lifecycle: create on login, read per
// request, clear on logout.
type Store interface {
	Create(ctx context.Context, identity Identity) (string, error)
	Get(ctx context.Context, id string) (*Identity, error)
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient returns a configured Redis client for the session store.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// Create stores the identity under a fresh session ID.
func (s *RedisStore) Create(ctx context.Context, identity Identity) (string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// Get resolves a session ID to its identity.
func (s *RedisStore) Get(ctx context.Context, id string) (*Identity, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &identity, nil
}

// Delete clears the session. Deleting an unknown ID is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
