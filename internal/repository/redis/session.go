package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	apperrors "github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionRepository implements repository.SessionRepository using Redis.
// Each session occupies one key-value slot holding the serialized identity.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the identity snapshot for a session token. A malformed
// snapshot is discarded and reported as not found, so the caller falls back
// to the anonymous state instead of failing.
func (r *SessionRepository) Get(ctx context.Context, token string) (*domain.UserIdentity, error) {
	key := sessionKeyPrefix + token

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("session", token)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var identity domain.UserIdentity
	if err := json.Unmarshal(data, &identity); err != nil {
		// Corrupt slot: discard it rather than surfacing a parse error.
		_ = r.client.Del(ctx, key).Err()
		return nil, apperrors.NotFound("session", token)
	}

	return &identity, nil
}

// Save writes the identity snapshot with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, token string, identity *domain.UserIdentity) error {
	key := sessionKeyPrefix + token

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Delete clears the session slot.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}

	return nil
}
