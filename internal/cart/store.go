package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/classcooks/classcooks-backend/pkg/redis"
	"github.com/google/uuid"
)

// Store persists the full cart snapshot for one user session. The cart is
// private per session, so there is no cross-session contention on a key.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) ([]Line, error)
	Save(ctx context.Context, userID uuid.UUID, lines []Line) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds the Redis-backed cart store. A zero TTL keeps carts
// until explicitly cleared.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Line{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart snapshot")
	}
	return lines, nil
}

func (s *redisStore) Save(ctx context.Context, userID uuid.UUID, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.client.Set(ctx, s.client.CartKey(userID.String()), raw, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, s.client.CartKey(userID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
