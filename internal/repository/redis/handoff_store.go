package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

const handoffKeyPrefix = "handoff:"

// HandoffStore keeps estimator hand-off payloads in Redis with a TTL.
// The payload is not deleted on read: within its TTL a contact page
// reload keeps the prefill.
type HandoffStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewHandoffStore creates a Redis-backed hand-off store
func NewHandoffStore(client *goredis.Client, ttl time.Duration) *HandoffStore {
	return &HandoffStore{client: client, ttl: ttl}
}

func (s *HandoffStore) Put(ctx context.Context, p *domain.HandoffPayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("handoff: marshal payload: %w", err)
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, handoffKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("handoff: store payload: %w", err)
	}
	return token, nil
}

func (s *HandoffStore) Get(ctx context.Context, token string) (*domain.HandoffPayload, error) {
	data, err := s.client.Get(ctx, handoffKeyPrefix+token).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("handoff: load payload: %w", err)
	}

	var payload domain.HandoffPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("handoff: decode payload: %w", err)
	}
	return &payload, nil
}
