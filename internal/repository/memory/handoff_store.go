package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

type handoffEntry struct {
	payload   *domain.HandoffPayload
	expiresAt time.Time
}

// HandoffStore is the in-memory fallback for estimator hand-off payloads,
// used when Redis is not configured. Payloads survive re-reads within
// their TTL so reloading the contact page keeps the prefill.
type HandoffStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*handoffEntry
}

// NewHandoffStore creates the store and starts its janitor
func NewHandoffStore(ttl time.Duration) *HandoffStore {
	s := &HandoffStore{
		ttl:     ttl,
		entries: make(map[string]*handoffEntry),
	}
	go s.cleanupLoop()
	return s
}

func (s *HandoffStore) Put(ctx context.Context, p *domain.HandoffPayload) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = &handoffEntry{payload: p, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *HandoffStore) Get(ctx context.Context, token string) (*domain.HandoffPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, nil
	}
	payload := *entry.payload
	payload.Features = append([]string(nil), entry.payload.Features...)
	return &payload, nil
}

func (s *HandoffStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for token, entry := range s.entries {
			if now.After(entry.expiresAt) {
				delete(s.entries, token)
			}
		}
		s.mu.Unlock()
	}
}
