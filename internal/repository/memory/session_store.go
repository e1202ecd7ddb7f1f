package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

// Wizard sessions are ephemeral: each one is owned by a single rendered
// page, so a mutex-guarded map with TTL expiry is all the store needs.
// Get returns (nil, nil) for a missing or expired session; the usecase
// layer turns that into a not-found error.

const cleanupInterval = time.Minute

type estimateEntry struct {
	session   *domain.EstimateSession
	expiresAt time.Time
}

// EstimateSessionStore is the in-memory estimator session store
type EstimateSessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*estimateEntry
}

// NewEstimateSessionStore creates the store and starts its janitor
func NewEstimateSessionStore(ttl time.Duration) *EstimateSessionStore {
	s := &EstimateSessionStore{
		ttl:      ttl,
		sessions: make(map[string]*estimateEntry),
	}
	go s.cleanupLoop()
	return s
}

func (s *EstimateSessionStore) Create(ctx context.Context, sess *domain.EstimateSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &estimateEntry{session: cloneEstimateSession(sess), expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *EstimateSessionStore) Get(ctx context.Context, id string) (*domain.EstimateSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	return cloneEstimateSession(entry.session), nil
}

func (s *EstimateSessionStore) Save(ctx context.Context, sess *domain.EstimateSession) error {
	return s.Create(ctx, sess)
}

func (s *EstimateSessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *EstimateSessionStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, entry := range s.sessions {
			if now.After(entry.expiresAt) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// cloneEstimateSession copies the session so callers never alias the
// stored maps and slices
func cloneEstimateSession(in *domain.EstimateSession) *domain.EstimateSession {
	out := *in
	out.Errors = cloneErrors(in.Errors)
	out.State.FeatureIDs = append([]domain.FeatureID(nil), in.State.FeatureIDs...)
	if in.State.ProjectTypeID != nil {
		id := *in.State.ProjectTypeID
		out.State.ProjectTypeID = &id
	}
	if in.State.TimelineID != nil {
		id := *in.State.TimelineID
		out.State.TimelineID = &id
	}
	return &out
}

type inquiryEntry struct {
	session   *domain.InquirySession
	expiresAt time.Time
}

// InquirySessionStore is the in-memory contact wizard session store
type InquirySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*inquiryEntry
}

// NewInquirySessionStore creates the store and starts its janitor
func NewInquirySessionStore(ttl time.Duration) *InquirySessionStore {
	s := &InquirySessionStore{
		ttl:      ttl,
		sessions: make(map[string]*inquiryEntry),
	}
	go s.cleanupLoop()
	return s
}

func (s *InquirySessionStore) Create(ctx context.Context, sess *domain.InquirySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &inquiryEntry{session: cloneInquirySession(sess), expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *InquirySessionStore) Get(ctx context.Context, id string) (*domain.InquirySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	return cloneInquirySession(entry.session), nil
}

func (s *InquirySessionStore) Save(ctx context.Context, sess *domain.InquirySession) error {
	return s.Create(ctx, sess)
}

func (s *InquirySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *InquirySessionStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, entry := range s.sessions {
			if now.After(entry.expiresAt) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

func cloneInquirySession(in *domain.InquirySession) *domain.InquirySession {
	out := *in
	out.Errors = cloneErrors(in.Errors)
	out.Form.Attachments = append([]domain.Attachment(nil), in.Form.Attachments...)
	if in.Imported != nil {
		imported := *in.Imported
		imported.Features = append([]string(nil), in.Imported.Features...)
		out.Imported = &imported
	}
	if in.SubmittedAt != nil {
		at := *in.SubmittedAt
		out.SubmittedAt = &at
	}
	return &out
}

func cloneErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
