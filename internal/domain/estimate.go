package domain

import (
	"context"
	"time"
)

// EstimatorSteps is the number of steps in the cost estimator wizard
const EstimatorSteps = 4

// Estimator wizard step indexes
const (
	EstimatorStepProjectType  = 1
	EstimatorStepFeatures     = 2
	EstimatorStepTimeline     = 3
	EstimatorStepRequirements = 4
)

// CustomRequirements is the free-text portion of an estimate (step 4)
type CustomRequirements struct {
	Description     string          `json:"description"`
	SpecialFeatures string          `json:"special_features"`
	Integrations    string          `json:"integrations"`
	Complexity      ComplexityLevel `json:"complexity"`
}

// EstimateState holds the user's selections accumulated across the
// estimator wizard. Feature ids are unique and kept in insertion order.
// Selections reference the catalog by id; pricing resolves them at
// computation time so the total is never cached.
type EstimateState struct {
	ProjectTypeID *ProjectTypeID     `json:"project_type_id,omitempty"`
	FeatureIDs    []FeatureID        `json:"feature_ids"`
	TimelineID    *TimelineID        `json:"timeline_id,omitempty"`
	Requirements  CustomRequirements `json:"requirements"`
}

// HasFeature reports whether the feature is currently selected
func (s *EstimateState) HasFeature(id FeatureID) bool {
	for _, f := range s.FeatureIDs {
		if f == id {
			return true
		}
	}
	return false
}

// EstimateSession is one in-flight run of the estimator wizard
type EstimateSession struct {
	ID        string            `json:"id"`
	Step      int               `json:"step"`
	State     EstimateState     `json:"state"`
	Errors    map[string]string `json:"errors"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// PricingBreakdown is the derived cost and duration of the current
// selections. Complete is false until both a project type and a timeline
// option are chosen; callers must not present a total for an incomplete
// estimate.
type PricingBreakdown struct {
	Complete             bool    `json:"complete"`
	BasePrice            float64 `json:"base_price"`
	FeaturesPrice        float64 `json:"features_price"`
	Subtotal             float64 `json:"subtotal"`
	TimelineMultiplier   float64 `json:"timeline_multiplier"`
	ComplexityMultiplier float64 `json:"complexity_multiplier"`
	TimelineAdjustment   float64 `json:"timeline_adjustment"`
	TotalPrice           float64 `json:"total_price"`
	TotalFormatted       string  `json:"total_formatted"`
	DurationWeeks        int     `json:"duration_weeks"`
	DurationText         string  `json:"duration_text"`
	DeliveryDate         string  `json:"delivery_date,omitempty"`
}

// SavedEstimate is a named snapshot of a completed (or partial) estimate
// persisted when the user explicitly saves it. The list is append-only.
type SavedEstimate struct {
	ID              string             `json:"id"`
	ProjectTypeID   ProjectTypeID      `json:"project_type_id"`
	ProjectTypeName string             `json:"project_type_name"`
	FeatureNames    []string           `json:"feature_names"`
	TimelineID      TimelineID         `json:"timeline_id"`
	TimelineName    string             `json:"timeline_name"`
	Requirements    CustomRequirements `json:"requirements"`
	TotalPrice      float64            `json:"total_price"`
	TotalFormatted  string             `json:"total_formatted"`
	CreatedAt       time.Time          `json:"created_at"`
}

// QuoteResult is returned when the user requests a detailed quote.
// HandoffToken references the stored hand-off payload; ContactPath is the
// client route the frontend should navigate to.
type QuoteResult struct {
	HandoffToken string `json:"handoff_token"`
	ContactPath  string `json:"contact_path"`
}

// ============================================================================
// Ports
// ============================================================================

// EstimateSessionStore holds in-flight estimator wizard sessions
type EstimateSessionStore interface {
	Create(ctx context.Context, s *EstimateSession) error
	Get(ctx context.Context, id string) (*EstimateSession, error)
	Save(ctx context.Context, s *EstimateSession) error
	Delete(ctx context.Context, id string) error
}

// EstimateRepository is the durable saved-estimates list.
// Append-only with no dedup or eviction.
type EstimateRepository interface {
	Append(ctx context.Context, e *SavedEstimate) error
	List(ctx context.Context) ([]SavedEstimate, error)
}

// ============================================================================
// Usecase Interface
// ============================================================================

// EstimatorUsecase drives the cost estimator wizard
type EstimatorUsecase interface {
	CreateSession(ctx context.Context) (*EstimateSession, error)
	GetSession(ctx context.Context, id string) (*EstimateSession, error)

	// SelectProjectType sets the project type and clears any previously
	// selected features, since feature eligibility depends on the type.
	SelectProjectType(ctx context.Context, sessionID string, projectType ProjectTypeID) (*EstimateSession, error)
	ToggleFeature(ctx context.Context, sessionID string, feature FeatureID, selected bool) (*EstimateSession, error)
	SelectTimeline(ctx context.Context, sessionID string, timeline TimelineID) (*EstimateSession, error)
	SetRequirements(ctx context.Context, sessionID string, req CustomRequirements) (*EstimateSession, error)

	Next(ctx context.Context, sessionID string) (*EstimateSession, error)
	Previous(ctx context.Context, sessionID string) (*EstimateSession, error)
	Goto(ctx context.Context, sessionID string, step int) (*EstimateSession, error)

	// Summary recomputes the pricing breakdown from the current selections
	Summary(ctx context.Context, sessionID string) (*PricingBreakdown, error)

	// Quote packages the hand-off payload for the contact flow
	Quote(ctx context.Context, sessionID string) (*QuoteResult, error)

	// SaveEstimate appends a snapshot to the durable saved-estimates list
	SaveEstimate(ctx context.Context, sessionID string) (*SavedEstimate, error)
	ListSavedEstimates(ctx context.Context) ([]SavedEstimate, error)
}
