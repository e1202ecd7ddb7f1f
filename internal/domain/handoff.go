package domain

import (
	"context"
	"time"
)

// HandoffPayload carries estimator output into the contact flow. It is an
// opaque bundle from the consumer's point of view: the contact flow only
// reads the fields it can pre-fill and renders the rest as a read-only
// imported-estimate summary.
type HandoffPayload struct {
	ProjectType        string          `json:"project_type"`
	Budget             string          `json:"budget"`
	Timeline           string          `json:"timeline"`
	Features           []string        `json:"features"`
	CustomRequirements string          `json:"custom_requirements"`
	SpecialFeatures    string          `json:"special_features"`
	Integrations       string          `json:"integrations"`
	Complexity         ComplexityLevel `json:"complexity"`
	CreatedAt          time.Time       `json:"created_at"`
}

// HandoffStore keeps hand-off payloads for the short window between
// requesting a quote and opening the contact form. Payloads expire on
// their own; Get returns (nil, nil) for a missing or expired token so an
// absent payload is not an error condition.
type HandoffStore interface {
	Put(ctx context.Context, p *HandoffPayload) (token string, err error)
	Get(ctx context.Context, token string) (*HandoffPayload, error)
}
