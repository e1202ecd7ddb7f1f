package domain

import (
	"context"
	"io"
	"time"
)

// InquirySteps is the number of steps in the contact inquiry wizard
const InquirySteps = 4

// Inquiry wizard step indexes
const (
	InquiryStepPersonalInfo   = 1
	InquiryStepProjectDetails = 2
	InquiryStepPreferences    = 3
	InquiryStepReview         = 4
)

// ============================================================================
// Preference enums
// ============================================================================

// ContactMethod represents how the client prefers to be reached
type ContactMethod string

const (
	ContactByEmail ContactMethod = "email"
	ContactByPhone ContactMethod = "phone"
	ContactByBoth  ContactMethod = "both"
)

// ValidContactMethods returns all valid contact methods
func ValidContactMethods() []ContactMethod {
	return []ContactMethod{ContactByEmail, ContactByPhone, ContactByBoth}
}

// IsValid checks if the contact method is valid
func (m ContactMethod) IsValid() bool {
	for _, valid := range ValidContactMethods() {
		if m == valid {
			return true
		}
	}
	return false
}

// CommunicationFrequency represents how often the client wants updates
type CommunicationFrequency string

const (
	FrequencyDaily     CommunicationFrequency = "daily"
	FrequencyWeekly    CommunicationFrequency = "weekly"
	FrequencyMilestone CommunicationFrequency = "milestone"
	FrequencyMinimal   CommunicationFrequency = "minimal"
)

// ValidCommunicationFrequencies returns all valid frequencies
func ValidCommunicationFrequencies() []CommunicationFrequency {
	return []CommunicationFrequency{FrequencyDaily, FrequencyWeekly, FrequencyMilestone, FrequencyMinimal}
}

// IsValid checks if the frequency is valid
func (f CommunicationFrequency) IsValid() bool {
	for _, valid := range ValidCommunicationFrequencies() {
		if f == valid {
			return true
		}
	}
	return false
}

// ============================================================================
// Attachments
// ============================================================================

// Attachment is a file the client attached to the inquiry
type Attachment struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StoredPath  string    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ============================================================================
// Form state
// ============================================================================

// InquiryForm is the contact wizard's mutable form state. ProjectType,
// Budget and Timeline are free-text select values (they may come from the
// estimator hand-off formatted for display, not catalog ids).
type InquiryForm struct {
	// Step 1: Personal Information
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`

	// Step 2: Project Details
	ProjectType string       `json:"project_type"`
	Budget      string       `json:"budget"`
	Timeline    string       `json:"timeline"`
	Message     string       `json:"message"`
	Attachments []Attachment `json:"attachments"`

	// Step 3: Preferences
	PreferredContact       ContactMethod          `json:"preferred_contact"`
	CommunicationFrequency CommunicationFrequency `json:"communication_frequency"`
	Newsletter             bool                   `json:"newsletter"`

	// Step 4: Review & Submit
	Terms bool `json:"terms"`
}

// NewInquiryForm returns a form at its defaults, optionally pre-filled
// from an estimator hand-off payload.
func NewInquiryForm(imported *HandoffPayload) InquiryForm {
	form := InquiryForm{
		PreferredContact:       ContactByEmail,
		CommunicationFrequency: FrequencyWeekly,
		Attachments:            []Attachment{},
	}
	if imported != nil {
		form.ProjectType = imported.ProjectType
		form.Budget = imported.Budget
		form.Timeline = imported.Timeline
	}
	return form
}

// InquiryFormUpdate is a partial update of the form. Only non-nil fields
// are merged; each merged field has its validation error cleared.
type InquiryFormUpdate struct {
	Name                   *string                 `json:"name,omitempty" validate:"omitempty,valid_name"`
	Email                  *string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone                  *string                 `json:"phone,omitempty" validate:"omitempty,valid_phone"`
	Company                *string                 `json:"company,omitempty" validate:"omitempty,valid_name"`
	ProjectType            *string                 `json:"project_type,omitempty"`
	Budget                 *string                 `json:"budget,omitempty"`
	Timeline               *string                 `json:"timeline,omitempty"`
	Message                *string                 `json:"message,omitempty"`
	PreferredContact       *ContactMethod          `json:"preferred_contact,omitempty"`
	CommunicationFrequency *CommunicationFrequency `json:"communication_frequency,omitempty"`
	Newsletter             *bool                   `json:"newsletter,omitempty"`
	Terms                  *bool                   `json:"terms,omitempty"`
}

// InquirySession is one in-flight run of the contact wizard
type InquirySession struct {
	ID          string            `json:"id"`
	Step        int               `json:"step"`
	Form        InquiryForm       `json:"form"`
	Errors      map[string]string `json:"errors"`
	Imported    *HandoffPayload   `json:"imported,omitempty"`
	Submitting  bool              `json:"submitting"`
	Submitted   bool              `json:"submitted"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Inquiry is the persisted record of a submitted contact form
type Inquiry struct {
	ID                     string                 `json:"id"`
	Name                   string                 `json:"name"`
	Email                  string                 `json:"email"`
	Phone                  string                 `json:"phone"`
	Company                string                 `json:"company"`
	ProjectType            string                 `json:"project_type"`
	Budget                 string                 `json:"budget"`
	Timeline               string                 `json:"timeline"`
	Message                string                 `json:"message"`
	PreferredContact       ContactMethod          `json:"preferred_contact"`
	CommunicationFrequency CommunicationFrequency `json:"communication_frequency"`
	Newsletter             bool                   `json:"newsletter"`
	AttachmentNames        []string               `json:"attachment_names"`
	FromEstimator          bool                   `json:"from_estimator"`
	CreatedAt              time.Time              `json:"created_at"`
}

// ResetPolicy controls what happens to a session after a successful submit
type ResetPolicy string

const (
	// ResetManual keeps the submitted state until a new session is created
	ResetManual ResetPolicy = "manual"
	// ResetImmediate clears the form right after a successful submit
	ResetImmediate ResetPolicy = "immediate"
)

// IsValid checks if the reset policy is valid
func (p ResetPolicy) IsValid() bool {
	return p == ResetManual || p == ResetImmediate
}

// ============================================================================
// Ports
// ============================================================================

// InquirySessionStore holds in-flight contact wizard sessions
type InquirySessionStore interface {
	Create(ctx context.Context, s *InquirySession) error
	Get(ctx context.Context, id string) (*InquirySession, error)
	Save(ctx context.Context, s *InquirySession) error
	Delete(ctx context.Context, id string) error
}

// InquiryRepository persists submitted inquiries
type InquiryRepository interface {
	Create(ctx context.Context, inq *Inquiry) error
	List(ctx context.Context) ([]Inquiry, error)
}

// InquirySubmitter dispatches a submitted inquiry to its destination
// (the production implementation sends an email). Failures must be
// surfaced so the controller can keep the form state for retry.
type InquirySubmitter interface {
	Submit(ctx context.Context, inq *Inquiry) error
}

// AttachmentStore stores uploaded attachment content. Implementations
// report upload progress through the reporter instead of owning timers,
// so progress can be driven synchronously in tests.
type AttachmentStore interface {
	Save(ctx context.Context, sessionID, fileName, contentType string, size int64, r io.Reader, report func(fraction float64)) (*Attachment, error)
	Remove(ctx context.Context, att *Attachment) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

// InquiryUsecase drives the contact inquiry wizard
type InquiryUsecase interface {
	// CreateSession starts a new contact wizard run. A valid hand-off
	// token pre-fills project type, budget and timeline; a missing or
	// expired token yields an empty form.
	CreateSession(ctx context.Context, handoffToken string) (*InquirySession, error)
	GetSession(ctx context.Context, id string) (*InquirySession, error)

	UpdateForm(ctx context.Context, sessionID string, update *InquiryFormUpdate) (*InquirySession, error)

	Next(ctx context.Context, sessionID string) (*InquirySession, error)
	Previous(ctx context.Context, sessionID string) (*InquirySession, error)
	Goto(ctx context.Context, sessionID string, step int) (*InquirySession, error)

	AttachFile(ctx context.Context, sessionID, fileName, contentType string, size int64, r io.Reader) (*InquirySession, error)
	RemoveAttachment(ctx context.Context, sessionID, attachmentID string) (*InquirySession, error)

	// Submit validates the whole form and dispatches it. Only one
	// submission may be in flight per session; re-entrant calls are
	// no-ops returning the current state.
	Submit(ctx context.Context, sessionID string) (*InquirySession, error)
}
