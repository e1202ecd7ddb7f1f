package usecase

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/wizard"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/apperror"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/progress"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/validation"
)

type inquiryUsecase struct {
	sessions    domain.InquirySessionStore
	handoff     domain.HandoffStore
	attachments domain.AttachmentStore
	inquiries   domain.InquiryRepository
	submitter   domain.InquirySubmitter
	validate    *validator.Validate
	reporter    progress.Reporter
	resetPolicy domain.ResetPolicy
}

// NewInquiryUsecase creates a new contact inquiry usecase
func NewInquiryUsecase(
	sessions domain.InquirySessionStore,
	handoff domain.HandoffStore,
	attachments domain.AttachmentStore,
	inquiries domain.InquiryRepository,
	submitter domain.InquirySubmitter,
	validate *validator.Validate,
	reporter progress.Reporter,
	resetPolicy domain.ResetPolicy,
) domain.InquiryUsecase {
	if !resetPolicy.IsValid() {
		resetPolicy = domain.ResetManual
	}
	if reporter == nil {
		reporter = progress.Nop()
	}
	return &inquiryUsecase{
		sessions:    sessions,
		handoff:     handoff,
		attachments: attachments,
		inquiries:   inquiries,
		submitter:   submitter,
		validate:    validate,
		reporter:    reporter,
		resetPolicy: resetPolicy,
	}
}

// ============================================================================
// Sessions
// ============================================================================

// CreateSession starts a contact wizard run. A missing or expired hand-off
// token is not an error: the form simply starts empty.
func (u *inquiryUsecase) CreateSession(ctx context.Context, handoffToken string) (*domain.InquirySession, error) {
	var imported *domain.HandoffPayload
	if handoffToken != "" {
		payload, err := u.handoff.Get(ctx, handoffToken)
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, "Failed to load hand-off payload: "+err.Error(), err)
		}
		imported = payload
	}

	now := time.Now().UTC()
	session := &domain.InquirySession{
		ID:        uuid.NewString(),
		Step:      domain.InquiryStepPersonalInfo,
		Form:      domain.NewInquiryForm(imported),
		Errors:    map[string]string{},
		Imported:  imported,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to create inquiry session: "+err.Error(), err)
	}
	return session, nil
}

func (u *inquiryUsecase) GetSession(ctx context.Context, id string) (*domain.InquirySession, error) {
	return u.loadSession(ctx, id)
}

func (u *inquiryUsecase) loadSession(ctx context.Context, id string) (*domain.InquirySession, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to load inquiry session: "+err.Error(), err)
	}
	if session == nil {
		return nil, apperror.NotFound("Inquiry session not found")
	}
	return session, nil
}

func (u *inquiryUsecase) saveSession(ctx context.Context, session *domain.InquirySession) (*domain.InquirySession, error) {
	session.UpdatedAt = time.Now().UTC()
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to save inquiry session: "+err.Error(), err)
	}
	return session, nil
}

// ============================================================================
// Form Updates
// ============================================================================

// UpdateForm merges the non-nil fields of the update into the form. Each
// merged field has its validation error cleared immediately; re-validation
// happens on the next forward navigation, not here.
func (u *inquiryUsecase) UpdateForm(ctx context.Context, sessionID string, update *domain.InquiryFormUpdate) (*domain.InquirySession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := u.validate.Struct(update); err != nil {
		messages := validation.FormatValidationErrors(err)
		return nil, apperror.BadRequest(strings.Join(messages, "; "))
	}

	form := &session.Form
	clear := func(field string) { delete(session.Errors, field) }

	if update.Name != nil {
		form.Name = *update.Name
		clear("name")
	}
	if update.Email != nil {
		form.Email = *update.Email
		clear("email")
	}
	if update.Phone != nil {
		form.Phone = *update.Phone
		clear("phone")
	}
	if update.Company != nil {
		form.Company = *update.Company
		clear("company")
	}
	if update.ProjectType != nil {
		form.ProjectType = *update.ProjectType
		clear("projectType")
	}
	if update.Budget != nil {
		form.Budget = *update.Budget
		clear("budget")
	}
	if update.Timeline != nil {
		form.Timeline = *update.Timeline
		clear("timeline")
	}
	if update.Message != nil {
		form.Message = *update.Message
		clear("message")
	}
	if update.PreferredContact != nil {
		if !update.PreferredContact.IsValid() {
			return nil, apperror.BadRequest("Invalid contact method: " + string(*update.PreferredContact))
		}
		form.PreferredContact = *update.PreferredContact
		clear("preferredContact")
	}
	if update.CommunicationFrequency != nil {
		if !update.CommunicationFrequency.IsValid() {
			return nil, apperror.BadRequest("Invalid communication frequency: " + string(*update.CommunicationFrequency))
		}
		form.CommunicationFrequency = *update.CommunicationFrequency
		clear("communicationFrequency")
	}
	if update.Newsletter != nil {
		form.Newsletter = *update.Newsletter
	}
	if update.Terms != nil {
		form.Terms = *update.Terms
		clear("terms")
	}

	return u.saveSession(ctx, session)
}

// ============================================================================
// Navigation
// ============================================================================

// InquiryStepErrors validates a single contact wizard step. Step 3 has no
// required fields; its selects always carry a valid default.
func InquiryStepErrors(form *domain.InquiryForm, step int) validation.Errors {
	errs := validation.Errors{}
	switch step {
	case domain.InquiryStepPersonalInfo:
		errs.Require("name", form.Name, "Name is required")
		errs.RequireEmail("email", form.Email)
	case domain.InquiryStepProjectDetails:
		errs.Require("projectType", form.ProjectType, "Please select a project type")
		errs.Require("message", form.Message, "Please describe your project")
	case domain.InquiryStepReview:
		errs.RequireChecked("terms", form.Terms, "Please accept the terms and conditions")
	}
	return errs
}

func (u *inquiryUsecase) machine(session *domain.InquirySession) *wizard.Machine {
	return wizard.Restore(session.Step, domain.InquirySteps, func(step int) map[string]string {
		return InquiryStepErrors(&session.Form, step)
	})
}

func (u *inquiryUsecase) Next(ctx context.Context, sessionID string) (*domain.InquirySession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m := u.machine(session)
	if errs, ok := m.Next(); !ok {
		session.Errors = errs
	} else {
		session.Errors = map[string]string{}
		session.Step = m.Current()
	}

	return u.saveSession(ctx, session)
}

func (u *inquiryUsecase) Previous(ctx context.Context, sessionID string) (*domain.InquirySession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m := u.machine(session)
	m.Previous()
	session.Step = m.Current()
	session.Errors = map[string]string{}

	return u.saveSession(ctx, session)
}

func (u *inquiryUsecase) Goto(ctx context.Context, sessionID string, step int) (*domain.InquirySession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m := u.machine(session)
	errs, err := m.Goto(step)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if len(errs) > 0 {
		session.Errors = errs
	} else {
		session.Errors = map[string]string{}
		session.Step = m.Current()
	}

	return u.saveSession(ctx, session)
}

// ============================================================================
// Attachments
// ============================================================================

func (u *inquiryUsecase) AttachFile(ctx context.Context, sessionID, fileName, contentType string, size int64, r io.Reader) (*domain.InquirySession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Submitting {
		return nil, apperror.BadRequest("Cannot attach files while the inquiry is being submitted")
	}

	report := func(fraction float64) {
		u.reporter.Report(sessionID+"/"+fileName, fraction)
	}
	att, err := u.attachments.Save(ctx, sessionID, fileName, contentType, size, r, report)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to store attachment: "+err.Error(), err)
	}

	session.Form.Attachments = append(session.Form.Attachments, *att)

	return u.saveSession(ctx, session)
}

func (u *inquiryUsecase) RemoveAttachment(ctx context.Context, sessionID, attachmentID string) (*domain.InquirySession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, att := range session.Form.Attachments {
		if att.ID == attachmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperror.NotFound("Attachment not found")
	}

	att := session.Form.Attachments[idx]
	if err := u.attachments.Remove(ctx, &att); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to remove attachment: "+err.Error(), err)
	}
	session.Form.Attachments = append(session.Form.Attachments[:idx], session.Form.Attachments[idx+1:]...)

	return u.saveSession(ctx, session)
}

// ============================================================================
// Submit
// ============================================================================

// Submit validates the whole form, persists the inquiry and dispatches it.
// Only one submission may run per session; a re-entrant call is a no-op
// returning the current state. A dispatch failure keeps the form intact so
// the user can retry.
func (u *inquiryUsecase) Submit(ctx context.Context, sessionID string) (*domain.InquirySession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Submitting || session.Submitted {
		return session, nil
	}

	// Validate every step; land on the first one that fails
	allErrs := validation.Errors{}
	firstFailing := 0
	for step := 1; step <= domain.InquirySteps; step++ {
		stepErrs := InquiryStepErrors(&session.Form, step)
		if len(stepErrs) > 0 && firstFailing == 0 {
			firstFailing = step
		}
		for field, msg := range stepErrs {
			allErrs[field] = msg
		}
	}
	if len(allErrs) > 0 {
		session.Errors = allErrs
		session.Step = firstFailing
		return u.saveSession(ctx, session)
	}

	session.Errors = map[string]string{}
	session.Submitting = true
	if _, err := u.saveSession(ctx, session); err != nil {
		return nil, err
	}

	inquiry := u.buildInquiry(session)

	if err := u.dispatch(ctx, inquiry); err != nil {
		session.Submitting = false
		if _, saveErr := u.saveSession(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return nil, apperror.New(http.StatusInternalServerError, "Failed to submit inquiry: "+err.Error(), err)
	}

	now := time.Now().UTC()
	session.Submitting = false
	session.Submitted = true
	session.SubmittedAt = &now

	if u.resetPolicy == domain.ResetImmediate {
		u.resetAfterSubmit(ctx, session)
	}

	return u.saveSession(ctx, session)
}

func (u *inquiryUsecase) buildInquiry(session *domain.InquirySession) *domain.Inquiry {
	form := &session.Form
	names := make([]string, 0, len(form.Attachments))
	for _, att := range form.Attachments {
		names = append(names, att.FileName)
	}
	return &domain.Inquiry{
		ID:                     uuid.NewString(),
		Name:                   strings.TrimSpace(form.Name),
		Email:                  strings.TrimSpace(form.Email),
		Phone:                  strings.TrimSpace(form.Phone),
		Company:                strings.TrimSpace(form.Company),
		ProjectType:            form.ProjectType,
		Budget:                 form.Budget,
		Timeline:               form.Timeline,
		Message:                strings.TrimSpace(form.Message),
		PreferredContact:       form.PreferredContact,
		CommunicationFrequency: form.CommunicationFrequency,
		Newsletter:             form.Newsletter,
		AttachmentNames:        names,
		FromEstimator:          session.Imported != nil,
		CreatedAt:              time.Now().UTC(),
	}
}

func (u *inquiryUsecase) dispatch(ctx context.Context, inquiry *domain.Inquiry) error {
	if err := u.inquiries.Create(ctx, inquiry); err != nil {
		return err
	}
	return u.submitter.Submit(ctx, inquiry)
}

// resetAfterSubmit clears the form for the immediate reset policy.
// Stored attachment content is removed best-effort.
func (u *inquiryUsecase) resetAfterSubmit(ctx context.Context, session *domain.InquirySession) {
	for i := range session.Form.Attachments {
		_ = u.attachments.Remove(ctx, &session.Form.Attachments[i])
	}
	session.Form = domain.NewInquiryForm(nil)
	session.Imported = nil
	session.Step = domain.InquiryStepPersonalInfo
	session.Errors = map[string]string{}
}
