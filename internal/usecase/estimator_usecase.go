package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/pricing"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/wizard"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/apperror"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/validation"
)

// ContactPath is the client route the frontend opens after requesting a
// quote; the hand-off token rides along as a query parameter.
const ContactPath = "/contact"

type estimatorUsecase struct {
	sessions  domain.EstimateSessionStore
	catalog   domain.CatalogRepository
	handoff   domain.HandoffStore
	estimates domain.EstimateRepository
}

// NewEstimatorUsecase creates a new estimator usecase
func NewEstimatorUsecase(
	sessions domain.EstimateSessionStore,
	catalog domain.CatalogRepository,
	handoff domain.HandoffStore,
	estimates domain.EstimateRepository,
) domain.EstimatorUsecase {
	return &estimatorUsecase{
		sessions:  sessions,
		catalog:   catalog,
		handoff:   handoff,
		estimates: estimates,
	}
}

// ============================================================================
// Sessions
// ============================================================================

func (u *estimatorUsecase) CreateSession(ctx context.Context) (*domain.EstimateSession, error) {
	now := time.Now().UTC()
	session := &domain.EstimateSession{
		ID:   uuid.NewString(),
		Step: domain.EstimatorStepProjectType,
		State: domain.EstimateState{
			FeatureIDs: []domain.FeatureID{},
			Requirements: domain.CustomRequirements{
				Complexity: domain.ComplexityMedium,
			},
		},
		Errors:    map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to create estimate session: "+err.Error(), err)
	}
	return session, nil
}

func (u *estimatorUsecase) GetSession(ctx context.Context, id string) (*domain.EstimateSession, error) {
	return u.loadSession(ctx, id)
}

func (u *estimatorUsecase) loadSession(ctx context.Context, id string) (*domain.EstimateSession, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to load estimate session: "+err.Error(), err)
	}
	if session == nil {
		return nil, apperror.NotFound("Estimate session not found")
	}
	return session, nil
}

func (u *estimatorUsecase) saveSession(ctx context.Context, session *domain.EstimateSession) (*domain.EstimateSession, error) {
	session.UpdatedAt = time.Now().UTC()
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to save estimate session: "+err.Error(), err)
	}
	return session, nil
}

// ============================================================================
// Selections
// ============================================================================

// SelectProjectType sets the project type and clears the selected
// features, since eligibility depends on the type.
func (u *estimatorUsecase) SelectProjectType(ctx context.Context, sessionID string, projectType domain.ProjectTypeID) (*domain.EstimateSession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := u.catalog.ProjectTypeByID(projectType); !ok {
		return nil, apperror.BadRequest("Unknown project type: " + string(projectType))
	}

	if session.State.ProjectTypeID == nil || *session.State.ProjectTypeID != projectType {
		session.State.FeatureIDs = []domain.FeatureID{}
	}
	session.State.ProjectTypeID = &projectType
	delete(session.Errors, "projectType")

	return u.saveSession(ctx, session)
}

func (u *estimatorUsecase) ToggleFeature(ctx context.Context, sessionID string, feature domain.FeatureID, selected bool) (*domain.EstimateSession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.State.ProjectTypeID == nil {
		return nil, apperror.BadRequest("Select a project type before choosing features")
	}
	if _, ok := u.catalog.FeatureByID(feature); !ok {
		return nil, apperror.BadRequest("Unknown feature: " + string(feature))
	}
	if !u.catalog.FeatureEligible(*session.State.ProjectTypeID, feature) {
		return nil, apperror.BadRequest("Feature is not available for the selected project type")
	}

	if selected {
		if !session.State.HasFeature(feature) {
			session.State.FeatureIDs = append(session.State.FeatureIDs, feature)
		}
	} else {
		kept := session.State.FeatureIDs[:0]
		for _, f := range session.State.FeatureIDs {
			if f != feature {
				kept = append(kept, f)
			}
		}
		session.State.FeatureIDs = kept
	}

	return u.saveSession(ctx, session)
}

func (u *estimatorUsecase) SelectTimeline(ctx context.Context, sessionID string, timeline domain.TimelineID) (*domain.EstimateSession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := u.catalog.TimelineOptionByID(timeline); !ok {
		return nil, apperror.BadRequest("Unknown timeline option: " + string(timeline))
	}

	session.State.TimelineID = &timeline
	delete(session.Errors, "timeline")

	return u.saveSession(ctx, session)
}

func (u *estimatorUsecase) SetRequirements(ctx context.Context, sessionID string, req domain.CustomRequirements) (*domain.EstimateSession, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if req.Complexity == "" {
		req.Complexity = domain.ComplexityMedium
	}
	if !req.Complexity.IsValid() {
		return nil, apperror.BadRequest("Invalid complexity level: " + string(req.Complexity))
	}

	session.State.Requirements = req

	return u.saveSession(ctx, session)
}

// ============================================================================
// Navigation
// ============================================================================

// EstimatorStepErrors validates a single estimator step against the
// accumulated state. Steps 2 and 4 are always passable: features and
// custom requirements are optional.
func EstimatorStepErrors(state *domain.EstimateState, step int) validation.Errors {
	errs := validation.Errors{}
	switch step {
	case domain.EstimatorStepProjectType:
		if state.ProjectTypeID == nil {
			errs["projectType"] = "Please select a project type"
		}
	case domain.EstimatorStepTimeline:
		if state.TimelineID == nil {
			errs["timeline"] = "Please select a timeline"
		}
	}
	return errs
}

func (u *estimatorUsecase) machine(session *domain.EstimateSession) *wizard.Machine {
	return wizard.Restore(session.Step, domain.EstimatorSteps, func(step int) map[string]string {
		return EstimatorStepErrors(&session.State, step)
	})
}

func (u *estimatorUsecase) Next(ctx context.Context, sessionID string) (*domain.EstimateSession, error) {
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

func (u *estimatorUsecase) Previous(ctx context.Context, sessionID string) (*domain.EstimateSession, error) {
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

func (u *estimatorUsecase) Goto(ctx context.Context, sessionID string, step int) (*domain.EstimateSession, error) {
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
// Pricing
// ============================================================================

func (u *estimatorUsecase) pricingInput(state *domain.EstimateState) pricing.Input {
	in := pricing.Input{Complexity: state.Requirements.Complexity}
	if state.ProjectTypeID != nil {
		if pt, ok := u.catalog.ProjectTypeByID(*state.ProjectTypeID); ok {
			in.ProjectType = pt
		}
	}
	for _, id := range state.FeatureIDs {
		if f, ok := u.catalog.FeatureByID(id); ok {
			in.Features = append(in.Features, *f)
		}
	}
	if state.TimelineID != nil {
		if t, ok := u.catalog.TimelineOptionByID(*state.TimelineID); ok {
			in.Timeline = t
		}
	}
	return in
}

// Summary recomputes the breakdown from the current selections; nothing
// is cached on the session, so stale totals cannot survive a change.
func (u *estimatorUsecase) Summary(ctx context.Context, sessionID string) (*domain.PricingBreakdown, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.Calculate(u.pricingInput(&session.State))
	if breakdown.Complete {
		breakdown.DeliveryDate = pricing.DeliveryDate(time.Now(), breakdown.DurationWeeks)
	}
	return &breakdown, nil
}

// ============================================================================
// Quote Hand-off
// ============================================================================

func (u *estimatorUsecase) Quote(ctx context.Context, sessionID string) (*domain.QuoteResult, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	in := u.pricingInput(&session.State)
	breakdown := pricing.Calculate(in)
	if !breakdown.Complete {
		return nil, apperror.BadRequest("Select a project type and timeline before requesting a quote")
	}

	featureNames := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		featureNames = append(featureNames, f.Name)
	}

	payload := &domain.HandoffPayload{
		ProjectType:        in.ProjectType.Name,
		Budget:             breakdown.TotalFormatted,
		Timeline:           in.Timeline.Name,
		Features:           featureNames,
		CustomRequirements: session.State.Requirements.Description,
		SpecialFeatures:    session.State.Requirements.SpecialFeatures,
		Integrations:       session.State.Requirements.Integrations,
		Complexity:         session.State.Requirements.Complexity,
		CreatedAt:          time.Now().UTC(),
	}

	token, err := u.handoff.Put(ctx, payload)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to store hand-off payload: "+err.Error(), err)
	}

	return &domain.QuoteResult{
		HandoffToken: token,
		ContactPath:  ContactPath + "?estimate=" + token,
	}, nil
}

// ============================================================================
// Saved Estimates
// ============================================================================

func (u *estimatorUsecase) SaveEstimate(ctx context.Context, sessionID string) (*domain.SavedEstimate, error) {
	session, err := u.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	in := u.pricingInput(&session.State)
	breakdown := pricing.Calculate(in)
	if !breakdown.Complete {
		return nil, apperror.BadRequest("Select a project type and timeline before saving an estimate")
	}

	featureNames := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		featureNames = append(featureNames, f.Name)
	}

	saved := &domain.SavedEstimate{
		ID:              uuid.NewString(),
		ProjectTypeID:   in.ProjectType.ID,
		ProjectTypeName: in.ProjectType.Name,
		FeatureNames:    featureNames,
		TimelineID:      in.Timeline.ID,
		TimelineName:    in.Timeline.Name,
		Requirements:    session.State.Requirements,
		TotalPrice:      breakdown.TotalPrice,
		TotalFormatted:  breakdown.TotalFormatted,
		CreatedAt:       time.Now().UTC(),
	}

	if err := u.estimates.Append(ctx, saved); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to save estimate: "+err.Error(), err)
	}
	return saved, nil
}

func (u *estimatorUsecase) ListSavedEstimates(ctx context.Context) ([]domain.SavedEstimate, error) {
	estimates, err := u.estimates.List(ctx)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to list saved estimates: "+err.Error(), err)
	}
	return estimates, nil
}
