package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/repository/memory"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/usecase"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/progress"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/validation"
)

// Mock Repositories

type MockInquiryRepo struct {
	mock.Mock
}

func (m *MockInquiryRepo) Create(ctx context.Context, inq *domain.Inquiry) error {
	return m.Called(ctx, inq).Error(0)
}

func (m *MockInquiryRepo) List(ctx context.Context) ([]domain.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inquiry), args.Error(1)
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, inq *domain.Inquiry) error {
	return m.Called(ctx, inq).Error(0)
}

// fakeAttachmentStore keeps attachment content in memory and records the
// progress fractions it reported.
type fakeAttachmentStore struct {
	removed   []string
	fractions []float64
}

func (s *fakeAttachmentStore) Save(ctx context.Context, sessionID, fileName, contentType string, size int64, r io.Reader, report func(fraction float64)) (*domain.Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if report != nil {
		report(0.5)
		report(1)
		s.fractions = append(s.fractions, 0.5, 1)
	}
	return &domain.Attachment{
		ID:          uuid.NewString(),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (s *fakeAttachmentStore) Remove(ctx context.Context, att *domain.Attachment) error {
	s.removed = append(s.removed, att.ID)
	return nil
}

type inquiryFixture struct {
	uc        domain.InquiryUsecase
	handoff   *memory.HandoffStore
	repo      *MockInquiryRepo
	submitter *MockSubmitter
	store     *fakeAttachmentStore
}

func newInquiry(t *testing.T, policy domain.ResetPolicy) *inquiryFixture {
	t.Helper()
	validate := validator.New()
	validation.RegisterValidators(validate)

	f := &inquiryFixture{
		handoff:   memory.NewHandoffStore(time.Minute),
		repo:      new(MockInquiryRepo),
		submitter: new(MockSubmitter),
		store:     &fakeAttachmentStore{},
	}
	f.uc = usecase.NewInquiryUsecase(
		memory.NewInquirySessionStore(time.Minute),
		f.handoff,
		f.store,
		f.repo,
		f.submitter,
		validate,
		progress.Nop(),
		policy,
	)
	return f
}

func fillValidForm(t *testing.T, f *inquiryFixture, sessionID string) {
	t.Helper()
	name := "Jane Doe"
	email := "jane@example.com"
	projectType := "Web Application"
	message := "I need a booking platform for my studio."
	terms := true
	_, err := f.uc.UpdateForm(context.Background(), sessionID, &domain.InquiryFormUpdate{
		Name:        &name,
		Email:       &email,
		ProjectType: &projectType,
		Message:     &message,
		Terms:       &terms,
	})
	require.NoError(t, err)
}

func TestInquirySessionCreation(t *testing.T) {
	f := newInquiry(t, domain.ResetManual)
	ctx := context.Background()

	t.Run("Empty form without a token", func(t *testing.T) {
		s, err := f.uc.CreateSession(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 1, s.Step)
		assert.Empty(t, s.Form.ProjectType)
		assert.Equal(t, domain.ContactByEmail, s.Form.PreferredContact)
		assert.Equal(t, domain.FrequencyWeekly, s.Form.CommunicationFrequency)
		assert.Nil(t, s.Imported)
	})

	t.Run("Valid token pre-fills the form", func(t *testing.T) {
		token, err := f.handoff.Put(ctx, &domain.HandoffPayload{
			ProjectType: "Web Application",
			Budget:      "$6,200",
			Timeline:    "Standard Timeline",
			Features:    []string{"Stripe Payment Gateway"},
			Complexity:  domain.ComplexityMedium,
			CreatedAt:   time.Now().UTC(),
		})
		require.NoError(t, err)

		s, err := f.uc.CreateSession(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "Web Application", s.Form.ProjectType)
		assert.Equal(t, "$6,200", s.Form.Budget)
		assert.Equal(t, "Standard Timeline", s.Form.Timeline)
		require.NotNil(t, s.Imported)
		assert.Contains(t, s.Imported.Features, "Stripe Payment Gateway")
	})

	t.Run("Unknown token yields an empty form", func(t *testing.T) {
		s, err := f.uc.CreateSession(ctx, "expired-or-bogus")
		require.NoError(t, err)
		assert.Empty(t, s.Form.ProjectType)
		assert.Nil(t, s.Imported)
	})
}

func TestInquiryFormUpdate(t *testing.T) {
	f := newInquiry(t, domain.ResetManual)
	ctx := context.Background()

	session, err := f.uc.CreateSession(ctx, "")
	require.NoError(t, err)

	t.Run("Partial update merges only provided fields", func(t *testing.T) {
		name := "Jane Doe"
		s, err := f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", s.Form.Name)
		assert.Equal(t, domain.ContactByEmail, s.Form.PreferredContact)
	})

	t.Run("Invalid email is rejected by the DTO validator", func(t *testing.T) {
		bad := "not-an-email"
		_, err := f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{Email: &bad})
		assert.Error(t, err)
	})

	t.Run("Formatted phone numbers pass", func(t *testing.T) {
		phone := "+1 (555) 123-4567"
		s, err := f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, phone, s.Form.Phone)
	})

	t.Run("Invalid contact method is rejected", func(t *testing.T) {
		bad := domain.ContactMethod("fax")
		_, err := f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{PreferredContact: &bad})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid contact method")
	})

	t.Run("Editing a field clears its validation error", func(t *testing.T) {
		s, err := f.uc.Next(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "Email is required", s.Errors["email"])

		email := "jane@example.com"
		s, err = f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{Email: &email})
		require.NoError(t, err)
		assert.NotContains(t, s.Errors, "email")
	})
}

func TestInquiryNavigation(t *testing.T) {
	f := newInquiry(t, domain.ResetManual)
	ctx := context.Background()

	session, err := f.uc.CreateSession(ctx, "")
	require.NoError(t, err)

	t.Run("Step 1 requires name and a valid email", func(t *testing.T) {
		s, err := f.uc.Next(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Step)
		assert.Equal(t, "Name is required", s.Errors["name"])
		assert.Equal(t, "Email is required", s.Errors["email"])

		name := "Jane Doe"
		email := "jane@"
		_, err = f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{Name: &name})
		require.NoError(t, err)
		s, err = f.uc.Next(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Step)

		// DTO-level validation blocks a malformed email before it lands
		_, err = f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{Email: &email})
		assert.Error(t, err)

		good := "jane@example.com"
		_, err = f.uc.UpdateForm(ctx, session.ID, &domain.InquiryFormUpdate{Email: &good})
		require.NoError(t, err)
		s, err = f.uc.Next(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Step)
	})

	t.Run("Step 2 requires project type and message", func(t *testing.T) {
		s, err := f.uc.Next(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Step)
		assert.Equal(t, "Please select a project type", s.Errors["projectType"])
		assert.Equal(t, "Please describe your project", s.Errors["message"])
	})

	t.Run("Backward jumps are always allowed", func(t *testing.T) {
		s, err := f.uc.Goto(ctx, session.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Step)

		_, err = f.uc.Goto(ctx, session.ID, 4)
		assert.Error(t, err)
	})
}

func TestInquiryAttachments(t *testing.T) {
	f := newInquiry(t, domain.ResetManual)
	ctx := context.Background()

	session, err := f.uc.CreateSession(ctx, "")
	require.NoError(t, err)

	t.Run("AttachFile stores and lists the file", func(t *testing.T) {
		content := strings.NewReader("fake pdf bytes")
		s, err := f.uc.AttachFile(ctx, session.ID, "brief.pdf", "application/pdf", 14, content)
		require.NoError(t, err)
		require.Len(t, s.Form.Attachments, 1)
		assert.Equal(t, "brief.pdf", s.Form.Attachments[0].FileName)
		assert.NotEmpty(t, f.store.fractions)
	})

	t.Run("RemoveAttachment deletes stored content", func(t *testing.T) {
		s, err := f.uc.GetSession(ctx, session.ID)
		require.NoError(t, err)
		attID := s.Form.Attachments[0].ID

		s, err = f.uc.RemoveAttachment(ctx, session.ID, attID)
		require.NoError(t, err)
		assert.Empty(t, s.Form.Attachments)
		assert.Contains(t, f.store.removed, attID)
	})

	t.Run("Removing an unknown attachment is not found", func(t *testing.T) {
		_, err := f.uc.RemoveAttachment(ctx, session.ID, "nope")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestInquirySubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Submit lands on the first failing step", func(t *testing.T) {
		f := newInquiry(t, domain.ResetManual)
		session, err := f.uc.CreateSession(ctx, "")
		require.NoError(t, err)

		s, err := f.uc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.False(t, s.Submitted)
		assert.Equal(t, 1, s.Step)
		assert.Equal(t, "Name is required", s.Errors["name"])
		assert.Equal(t, "Please accept the terms and conditions", s.Errors["terms"])
		f.repo.AssertNotCalled(t, "Create")
	})

	t.Run("Successful submit persists and dispatches", func(t *testing.T) {
		f := newInquiry(t, domain.ResetManual)
		session, err := f.uc.CreateSession(ctx, "")
		require.NoError(t, err)
		fillValidForm(t, f, session.ID)

		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.submitter.On("Submit", mock.Anything, mock.MatchedBy(func(inq *domain.Inquiry) bool {
			return inq.Name == "Jane Doe" && inq.Email == "jane@example.com" && !inq.FromEstimator
		})).Return(nil).Once()

		s, err := f.uc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, s.Submitted)
		assert.False(t, s.Submitting)
		require.NotNil(t, s.SubmittedAt)
		// Manual reset policy keeps the form for the confirmation view
		assert.Equal(t, "Jane Doe", s.Form.Name)
		f.repo.AssertExpectations(t)
		f.submitter.AssertExpectations(t)
	})

	t.Run("Re-submitting a submitted session is a no-op", func(t *testing.T) {
		f := newInquiry(t, domain.ResetManual)
		session, err := f.uc.CreateSession(ctx, "")
		require.NoError(t, err)
		fillValidForm(t, f, session.ID)

		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.submitter.On("Submit", mock.Anything, mock.Anything).Return(nil).Once()

		_, err = f.uc.Submit(ctx, session.ID)
		require.NoError(t, err)
		s, err := f.uc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, s.Submitted)
		f.submitter.AssertNumberOfCalls(t, "Submit", 1)
	})

	t.Run("Dispatch failure keeps the form for retry", func(t *testing.T) {
		f := newInquiry(t, domain.ResetManual)
		session, err := f.uc.CreateSession(ctx, "")
		require.NoError(t, err)
		fillValidForm(t, f, session.ID)

		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.submitter.On("Submit", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		_, err = f.uc.Submit(ctx, session.ID)
		require.Error(t, err)

		s, err := f.uc.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.False(t, s.Submitted)
		assert.False(t, s.Submitting)
		assert.Equal(t, "Jane Doe", s.Form.Name)

		// The retry succeeds once the dispatcher recovers
		f.submitter.On("Submit", mock.Anything, mock.Anything).Return(nil).Once()
		s, err = f.uc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, s.Submitted)
	})

	t.Run("Immediate reset policy clears the form after submit", func(t *testing.T) {
		f := newInquiry(t, domain.ResetImmediate)
		session, err := f.uc.CreateSession(ctx, "")
		require.NoError(t, err)
		fillValidForm(t, f, session.ID)

		_, err = f.uc.AttachFile(ctx, session.ID, "brief.pdf", "application/pdf", 4, strings.NewReader("data"))
		require.NoError(t, err)

		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.submitter.On("Submit", mock.Anything, mock.Anything).Return(nil).Once()

		s, err := f.uc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, s.Submitted)
		assert.Empty(t, s.Form.Name)
		assert.Empty(t, s.Form.Attachments)
		assert.Equal(t, 1, s.Step)
		assert.Len(t, f.store.removed, 1)
	})
}
