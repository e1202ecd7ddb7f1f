package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/middleware"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/response"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/repository/memory"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/usecase"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/progress"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/validation"
)

// In-memory test doubles for the durable ports

type stubEstimateRepo struct {
	saved []domain.SavedEstimate
}

func (r *stubEstimateRepo) Append(ctx context.Context, e *domain.SavedEstimate) error {
	r.saved = append(r.saved, *e)
	return nil
}

func (r *stubEstimateRepo) List(ctx context.Context) ([]domain.SavedEstimate, error) {
	return r.saved, nil
}

type stubInquiryRepo struct {
	created []domain.Inquiry
}

func (r *stubInquiryRepo) Create(ctx context.Context, inq *domain.Inquiry) error {
	r.created = append(r.created, *inq)
	return nil
}

func (r *stubInquiryRepo) List(ctx context.Context) ([]domain.Inquiry, error) {
	return r.created, nil
}

type stubSubmitter struct {
	submitted []domain.Inquiry
	fail      error
}

func (s *stubSubmitter) Submit(ctx context.Context, inq *domain.Inquiry) error {
	if s.fail != nil {
		return s.fail
	}
	s.submitted = append(s.submitted, *inq)
	return nil
}

// fakeAttachments keeps nothing on disk; handler tests only need the
// metadata round trip.
type fakeAttachments struct{}

func (fakeAttachments) Save(ctx context.Context, sessionID, fileName, contentType string, size int64, r io.Reader, report func(fraction float64)) (*domain.Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &domain.Attachment{
		ID:          uuid.NewString(),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (fakeAttachments) Remove(ctx context.Context, att *domain.Attachment) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubEstimateRepo, *stubInquiryRepo, *stubSubmitter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogRepo := memory.NewCatalogRepository()
	handoff := memory.NewHandoffStore(time.Minute)
	estimateRepo := &stubEstimateRepo{}
	inquiryRepo := &stubInquiryRepo{}
	submitter := &stubSubmitter{}

	validate := validator.New()
	validation.RegisterValidators(validate)

	estimatorUC := usecase.NewEstimatorUsecase(
		memory.NewEstimateSessionStore(time.Minute), catalogRepo, handoff, estimateRepo)
	inquiryUC := usecase.NewInquiryUsecase(
		memory.NewInquirySessionStore(time.Minute), handoff, fakeAttachments{}, inquiryRepo,
		submitter, validate, progress.Nop(), domain.ResetManual)
	catalogUC := usecase.NewCatalogUsecase(catalogRepo)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	v1 := r.Group("/v1")
	NewCatalogHandler(v1, catalogUC)
	NewEstimatorHandler(v1, estimatorUC)
	NewInquiryHandler(v1, inquiryUC, 1024*1024)

	return r, estimateRepo, inquiryRepo, submitter
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBufferString("")
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func dataAs(t *testing.T, envelope response.Response, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestCatalogEndpoints(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	t.Run("project types", func(t *testing.T) {
		w, envelope := doJSON(t, r, http.MethodGet, "/v1/catalog/project-types", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var types []domain.ProjectType
		dataAs(t, envelope, &types)
		require.Len(t, types, 3)
		assert.Equal(t, domain.ProjectLandingPage, types[0].ID)
	})

	t.Run("features filtered by project type", func(t *testing.T) {
		w, envelope := doJSON(t, r, http.MethodGet, "/v1/catalog/features?project_type=landing-page", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var categories []domain.FeatureCategory
		dataAs(t, envelope, &categories)
		require.Len(t, categories, 2)
		for _, cat := range categories {
			assert.NotEqual(t, domain.CategoryPayments, cat.ID)
		}
	})

	t.Run("unknown project type is 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/v1/catalog/features?project_type=mobile-app", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("timelines and complexity levels", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/v1/catalog/timelines", "")
		assert.Equal(t, http.StatusOK, w.Code)
		w, _ = doJSON(t, r, http.MethodGet, "/v1/catalog/complexity-levels", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEstimatorFlow(t *testing.T) {
	r, estimateRepo, _, _ := newTestRouter(t)

	w, envelope := doJSON(t, r, http.MethodPost, "/v1/estimates/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var session domain.EstimateSession
	dataAs(t, envelope, &session)
	require.NotEmpty(t, session.ID)
	base := "/v1/estimates/sessions/" + session.ID

	t.Run("next blocked without project type", func(t *testing.T) {
		w, envelope := doJSON(t, r, http.MethodPost, base+"/next", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var s domain.EstimateSession
		dataAs(t, envelope, &s)
		assert.Equal(t, 1, s.Step)
		assert.Equal(t, "Please select a project type", s.Errors["projectType"])
	})

	t.Run("select project type and walk forward", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPut, base+"/project-type", `{"project_type":"web-app"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = doJSON(t, r, http.MethodPut, base+"/features", `{"feature":"stripe-payment","selected":true}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = doJSON(t, r, http.MethodPut, base+"/timeline", `{"timeline":"standard"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w, envelope := doJSON(t, r, http.MethodGet, base+"/summary", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var breakdown domain.PricingBreakdown
		dataAs(t, envelope, &breakdown)
		assert.True(t, breakdown.Complete)
		assert.Equal(t, "$6,200", breakdown.TotalFormatted)
	})

	t.Run("ineligible feature is rejected", func(t *testing.T) {
		w, envelope := doJSON(t, r, http.MethodPut, base+"/project-type", `{"project_type":"landing-page"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var s domain.EstimateSession
		dataAs(t, envelope, &s)
		assert.Empty(t, s.State.FeatureIDs) // cleared by the type change

		w, _ = doJSON(t, r, http.MethodPut, base+"/features", `{"feature":"stripe-payment","selected":true}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("goto forward jump is rejected", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, base+"/goto", `{"step":4}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("quote and save round trip", func(t *testing.T) {
		doJSON(t, r, http.MethodPut, base+"/project-type", `{"project_type":"web-app"}`)
		doJSON(t, r, http.MethodPut, base+"/timeline", `{"timeline":"urgent"}`)

		w, envelope := doJSON(t, r, http.MethodPost, base+"/quote", "")
		require.Equal(t, http.StatusOK, w.Code)

		var quote domain.QuoteResult
		dataAs(t, envelope, &quote)
		assert.NotEmpty(t, quote.HandoffToken)
		assert.Contains(t, quote.ContactPath, "/contact?estimate=")

		w, _ = doJSON(t, r, http.MethodPost, base+"/save", "")
		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, estimateRepo.saved, 1)
		assert.Equal(t, "$7,500", estimateRepo.saved[0].TotalFormatted)

		w, envelope = doJSON(t, r, http.MethodGet, "/v1/estimates/saved", "")
		assert.Equal(t, http.StatusOK, w.Code)
		var saved []domain.SavedEstimate
		dataAs(t, envelope, &saved)
		assert.Len(t, saved, 1)
	})

	t.Run("unknown session is 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/v1/estimates/sessions/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInquiryFlow(t *testing.T) {
	r, _, inquiryRepo, submitter := newTestRouter(t)

	// Create an estimate and hand it off to the contact flow
	_, envelope := doJSON(t, r, http.MethodPost, "/v1/estimates/sessions", "")
	var est domain.EstimateSession
	dataAs(t, envelope, &est)
	base := "/v1/estimates/sessions/" + est.ID
	doJSON(t, r, http.MethodPut, base+"/project-type", `{"project_type":"ecommerce"}`)
	doJSON(t, r, http.MethodPut, base+"/timeline", `{"timeline":"standard"}`)
	_, envelope = doJSON(t, r, http.MethodPost, base+"/quote", "")
	var quote domain.QuoteResult
	dataAs(t, envelope, &quote)

	w, envelope := doJSON(t, r, http.MethodPost, "/v1/inquiries/sessions",
		fmt.Sprintf(`{"handoff_token":%q}`, quote.HandoffToken))
	require.Equal(t, http.StatusCreated, w.Code)

	var session domain.InquirySession
	dataAs(t, envelope, &session)
	inqBase := "/v1/inquiries/sessions/" + session.ID

	t.Run("hand-off pre-fills the form", func(t *testing.T) {
		assert.Equal(t, "E-commerce Store", session.Form.ProjectType)
		assert.Equal(t, "$8,000", session.Form.Budget)
		require.NotNil(t, session.Imported)
	})

	t.Run("form update and navigation", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPatch, inqBase+"/form",
			`{"name":"Jane Doe","email":"jane@example.com","message":"Store for my brand","terms":true}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w, envelope := doJSON(t, r, http.MethodPost, inqBase+"/next", "")
		assert.Equal(t, http.StatusOK, w.Code)
		var s domain.InquirySession
		dataAs(t, envelope, &s)
		assert.Equal(t, 2, s.Step)
	})

	t.Run("invalid email format is a 400", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPatch, inqBase+"/form", `{"email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("submit dispatches and persists", func(t *testing.T) {
		w, envelope := doJSON(t, r, http.MethodPost, inqBase+"/submit", "")
		require.Equal(t, http.StatusOK, w.Code)

		var s domain.InquirySession
		dataAs(t, envelope, &s)
		assert.True(t, s.Submitted)

		require.Len(t, submitter.submitted, 1)
		assert.Equal(t, "Jane Doe", submitter.submitted[0].Name)
		assert.True(t, submitter.submitted[0].FromEstimator)
		require.Len(t, inquiryRepo.created, 1)
	})
}

func TestInquiryAttachmentUpload(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	_, envelope := doJSON(t, r, http.MethodPost, "/v1/inquiries/sessions", "")
	var session domain.InquirySession
	dataAs(t, envelope, &session)
	inqBase := "/v1/inquiries/sessions/" + session.ID

	attach := func(t *testing.T, name, content string) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, inqBase+"/attachments", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("upload and remove", func(t *testing.T) {
		w := attach(t, "brief.pdf", "fake pdf bytes")
		require.Equal(t, http.StatusOK, w.Code)

		var envelope response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		var s domain.InquirySession
		dataAs(t, envelope, &s)
		require.Len(t, s.Form.Attachments, 1)
		assert.Equal(t, "brief.pdf", s.Form.Attachments[0].FileName)

		w2, envelope2 := doJSON(t, r, http.MethodDelete,
			inqBase+"/attachments/"+s.Form.Attachments[0].ID, "")
		assert.Equal(t, http.StatusOK, w2.Code)
		var s2 domain.InquirySession
		dataAs(t, envelope2, &s2)
		assert.Empty(t, s2.Form.Attachments)
	})

	t.Run("oversized upload is rejected", func(t *testing.T) {
		w := attach(t, "big.bin", strings.Repeat("x", 2*1024*1024))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("missing file is a 400", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, inqBase+"/attachments", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
