package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/response"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/apperror"
)

type EstimatorHandler struct {
	estimatorUC domain.EstimatorUsecase
}

// Request DTOs

type selectProjectTypeRequest struct {
	ProjectType domain.ProjectTypeID `json:"project_type" binding:"required"`
}

type toggleFeatureRequest struct {
	Feature  domain.FeatureID `json:"feature" binding:"required"`
	Selected *bool            `json:"selected" binding:"required"`
}

type selectTimelineRequest struct {
	Timeline domain.TimelineID `json:"timeline" binding:"required"`
}

type gotoStepRequest struct {
	Step int `json:"step" binding:"required"`
}

// NewEstimatorHandler registers the cost estimator wizard routes
func NewEstimatorHandler(r *gin.RouterGroup, estimatorUC domain.EstimatorUsecase) {
	handler := &EstimatorHandler{estimatorUC: estimatorUC}

	estimates := r.Group("/estimates")
	{
		estimates.POST("/sessions", handler.CreateSession)
		estimates.GET("/sessions/:id", handler.GetSession)

		estimates.PUT("/sessions/:id/project-type", handler.SelectProjectType)
		estimates.PUT("/sessions/:id/features", handler.ToggleFeature)
		estimates.PUT("/sessions/:id/timeline", handler.SelectTimeline)
		estimates.PUT("/sessions/:id/requirements", handler.SetRequirements)

		estimates.POST("/sessions/:id/next", handler.Next)
		estimates.POST("/sessions/:id/previous", handler.Previous)
		estimates.POST("/sessions/:id/goto", handler.Goto)

		estimates.GET("/sessions/:id/summary", handler.Summary)
		estimates.POST("/sessions/:id/quote", handler.Quote)
		estimates.POST("/sessions/:id/save", handler.SaveEstimate)

		estimates.GET("/saved", handler.ListSaved)
	}
}

// CreateSession godoc
// @Summary      Start an estimator session
// @Description  Creates a new cost estimator wizard session at step 1
// @Tags         estimator
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.EstimateSession}
// @Router       /estimates/sessions [post]
func (h *EstimatorHandler) CreateSession(c *gin.Context) {
	session, err := h.estimatorUC.CreateSession(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Estimate session created", session)
}

// GetSession godoc
// @Summary      Get an estimator session
// @Tags         estimator
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.EstimateSession}
// @Failure      404  {object}  response.Response
// @Router       /estimates/sessions/{id} [get]
func (h *EstimatorHandler) GetSession(c *gin.Context) {
	session, err := h.estimatorUC.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Estimate session retrieved", session)
}

// SelectProjectType godoc
// @Summary      Select the project type
// @Description  Sets the project type for the estimate. Changing the type clears previously selected features.
// @Tags         estimator
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Session id"
// @Param        request  body      selectProjectTypeRequest  true  "Project type"
// @Success      200      {object}  response.Response{data=domain.EstimateSession}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /estimates/sessions/{id}/project-type [put]
func (h *EstimatorHandler) SelectProjectType(c *gin.Context) {
	var req selectProjectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.estimatorUC.SelectProjectType(c.Request.Context(), c.Param("id"), req.ProjectType)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Project type selected", session)
}

// ToggleFeature godoc
// @Summary      Toggle an add-on feature
// @Description  Selects or deselects a feature. Only features eligible for the chosen project type are accepted.
// @Tags         estimator
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Session id"
// @Param        request  body      toggleFeatureRequest  true  "Feature toggle"
// @Success      200      {object}  response.Response{data=domain.EstimateSession}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /estimates/sessions/{id}/features [put]
func (h *EstimatorHandler) ToggleFeature(c *gin.Context) {
	var req toggleFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.estimatorUC.ToggleFeature(c.Request.Context(), c.Param("id"), req.Feature, *req.Selected)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Feature selection updated", session)
}

// SelectTimeline godoc
// @Summary      Select the delivery timeline
// @Tags         estimator
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Session id"
// @Param        request  body      selectTimelineRequest  true  "Timeline option"
// @Success      200      {object}  response.Response{data=domain.EstimateSession}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /estimates/sessions/{id}/timeline [put]
func (h *EstimatorHandler) SelectTimeline(c *gin.Context) {
	var req selectTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.estimatorUC.SelectTimeline(c.Request.Context(), c.Param("id"), req.Timeline)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Timeline selected", session)
}

// SetRequirements godoc
// @Summary      Set custom requirements
// @Description  Stores the free-text requirements and the complexity level for the estimate
// @Tags         estimator
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Session id"
// @Param        request  body      domain.CustomRequirements  true  "Requirements"
// @Success      200      {object}  response.Response{data=domain.EstimateSession}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /estimates/sessions/{id}/requirements [put]
func (h *EstimatorHandler) SetRequirements(c *gin.Context) {
	var req domain.CustomRequirements
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.estimatorUC.SetRequirements(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Requirements updated", session)
}

// Next godoc
// @Summary      Advance to the next step
// @Description  Validates the current step and advances on success. On failure the session stays put and carries the field errors.
// @Tags         estimator
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.EstimateSession}
// @Failure      404  {object}  response.Response
// @Router       /estimates/sessions/{id}/next [post]
func (h *EstimatorHandler) Next(c *gin.Context) {
	session, err := h.estimatorUC.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step updated", session)
}

// Previous godoc
// @Summary      Go back one step
// @Tags         estimator
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.EstimateSession}
// @Failure      404  {object}  response.Response
// @Router       /estimates/sessions/{id}/previous [post]
func (h *EstimatorHandler) Previous(c *gin.Context) {
	session, err := h.estimatorUC.Previous(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step updated", session)
}

// Goto godoc
// @Summary      Jump to a step
// @Description  Backward jumps are always allowed; the only forward jump permitted is to the immediate next step and it is validation gated.
// @Tags         estimator
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Session id"
// @Param        request  body      gotoStepRequest  true  "Target step"
// @Success      200      {object}  response.Response{data=domain.EstimateSession}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /estimates/sessions/{id}/goto [post]
func (h *EstimatorHandler) Goto(c *gin.Context) {
	var req gotoStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.estimatorUC.Goto(c.Request.Context(), c.Param("id"), req.Step)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step updated", session)
}

// Summary godoc
// @Summary      Get the pricing summary
// @Description  Recomputes the pricing breakdown from the current selections
// @Tags         estimator
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.PricingBreakdown}
// @Failure      404  {object}  response.Response
// @Router       /estimates/sessions/{id}/summary [get]
func (h *EstimatorHandler) Summary(c *gin.Context) {
	breakdown, err := h.estimatorUC.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Pricing summary computed", breakdown)
}

// Quote godoc
// @Summary      Request a detailed quote
// @Description  Packages the estimate into a hand-off payload and returns the token plus the contact page path to open
// @Tags         estimator
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.QuoteResult}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /estimates/sessions/{id}/quote [post]
func (h *EstimatorHandler) Quote(c *gin.Context) {
	quote, err := h.estimatorUC.Quote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Quote prepared", quote)
}

// SaveEstimate godoc
// @Summary      Save the estimate
// @Description  Appends a snapshot of the current estimate to the saved list
// @Tags         estimator
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      201  {object}  response.Response{data=domain.SavedEstimate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /estimates/sessions/{id}/save [post]
func (h *EstimatorHandler) SaveEstimate(c *gin.Context) {
	saved, err := h.estimatorUC.SaveEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Estimate saved", saved)
}

// ListSaved godoc
// @Summary      List saved estimates
// @Tags         estimator
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.SavedEstimate}
// @Router       /estimates/saved [get]
func (h *EstimatorHandler) ListSaved(c *gin.Context) {
	estimates, err := h.estimatorUC.ListSavedEstimates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved estimates retrieved", estimates)
}
