package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/middleware"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/response"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/apperror"
)

type InquiryHandler struct {
	inquiryUC      domain.InquiryUsecase
	maxUploadBytes int64
}

type createInquirySessionRequest struct {
	HandoffToken string `json:"handoff_token"`
}

// NewInquiryHandler registers the contact inquiry wizard routes
func NewInquiryHandler(r *gin.RouterGroup, inquiryUC domain.InquiryUsecase, maxUploadBytes int64) {
	handler := &InquiryHandler{
		inquiryUC:      inquiryUC,
		maxUploadBytes: maxUploadBytes,
	}

	inquiries := r.Group("/inquiries")
	{
		inquiries.POST("/sessions", handler.CreateSession)
		inquiries.GET("/sessions/:id", handler.GetSession)

		inquiries.PATCH("/sessions/:id/form", handler.UpdateForm)

		inquiries.POST("/sessions/:id/next", handler.Next)
		inquiries.POST("/sessions/:id/previous", handler.Previous)
		inquiries.POST("/sessions/:id/goto", handler.Goto)

		inquiries.POST("/sessions/:id/attachments",
			middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()),
			handler.AttachFile)
		inquiries.DELETE("/sessions/:id/attachments/:attachmentID", handler.RemoveAttachment)

		inquiries.POST("/sessions/:id/submit",
			middleware.RateLimitMiddleware(middleware.SubmitRateLimitConfig()),
			handler.Submit)
	}
}

// CreateSession godoc
// @Summary      Start a contact inquiry session
// @Description  Creates a new contact wizard session. A valid hand-off token from the estimator pre-fills project type, budget and timeline; a missing or expired token yields an empty form.
// @Tags         inquiry
// @Accept       json
// @Produce      json
// @Param        request  body      createInquirySessionRequest  false  "Optional hand-off token"
// @Success      201      {object}  response.Response{data=domain.InquirySession}
// @Router       /inquiries/sessions [post]
func (h *InquiryHandler) CreateSession(c *gin.Context) {
	var req createInquirySessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	session, err := h.inquiryUC.CreateSession(c.Request.Context(), req.HandoffToken)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Inquiry session created", session)
}

// GetSession godoc
// @Summary      Get a contact inquiry session
// @Tags         inquiry
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.InquirySession}
// @Failure      404  {object}  response.Response
// @Router       /inquiries/sessions/{id} [get]
func (h *InquiryHandler) GetSession(c *gin.Context) {
	session, err := h.inquiryUC.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Inquiry session retrieved", session)
}

// UpdateForm godoc
// @Summary      Update the contact form
// @Description  Merges the provided fields into the form. Each updated field has its validation error cleared.
// @Tags         inquiry
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Session id"
// @Param        request  body      domain.InquiryFormUpdate  true  "Partial form update"
// @Success      200      {object}  response.Response{data=domain.InquirySession}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /inquiries/sessions/{id}/form [patch]
func (h *InquiryHandler) UpdateForm(c *gin.Context) {
	var req domain.InquiryFormUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.inquiryUC.UpdateForm(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Form updated", session)
}

// Next godoc
// @Summary      Advance to the next step
// @Description  Validates the current step and advances on success. On failure the session stays put and carries the field errors.
// @Tags         inquiry
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.InquirySession}
// @Failure      404  {object}  response.Response
// @Router       /inquiries/sessions/{id}/next [post]
func (h *InquiryHandler) Next(c *gin.Context) {
	session, err := h.inquiryUC.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step updated", session)
}

// Previous godoc
// @Summary      Go back one step
// @Tags         inquiry
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.InquirySession}
// @Failure      404  {object}  response.Response
// @Router       /inquiries/sessions/{id}/previous [post]
func (h *InquiryHandler) Previous(c *gin.Context) {
	session, err := h.inquiryUC.Previous(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step updated", session)
}

// Goto godoc
// @Summary      Jump to a step
// @Description  Backward jumps are always allowed; the only forward jump permitted is to the immediate next step and it is validation gated.
// @Tags         inquiry
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Session id"
// @Param        request  body      gotoStepRequest  true  "Target step"
// @Success      200      {object}  response.Response{data=domain.InquirySession}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /inquiries/sessions/{id}/goto [post]
func (h *InquiryHandler) Goto(c *gin.Context) {
	var req gotoStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.inquiryUC.Goto(c.Request.Context(), c.Param("id"), req.Step)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Step updated", session)
}

// AttachFile godoc
// @Summary      Attach a file
// @Description  Uploads a file attachment for the inquiry. Images are compressed server-side.
// @Tags         inquiry
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Session id"
// @Param        file  formData  file    true  "File to attach"
// @Success      200   {object}  response.Response{data=domain.InquirySession}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Router       /inquiries/sessions/{id}/attachments [post]
func (h *InquiryHandler) AttachFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file provided"))
		return
	}

	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		c.Error(apperror.New(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %d MB upload limit", h.maxUploadBytes/(1024*1024)), nil))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	session, err := h.inquiryUC.AttachFile(c.Request.Context(), c.Param("id"),
		file.Filename, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "File attached", session)
}

// RemoveAttachment godoc
// @Summary      Remove an attachment
// @Tags         inquiry
// @Produce      json
// @Param        id            path      string  true  "Session id"
// @Param        attachmentID  path      string  true  "Attachment id"
// @Success      200           {object}  response.Response{data=domain.InquirySession}
// @Failure      404           {object}  response.Response
// @Router       /inquiries/sessions/{id}/attachments/{attachmentID} [delete]
func (h *InquiryHandler) RemoveAttachment(c *gin.Context) {
	session, err := h.inquiryUC.RemoveAttachment(c.Request.Context(), c.Param("id"), c.Param("attachmentID"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Attachment removed", session)
}

// Submit godoc
// @Summary      Submit the inquiry
// @Description  Validates the whole form and dispatches the inquiry. On validation failure the session lands on the first failing step with its errors; a dispatch failure keeps the form intact for retry.
// @Tags         inquiry
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  response.Response{data=domain.InquirySession}
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /inquiries/sessions/{id}/submit [post]
func (h *InquiryHandler) Submit(c *gin.Context) {
	session, err := h.inquiryUC.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	message := "Inquiry submitted"
	if !session.Submitted {
		message = "Please fix the highlighted fields"
	}
	response.Success(c, http.StatusOK, message, session)
}
