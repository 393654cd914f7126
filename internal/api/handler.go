package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ledgerline/receipt-engine/internal/document"
	"github.com/ledgerline/receipt-engine/internal/models"
	"github.com/ledgerline/receipt-engine/internal/service"
)

// Handler serves the render endpoints. All internal failure detail is
// collapsed to one retryable-looking message at this boundary; the cause
// and offending field stay in the logs.
type Handler struct {
	renderService *service.RenderService
	maxBodyBytes  int64
	logger        *zap.Logger
}

// NewHandler creates a render API handler.
func NewHandler(renderService *service.RenderService, maxBodyBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		renderService: renderService,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger,
	}
}

// renderRequest is the request envelope. Template and preferences are
// optional inline overrides; absent, they are fetched per tenant.
type renderRequest struct {
	Receipt     *models.Receipt             `json:"receipt"`
	Template    *models.BusinessTemplate    `json:"template,omitempty"`
	Preferences *models.BrandingPreferences `json:"preferences,omitempty"`
}

// Render streams the receipt PDF with a filename derived from the receipt
// number.
func (h *Handler) Render(c *gin.Context) {
	req, ok := h.parseRequest(c)
	if !ok {
		return
	}

	data, filename, err := h.renderService.Render(c.Request.Context(), service.RenderInput{
		Receipt:     req.Receipt,
		Template:    req.Template,
		Preferences: req.Preferences,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Preview returns the renderer-agnostic document tree as JSON.
func (h *Handler) Preview(c *gin.Context) {
	req, ok := h.parseRequest(c)
	if !ok {
		return
	}

	doc, err := h.renderService.RenderTree(c.Request.Context(), service.RenderInput{
		Receipt:     req.Receipt,
		Template:    req.Template,
		Preferences: req.Preferences,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) parseRequest(c *gin.Context) (*renderRequest, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxBodyBytes))
	if err != nil {
		h.logger.Error("Failed to read request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": service.UserFacingError})
		return nil, false
	}

	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("Malformed render request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": service.UserFacingError})
		return nil, false
	}
	if req.Receipt == nil {
		h.logger.Warn("Render request without receipt")
		c.JSON(http.StatusBadRequest, gin.H{"error": service.UserFacingError})
		return nil, false
	}
	return &req, true
}

// renderError maps structural input errors to 400 and everything else to
// 500, with the same user-facing message for both.
func (h *Handler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, document.ErrNoItems) ||
		errors.Is(err, document.ErrNoReceiptNumber) ||
		errors.Is(err, document.ErrNilReceipt) ||
		errors.Is(err, service.ErrNilReceipt) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": service.UserFacingError})
}
