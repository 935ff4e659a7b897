package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"report-generator-service/engine"
	"report-generator-service/models"
	"report-generator-service/template"
)

// Handlers represents the HTTP handlers
type Handlers struct {
	generator *engine.Generator
}

// NewHandlers creates new HTTP handlers
func NewHandlers(generator *engine.Generator) *Handlers {
	return &Handlers{generator: generator}
}

// GenerateRequest is the body for single-inspection generation.
type GenerateRequest struct {
	// Variant selects "standard" (house template, template field ignored)
	// or "templated". Defaults to standard.
	Variant    string                   `json:"variant,omitempty"`
	Template   *models.TemplateOverride `json:"template,omitempty"`
	Inspection models.InspectionInput   `json:"inspection"`
}

// GenerateComparisonRequest is the body for comparison generation.
type GenerateComparisonRequest struct {
	Template *models.TemplateOverride `json:"template,omitempty"`
	Before   models.InspectionInput   `json:"before"`
	After    models.InspectionInput   `json:"after"`
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "report-generator-service",
	})
}

// GenerateReport handles single-inspection report generation and returns the
// PDF document.
func (h *Handlers) GenerateReport(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}
	if len(req.Inspection.Rooms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Inspection must contain at least one room",
		})
		return
	}

	var doc []byte
	var err error
	switch req.Variant {
	case "", "standard":
		doc, err = h.generator.GenerateStandard(c.Request.Context(), &req.Inspection)
	case "templated":
		doc, err = h.generator.GenerateTemplated(c.Request.Context(), &req.Inspection, req.Template)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown variant: " + req.Variant,
		})
		return
	}
	if err != nil {
		h.generationError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="inspection-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// GenerateComparisonReport handles two-inspection comparison generation.
func (h *Handlers) GenerateComparisonReport(c *gin.Context) {
	var req GenerateComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	pair := &models.ComparisonInput{Before: req.Before, After: req.After}
	doc, err := h.generator.GenerateComparison(c.Request.Context(), pair, req.Template)
	if err != nil {
		h.generationError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="comparison-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// generationError maps engine errors onto HTTP statuses: template problems
// are the caller's fault, everything else is a server failure.
func (h *Handlers) generationError(c *gin.Context, err error) {
	var vErr *template.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": vErr.Error(),
			"field": vErr.Field,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Report generation failed",
	})
}
