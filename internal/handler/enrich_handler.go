package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-outreach/internal/dto"
	"github.com/octobees/lead-outreach/internal/repository"
)

// BusinessEnricher runs the single-business enrichment workflow.
type BusinessEnricher interface {
	EnrichBusiness(ctx context.Context, businessID uuid.UUID) (*dto.EnrichmentResult, error)
}

// BatchProcessor enriches a batch of pending businesses.
type BatchProcessor interface {
	ProcessPending(ctx context.Context, count int) (*dto.BatchProcessResponse, error)
}

// EnrichHandler exposes the enrichment endpoints.
type EnrichHandler struct {
	enricher BusinessEnricher
	batch    BatchProcessor
}

// NewEnrichHandler constructs an EnrichHandler.
func NewEnrichHandler(enricher BusinessEnricher, batch BatchProcessor) *EnrichHandler {
	return &EnrichHandler{enricher: enricher, batch: batch}
}

// Enrich handles POST /api/enrich/:businessId requests. The result body keeps
// the documented wire shape, so it is returned without the response envelope.
func (h *EnrichHandler) Enrich(c echo.Context) error {
	businessID, err := uuid.Parse(c.Param("businessId"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	result, err := h.enricher.EnrichBusiness(c.Request().Context(), businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return Error(c, http.StatusNotFound, "business not found")
		}
		return Error(c, http.StatusInternalServerError, "enrichment failed")
	}

	return c.JSON(http.StatusOK, result)
}

// ProcessBatch handles POST /api/enrich/batch/process requests.
func (h *EnrichHandler) ProcessBatch(c echo.Context) error {
	var req dto.BatchProcessRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	response, err := h.batch.ProcessPending(c.Request().Context(), req.Count)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "batch processing failed")
	}

	return c.JSON(http.StatusOK, response)
}
