package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-outreach/internal/dto"
	"github.com/octobees/lead-outreach/internal/entity"
)

// EmailService is the delivery tracker surface the email endpoints sit on.
type EmailService interface {
	Send(ctx context.Context, req dto.SendEmailRequest) dto.SendResult
	SendBatch(ctx context.Context, requests []dto.SendEmailRequest) dto.SendBatchResponse
	HandleEvents(ctx context.Context, batch []dto.DeliveryEvent)
	Stats(ctx context.Context) (map[string]int, error)
	Status() dto.EmailServiceStatus
	CreateMessage(ctx context.Context, req dto.CreateMessageRequest) (*entity.OutreachMessage, error)
}

// EmailHandler exposes the outreach email endpoints.
type EmailHandler struct {
	email EmailService
}

// NewEmailHandler constructs an EmailHandler.
func NewEmailHandler(email EmailService) *EmailHandler {
	return &EmailHandler{email: email}
}

// Send handles POST /api/email/send requests.
func (h *EmailHandler) Send(c echo.Context) error {
	var req dto.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.To = strings.TrimSpace(req.To)
	if req.To == "" || req.Subject == "" {
		return Error(c, http.StatusBadRequest, "to and subject are required")
	}

	result := h.email.Send(c.Request().Context(), req)
	return c.JSON(http.StatusOK, result)
}

// SendBatch handles POST /api/email/batch/send requests.
func (h *EmailHandler) SendBatch(c echo.Context) error {
	var req dto.SendBatchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if len(req.Messages) == 0 {
		return Error(c, http.StatusBadRequest, "messages must not be empty")
	}

	response := h.email.SendBatch(c.Request().Context(), req.Messages)
	return c.JSON(http.StatusOK, response)
}

// Webhook handles POST /api/email/webhook requests from the delivery
// provider. Always answers 200 with no body; event-level failures are
// logged inside the service and never surface here.
func (h *EmailHandler) Webhook(c echo.Context) error {
	var batch []dto.DeliveryEvent
	if err := c.Bind(&batch); err != nil {
		return c.NoContent(http.StatusOK)
	}

	h.email.HandleEvents(c.Request().Context(), batch)
	return c.NoContent(http.StatusOK)
}

// Stats handles GET /api/email/stats requests.
func (h *EmailHandler) Stats(c echo.Context) error {
	counts, err := h.email.Stats(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load stats")
	}
	return c.JSON(http.StatusOK, counts)
}

// Status handles GET /api/email/status requests.
func (h *EmailHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.email.Status())
}

// CreateMessage handles POST /api/email/messages requests.
func (h *EmailHandler) CreateMessage(c echo.Context) error {
	var req dto.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if req.BusinessID == "" || strings.TrimSpace(req.MessageText) == "" {
		return Error(c, http.StatusBadRequest, "business_id and message_text are required")
	}

	message, err := h.email.CreateMessage(c.Request().Context(), req)
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to create message")
	}

	return Success(c, http.StatusCreated, "message created", message)
}
