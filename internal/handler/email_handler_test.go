package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-outreach/internal/dto"
	"github.com/octobees/lead-outreach/internal/entity"
)

type mockEmailService struct {
	send          func(ctx context.Context, req dto.SendEmailRequest) dto.SendResult
	sendBatch     func(ctx context.Context, requests []dto.SendEmailRequest) dto.SendBatchResponse
	handleEvents  func(ctx context.Context, batch []dto.DeliveryEvent)
	stats         func(ctx context.Context) (map[string]int, error)
	status        func() dto.EmailServiceStatus
	createMessage func(ctx context.Context, req dto.CreateMessageRequest) (*entity.OutreachMessage, error)
}

func (m *mockEmailService) Send(ctx context.Context, req dto.SendEmailRequest) dto.SendResult {
	return m.send(ctx, req)
}

func (m *mockEmailService) SendBatch(ctx context.Context, requests []dto.SendEmailRequest) dto.SendBatchResponse {
	return m.sendBatch(ctx, requests)
}

func (m *mockEmailService) HandleEvents(ctx context.Context, batch []dto.DeliveryEvent) {
	if m.handleEvents != nil {
		m.handleEvents(ctx, batch)
	}
}

func (m *mockEmailService) Stats(ctx context.Context) (map[string]int, error) {
	return m.stats(ctx)
}

func (m *mockEmailService) Status() dto.EmailServiceStatus {
	return m.status()
}

func (m *mockEmailService) CreateMessage(ctx context.Context, req dto.CreateMessageRequest) (*entity.OutreachMessage, error) {
	return m.createMessage(ctx, req)
}

func TestEmailHandler_Send(t *testing.T) {
	e := echo.New()

	t.Run("missing fields", func(t *testing.T) {
		handler := NewEmailHandler(&mockEmailService{})
		req := httptest.NewRequest(http.MethodPost, "/api/email/send", strings.NewReader(`{"to":""}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Send(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("provider failure stays 200", func(t *testing.T) {
		handler := NewEmailHandler(&mockEmailService{
			send: func(ctx context.Context, req dto.SendEmailRequest) dto.SendResult {
				return dto.SendResult{Success: false, Error: "Email service not configured"}
			},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/email/send", strings.NewReader(`{"to":"jane@acme.com","subject":"Hi","text":"x"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Send(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("send outcomes are reported in-body, got status %d", rec.Code)
		}

		var result dto.SendResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.Success || result.Error != "Email service not configured" {
			t.Fatalf("unexpected result: %+v", result)
		}
	})
}

func TestEmailHandler_SendBatch(t *testing.T) {
	e := echo.New()

	t.Run("empty batch rejected", func(t *testing.T) {
		handler := NewEmailHandler(&mockEmailService{})
		req := httptest.NewRequest(http.MethodPost, "/api/email/batch/send", strings.NewReader(`{"messages":[]}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.SendBatch(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("forwards messages in order", func(t *testing.T) {
		var got []dto.SendEmailRequest
		handler := NewEmailHandler(&mockEmailService{
			sendBatch: func(ctx context.Context, requests []dto.SendEmailRequest) dto.SendBatchResponse {
				got = requests
				return dto.SendBatchResponse{Total: 2, Sent: 2, Results: []dto.SendResult{{Success: true}, {Success: true}}}
			},
		})
		body := `{"messages":[{"to":"a@acme.com","subject":"1","text":"x"},{"to":"b@acme.com","subject":"2","text":"x"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/email/batch/send", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.SendBatch(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].To != "a@acme.com" || got[1].To != "b@acme.com" {
			t.Fatalf("unexpected forwarded batch: %+v", got)
		}
	})
}

func TestEmailHandler_Webhook(t *testing.T) {
	e := echo.New()

	t.Run("valid batch", func(t *testing.T) {
		var got []dto.DeliveryEvent
		handler := NewEmailHandler(&mockEmailService{
			handleEvents: func(ctx context.Context, batch []dto.DeliveryEvent) {
				got = batch
			},
		})
		body := `[{"event":"delivered","email":"jane@acme.com","message_id":"` + uuid.NewString() + `"}]`
		req := httptest.NewRequest(http.MethodPost, "/api/email/webhook", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Webhook(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("webhook responses carry no body, got %q", rec.Body.String())
		}
		if len(got) != 1 || got[0].Event != "delivered" {
			t.Fatalf("unexpected forwarded batch: %+v", got)
		}
	})

	t.Run("malformed payload still 200", func(t *testing.T) {
		handler := NewEmailHandler(&mockEmailService{
			handleEvents: func(ctx context.Context, batch []dto.DeliveryEvent) {
				t.Fatalf("malformed payloads must not reach the tracker")
			},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/email/webhook", strings.NewReader("{not json"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Webhook(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("provider callbacks are always acknowledged, got %d", rec.Code)
		}
	})
}

func TestEmailHandler_Stats(t *testing.T) {
	e := echo.New()

	t.Run("success", func(t *testing.T) {
		handler := NewEmailHandler(&mockEmailService{
			stats: func(ctx context.Context) (map[string]int, error) {
				return map[string]int{"sent": 4, "delivered": 3, "bounced": 1}, nil
			},
		})
		req := httptest.NewRequest(http.MethodGet, "/api/email/stats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Stats(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var counts map[string]int
		if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if counts["delivered"] != 3 {
			t.Fatalf("unexpected counts: %v", counts)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		handler := NewEmailHandler(&mockEmailService{
			stats: func(ctx context.Context) (map[string]int, error) {
				return nil, errors.New("query failed")
			},
		})
		req := httptest.NewRequest(http.MethodGet, "/api/email/stats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Stats(c)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestEmailHandler_Status(t *testing.T) {
	e := echo.New()
	handler := NewEmailHandler(&mockEmailService{
		status: func() dto.EmailServiceStatus {
			return dto.EmailServiceStatus{Configured: true, Provider: "sendgrid"}
		},
	})
	req := httptest.NewRequest(http.MethodGet, "/api/email/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Status(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var status dto.EmailServiceStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !status.Configured || status.Provider != "sendgrid" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestEmailHandler_CreateMessage(t *testing.T) {
	e := echo.New()

	t.Run("missing fields", func(t *testing.T) {
		handler := NewEmailHandler(&mockEmailService{})
		req := httptest.NewRequest(http.MethodPost, "/api/email/messages", strings.NewReader(`{"business_id":""}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.CreateMessage(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		messageID := uuid.New()
		handler := NewEmailHandler(&mockEmailService{
			createMessage: func(ctx context.Context, req dto.CreateMessageRequest) (*entity.OutreachMessage, error) {
				return &entity.OutreachMessage{ID: messageID, MessageText: req.MessageText, Status: entity.MessageGenerated}, nil
			},
		})
		body := `{"business_id":"` + uuid.NewString() + `","message_text":"Hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/email/messages", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.CreateMessage(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		var payload APIResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if payload.Status != "success" {
			t.Fatalf("unexpected envelope: %+v", payload)
		}
	})
}
