package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/lead-outreach/internal/dto"
	"github.com/octobees/lead-outreach/internal/entity"
	"github.com/octobees/lead-outreach/internal/provider"
	"github.com/octobees/lead-outreach/internal/repository"
)

// EmailDeliveryProvider submits outreach mail and reports a provider message id.
type EmailDeliveryProvider interface {
	Configured() bool
	Name() string
	Send(ctx context.Context, msg provider.OutboundEmail) (string, error)
}

// eventStatus maps delivery webhook event types onto the message lifecycle.
// Unknown event types are a deliberate no-op. Note that "deferred" and
// "group_resubscribe" move a sent message back to pending.
var eventStatus = map[string]entity.MessageStatus{
	"processed":         entity.MessageSent,
	"dropped":           entity.MessageFailed,
	"delivered":         entity.MessageDelivered,
	"deferred":          entity.MessagePending,
	"bounce":            entity.MessageBounced,
	"open":              entity.MessageOpened,
	"click":             entity.MessageClicked,
	"spamreport":        entity.MessageSpam,
	"unsubscribe":       entity.MessageUnsubscribed,
	"group_unsubscribe": entity.MessageUnsubscribed,
	"group_resubscribe": entity.MessagePending,
}

// OutreachService sends tracked outreach mail and applies delivery webhook
// events onto the message lifecycle.
type OutreachService struct {
	messages repository.MessagesRepository
	delivery EmailDeliveryProvider
	delay    time.Duration
	sleep    func(time.Duration)
}

// NewOutreachService wires the delivery tracker. delivery may be nil when no
// provider is configured; sends then fail fast with a structured result.
func NewOutreachService(messages repository.MessagesRepository, delivery EmailDeliveryProvider, delay time.Duration) *OutreachService {
	return &OutreachService{
		messages: messages,
		delivery: delivery,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

func (s *OutreachService) configured() bool {
	return s.delivery != nil && s.delivery.Configured()
}

// Status reports whether the delivery provider is usable.
func (s *OutreachService) Status() dto.EmailServiceStatus {
	status := dto.EmailServiceStatus{Configured: s.configured()}
	if s.delivery != nil {
		status.Provider = s.delivery.Name()
	}
	return status
}

// Send delivers one message and records the outcome on the referenced
// outreach message. It never returns an error to the caller; failures are
// reported inside the result.
func (s *OutreachService) Send(ctx context.Context, req dto.SendEmailRequest) dto.SendResult {
	if !s.configured() {
		return dto.SendResult{Success: false, Error: "Email service not configured"}
	}

	customArgs := map[string]string{}
	if req.BusinessID != "" {
		customArgs["business_id"] = req.BusinessID
	}
	if req.MessageID != "" {
		customArgs["message_id"] = req.MessageID
	}

	providerID, err := s.delivery.Send(ctx, provider.OutboundEmail{
		To:         req.To,
		Subject:    req.Subject,
		Text:       req.Text,
		HTML:       req.HTML,
		CustomArgs: customArgs,
	})
	if err != nil {
		s.transition(ctx, req.MessageID, entity.MessageFailed)
		return dto.SendResult{Success: false, Error: err.Error()}
	}

	s.markSent(ctx, req.MessageID)
	return dto.SendResult{Success: true, MessageID: providerID}
}

// SendBatch delivers messages sequentially with a fixed delay between items
// and returns one result per input, in input order.
func (s *OutreachService) SendBatch(ctx context.Context, requests []dto.SendEmailRequest) dto.SendBatchResponse {
	response := dto.SendBatchResponse{Results: make([]dto.SendResult, 0, len(requests))}
	for i, req := range requests {
		if i > 0 && s.delay > 0 {
			s.sleep(s.delay)
		}

		result := s.Send(ctx, req)
		if result.Success {
			response.Sent++
		} else {
			response.Failed++
		}
		response.Results = append(response.Results, result)
		response.Total++
	}
	return response
}

// HandleEvents applies a webhook event batch. Each event is processed
// independently; a bad event is logged and never blocks the rest.
func (s *OutreachService) HandleEvents(ctx context.Context, batch []dto.DeliveryEvent) {
	for _, event := range batch {
		if event.MessageID == "" {
			log.Printf("webhook event without correlation id event=%s email=%s", event.Event, event.Email)
			continue
		}

		status, ok := eventStatus[event.Event]
		if !ok {
			continue
		}

		if status == entity.MessageSent {
			s.markSent(ctx, event.MessageID)
			continue
		}
		s.transition(ctx, event.MessageID, status)
	}
}

// Stats groups outreach messages by lifecycle state.
func (s *OutreachService) Stats(ctx context.Context) (map[string]int, error) {
	return s.messages.CountByStatus(ctx)
}

// CreateMessage stores a new generated outreach message.
func (s *OutreachService) CreateMessage(ctx context.Context, req dto.CreateMessageRequest) (*entity.OutreachMessage, error) {
	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("invalid business_id: %w", err)
	}

	message := &entity.OutreachMessage{
		BusinessID:  businessID,
		MessageText: req.MessageText,
		Status:      entity.MessageGenerated,
	}
	if req.ContactID != "" {
		contactID, err := uuid.Parse(req.ContactID)
		if err != nil {
			return nil, fmt.Errorf("invalid contact_id: %w", err)
		}
		message.ContactID = &contactID
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// markSent moves a message into "sent", keeping the first sent_at.
func (s *OutreachService) markSent(ctx context.Context, messageID string) {
	id, ok := parseMessageID(messageID)
	if !ok {
		return
	}
	if err := s.messages.MarkSent(ctx, id); err != nil {
		log.Printf("mark sent failed message_id=%s: %v", messageID, err)
	}
}

// transition writes a lifecycle state for a correlated message.
func (s *OutreachService) transition(ctx context.Context, messageID string, status entity.MessageStatus) {
	id, ok := parseMessageID(messageID)
	if !ok {
		return
	}
	if err := s.messages.UpdateStatus(ctx, id, status); err != nil {
		log.Printf("status update failed message_id=%s status=%s: %v", messageID, status, err)
	}
}

func parseMessageID(messageID string) (uuid.UUID, bool) {
	if messageID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(messageID)
	if err != nil {
		log.Printf("unparseable correlation message id %q", messageID)
		return uuid.Nil, false
	}
	return id, true
}
