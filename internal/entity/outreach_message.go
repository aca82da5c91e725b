package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageStatus is the delivery lifecycle state of an outreach message.
// The send path and the webhook handler both write this field.
type MessageStatus string

const (
	MessageGenerated    MessageStatus = "generated"
	MessageSent         MessageStatus = "sent"
	MessageFailed       MessageStatus = "failed"
	MessageDelivered    MessageStatus = "delivered"
	MessageOpened       MessageStatus = "opened"
	MessageClicked      MessageStatus = "clicked"
	MessageBounced      MessageStatus = "bounced"
	MessageUnsubscribed MessageStatus = "unsubscribed"
	MessageSpam         MessageStatus = "spam"
	MessagePending      MessageStatus = "pending"
)

// OutreachMessage is a single outbound email tracked through delivery.
// SentAt is set on the first transition into "sent" and never overwritten.
type OutreachMessage struct {
	ID          uuid.UUID     `json:"id"`
	BusinessID  uuid.UUID     `json:"business_id"`
	ContactID   *uuid.UUID    `json:"contact_id,omitempty"`
	MessageText string        `json:"message_text"`
	Status      MessageStatus `json:"status"`
	SentAt      *time.Time    `json:"sent_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
