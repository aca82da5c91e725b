package dto

// DeliveryEvent is one entry of the delivery provider's webhook batch.
// MessageID and BusinessID arrive through the custom args embedded at send
// time; either may be absent for mail not originated by this service.
type DeliveryEvent struct {
	Event      string `json:"event"`
	Email      string `json:"email"`
	Timestamp  int64  `json:"timestamp,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
	BusinessID string `json:"business_id,omitempty"`
	SGEventID  string `json:"sg_event_id,omitempty"`
}

// SendEmailRequest triggers a single outreach send.
type SendEmailRequest struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Text       string `json:"text"`
	HTML       string `json:"html,omitempty"`
	BusinessID string `json:"business_id,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
}

// SendResult is the structured outcome of one send attempt.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendBatchRequest carries an ordered list of sends.
type SendBatchRequest struct {
	Messages []SendEmailRequest `json:"messages"`
}

// SendBatchResponse aggregates a batch send run; Results preserves input order.
type SendBatchResponse struct {
	Total   int          `json:"total"`
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Results []SendResult `json:"results"`
}

// CreateMessageRequest stores a new generated outreach message.
type CreateMessageRequest struct {
	BusinessID  string `json:"business_id"`
	ContactID   string `json:"contact_id,omitempty"`
	MessageText string `json:"message_text"`
}

// EmailServiceStatus reports whether the delivery provider is usable.
type EmailServiceStatus struct {
	Configured bool   `json:"configured"`
	Provider   string `json:"provider"`
}
