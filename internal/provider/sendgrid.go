package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const defaultSendGridBaseURL = "https://api.sendgrid.com/v3"

// OutboundEmail is a single message handed to the delivery provider.
// CustomArgs are opaque correlation ids echoed back in webhook events.
type OutboundEmail struct {
	To         string
	Subject    string
	Text       string
	HTML       string
	CustomArgs map[string]string
}

// SendGridClient delivers outreach mail through the SendGrid v3 API.
type SendGridClient struct {
	apiKey      string
	baseURL     string
	senderEmail string
	senderName  string
	client      *http.Client
}

// NewSendGridClient builds a client; a nil http.Client gets a sane timeout.
func NewSendGridClient(apiKey, senderEmail, senderName string, client *http.Client) *SendGridClient {
	return &SendGridClient{
		apiKey:      apiKey,
		baseURL:     defaultSendGridBaseURL,
		senderEmail: senderEmail,
		senderName:  senderName,
		client:      defaultClient(client),
	}
}

// Configured reports whether API credentials are present.
func (c *SendGridClient) Configured() bool {
	return c.apiKey != ""
}

// Name identifies the delivery provider for status reporting.
func (c *SendGridClient) Name() string {
	return "sendgrid"
}

// Send submits the message and returns the provider message id, surfaced via
// the X-Message-Id response header.
func (c *SendGridClient) Send(ctx context.Context, msg OutboundEmail) (string, error) {
	content := []map[string]string{{"type": "text/plain", "value": msg.Text}}
	if msg.HTML != "" {
		content = append(content, map[string]string{"type": "text/html", "value": msg.HTML})
	}

	personalization := map[string]any{
		"to": []map[string]string{{"email": msg.To}},
	}
	if len(msg.CustomArgs) > 0 {
		personalization["custom_args"] = msg.CustomArgs
	}

	payload := map[string]any{
		"personalizations": []map[string]any{personalization},
		"from": map[string]string{
			"email": c.senderEmail,
			"name":  c.senderName,
		},
		"subject": msg.Subject,
		"content": content,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal mail payload: %w", err)
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/mail/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", apiError("sendgrid", resp)
	}

	// Header lookup is case-insensitive via canonicalization.
	return resp.Header.Get("X-Message-Id"), nil
}
