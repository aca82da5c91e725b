// Package events publishes domain events to the real-time subscriber service.
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// Sink delivers named domain events to downstream subscribers. Delivery is
// best-effort; callers log and continue on error.
type Sink interface {
	Publish(ctx context.Context, event string, payload any) error
}

// HTTPSink posts events to a subscriber service.
type HTTPSink struct {
	client  *http.Client
	baseURL string
}

// NewHTTPSink builds a sink for the subscriber base URL, auto-configuring an
// ID token client for service-to-service calls when none is supplied.
func NewHTTPSink(client *http.Client, baseURL string) *HTTPSink {
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), baseURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &HTTPSink{client: client, baseURL: baseURL}
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Publish posts one event to the subscriber's /events endpoint.
func (s *HTTPSink) Publish(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("event request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("event sink returned status %d", resp.StatusCode)
	}
	return nil
}

// NopSink discards events; used when no subscriber is configured.
type NopSink struct{}

// Publish implements Sink.
func (NopSink) Publish(context.Context, string, any) error { return nil }

var (
	_ Sink = (*HTTPSink)(nil)
	_ Sink = NopSink{}
)
