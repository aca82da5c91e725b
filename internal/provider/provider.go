// Package provider contains thin HTTP clients for the third-party APIs the
// enrichment and outreach workflows depend on.
package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

func defaultClient(client *http.Client) *http.Client {
	if client == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return client
}

// apiError extracts a readable message from a provider error response.
func apiError(name string, resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return fmt.Errorf("%s returned status %d", name, resp.StatusCode)
	}

	var payload struct {
		Error  string `json:"error"`
		Errors []struct {
			Details string `json:"details"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return fmt.Errorf("%s: %s", name, payload.Error)
		}
		if len(payload.Errors) > 0 {
			if msg := payload.Errors[0].Details; msg != "" {
				return fmt.Errorf("%s: %s", name, msg)
			}
			if msg := payload.Errors[0].Message; msg != "" {
				return fmt.Errorf("%s: %s", name, msg)
			}
		}
	}
	return fmt.Errorf("%s returned status %d: %s", name, resp.StatusCode, string(data))
}
