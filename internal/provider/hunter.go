package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultHunterBaseURL = "https://api.hunter.io/v2"

// EmailVerification carries the provider's deliverability verdict.
type EmailVerification struct {
	Status string `json:"status"`
}

// DiscoveredEmail is one address found during a domain search.
type DiscoveredEmail struct {
	Value        string             `json:"value"`
	Type         string             `json:"type"`
	Confidence   int                `json:"confidence"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Position     string             `json:"position"`
	Seniority    string             `json:"seniority"`
	PhoneNumber  string             `json:"phone_number"`
	Verification *EmailVerification `json:"verification"`
}

// DomainSearchResult is the payload of a Hunter domain search.
type DomainSearchResult struct {
	Domain       string            `json:"domain"`
	Organization string            `json:"organization"`
	Emails       []DiscoveredEmail `json:"emails"`
}

// HunterClient queries the Hunter email discovery API.
type HunterClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHunterClient builds a client; a nil http.Client gets a sane timeout.
func NewHunterClient(apiKey string, client *http.Client) *HunterClient {
	return &HunterClient{
		apiKey:  apiKey,
		baseURL: defaultHunterBaseURL,
		client:  defaultClient(client),
	}
}

// Configured reports whether API credentials are present.
func (c *HunterClient) Configured() bool {
	return c.apiKey != ""
}

// DomainSearch lists email addresses discovered for a bare domain.
func (c *HunterClient) DomainSearch(ctx context.Context, domain string, limit int) (*DomainSearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("domain", domain)
	params.Set("api_key", c.apiKey)
	params.Set("limit", strconv.Itoa(limit))

	endpoint := strings.TrimRight(c.baseURL, "/") + "/domain-search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create domain search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("domain search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apiError("hunter", resp)
	}

	var payload struct {
		Data DomainSearchResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode domain search payload: %w", err)
	}
	return &payload.Data, nil
}
