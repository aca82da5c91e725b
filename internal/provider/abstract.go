package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultAbstractBaseURL = "https://companyenrichment.abstractapi.com/v1"

// CompanyProfile is the firmographic record returned by the company-data
// provider. Zero values mean the provider had no data for the field.
type CompanyProfile struct {
	Name          string `json:"name"`
	Domain        string `json:"domain"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employees_count"`
	YearFounded   int    `json:"year_founded"`
	Country       string `json:"country"`
	Locality      string `json:"locality"`
	Phone         string `json:"phone"`
}

// AbstractClient queries the Abstract company enrichment API.
type AbstractClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAbstractClient builds a client; a nil http.Client gets a sane timeout.
func NewAbstractClient(apiKey string, client *http.Client) *AbstractClient {
	return &AbstractClient{
		apiKey:  apiKey,
		baseURL: defaultAbstractBaseURL,
		client:  defaultClient(client),
	}
}

// Configured reports whether API credentials are present.
func (c *AbstractClient) Configured() bool {
	return c.apiKey != ""
}

// FetchCompany looks up firmographic data for a bare domain.
func (c *AbstractClient) FetchCompany(ctx context.Context, domain string) (*CompanyProfile, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("domain", domain)

	endpoint := strings.TrimRight(c.baseURL, "/") + "/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create company lookup request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("company lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apiError("abstract", resp)
	}

	var profile CompanyProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode company payload: %w", err)
	}
	return &profile, nil
}
