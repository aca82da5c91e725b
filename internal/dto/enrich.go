package dto

// ServiceError reports a single provider failure inside an enrichment result.
type ServiceError struct {
	Service string `json:"service"`
	Error   string `json:"error"`
}

// EnrichmentResult is the payload returned by a single-business enrichment.
// Provider payloads are nil when the provider was skipped or failed.
type EnrichmentResult struct {
	BusinessID   string         `json:"businessId"`
	BusinessName string         `json:"businessName"`
	Abstract     map[string]any `json:"abstract"`
	Hunter       map[string]any `json:"hunter"`
	Errors       []ServiceError `json:"errors"`
}

// BatchProcessRequest selects how many pending businesses to enrich.
type BatchProcessRequest struct {
	Count int `json:"count"`
}

// BatchItemResult records the outcome for one business inside a batch run.
type BatchItemResult struct {
	BusinessID   string `json:"businessId"`
	BusinessName string `json:"businessName"`
	Status       string `json:"status"`
	ErrorCount   int    `json:"errorCount"`
	Error        string `json:"error,omitempty"`
}

// BatchProcessResponse aggregates a batch enrichment run.
type BatchProcessResponse struct {
	Message  string            `json:"message"`
	Enriched int               `json:"enriched"`
	Failed   int               `json:"failed"`
	Total    int               `json:"total"`
	Results  []BatchItemResult `json:"results"`
}
