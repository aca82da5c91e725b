package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Enrichment provider service names as recorded in the audit log.
const (
	ServiceHunter   = "hunter"
	ServiceAbstract = "abstract"
)

// Audit outcome values.
const (
	LogStatusSuccess = "success"
	LogStatusFailed  = "failed"
)

// EnrichmentLog is an append-only audit record of a single provider call.
// Rows are never updated or deleted.
type EnrichmentLog struct {
	ID           uuid.UUID       `json:"id"`
	BusinessID   uuid.UUID       `json:"business_id"`
	Service      string          `json:"service"`
	Status       string          `json:"status"`
	RequestData  json.RawMessage `json:"request_data,omitempty"`
	ResponseData json.RawMessage `json:"response_data,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
