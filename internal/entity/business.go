package entity

import (
	"time"

	"github.com/google/uuid"
)

// EnrichmentStatus tracks where a business sits in the enrichment workflow.
type EnrichmentStatus string

const (
	EnrichmentPending  EnrichmentStatus = "pending"
	EnrichmentEnriched EnrichmentStatus = "enriched"
	EnrichmentFailed   EnrichmentStatus = "failed"
)

// Business represents a lead stored in the catalogue. Rows are created by the
// scraping pipeline; this service only mutates the enrichment-derived fields.
type Business struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Website          *string          `json:"website,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Industry         *string          `json:"industry,omitempty"`
	EmployeeCount    *int             `json:"employee_count,omitempty"`
	YearFounded      *int             `json:"year_founded,omitempty"`
	Country          *string          `json:"country,omitempty"`
	City             *string          `json:"city,omitempty"`
	EnrichmentStatus EnrichmentStatus `json:"enrichment_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
