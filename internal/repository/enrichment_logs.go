package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/lead-outreach/internal/entity"
)

// EnrichmentLogsRepository appends audit records for provider calls. Rows are
// never updated or deleted.
type EnrichmentLogsRepository interface {
	Create(ctx context.Context, entry *entity.EnrichmentLog) error
}

// PGXEnrichmentLogsRepository implements EnrichmentLogsRepository using pgx.
type PGXEnrichmentLogsRepository struct {
	pool pgxPool
}

// NewPGXEnrichmentLogsRepository wires a pgx backed repository.
func NewPGXEnrichmentLogsRepository(pool *pgxpool.Pool) *PGXEnrichmentLogsRepository {
	return &PGXEnrichmentLogsRepository{pool: pool}
}

// Create appends one audit row.
func (r *PGXEnrichmentLogsRepository) Create(ctx context.Context, entry *entity.EnrichmentLog) error {
	if entry == nil {
		return fmt.Errorf("enrichment log payload is nil")
	}

	request := entry.RequestData
	if len(request) == 0 {
		request = json.RawMessage("{}")
	}
	response := entry.ResponseData
	if len(response) == 0 {
		response = json.RawMessage("{}")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO enrichment_logs (business_id, service, status, request_data, response_data, error_message)
        VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6)
    `, entry.BusinessID, entry.Service, entry.Status, request, response, entry.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert enrichment log: %w", err)
	}
	return nil
}

var _ EnrichmentLogsRepository = (*PGXEnrichmentLogsRepository)(nil)
