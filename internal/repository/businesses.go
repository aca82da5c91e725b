package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/lead-outreach/internal/entity"
)

// ErrBusinessNotFound indicates no business matches the given identifier.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessEnrichmentUpdate carries the fields the orchestrator merges into a
// business row. Nil fields leave the stored value untouched.
type BusinessEnrichmentUpdate struct {
	Industry      *string
	EmployeeCount *int
	YearFounded   *int
	Country       *string
	City          *string
	Phone         *string
	Status        entity.EnrichmentStatus
}

// BusinessesRepository describes persistence operations for businesses.
type BusinessesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	FindPendingEnrichment(ctx context.Context, limit int) ([]entity.Business, error)
	UpdateEnrichment(ctx context.Context, id uuid.UUID, update BusinessEnrichmentUpdate) error
}

// PGXBusinessesRepository implements BusinessesRepository using pgx.
type PGXBusinessesRepository struct {
	pool pgxPool
}

// NewPGXBusinessesRepository wires a pgx backed repository.
func NewPGXBusinessesRepository(pool *pgxpool.Pool) *PGXBusinessesRepository {
	return &PGXBusinessesRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const businessColumns = `id, name, website, phone, industry, employee_count, year_founded, country, city, enrichment_status, created_at, updated_at`

func scanBusiness(row pgx.Row) (*entity.Business, error) {
	var b entity.Business
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Website,
		&b.Phone,
		&b.Industry,
		&b.EmployeeCount,
		&b.YearFounded,
		&b.Country,
		&b.City,
		&b.EnrichmentStatus,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByID fetches a business by identifier.
func (r *PGXBusinessesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)

	business, err := scanBusiness(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("query business by id: %w", err)
	}
	return business, nil
}

// FindPendingEnrichment lists up to limit businesses awaiting enrichment that
// have a website, oldest first.
func (r *PGXBusinessesRepository) FindPendingEnrichment(ctx context.Context, limit int) ([]entity.Business, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+businessColumns+`
        FROM businesses
        WHERE enrichment_status = $1 AND website IS NOT NULL
        ORDER BY created_at ASC
        LIMIT $2
    `, entity.EnrichmentPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending businesses: %w", err)
	}
	defer rows.Close()

	var businesses []entity.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business row: %w", err)
		}
		businesses = append(businesses, *business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

// UpdateEnrichment merges enrichment-derived fields and writes the final
// status. COALESCE keeps stored values where the provider had no data.
func (r *PGXBusinessesRepository) UpdateEnrichment(ctx context.Context, id uuid.UUID, update BusinessEnrichmentUpdate) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE businesses SET
            industry = COALESCE($2, industry),
            employee_count = COALESCE($3, employee_count),
            year_founded = COALESCE($4, year_founded),
            country = COALESCE($5, country),
            city = COALESCE($6, city),
            phone = COALESCE($7, phone),
            enrichment_status = $8,
            updated_at = NOW()
        WHERE id = $1
    `, id, update.Industry, update.EmployeeCount, update.YearFounded, update.Country, update.City, update.Phone, update.Status)
	if err != nil {
		return fmt.Errorf("update business enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

var _ BusinessesRepository = (*PGXBusinessesRepository)(nil)
