package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/lead-outreach/internal/entity"
)

var (
	// ErrContactNotFound indicates no contact matched the lookup.
	ErrContactNotFound = errors.New("contact not found")
	// ErrContactDuplicate indicates the (business_id, email) pair already exists.
	ErrContactDuplicate = errors.New("contact already exists")
)

// ContactsRepository describes persistence operations for contacts.
type ContactsRepository interface {
	FindByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*entity.Contact, error)
	Create(ctx context.Context, contact *entity.Contact) error
}

// PGXContactsRepository implements ContactsRepository using pgx.
type PGXContactsRepository struct {
	pool pgxPool
}

// NewPGXContactsRepository wires a pgx backed repository.
func NewPGXContactsRepository(pool *pgxpool.Pool) *PGXContactsRepository {
	return &PGXContactsRepository{pool: pool}
}

// FindByBusinessAndEmail fetches the contact for a (business, email) pair.
func (r *PGXContactsRepository) FindByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, business_id, email, name, title, phone, email_verified, is_primary, created_at
        FROM contacts
        WHERE business_id = $1 AND email = $2
    `, businessID, email)

	var contact entity.Contact
	err := row.Scan(
		&contact.ID,
		&contact.BusinessID,
		&contact.Email,
		&contact.Name,
		&contact.Title,
		&contact.Phone,
		&contact.EmailVerified,
		&contact.IsPrimary,
		&contact.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return &contact, nil
}

// Create inserts a new contact row. A concurrent insert of the same
// (business_id, email) pair surfaces as ErrContactDuplicate.
func (r *PGXContactsRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO contacts (business_id, email, name, title, phone, email_verified, is_primary)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `, contact.BusinessID, contact.Email, contact.Name, contact.Title, contact.Phone, contact.EmailVerified, contact.IsPrimary)

	if err := row.Scan(&contact.ID, &contact.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %v", ErrContactDuplicate, pgErr)
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

var _ ContactsRepository = (*PGXContactsRepository)(nil)
