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

// ErrMessageNotFound indicates no outreach message matches the identifier.
var ErrMessageNotFound = errors.New("outreach message not found")

// MessagesRepository describes persistence operations for outreach messages.
type MessagesRepository interface {
	Create(ctx context.Context, message *entity.OutreachMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.OutreachMessage, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// PGXMessagesRepository implements MessagesRepository using pgx.
type PGXMessagesRepository struct {
	pool pgxPool
}

// NewPGXMessagesRepository wires a pgx backed repository.
func NewPGXMessagesRepository(pool *pgxpool.Pool) *PGXMessagesRepository {
	return &PGXMessagesRepository{pool: pool}
}

// Create inserts a new message in the "generated" state.
func (r *PGXMessagesRepository) Create(ctx context.Context, message *entity.OutreachMessage) error {
	if message == nil {
		return fmt.Errorf("message payload is nil")
	}
	if message.Status == "" {
		message.Status = entity.MessageGenerated
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO outreach_messages (business_id, contact_id, message_text, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at
    `, message.BusinessID, message.ContactID, message.MessageText, message.Status)

	if err := row.Scan(&message.ID, &message.CreatedAt, &message.UpdatedAt); err != nil {
		return fmt.Errorf("insert outreach message: %w", err)
	}
	return nil
}

// FindByID fetches a message by identifier.
func (r *PGXMessagesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.OutreachMessage, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, business_id, contact_id, message_text, status, sent_at, created_at, updated_at
        FROM outreach_messages
        WHERE id = $1
    `, id)

	var message entity.OutreachMessage
	err := row.Scan(
		&message.ID,
		&message.BusinessID,
		&message.ContactID,
		&message.MessageText,
		&message.Status,
		&message.SentAt,
		&message.CreatedAt,
		&message.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("query outreach message: %w", err)
	}
	return &message, nil
}

// MarkSent transitions the message into "sent". COALESCE keeps the original
// sent_at when the message was already sent once.
func (r *PGXMessagesRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE outreach_messages
        SET status = $2, sent_at = COALESCE(sent_at, NOW()), updated_at = NOW()
        WHERE id = $1
    `, id, entity.MessageSent)
	if err != nil {
		return fmt.Errorf("mark message sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// UpdateStatus writes the message's lifecycle state.
func (r *PGXMessagesRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE outreach_messages
        SET status = $2, updated_at = NOW()
        WHERE id = $1
    `, id, status)
	if err != nil {
		return fmt.Errorf("update message status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// CountByStatus groups messages by lifecycle state.
func (r *PGXMessagesRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM outreach_messages GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count messages by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}

var _ MessagesRepository = (*PGXMessagesRepository)(nil)
