package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxconn "github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/lead-outreach/internal/entity"
)

func TestPGXMessagesRepository_MarkSentKeepsFirstTimestamp(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	pool := &stubPool{
		exec: func(ctx context.Context, sql string, args ...any) (pgxconn.CommandTag, error) {
			capturedSQL = sql
			capturedArgs = args
			return pgxconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	repo := &PGXMessagesRepository{pool: pool}

	id := uuid.New()
	if err := repo.MarkSent(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(capturedSQL, "COALESCE(sent_at, NOW())") {
		t.Fatalf("mark sent must not overwrite an existing sent_at, got query: %s", capturedSQL)
	}
	if capturedArgs[1] != entity.MessageSent {
		t.Fatalf("expected sent status arg, got %v", capturedArgs[1])
	}
}

func TestPGXMessagesRepository_MarkSentUnknownMessage(t *testing.T) {
	pool := &stubPool{
		exec: func(ctx context.Context, sql string, args ...any) (pgxconn.CommandTag, error) {
			return pgxconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	repo := &PGXMessagesRepository{pool: pool}

	err := repo.MarkSent(context.Background(), uuid.New())
	if !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestPGXMessagesRepository_UpdateStatus(t *testing.T) {
	var capturedArgs []any
	pool := &stubPool{
		exec: func(ctx context.Context, sql string, args ...any) (pgxconn.CommandTag, error) {
			capturedArgs = args
			return pgxconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	repo := &PGXMessagesRepository{pool: pool}

	if err := repo.UpdateStatus(context.Background(), uuid.New(), entity.MessageDelivered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedArgs[1] != entity.MessageDelivered {
		t.Fatalf("expected delivered status arg, got %v", capturedArgs[1])
	}
}

func TestPGXMessagesRepository_FindByIDNotFound(t *testing.T) {
	pool := &stubPool{
		queryRow: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return rowFunc(func(dest ...any) error { return pgx.ErrNoRows })
		},
	}
	repo := &PGXMessagesRepository{pool: pool}

	_, err := repo.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestPGXMessagesRepository_CountByStatus(t *testing.T) {
	pool := &stubPool{
		query: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &stubRows{scans: []func(dest ...any) error{
				func(dest ...any) error {
					*dest[0].(*string) = "sent"
					*dest[1].(*int) = 7
					return nil
				},
				func(dest ...any) error {
					*dest[0].(*string) = "bounced"
					*dest[1].(*int) = 2
					return nil
				},
			}}, nil
		},
	}
	repo := &PGXMessagesRepository{pool: pool}

	counts, err := repo.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["sent"] != 7 || counts["bounced"] != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestPGXMessagesRepository_CreateDefaultsToGenerated(t *testing.T) {
	var capturedArgs []any
	pool := &stubPool{
		queryRow: func(ctx context.Context, sql string, args ...any) pgx.Row {
			capturedArgs = args
			return rowFunc(func(dest ...any) error {
				*dest[0].(*uuid.UUID) = uuid.New()
				*dest[1].(*time.Time) = time.Now()
				*dest[2].(*time.Time) = time.Now()
				return nil
			})
		},
	}
	repo := &PGXMessagesRepository{pool: pool}

	msg := &entity.OutreachMessage{BusinessID: uuid.New(), MessageText: "hello"}
	if err := repo.Create(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedArgs[3] != entity.MessageGenerated {
		t.Fatalf("expected generated status, got %v", capturedArgs[3])
	}
	if msg.ID == uuid.Nil {
		t.Fatalf("expected id to be populated")
	}
}
