package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	pgxconn "github.com/jackc/pgx/v5/pgconn"
)

// pgxPool is the subset of pgxpool.Pool the repositories rely on; tests
// substitute stubs implementing it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgxconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
