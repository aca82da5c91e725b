package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	pgxconn "github.com/jackc/pgx/v5/pgconn"
)

// stubPool implements pgxPool with pluggable behavior per test.
type stubPool struct {
	exec     func(ctx context.Context, sql string, args ...any) (pgxconn.CommandTag, error)
	query    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRow func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *stubPool) Exec(ctx context.Context, sql string, args ...any) (pgxconn.CommandTag, error) {
	return s.exec(ctx, sql, args...)
}

func (s *stubPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.query(ctx, sql, args...)
}

func (s *stubPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.queryRow(ctx, sql, args...)
}

// rowFunc adapts a closure to pgx.Row.
type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

// stubRows replays a fixed list of scan closures as pgx.Rows.
type stubRows struct {
	scans []func(dest ...any) error
	idx   int
	err   error
}

func (s *stubRows) Close()                                        {}
func (s *stubRows) Err() error                                    { return s.err }
func (s *stubRows) CommandTag() pgxconn.CommandTag                { return pgxconn.CommandTag{} }
func (s *stubRows) FieldDescriptions() []pgxconn.FieldDescription { return nil }
func (s *stubRows) Next() bool                                    { return s.idx < len(s.scans) }
func (s *stubRows) Values() ([]any, error)                        { return nil, nil }
func (s *stubRows) RawValues() [][]byte                           { return nil }
func (s *stubRows) Conn() *pgx.Conn                               { return nil }

func (s *stubRows) Scan(dest ...any) error {
	scan := s.scans[s.idx]
	s.idx++
	return scan(dest...)
}
