package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the slice of *pgxpool.Pool the bootstrap and request path rely
// on. Keeping it an interface lets provisioning factories and tests supply
// substitutes; production hosts hand out the real pool from Connect.
type Pool interface {
	// Exec runs a statement. Used by schema initialization.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	// QueryRow runs a single-row query. Used by request handlers.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	// Ping verifies the pool still reaches the database.
	Ping(ctx context.Context) error
	// Close releases every pooled connection.
	Close()
}
