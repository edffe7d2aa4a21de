package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the slice of the pool needed by schema initialization.
// *pgxpool.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// initStatements is the fixed idempotent setup batch executed once when the
// pool is provisioned. Re-running it against an initialized database is a
// no-op.
var initStatements = []string{
	`CREATE TABLE IF NOT EXISTS messages (
		id      SERIAL PRIMARY KEY,
		message TEXT NOT NULL
	)`,
	`INSERT INTO messages (message)
		SELECT 'Hello from harbor!'
		WHERE NOT EXISTS (SELECT 1 FROM messages)`,
}

// InitSchema executes the fixed setup batch. The first failing statement
// aborts the batch and is returned; the caller treats it as fatal.
func InitSchema(ctx context.Context, db Execer) error {
	for i, stmt := range initStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema init statement %d failed: %w", i+1, err)
		}
	}
	return nil
}
