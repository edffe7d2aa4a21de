// Package database provides the pgx connection pool used by provisioned
// services: connection with retry, the fixed idempotent schema
// initialization batch, and a lifecycle component wrapping the pool.
//
// The pool is the one resource shared with request-handling code after
// bootstrap completes. It is handed out as a shared handle; connection
// checkout concurrency is delegated entirely to pgxpool.
package database
