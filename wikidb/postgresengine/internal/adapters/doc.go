// Package adapters provides database adapter implementations for the PostgreSQL engine.
//
// This package implements the adapter pattern to support multiple PostgreSQL database
// libraries: pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality
// through a common DBAdapter interface, allowing the engine to hand out scoped sessions
// regardless of the underlying database connection type.
//
// The adapters handle the specifics of each database library while presenting a
// unified interface for connection checkout, statement execution, and transactions.
package adapters
