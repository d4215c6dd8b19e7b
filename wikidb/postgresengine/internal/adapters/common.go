package adapters

import (
	"context"
	"database/sql"

	"github.com/wikiservice/wikidb-go/wikidb"
)

// DBAdapter defines the interface for pool operations needed by the engine.
type DBAdapter interface {
	Acquire(ctx context.Context) (DBConn, error)
	Ping(ctx context.Context) error
	Close() error
}

// DBConn defines the interface for a single checked-out connection.
// Release returns the connection to the pool and must be called exactly once.
type DBConn interface {
	Query(ctx context.Context, query string, args ...any) (wikidb.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (wikidb.Result, error)
	Begin(ctx context.Context) (DBTx, error)
	Release() error
}

// DBTx defines the interface for a transaction running on a checked-out connection.
type DBTx interface {
	Query(ctx context.Context, query string, args ...any) (wikidb.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (wikidb.Result, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// stdRows wraps standard library sql.Rows to implement the wikidb.Rows interface.
type stdRows struct {
	rows *sql.Rows
}

// Next advances to the next row.
func (s *stdRows) Next() bool {
	return s.rows.Next()
}

// Scan copies row values into provided destinations.
func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

// Err returns the error, if any, encountered during iteration.
func (s *stdRows) Err() error {
	return s.rows.Err()
}

// Close closes the rows iterator.
func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement the wikidb.Result interface.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}
