package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/wikiservice/wikidb-go/wikidb"
)

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter backed by the given database handle.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// Acquire checks out a dedicated connection from the sqlx.DB pool.
func (s *SQLXAdapter) Acquire(ctx context.Context) (DBConn, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}

	return &sqlxConn{conn: conn}, nil
}

// Ping verifies the database is reachable.
func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database handle and its pool.
func (s *SQLXAdapter) Close() error {
	return s.db.Close()
}

// sqlxConn wraps sqlx.Conn to implement the DBConn interface.
type sqlxConn struct {
	conn *sqlx.Conn
}

// Query executes a query on the checked-out connection and returns wrapped rows.
func (c *sqlxConn) Query(ctx context.Context, query string, args ...any) (wikidb.Rows, error) {
	rows, err := c.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows.Rows}, nil
}

// Exec executes a statement on the checked-out connection and returns wrapped result.
func (c *sqlxConn) Exec(ctx context.Context, query string, args ...any) (wikidb.Result, error) {
	result, err := c.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

// Begin starts a transaction on the checked-out connection.
func (c *sqlxConn) Begin(ctx context.Context) (DBTx, error) {
	tx, err := c.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx.Tx}, nil
}

// Release returns the connection to the pool.
func (c *sqlxConn) Release() error {
	return c.conn.Close()
}
