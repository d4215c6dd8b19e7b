package wikidb

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrNilSessionFunc = errors.New("nil session function supplied")
var ErrSessionClosed = errors.New("session is already closed")
var ErrAcquiringSessionFailed = errors.New("acquiring a session from the pool failed")
var ErrReleasingSessionFailed = errors.New("releasing the session back to the pool failed")
var ErrBeginningTxFailed = errors.New("beginning a transaction failed")
var ErrCommittingTxFailed = errors.New("committing the transaction failed")
var ErrRollingBackTxFailed = errors.New("rolling back the transaction failed")
var ErrParsingPoolConfigFailed = errors.New("parsing the pool configuration failed")
var ErrOpeningDatabaseFailed = errors.New("opening the database connection failed")
var ErrPingingDatabaseFailed = errors.New("pinging the database failed")

// Rows is a driver-independent view on query result rows.
// It is implemented by the internal adapters for pgx, sql.DB and sqlx.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Result is a driver-independent view on statement execution results.
type Result interface {
	RowsAffected() (int64, error)
}
