package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/wikiservice/wikidb-go/wikidb"
	"github.com/wikiservice/wikidb-go/wikidb/postgresengine/internal/adapters"
)

const (
	logMsgAcquireSessionFailed = "failed to acquire a session from the pool"
	logMsgReleaseSessionFailed = "failed to release the session back to the pool"
	logMsgBeginTxFailed        = "failed to begin a transaction"
	logMsgCommitTxFailed       = "failed to commit the transaction"
	logMsgRollbackTxFailed     = "failed to roll back the transaction"
	logMsgStatementFailed      = "statement execution failed"
	logMsgPingFailed           = "database ping failed"
	logMsgSessionOpened        = "session opened"
	logMsgSessionClosed        = "session closed"
	logMsgTxCommitted          = "transaction committed"
	logMsgTxRolledBack         = "transaction rolled back"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "wikidb operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrSessionID           = "session_id"
	logAttrDurationMS          = "duration_ms"
	logActionQuery             = "query"
	logActionExec              = "exec"

	metricSessionCheckoutDuration = "wikidb_session_checkout_duration"
	metricStatementDuration       = "wikidb_statement_duration"
	metricDatabaseErrors          = "wikidb_database_errors"
	labelOperation                = "operation"
	labelStatus                   = "status"
	statusError                   = "error"
	operationAcquire              = "acquire"
	operationRelease              = "release"
	operationBegin                = "begin"
	operationCommit               = "commit"
	operationRollback             = "rollback"

	driverNamePostgres = "postgres"
)

// Engine represents the pooled entry point to the wiki database.
// It wraps a database adapter and hands out scoped sessions, one per logical
// unit of work, with customizable logging and metrics collection.
type Engine struct {
	db               adapters.DBAdapter
	logger           wikidb.Logger
	contextualLogger wikidb.ContextualLogger
	metricsCollector wikidb.MetricsCollector
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(pool *pgxpool.Pool, options ...Option) (*Engine, error) {
	if pool == nil {
		return nil, wikidb.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(pool), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, wikidb.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, wikidb.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (*Engine, error) {
	engine := &Engine{db: db}

	for _, option := range options {
		if err := option(engine); err != nil {
			return nil, err
		}
	}

	return engine, nil
}

// Connect builds a pgx pool from the given settings, verifies it when
// pre-ping is enabled, and returns an Engine bound to it.
// Closing the Engine closes the pool.
func Connect(ctx context.Context, settings wikidb.Settings, options ...Option) (*Engine, error) {
	poolConfig, configErr := PGXPoolConfig(settings)
	if configErr != nil {
		return nil, configErr
	}

	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, errors.Join(wikidb.ErrOpeningDatabaseFailed, poolErr)
	}

	engine, engineErr := NewEngineFromPGXPool(pool, options...)
	if engineErr != nil {
		pool.Close()
		return nil, engineErr
	}

	if settings.PrePing {
		if pingErr := engine.Ping(ctx); pingErr != nil {
			pool.Close()
			return nil, pingErr
		}
	}

	return engine, nil
}

// Ping verifies the database is reachable through the underlying pool.
func (e *Engine) Ping(ctx context.Context) error {
	if pingErr := e.db.Ping(ctx); pingErr != nil {
		e.logError(ctx, logMsgPingFailed, pingErr)
		return errors.Join(wikidb.ErrPingingDatabaseFailed, pingErr)
	}

	return nil
}

// Close closes the underlying pool and all its connections.
// Sessions checked out at the time of the call are released by the pool
// implementation according to its own semantics.
func (e *Engine) Close() error {
	return e.db.Close()
}

// Session checks out one connection from the pool and returns it wrapped as a
// scoped Session. The caller owns the session for the duration of its unit of
// work and must close it exactly once; prefer WithSession which guarantees that.
func (e *Engine) Session(ctx context.Context) (*Session, error) {
	start := time.Now()
	conn, acquireErr := e.db.Acquire(ctx)
	duration := time.Since(start)

	if acquireErr != nil {
		e.logError(ctx, logMsgAcquireSessionFailed, acquireErr)
		e.recordError(operationAcquire)

		return nil, errors.Join(wikidb.ErrAcquiringSessionFailed, acquireErr)
	}

	session := &Session{
		id:     uuid.New(),
		conn:   conn,
		engine: e,
	}

	e.recordDuration(metricSessionCheckoutDuration, operationAcquire, duration)
	e.logOperation(ctx, logMsgSessionOpened,
		logAttrSessionID, session.id.String(),
		logAttrDurationMS, e.toMilliseconds(duration))

	return session, nil
}

// WithSession runs fn with a freshly acquired session and guarantees the
// session is released when fn's unit of work ends, regardless of normal
// completion, error, or panic.
func (e *Engine) WithSession(ctx context.Context, fn func(ctx context.Context, session *Session) error) error {
	if fn == nil {
		return wikidb.ErrNilSessionFunc
	}

	session, sessionErr := e.Session(ctx)
	if sessionErr != nil {
		return sessionErr
	}

	defer e.closeSession(ctx, session)

	return fn(ctx, session)
}

// closeSession releases a session and logs any release failure.
// A session that was already closed by the caller is left alone.
func (e *Engine) closeSession(ctx context.Context, session *Session) {
	closeErr := session.Close()
	if closeErr == nil || errors.Is(closeErr, wikidb.ErrSessionClosed) {
		return
	}

	e.logWarn(ctx, logMsgReleaseSessionFailed,
		logAttrError, closeErr.Error(),
		logAttrSessionID, session.id.String())
	e.recordError(operationRelease)
}
