package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wikiservice/wikidb-go/wikidb"
	"github.com/wikiservice/wikidb-go/wikidb/postgresengine/internal/adapters"
)

// Session is a unit-of-work handle bound to one pooled connection.
// It is owned exclusively by the caller for the duration of the unit of work
// and is not safe for concurrent use. Driver errors from Query and Exec
// surface as-is; the session only guarantees release of its connection.
type Session struct {
	id     uuid.UUID
	conn   adapters.DBConn
	engine *Engine
	closed bool
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Query executes a query on the session's connection.
// The returned rows must be closed by the caller before the session ends.
func (s *Session) Query(ctx context.Context, query string, args ...any) (wikidb.Rows, error) {
	if s.closed {
		return nil, wikidb.ErrSessionClosed
	}

	start := time.Now()
	rows, queryErr := s.conn.Query(ctx, query, args...)
	duration := time.Since(start)
	s.logStatement(ctx, query, logActionQuery, duration)

	if queryErr != nil {
		s.engine.logError(ctx, logMsgStatementFailed, queryErr, logAttrQuery, query, logAttrSessionID, s.id.String())
		s.engine.recordError(logActionQuery)

		return nil, queryErr
	}

	s.engine.recordDuration(metricStatementDuration, logActionQuery, duration)

	return rows, nil
}

// Exec executes a statement on the session's connection.
func (s *Session) Exec(ctx context.Context, query string, args ...any) (wikidb.Result, error) {
	if s.closed {
		return nil, wikidb.ErrSessionClosed
	}

	start := time.Now()
	result, execErr := s.conn.Exec(ctx, query, args...)
	duration := time.Since(start)
	s.logStatement(ctx, query, logActionExec, duration)

	if execErr != nil {
		s.engine.logError(ctx, logMsgStatementFailed, execErr, logAttrQuery, query, logAttrSessionID, s.id.String())
		s.engine.recordError(logActionExec)

		return nil, execErr
	}

	s.engine.recordDuration(metricStatementDuration, logActionExec, duration)

	return result, nil
}

// Transact runs fn within a transaction on the session's connection.
// The transaction is committed when fn returns nil and rolled back when fn
// returns an error or panics.
func (s *Session) Transact(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	if fn == nil {
		return wikidb.ErrNilSessionFunc
	}

	if s.closed {
		return wikidb.ErrSessionClosed
	}

	dbTx, beginErr := s.conn.Begin(ctx)
	if beginErr != nil {
		s.engine.logError(ctx, logMsgBeginTxFailed, beginErr, logAttrSessionID, s.id.String())
		s.engine.recordError(operationBegin)

		return errors.Join(wikidb.ErrBeginningTxFailed, beginErr)
	}

	tx := &Tx{sessionID: s.id, tx: dbTx, engine: s.engine}

	defer func() {
		if p := recover(); p != nil {
			// fn panicked, roll back before the panic continues
			s.rollback(ctx, tx)
			panic(p)
		}
	}()

	if fnErr := fn(ctx, tx); fnErr != nil {
		s.rollback(ctx, tx)
		return fnErr
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		s.engine.logError(ctx, logMsgCommitTxFailed, commitErr, logAttrSessionID, s.id.String())
		s.engine.recordError(operationCommit)

		return errors.Join(wikidb.ErrCommittingTxFailed, commitErr)
	}

	s.engine.logOperation(ctx, logMsgTxCommitted, logAttrSessionID, s.id.String())

	return nil
}

func (s *Session) rollback(ctx context.Context, tx *Tx) {
	if rollbackErr := tx.tx.Rollback(ctx); rollbackErr != nil {
		s.engine.logError(ctx, logMsgRollbackTxFailed, rollbackErr, logAttrSessionID, s.id.String())
		s.engine.recordError(operationRollback)

		return
	}

	s.engine.logOperation(ctx, logMsgTxRolledBack, logAttrSessionID, s.id.String())
}

// Close releases the session's connection back to the pool.
// It is safe to call on an already closed session, in which case
// wikidb.ErrSessionClosed is returned and the connection is not
// released a second time.
func (s *Session) Close() error {
	if s.closed {
		return wikidb.ErrSessionClosed
	}

	s.closed = true

	if releaseErr := s.conn.Release(); releaseErr != nil {
		return errors.Join(wikidb.ErrReleasingSessionFailed, releaseErr)
	}

	s.engine.logOperation(context.Background(), logMsgSessionClosed, logAttrSessionID, s.id.String())

	return nil
}

func (s *Session) logStatement(ctx context.Context, query string, action string, duration time.Duration) {
	s.engine.logStatementWithDuration(ctx, query, action, s.id, duration)
}

// Tx is a transaction handle scoped to one session.
type Tx struct {
	sessionID uuid.UUID
	tx        adapters.DBTx
	engine    *Engine
}

// Query executes a query within the transaction.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (wikidb.Rows, error) {
	start := time.Now()
	rows, queryErr := t.tx.Query(ctx, query, args...)
	duration := time.Since(start)
	t.engine.logStatementWithDuration(ctx, query, logActionQuery, t.sessionID, duration)

	if queryErr != nil {
		t.engine.logError(ctx, logMsgStatementFailed, queryErr, logAttrQuery, query, logAttrSessionID, t.sessionID.String())
		t.engine.recordError(logActionQuery)

		return nil, queryErr
	}

	return rows, nil
}

// Exec executes a statement within the transaction.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (wikidb.Result, error) {
	start := time.Now()
	result, execErr := t.tx.Exec(ctx, query, args...)
	duration := time.Since(start)
	t.engine.logStatementWithDuration(ctx, query, logActionExec, t.sessionID, duration)

	if execErr != nil {
		t.engine.logError(ctx, logMsgStatementFailed, execErr, logAttrQuery, query, logAttrSessionID, t.sessionID.String())
		t.engine.recordError(logActionExec)

		return nil, execErr
	}

	return result, nil
}
