package postgresengine

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// logStatementWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (e *Engine) logStatementWithDuration(
	ctx context.Context,
	query string,
	action string,
	sessionID uuid.UUID,
	duration time.Duration,
) {
	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action,
			logAttrDurationMS, e.toMilliseconds(duration),
			logAttrSessionID, sessionID.String(),
			logAttrQuery, query)
		return
	}

	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action,
			logAttrDurationMS, e.toMilliseconds(duration),
			logAttrSessionID, sessionID.String(),
			logAttrQuery, query)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (e *Engine) logOperation(ctx context.Context, action string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (e *Engine) logWarn(ctx context.Context, message string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if e.logger != nil {
		e.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (e *Engine) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if e.logger != nil {
		e.logger.Error(message, allArgs...)
	}
}

// recordDuration records a duration metric if the metrics collector is configured.
func (e *Engine) recordDuration(metric string, operation string, duration time.Duration) {
	if e.metricsCollector != nil {
		e.metricsCollector.RecordDuration(metric, duration, map[string]string{
			labelOperation: operation,
		})
	}
}

// recordError records an error metric if the metrics collector is configured.
func (e *Engine) recordError(operation string) {
	if e.metricsCollector != nil {
		e.metricsCollector.IncrementCounter(metricDatabaseErrors, map[string]string{
			labelOperation: operation,
			labelStatus:    statusError,
		})
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (e *Engine) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
