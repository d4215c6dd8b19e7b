// Package wikidb provides core abstractions and types for the wiki service
// database layer.
//
// This package defines the fundamental interfaces and types used by the
// PostgreSQL engine implementation, including connection settings loaded
// from the environment, row/result abstractions shared by all database
// adapters, observability interfaces, and common error definitions.
//
// Key types:
//   - Settings: Connection and pool configuration, read from environment variables
//   - Rows / Result: Driver-independent query result abstractions
//   - Logger / ContextualLogger / MetricsCollector: Dependency-free observability hooks
//
// Common usage pattern:
//
//	settings := wikidb.LoadSettings()
//
//	engine, err := postgresengine.Connect(ctx, settings)
//	if err != nil {
//		// handle error
//	}
//	defer engine.Close()
//
//	err = engine.WithSession(ctx, func(ctx context.Context, session *postgresengine.Session) error {
//		_, execErr := session.Exec(ctx, "UPDATE pages SET views = views + 1 WHERE id = $1", pageID)
//		return execErr
//	})
package wikidb
