// Package postgresengine provides the PostgreSQL implementation of the wiki
// service database layer.
//
// This package wires a pooled database handle to scoped sessions, supporting
// multiple database adapters (pgx, sql.DB, sqlx) behind a single Engine type.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Pool configuration built from environment-driven wikidb.Settings
//   - Scoped session acquisition with guaranteed release, including on panic
//   - Unit-of-work transactions with commit/rollback guarantees
//   - Verbose statement logging and dual-logger support
//
// Usage examples:
//
//	// Basic usage: build the pool from environment settings
//	engine, _ := postgresengine.Connect(ctx, wikidb.LoadSettings())
//	defer engine.Close()
//
//	// Bring your own pool
//	pool, _ := pgxpool.NewWithConfig(ctx, poolConfig)
//	engine, _ := postgresengine.NewEngineFromPGXPool(pool, postgresengine.WithLogger(logger))
//
//	// One session per unit of work, released unconditionally
//	err := engine.WithSession(ctx, func(ctx context.Context, session *postgresengine.Session) error {
//		rows, queryErr := session.Query(ctx, "SELECT id, title FROM pages")
//		if queryErr != nil {
//			return queryErr
//		}
//		defer rows.Close()
//		// ...
//		return rows.Err()
//	})
package postgresengine
