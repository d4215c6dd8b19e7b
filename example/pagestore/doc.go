// Package pagestore implements a wiki page repository on top of the
// postgresengine session layer.
//
// It demonstrates the intended consumption pattern of the database layer:
// one scoped session per operation, obtained through Engine.WithSession,
// with SQL built by goqu and page metadata stored as JSONB.
package pagestore
