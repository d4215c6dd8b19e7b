package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/wikiservice/wikidb-go/wikidb"
)

const (
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
)

// PGXPoolConfig creates a pgxpool.Config from the given settings.
//
// The persistent pool size maps to MinConns, the pool size plus the allowed
// overflow maps to MaxConns, and pre-ping maps to the pool's periodic health
// check which discards dead connections before they are handed out.
func PGXPoolConfig(settings wikidb.Settings) (*pgxpool.Config, error) {
	dbConfig, parseErr := pgxpool.ParseConfig(settings.DSN())
	if parseErr != nil {
		return nil, errors.Join(wikidb.ErrParsingPoolConfigFailed, parseErr)
	}

	dbConfig.MaxConns = settings.MaxConns()
	dbConfig.MinConns = settings.PoolSize
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.ConnConfig.ConnectTimeout = settings.ConnectTimeout

	if settings.PrePing {
		dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	}

	return dbConfig, nil
}

// OpenSQLDB creates a configured *sql.DB from the given settings using the
// lib/pq driver. When pre-ping is enabled the connection is verified before
// the handle is returned.
func OpenSQLDB(settings wikidb.Settings) (*sql.DB, error) {
	db, openErr := sql.Open(driverNamePostgres, settings.DSN())
	if openErr != nil {
		return nil, errors.Join(wikidb.ErrOpeningDatabaseFailed, openErr)
	}

	db.SetMaxOpenConns(int(settings.MaxConns()))
	db.SetMaxIdleConns(int(settings.PoolSize))
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	if settings.PrePing {
		if pingErr := pingWithTimeout(db.PingContext, settings.ConnectTimeout); pingErr != nil {
			_ = db.Close()
			return nil, errors.Join(wikidb.ErrPingingDatabaseFailed, pingErr)
		}
	}

	return db, nil
}

// OpenSQLX creates a configured *sqlx.DB from the given settings using the
// lib/pq driver. When pre-ping is enabled the connection is verified before
// the handle is returned.
func OpenSQLX(settings wikidb.Settings) (*sqlx.DB, error) {
	db, openErr := sqlx.Open(driverNamePostgres, settings.DSN())
	if openErr != nil {
		return nil, errors.Join(wikidb.ErrOpeningDatabaseFailed, openErr)
	}

	db.SetMaxOpenConns(int(settings.MaxConns()))
	db.SetMaxIdleConns(int(settings.PoolSize))
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	if settings.PrePing {
		if pingErr := pingWithTimeout(db.PingContext, settings.ConnectTimeout); pingErr != nil {
			_ = db.Close()
			return nil, errors.Join(wikidb.ErrPingingDatabaseFailed, pingErr)
		}
	}

	return db, nil
}

func pingWithTimeout(ping func(ctx context.Context) error, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = wikidb.DefaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return ping(ctx)
}
