package pagestore

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/wikiservice/wikidb-go/wikidb"
	"github.com/wikiservice/wikidb-go/wikidb/postgresengine"
)

const (
	defaultPagesTableName = "pages"
	colID                 = "id"
	colTitle              = "title"
	colContent            = "content"
	colMetadata           = "metadata"
	colCreatedAt          = "created_at"
	colUpdatedAt          = "updated_at"
	dialectPostgres       = "postgres"
)

var ErrNilEngine = errors.New("nil engine supplied")
var ErrEmptyPagesTableName = errors.New("empty pages table name supplied")
var ErrPageNotFound = errors.New("page not found")
var ErrBuildingQueryFailed = errors.New("building the query failed")
var ErrMarshalingMetadataFailed = errors.New("marshaling page metadata failed")
var ErrUnmarshalingMetadataFailed = errors.New("unmarshaling page metadata failed")
var ErrScanningRowFailed = errors.New("scanning a page row failed")

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is a wiki page repository. Every operation runs in its own scoped
// session acquired from the engine.
type Store struct {
	engine         *postgresengine.Engine
	pagesTableName string
}

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithTableName sets the pages table name for the Store.
func WithTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ErrEmptyPagesTableName
		}

		s.pagesTableName = tableName

		return nil
	}
}

// NewStore creates a page store bound to the given engine.
func NewStore(engine *postgresengine.Engine, options ...Option) (*Store, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}

	store := &Store{
		engine:         engine,
		pagesTableName: defaultPagesTableName,
	}

	for _, option := range options {
		if err := option(store); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// Save inserts the page, or updates content, metadata and the updated-at
// timestamp when a page with the same ID already exists.
func (s *Store) Save(ctx context.Context, page Page) error {
	sqlQuery, buildErr := s.buildUpsertQuery(page)
	if buildErr != nil {
		return buildErr
	}

	return s.engine.WithSession(ctx, func(ctx context.Context, session *postgresengine.Session) error {
		_, execErr := session.Exec(ctx, sqlQuery)
		return execErr
	})
}

// SaveAll saves the given pages in a single transaction, so either all of
// them are persisted or none.
func (s *Store) SaveAll(ctx context.Context, pages ...Page) error {
	sqlQueries := make([]string, 0, len(pages))

	for _, page := range pages {
		sqlQuery, buildErr := s.buildUpsertQuery(page)
		if buildErr != nil {
			return buildErr
		}

		sqlQueries = append(sqlQueries, sqlQuery)
	}

	return s.engine.WithSession(ctx, func(ctx context.Context, session *postgresengine.Session) error {
		return session.Transact(ctx, func(ctx context.Context, tx *postgresengine.Tx) error {
			for _, sqlQuery := range sqlQueries {
				if _, execErr := tx.Exec(ctx, sqlQuery); execErr != nil {
					return execErr
				}
			}

			return nil
		})
	})
}

// FindByID loads one page by its identifier.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (Page, error) {
	sqlQuery, buildErr := s.buildSelectQuery(goqu.Ex{colID: id.String()})
	if buildErr != nil {
		return Page{}, buildErr
	}

	return s.queryOne(ctx, sqlQuery)
}

// FindByTitle loads one page by its title.
func (s *Store) FindByTitle(ctx context.Context, title string) (Page, error) {
	sqlQuery, buildErr := s.buildSelectQuery(goqu.Ex{colTitle: title})
	if buildErr != nil {
		return Page{}, buildErr
	}

	return s.queryOne(ctx, sqlQuery)
}

// List returns all pages, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Page, error) {
	sqlQuery, buildErr := s.buildSelectQuery(nil)
	if buildErr != nil {
		return nil, buildErr
	}

	var pages []Page

	sessionErr := s.engine.WithSession(ctx, func(ctx context.Context, session *postgresengine.Session) error {
		rows, queryErr := session.Query(ctx, sqlQuery)
		if queryErr != nil {
			return queryErr
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			page, scanErr := scanPage(rows)
			if scanErr != nil {
				return scanErr
			}

			pages = append(pages, page)
		}

		return rows.Err()
	})

	if sessionErr != nil {
		return nil, sessionErr
	}

	return pages, nil
}

// Delete removes one page by its identifier.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.pagesTableName).
		Where(goqu.Ex{colID: id.String()})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return s.engine.WithSession(ctx, func(ctx context.Context, session *postgresengine.Session) error {
		result, execErr := session.Exec(ctx, sqlQuery)
		if execErr != nil {
			return execErr
		}

		rowsAffected, rowsAffectedErr := result.RowsAffected()
		if rowsAffectedErr != nil {
			return rowsAffectedErr
		}

		if rowsAffected == 0 {
			return ErrPageNotFound
		}

		return nil
	})
}

func (s *Store) queryOne(ctx context.Context, sqlQuery string) (Page, error) {
	var page Page

	sessionErr := s.engine.WithSession(ctx, func(ctx context.Context, session *postgresengine.Session) error {
		rows, queryErr := session.Query(ctx, sqlQuery)
		if queryErr != nil {
			return queryErr
		}
		defer func() { _ = rows.Close() }()

		if !rows.Next() {
			if rowsErr := rows.Err(); rowsErr != nil {
				return rowsErr
			}

			return ErrPageNotFound
		}

		var scanErr error
		page, scanErr = scanPage(rows)

		return scanErr
	})

	if sessionErr != nil {
		return Page{}, sessionErr
	}

	return page, nil
}

func (s *Store) buildUpsertQuery(page Page) (string, error) {
	metadataJSON, marshalErr := jsonAPI.Marshal(page.Metadata)
	if marshalErr != nil {
		return "", errors.Join(ErrMarshalingMetadataFailed, marshalErr)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.pagesTableName).
		Rows(goqu.Record{
			colID:        page.ID.String(),
			colTitle:     page.Title,
			colContent:   page.Content,
			colMetadata:  string(metadataJSON),
			colCreatedAt: page.CreatedAt,
			colUpdatedAt: page.UpdatedAt,
		}).
		OnConflict(goqu.DoUpdate(colID, goqu.Record{
			colTitle:     page.Title,
			colContent:   page.Content,
			colMetadata:  string(metadataJSON),
			colUpdatedAt: page.UpdatedAt,
		}))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildSelectQuery(where goqu.Ex) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.pagesTableName).
		Select(colID, colTitle, colContent, colMetadata, colCreatedAt, colUpdatedAt).
		Order(goqu.I(colUpdatedAt).Desc())

	if where != nil {
		selectStmt = selectStmt.Where(where)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func scanPage(rows wikidb.Rows) (Page, error) {
	var page Page
	var metadataJSON []byte

	if scanErr := rows.Scan(&page.ID, &page.Title, &page.Content, &metadataJSON, &page.CreatedAt, &page.UpdatedAt); scanErr != nil {
		return Page{}, errors.Join(ErrScanningRowFailed, scanErr)
	}

	if len(metadataJSON) > 0 {
		if unmarshalErr := jsonAPI.Unmarshal(metadataJSON, &page.Metadata); unmarshalErr != nil {
			return Page{}, errors.Join(ErrUnmarshalingMetadataFailed, unmarshalErr)
		}
	}

	return page, nil
}
