// Package store provides the document store gateway.
//
// Documents live in a single PostgreSQL table as JSONB rows keyed by a
// store-assigned ULID, grouped into named collections. The gateway exposes
// insert and equality-match find operations only; no updates, deletes,
// transactions or joins exist anywhere in the system.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("document not found")

var validSchemaName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Store owns the shared connection pool. It is safe for concurrent use
// and is acquired once at process start.
type Store struct {
	pool   *pgxpool.Pool
	schema string

	mu      sync.Mutex
	ensured bool
}

// New creates a Store backed by a pgx connection pool.
//
// The database is not required to be reachable yet: the documents table is
// provisioned lazily on first use, so a store pointed at a database that is
// still starting up becomes functional without a restart.
func New(ctx context.Context, databaseURL, schema string) (*Store, error) {
	if !validSchemaName.MatchString(schema) {
		return nil, fmt.Errorf("invalid schema name %q", schema)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Store{pool: pool, schema: schema}, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to Store.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// table returns the qualified documents table name.
// The schema name is validated in New, so embedding it is safe.
func (s *Store) table() string {
	return fmt.Sprintf(`"%s".documents`, s.schema)
}

// ensure provisions the schema and documents table on first use.
// Failures are returned to the caller and retried on the next operation.
func (s *Store) ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured {
		return nil
	}

	ddl := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, s.table()),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS documents_collection_idx ON %s (collection, created_at)`, s.table()),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS documents_doc_idx ON %s USING GIN (doc)`, s.table()),
	}

	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("provision documents table: %w", err)
		}
	}

	s.ensured = true
	return nil
}
