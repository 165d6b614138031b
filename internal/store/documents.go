package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
)

// Document is a raw stored record: the store-assigned identifier plus the
// document fields as JSON. The identifier is never part of the fields.
type Document struct {
	ID   string
	Data []byte
}

// Decode unmarshals the document fields into v.
func (d *Document) Decode(v any) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

// Insert serializes doc into a new record in the named collection and
// returns the assigned identifier.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	if err := s.ensure(ctx); err != nil {
		return "", err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serialize document for %s: %w", collection, err)
	}

	id := ulid.Make().String()

	query := fmt.Sprintf(`INSERT INTO %s (id, collection, doc) VALUES ($1, $2, $3)`, s.table())
	if _, err := s.pool.Exec(ctx, query, id, collection, data); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	return id, nil
}

// Find returns up to limit records in the named collection whose fields
// equal all key/value pairs in filter. A nil filter matches everything.
// No matches is an empty result, never an error.
func (s *Store) Find(ctx context.Context, collection string, filter map[string]any, limit int) ([]Document, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, doc FROM %s
		WHERE collection = $1 AND doc @> $2
		ORDER BY created_at, id
		LIMIT $3
	`, s.table())

	rows, err := s.pool.Query(ctx, query, collection, filterJSON, limit)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Data); err != nil {
			return nil, fmt.Errorf("scan document from %s: %w", collection, err)
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents from %s: %w", collection, err)
	}

	return docs, nil
}

// FindOne returns the first record in the named collection matching the
// filter, or ErrNotFound.
func (s *Store) FindOne(ctx context.Context, collection string, filter map[string]any) (*Document, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	filterJSON, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, doc FROM %s
		WHERE collection = $1 AND doc @> $2
		ORDER BY created_at, id
		LIMIT 1
	`, s.table())

	var d Document
	err = s.pool.QueryRow(ctx, query, collection, filterJSON).Scan(&d.ID, &d.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one in %s: %w", collection, err)
	}

	return &d, nil
}

// ListCollections returns up to limit distinct collection names holding at
// least one document. Used only by the diagnostics endpoint.
func (s *Store) ListCollections(ctx context.Context, limit int) ([]string, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT collection FROM %s
		ORDER BY collection
		LIMIT $1
	`, s.table())

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection names: %w", err)
	}

	return names, nil
}

// marshalFilter encodes an equality filter as JSONB containment input.
func marshalFilter(filter map[string]any) ([]byte, error) {
	if filter == nil {
		filter = map[string]any{}
	}
	data, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("serialize filter: %w", err)
	}
	return data, nil
}
