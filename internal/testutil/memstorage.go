package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/funnelbase/funnelbase/internal/store"
)

// MemStorage is an in-memory stand-in for the document store gateway.
// It mirrors the gateway's semantics: app-assigned string ids, equality-only
// filters, insertion order, empty results instead of errors.
type MemStorage struct {
	mu   sync.Mutex
	seq  int
	docs map[string][]store.Document

	// InsertErr, when set for a collection, forces Insert to fail.
	InsertErr map[string]error
	// FindErr, when set, forces Find and FindOne to fail.
	FindErr error
}

// NewMemStorage creates an empty MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		docs:      make(map[string][]store.Document),
		InsertErr: make(map[string]error),
	}
}

// Insert stores doc in the named collection and returns a generated id.
func (m *MemStorage) Insert(ctx context.Context, collection string, doc any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.InsertErr[collection]; err != nil {
		return "", err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	m.seq++
	id := fmt.Sprintf("mem-%06d", m.seq)
	m.docs[collection] = append(m.docs[collection], store.Document{ID: id, Data: data})
	return id, nil
}

// Find returns up to limit matching documents in insertion order.
func (m *MemStorage) Find(ctx context.Context, collection string, filter map[string]any, limit int) ([]store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}

	var out []store.Document
	for _, d := range m.docs[collection] {
		if len(out) >= limit {
			break
		}
		if matches(d, filter) {
			out = append(out, d)
		}
	}
	return out, nil
}

// FindOne returns the first matching document or store.ErrNotFound.
func (m *MemStorage) FindOne(ctx context.Context, collection string, filter map[string]any) (*store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}

	for _, d := range m.docs[collection] {
		if matches(d, filter) {
			doc := d
			return &doc, nil
		}
	}
	return nil, store.ErrNotFound
}

// ListCollections returns up to limit non-empty collection names, sorted.
func (m *MemStorage) ListCollections(ctx context.Context, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}

	var names []string
	for name, docs := range m.docs {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// Count returns the number of documents in a collection.
func (m *MemStorage) Count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs[collection])
}

// Docs returns a copy of a collection's documents in insertion order.
func (m *MemStorage) Docs(collection string) []store.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Document, len(m.docs[collection]))
	copy(out, m.docs[collection])
	return out
}

// matches reports whether every filter pair equals the document field.
// Filter values are normalized through JSON so Go and decoded types compare.
func matches(d store.Document, filter map[string]any) bool {
	if len(filter) == 0 {
		return true
	}

	var fields map[string]any
	if err := json.Unmarshal(d.Data, &fields); err != nil {
		return false
	}

	for k, want := range filter {
		got, ok := fields[k]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(normalize(want), got) {
			return false
		}
	}
	return true
}

// normalize round-trips v through JSON to match decoded field types.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
