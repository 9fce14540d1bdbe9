package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used by tests. It mirrors the
// PostgresStore query semantics over plain maps and keeps insertion
// order when no sort is requested.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]memoryDoc
}

type memoryDoc struct {
	id     string
	record map[string]any
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]memoryDoc)}
}

// Seed inserts documents without error handling ceremony; intended for
// test fixtures.
func (s *MemoryStore) Seed(collection string, docs ...any) *MemoryStore {
	if err := s.Create(context.Background(), collection, docs...); err != nil {
		panic(fmt.Sprintf("seed %s: %v", collection, err))
	}
	return s
}

func (s *MemoryStore) List(ctx context.Context, offset, limit int, query Query, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]memoryDoc, 0)
	for _, doc := range s.collections[collection] {
		if matches(doc.record, query.Filters, false) && matches(doc.record, query.Exclude, true) {
			matched = append(matched, doc)
		}
	}
	sortDocs(matched, query.Sort)

	if offset >= len(matched) {
		return []Document{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	out := make([]Document, 0, len(matched))
	for _, doc := range matched {
		payload, err := json.Marshal(doc.record)
		if err != nil {
			return nil, err
		}
		out = append(out, project(payload, query.Fields))
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id, collection string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if doc.id == id {
			return json.Marshal(doc.record)
		}
	}
	return nil, nil
}

func (s *MemoryStore) Count(ctx context.Context, query Query, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, doc := range s.collections[collection] {
		if matches(doc.record, query.Filters, false) && matches(doc.record, query.Exclude, true) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, docs ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		var record map[string]any
		if err := json.Unmarshal(payload, &record); err != nil {
			return fmt.Errorf("document is not an object: %w", err)
		}
		id, _ := record["id"].(string)
		if id == "" {
			return fmt.Errorf("document is missing an id")
		}
		s.collections[collection] = append(s.collections[collection], memoryDoc{id: id, record: record})
	}
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch map[string]any, collection string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.collections[collection] {
		if doc.id != id {
			continue
		}
		for key, val := range patch {
			s.collections[collection][i].record[key] = val
		}
		return true, nil
	}
	return false, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id, collection string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if doc.id == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func matches(record map[string]any, predicates map[string]any, negate bool) bool {
	for field, raw := range predicates {
		if raw == nil {
			continue
		}
		// An explicit empty set matches nothing, mirroring = ANY('{}').
		set := values(raw)
		hit := fieldMatches(record, field, set)
		if hit == negate {
			return false
		}
	}
	return true
}

func fieldMatches(record map[string]any, field string, set []string) bool {
	if parent, child, ok := strings.Cut(field, "."); ok {
		items, _ := record[parent].([]any)
		for _, item := range items {
			obj, _ := item.(map[string]any)
			if obj == nil {
				continue
			}
			if containsValue(set, obj[child]) {
				return true
			}
		}
		return false
	}
	return containsValue(set, record[field])
}

func containsValue(set []string, val any) bool {
	if val == nil {
		return false
	}
	text := fmt.Sprint(val)
	for _, item := range set {
		if item == text {
			return true
		}
	}
	return false
}

// sortDocs applies the sort keys in fixed alphabetical precedence, the
// same order buildOrder renders them. Later stable passes dominate, so
// the keys are walked in reverse.
func sortDocs(docs []memoryDoc, orders map[string]string) {
	keys := make([]string, 0, len(orders))
	for key := range orders {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	for _, field := range keys {
		descending := strings.EqualFold(orders[field], "desc")
		sort.SliceStable(docs, func(i, j int) bool {
			left := fmt.Sprint(docs[i].record[field])
			right := fmt.Sprint(docs[j].record[field])
			if descending {
				return left > right
			}
			return left < right
		})
	}
}
