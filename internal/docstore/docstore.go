// Package docstore defines the query gateway the aggregation core reads
// from: a generic document store addressed by collection name, with
// filter/sort/exclude/field-selection list semantics.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names consumed by the service.
const (
	Tickets       = "tickets"
	Commerces     = "commerces"
	Branches      = "branches"
	Categories    = "categories"
	Subcategories = "subcategories"
	Contacts      = "contacts"
	Employees     = "employees"
	StatesHistory = "states_history"
	Comments      = "comments"
	Evidences     = "evidences"
	Devices       = "devices"
	Appointments  = "appointments"
	Datas         = "datas"
)

// Document is a raw stored record.
type Document = json.RawMessage

// Query carries list predicates. A filter value may be a single value or
// a value set (set membership). Exclude is the negative counterpart of
// Filters. Fields projects the returned documents when non-empty.
type Query struct {
	Filters map[string]any    `json:"filters,omitempty"`
	Sort    map[string]string `json:"sort,omitempty"`
	Exclude map[string]any    `json:"exclude,omitempty"`
	Fields  []string          `json:"fields,omitempty"`
}

// Store is the gateway contract. Get returns (nil, nil) when the
// document is absent; infrastructure failures are returned as errors.
type Store interface {
	List(ctx context.Context, offset, limit int, query Query, collection string) ([]Document, error)
	Get(ctx context.Context, id, collection string) (Document, error)
	Count(ctx context.Context, query Query, collection string) (int, error)
	Create(ctx context.Context, collection string, docs ...any) error
	Update(ctx context.Context, id string, patch map[string]any, collection string) (bool, error)
	Delete(ctx context.Context, id, collection string) (bool, error)
}

// Decode unmarshals one document into a typed record.
func Decode[T any](doc Document) (T, error) {
	var out T
	if doc == nil {
		return out, nil
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

// DecodeAll unmarshals a list of documents into typed records,
// preserving order.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		record, err := Decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// ListAs lists a collection and decodes the result.
func ListAs[T any](ctx context.Context, s Store, offset, limit int, query Query, collection string) ([]T, error) {
	docs, err := s.List(ctx, offset, limit, query, collection)
	if err != nil {
		return nil, err
	}
	return DecodeAll[T](docs)
}

// GetAs fetches one document and decodes it; nil means absent.
func GetAs[T any](ctx context.Context, s Store, id, collection string) (*T, error) {
	doc, err := s.Get(ctx, id, collection)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	record, err := Decode[T](doc)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// values normalizes a filter value to the set of accepted string forms.
func values(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(vv)}
	}
}

// project applies field selection to a document. Empty fields means no
// projection.
func project(doc Document, fields []string) Document {
	if len(fields) == 0 || doc == nil {
		return doc
	}
	var record map[string]json.RawMessage
	if err := json.Unmarshal(doc, &record); err != nil {
		return doc
	}
	out := make(map[string]json.RawMessage, len(fields))
	for _, field := range fields {
		if val, ok := record[field]; ok {
			out[field] = val
		}
	}
	projected, err := json.Marshal(out)
	if err != nil {
		return doc
	}
	return projected
}
