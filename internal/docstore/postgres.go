package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists every collection as JSONB rows in a single
// documents table keyed by (collection, id).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a pgx pool as a Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) List(ctx context.Context, offset, limit int, query Query, collection string) ([]Document, error) {
	clauses, args := buildClauses(query, collection)

	sql := "SELECT payload FROM documents WHERE " + strings.Join(clauses, " AND ")
	if order := buildOrder(query.Sort); order != "" {
		sql += " ORDER BY " + order
	}
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		sql += fmt.Sprintf(" OFFSET %d", offset)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		docs = append(docs, project(Document(payload), query.Fields))
	}
	return docs, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id, collection string) (Document, error) {
	const sql = "SELECT payload FROM documents WHERE collection=$1 AND id=$2"
	var payload []byte
	err := s.pool.QueryRow(ctx, sql, collection, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return Document(payload), nil
}

func (s *PostgresStore) Count(ctx context.Context, query Query, collection string) (int, error) {
	clauses, args := buildClauses(query, collection)
	sql := "SELECT COUNT(*) FROM documents WHERE " + strings.Join(clauses, " AND ")

	var count int
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PostgresStore) Create(ctx context.Context, collection string, docs ...any) error {
	const sql = `
        INSERT INTO documents (collection, id, payload)
        VALUES ($1, $2, $3)`
	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		id, err := documentID(payload)
		if err != nil {
			return err
		}
		if _, err := s.pool.Exec(ctx, sql, collection, id, payload); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch map[string]any, collection string) (bool, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return false, fmt.Errorf("marshal patch: %w", err)
	}
	const sql = `
        UPDATE documents SET payload = payload || $3::jsonb, updated_at = NOW()
        WHERE collection=$1 AND id=$2`
	cmd, err := s.pool.Exec(ctx, sql, collection, id, payload)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id, collection string) (bool, error) {
	const sql = "DELETE FROM documents WHERE collection=$1 AND id=$2"
	cmd, err := s.pool.Exec(ctx, sql, collection, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// buildClauses accumulates WHERE clauses and their args positionally.
func buildClauses(query Query, collection string) ([]string, []any) {
	args := []any{collection}
	clauses := []string{"collection=$1"}

	for field, raw := range query.Filters {
		clause, newArgs := fieldClause(field, raw, len(args), false)
		if clause == "" {
			continue
		}
		clauses = append(clauses, clause)
		args = append(args, newArgs...)
	}
	for field, raw := range query.Exclude {
		clause, newArgs := fieldClause(field, raw, len(args), true)
		if clause == "" {
			continue
		}
		clauses = append(clauses, clause)
		args = append(args, newArgs...)
	}
	return clauses, args
}

// fieldClause renders one predicate. A dotted field like technicals.id
// matches any element of the named array of objects. Field names are
// client input and end up inside the SQL text, so anything that is not
// a plain identifier path is rejected before it reaches the query.
func fieldClause(field string, raw any, argCount int, negate bool) (string, []any) {
	if raw == nil {
		return "", nil
	}
	if !validFieldName(field) {
		// No stored document has such a field; excluding on it is a no-op.
		if negate {
			return "", nil
		}
		return "FALSE", nil
	}
	set := values(raw)
	if len(set) == 0 {
		// An explicit empty set matches nothing; excluding nothing is a no-op.
		if negate {
			return "", nil
		}
		return "FALSE", nil
	}
	placeholder := fmt.Sprintf("$%d", argCount+1)

	var clause string
	if parent, child, ok := strings.Cut(field, "."); ok {
		clause = fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(payload->'%s') elem WHERE elem->>'%s' = ANY(%s))",
			parent, child, placeholder)
	} else {
		clause = fmt.Sprintf("payload->>'%s' = ANY(%s)", field, placeholder)
	}
	if negate {
		clause = "NOT " + clause
	}
	return clause, []any{set}
}

func buildOrder(sort map[string]string) string {
	parts := make([]string, 0, len(sort))
	for _, field := range sortedKeys(sort) {
		if !validFieldName(field) {
			continue
		}
		direction := "ASC"
		if strings.EqualFold(sort[field], "desc") {
			direction = "DESC"
		}
		parts = append(parts, fmt.Sprintf("payload->>'%s' %s", field, direction))
	}
	return strings.Join(parts, ", ")
}

// validFieldName allows a plain identifier or a single parent.child
// path, keeping client-supplied keys out of the SQL text.
var validFieldName = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`).MatchString

// sortedKeys fixes the ordering of the sort map so key precedence does
// not depend on map iteration order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func documentID(payload []byte) (string, error) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return "", fmt.Errorf("inspect document id: %w", err)
	}
	if probe.ID == "" {
		return "", fmt.Errorf("document is missing an id")
	}
	return probe.ID, nil
}
