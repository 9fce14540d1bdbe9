package docstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildClausesParameterizesValues(t *testing.T) {
	clauses, args := buildClauses(Query{
		Filters: map[string]any{"commerceId": []string{"C1", "C2"}},
	}, "tickets")

	require.Len(t, clauses, 2)
	assert.Equal(t, "collection=$1", clauses[0])
	assert.Equal(t, "payload->>'commerceId' = ANY($2)", clauses[1])
	require.Len(t, args, 2)
	assert.Equal(t, "tickets", args[0])
}

func TestBuildClausesDottedFieldUsesArrayElements(t *testing.T) {
	clauses, _ := buildClauses(Query{
		Filters: map[string]any{"technicals.id": []string{"TE1"}},
	}, "tickets")

	require.Len(t, clauses, 2)
	assert.Contains(t, clauses[1], "jsonb_array_elements(payload->'technicals')")
	assert.Contains(t, clauses[1], "elem->>'id' = ANY($2)")
}

func TestBuildClausesRejectsHostileFilterKey(t *testing.T) {
	hostile := "a' = '' OR 1=1 --"
	clauses, args := buildClauses(Query{
		Filters: map[string]any{hostile: "x"},
	}, "tickets")

	require.Len(t, clauses, 2)
	assert.Equal(t, "FALSE", clauses[1])
	require.Len(t, args, 1)
	assert.NotContains(t, strings.Join(clauses, " AND "), "OR 1=1")
}

func TestBuildClausesRejectsHostileExcludeKey(t *testing.T) {
	clauses, _ := buildClauses(Query{
		Exclude: map[string]any{"x'); DROP TABLE documents; --": "v"},
	}, "tickets")

	// Excluding on a field no document can have is a no-op.
	require.Len(t, clauses, 1)
	assert.Equal(t, "collection=$1", clauses[0])
}

func TestBuildOrderRejectsHostileSortKey(t *testing.T) {
	order := buildOrder(map[string]string{
		"plannedDate'; DROP TABLE documents; --": "desc",
		"createdAt":                              "desc",
	})

	assert.Equal(t, "payload->>'createdAt' DESC", order)
	assert.NotContains(t, order, "DROP TABLE")
}

func TestBuildOrderDeterministicKeyPrecedence(t *testing.T) {
	sortSpec := map[string]string{"region": "asc", "name": "desc"}
	first := buildOrder(sortSpec)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, buildOrder(sortSpec))
	}
	assert.Equal(t, "payload->>'name' DESC, payload->>'region' ASC", first)
}

func TestMemorySortMatchesOrderPrecedence(t *testing.T) {
	store := NewMemoryStore().Seed("things",
		testRecord{ID: "a", Name: "same", Region: "Sur"},
		testRecord{ID: "b", Name: "same", Region: "Norte"},
		testRecord{ID: "c", Name: "other", Region: "Centro"},
	)

	// Alphabetically first key (name) dominates; region breaks ties.
	records := listRecords(t, store, Query{
		Sort: map[string]string{"region": "asc", "name": "asc"},
	}, "things")

	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "a", records[2].ID)
}
