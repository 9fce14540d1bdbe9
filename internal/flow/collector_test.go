package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
)

func TestCollectKeysDeduplicatesAcrossTickets(t *testing.T) {
	tickets := []domain.Ticket{
		{
			ID: "T1", CategoryID: "CAT1", SubcategoryID: "SUB1",
			CommerceID: "C1", BranchID: "B1",
			ContactIDs:   []string{"CT1", "CT2"},
			Coordinators: []domain.EmployeeRef{{ID: "CO1"}},
			Technicals:   []domain.EmployeeRef{{ID: "TE1"}, {ID: "TE2"}},
		},
		{
			ID: "T2", CategoryID: "CAT1", SubcategoryID: "SUB2",
			CommerceID: "C1", BranchID: "B2",
			ContactIDs: []string{"CT2"},
			Technicals: []domain.EmployeeRef{{ID: "TE1"}},
		},
	}

	keys := CollectKeys(tickets)

	assert.Equal(t, []string{"T1", "T2"}, keys.TicketIDs)
	assert.Equal(t, []string{"CAT1"}, keys.CategoryIDs)
	assert.Equal(t, []string{"SUB1", "SUB2"}, keys.SubcategoryIDs)
	assert.Equal(t, []string{"C1"}, keys.CommerceIDs)
	assert.Equal(t, []string{"B1", "B2"}, keys.BranchIDs)
	assert.Equal(t, []string{"CT1", "CT2"}, keys.ContactIDs)
	assert.Equal(t, []string{"CO1"}, keys.CoordinatorIDs)
	assert.Equal(t, []string{"TE1", "TE2"}, keys.TechnicalIDs)
}

func TestCollectKeysSkipsEmptyIDs(t *testing.T) {
	keys := CollectKeys([]domain.Ticket{{ID: "T1"}})

	assert.Equal(t, []string{"T1"}, keys.TicketIDs)
	assert.Empty(t, keys.CategoryIDs)
	assert.Empty(t, keys.CommerceIDs)
	assert.Empty(t, keys.ContactIDs)
	assert.Empty(t, keys.CoordinatorIDs)
	assert.Empty(t, keys.TechnicalIDs)
}

func TestCollectKeysEmptyBatch(t *testing.T) {
	keys := CollectKeys(nil)
	assert.Empty(t, keys.TicketIDs)
}

func TestJoinNamesCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Maria Diaz", joinNames("Maria", "", "Diaz", ""))
	assert.Equal(t, "", joinNames("", ""))
	assert.Equal(t, "Ana Rojas", joinNames("  Ana ", " Rojas "))
}
