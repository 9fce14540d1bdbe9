package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
)

// seedSummaryFixture builds a population of four tickets across two
// commerces and two regions: two closed ("Cerrado", "Resuelto"), two
// open ("Abierto").
func seedSummaryFixture() *docstore.MemoryStore {
	store := docstore.NewMemoryStore()

	ticket := func(id, number, commerce, branch, state, created string, techs ...domain.EmployeeRef) domain.Ticket {
		return domain.Ticket{
			ID: id, TicketNumber: number, PlannedDate: created,
			CommerceID: commerce, BranchID: branch,
			Technicals: techs, CurrentState: state, CreatedAt: created,
		}
	}

	store.Seed(docstore.Tickets,
		ticket("T1", "TK-001", "C1", "B1", "Cerrado", "2026-03-01T10:00:00Z",
			domain.EmployeeRef{ID: "TE1", Enabled: true}),
		ticket("T2", "TK-002", "C1", "B1", "Abierto", "2026-03-02T10:00:00Z",
			domain.EmployeeRef{ID: "TE1", Enabled: true}),
		ticket("T3", "TK-003", "C2", "B2", "Resuelto", "2026-03-03T10:00:00Z",
			domain.EmployeeRef{ID: "TE2", Enabled: false}),
		ticket("T4", "TK-004", "C2", "B2", "Abierto", "2026-03-04T10:00:00Z"),
	)

	store.Seed(docstore.Commerces,
		domain.Commerce{ID: "C1", Name: "Comercial Andina"},
		domain.Commerce{ID: "C2", Name: "Retail Austral"},
	)
	store.Seed(docstore.Branches,
		domain.Branch{ID: "B1", CommerceID: "C1", Region: "Metropolitana", Commune: "Providencia"},
		domain.Branch{ID: "B2", CommerceID: "C2", Region: "Valparaiso", Commune: "Quilpue"},
	)
	store.Seed(docstore.Employees,
		domain.Employee{ID: "TE1", FirstName: "Maria", FirstSurname: "Diaz", Email: "maria@tickets.cl"},
		domain.Employee{ID: "TE2", FirstName: "Juan", FirstSurname: "Perez", Email: "juan@tickets.cl"},
	)
	store.Seed(docstore.Datas,
		domain.ReferenceTable{ID: "attentionType"},
		domain.ReferenceTable{ID: "priority"},
	)
	return store
}

func TestSummarizeCountsAndPercentages(t *testing.T) {
	pipeline := newTestPipeline(seedSummaryFixture())

	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalTickets)
	assert.Equal(t, 2, summary.TicketStatuses["Abierto"])
	assert.Equal(t, 1, summary.TicketStatuses["Cerrado"])
	assert.Equal(t, 1, summary.TicketStatuses["Resuelto"])

	counted := 0
	for _, n := range summary.TicketStatuses {
		counted += n
	}
	assert.Equal(t, summary.TotalTickets, counted)

	assert.Equal(t, 50, summary.ClosedVsPending.ClosedPercentage)
	assert.Equal(t, 50, summary.ClosedVsPending.PendingPercentage)
	assert.Equal(t, 100,
		summary.ClosedVsPending.ClosedPercentage+summary.ClosedVsPending.PendingPercentage)
}

func TestSummarizeBucketsCarryRowDetails(t *testing.T) {
	pipeline := newTestPipeline(seedSummaryFixture())

	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{})
	require.NoError(t, err)

	rows := summary.TicketsByStatus["Cerrado"]
	require.Len(t, rows, 1)
	assert.Equal(t, "TK-001", rows[0].TicketNumber)
	assert.Equal(t, "2026-03-01", rows[0].Date)
	assert.Equal(t, "Metropolitana", rows[0].Region)
	assert.Equal(t, "maria@tickets.cl", rows[0].Technician)

	openRows := summary.TicketsByStatus["Abierto"]
	require.Len(t, openRows, 2)
	for _, row := range openRows {
		if row.ID == "T4" {
			assert.Equal(t, "N/A", row.Technician)
		}
	}
}

func TestSummarizeDisabledTechnicianDropsTicket(t *testing.T) {
	pipeline := newTestPipeline(seedSummaryFixture())

	// TE2 is assigned to T3 but disabled there, so the filter leaves
	// nothing behind.
	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{
		TechnicalIDs: []string{"TE2"},
	})
	require.NoError(t, err)
	assert.Zero(t, summary.TotalTickets)
	assert.Empty(t, summary.TicketsByStatus)
}

func TestSummarizeTechnicianFilter(t *testing.T) {
	pipeline := newTestPipeline(seedSummaryFixture())

	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{
		TechnicalIDs: []string{"TE1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalTickets)
	require.Len(t, summary.Filters.Technicals, 1)
	assert.Equal(t, "TE1", summary.Filters.Technicals[0].ID)
	assert.Equal(t, "Maria Diaz", summary.Filters.Technicals[0].Name)
}

func TestSummarizeRegionFilter(t *testing.T) {
	pipeline := newTestPipeline(seedSummaryFixture())

	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{
		Regions: []string{"Valparaiso"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalTickets)
	require.Len(t, summary.Filters.Regions, 1)
	assert.Equal(t, "Valparaiso", summary.Filters.Regions[0].Name)
}

func TestSummarizeCommerceFilterEchoesClientNames(t *testing.T) {
	pipeline := newTestPipeline(seedSummaryFixture())

	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{
		CommerceIDs: []string{"C1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalTickets)
	require.Len(t, summary.Filters.Clients, 1)
	assert.Equal(t, "C1", summary.Filters.Clients[0].ID)
	assert.Equal(t, "Comercial Andina", summary.Filters.Clients[0].Name)
}

func TestSummarizeDateRangeFilter(t *testing.T) {
	pipeline := newTestPipeline(seedSummaryFixture())

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 23, 59, 59, 0, time.UTC)
	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalTickets)
	assert.Equal(t, 1, summary.TicketStatuses["Abierto"])
	assert.Equal(t, 1, summary.TicketStatuses["Resuelto"])
}

func TestSummarizeEmptyPopulation(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.Seed(docstore.Datas,
		domain.ReferenceTable{ID: "attentionType"},
		domain.ReferenceTable{ID: "priority"},
	)
	pipeline := newTestPipeline(store)

	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{})
	require.NoError(t, err)

	assert.Zero(t, summary.TotalTickets)
	assert.Empty(t, summary.TicketsByStatus)
	assert.Empty(t, summary.TicketStatuses)
	assert.Zero(t, summary.ClosedVsPending.ClosedPercentage)
	assert.Zero(t, summary.ClosedVsPending.PendingPercentage)
}

func TestSummarizeRoundsOnceOnClosedSide(t *testing.T) {
	store := seedSummaryFixture()
	pipeline := newTestPipeline(store)

	// Drop T4 so two of three tickets are closed: 66.67% rounds to 67
	// and pending becomes the complement.
	_, err := store.Delete(context.Background(), "T4", docstore.Tickets)
	require.NoError(t, err)

	summary, err := pipeline.Summarize(context.Background(), SummaryFilter{})
	require.NoError(t, err)

	assert.Equal(t, 67, summary.ClosedVsPending.ClosedPercentage)
	assert.Equal(t, 33, summary.ClosedVsPending.PendingPercentage)
}
