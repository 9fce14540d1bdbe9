package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

func seedStatesFixture() *docstore.MemoryStore {
	return docstore.NewMemoryStore().
		Seed(docstore.Tickets, domain.Ticket{ID: "T1", TicketNumber: "TK-001", CurrentState: "Abierto"}).
		Seed(docstore.Datas, domain.ReferenceTable{ID: "states", Values: []domain.ReferenceValue{
			{Name: "Abierto", Value: "Abierto"},
			{Name: "En Proceso", Value: "En Proceso"},
			{Name: "Cerrado", Value: "Cerrado"},
		}})
}

func TestStatesHistoryCreateUpdatesTicketState(t *testing.T) {
	store := seedStatesFixture()
	svc := NewStatesHistoryService(store, events.NewInMemoryDispatcher(nil))

	ids, err := svc.Create(context.Background(), []domain.StatusHistory{
		{TicketID: "T1", StateID: "En Proceso", Description: "technician on site"},
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	entry, err := svc.Get(context.Background(), ids[0])
	require.NoError(t, err)
	require.NotNil(t, entry.State)
	assert.Equal(t, "En Proceso", entry.State.Name)
	assert.Equal(t, "EnProceso", entry.State.Value)

	ticket, err := docstore.GetAs[domain.Ticket](context.Background(), store, "T1", docstore.Tickets)
	require.NoError(t, err)
	assert.Equal(t, "En Proceso", ticket.CurrentState)
}

func TestStatesHistoryCreateUnknownStateFallsBack(t *testing.T) {
	store := seedStatesFixture()
	svc := NewStatesHistoryService(store, events.NewInMemoryDispatcher(nil))

	ids, err := svc.Create(context.Background(), []domain.StatusHistory{
		{TicketID: "T1", StateID: "Estado Raro"},
	})
	require.NoError(t, err)

	entry, err := svc.Get(context.Background(), ids[0])
	require.NoError(t, err)
	require.NotNil(t, entry.State)
	assert.Equal(t, "Estado Raro", entry.State.Name)
	assert.Equal(t, "EstadoRaro", entry.State.Value)
}

func TestStatesHistoryCreateMissingTicketIsConflict(t *testing.T) {
	store := seedStatesFixture()
	svc := NewStatesHistoryService(store, events.NewInMemoryDispatcher(nil))

	ids, err := svc.Create(context.Background(), []domain.StatusHistory{
		{TicketID: "GONE", StateID: "Cerrado"},
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	// The history entry itself was written before the update failed.
	require.Len(t, ids, 1)
	entry, getErr := svc.Get(context.Background(), ids[0])
	require.NoError(t, getErr)
	assert.Equal(t, "GONE", entry.TicketID)
}

func TestStatesHistoryListByTicket(t *testing.T) {
	store := seedStatesFixture()
	svc := NewStatesHistoryService(store, events.NewInMemoryDispatcher(nil))

	_, err := svc.Create(context.Background(), []domain.StatusHistory{
		{TicketID: "T1", StateID: "En Proceso"},
		{TicketID: "T1", StateID: "Cerrado"},
	})
	require.NoError(t, err)

	entries, total, err := svc.List(context.Background(), 1, 10, docstore.Query{
		Filters: map[string]any{"ticketId": "T1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, entries, 2)
}
