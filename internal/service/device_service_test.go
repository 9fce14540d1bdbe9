package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
)

func TestDeviceCreateBackfillsTicketFromEvidence(t *testing.T) {
	store := docstore.NewMemoryStore().
		Seed(docstore.Evidences, domain.Evidence{ID: "EV1", TicketID: "T1", Problem: "broken screen"})
	svc := NewDeviceService(store)

	ids, err := svc.Create(context.Background(), []domain.Device{
		{EvidenceID: "EV1", Type: "POS", Brand: "Verifone", Serial: "SN-1"},
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	device, err := svc.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "T1", device.TicketID)
}

func TestDeviceCreateKeepsExplicitTicketID(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewDeviceService(store)

	ids, err := svc.Create(context.Background(), []domain.Device{
		{EvidenceID: "EV1", TicketID: "T9", Type: "POS"},
	})
	require.NoError(t, err)

	device, err := svc.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "T9", device.TicketID)
}

func TestDeviceCreateOrphanEvidenceLeavesTicketEmpty(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewDeviceService(store)

	ids, err := svc.Create(context.Background(), []domain.Device{
		{EvidenceID: "GONE", Type: "POS"},
	})
	require.NoError(t, err)

	device, err := svc.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Empty(t, device.TicketID)
}
