package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// DeviceService persists devices recorded under evidences.
type DeviceService struct {
	store docstore.Store
}

// NewDeviceService constructs the service.
func NewDeviceService(store docstore.Store) *DeviceService {
	return &DeviceService{store: store}
}

// Create stores a batch of devices. The owning evidence supplies the
// ticket back-reference when the client did not send one, so batch
// hydration can fetch a ticket's devices in a single query.
func (s *DeviceService) Create(ctx context.Context, devices []domain.Device) ([]string, error) {
	createdAt := nowISO()
	docs := make([]any, 0, len(devices))
	ids := make([]string, 0, len(devices))
	for i := range devices {
		devices[i].ID = uuid.NewString()
		devices[i].CreatedAt = createdAt
		if devices[i].TicketID == "" {
			evidence, err := docstore.GetAs[domain.Evidence](ctx, s.store, devices[i].EvidenceID, docstore.Evidences)
			if err != nil {
				return nil, apperrors.NewGatewayFailure(docstore.Evidences, err)
			}
			if evidence != nil {
				devices[i].TicketID = evidence.TicketID
			}
		}
		docs = append(docs, devices[i])
		ids = append(ids, devices[i].ID)
	}
	if err := s.store.Create(ctx, docstore.Devices, docs...); err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Devices, err)
	}
	return ids, nil
}

// Get fetches one device.
func (s *DeviceService) Get(ctx context.Context, id string) (*domain.Device, error) {
	device, err := docstore.GetAs[domain.Device](ctx, s.store, id, docstore.Devices)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Devices, err)
	}
	if device == nil {
		return nil, apperrors.NewNotFound("device", map[string]any{"id": id})
	}
	return device, nil
}

// List returns one page of devices plus the total count.
func (s *DeviceService) List(ctx context.Context, page, limit int, query docstore.Query) ([]domain.Device, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.store.Count(ctx, query, docstore.Devices)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Devices, err)
	}
	devices, err := docstore.ListAs[domain.Device](ctx, s.store, (page-1)*limit, limit, query, docstore.Devices)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Devices, err)
	}
	return devices, total, nil
}

// Update patches a device and stamps updatedAt.
func (s *DeviceService) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = nowISO()
	ok, err := s.store.Update(ctx, id, patch, docstore.Devices)
	if err != nil {
		return apperrors.NewGatewayFailure(docstore.Devices, err)
	}
	if !ok {
		return apperrors.NewNotFound("device", map[string]any{"id": id})
	}
	return nil
}

// Delete removes a device.
func (s *DeviceService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id, docstore.Devices); err != nil {
		return apperrors.NewGatewayFailure(docstore.Devices, err)
	}
	return nil
}
