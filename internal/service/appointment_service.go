package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// AppointmentService persists scheduled technician visits.
type AppointmentService struct {
	store      docstore.Store
	dispatcher events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(store docstore.Store, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{store: store, dispatcher: dispatcher}
}

// Create stores a batch of appointments and returns the generated ids.
func (s *AppointmentService) Create(ctx context.Context, appointments []domain.Appointment) ([]string, error) {
	createdAt := nowISO()
	docs := make([]any, 0, len(appointments))
	ids := make([]string, 0, len(appointments))
	for i := range appointments {
		appointments[i].ID = uuid.NewString()
		appointments[i].CreatedAt = createdAt
		docs = append(docs, appointments[i])
		ids = append(ids, appointments[i].ID)
	}
	if err := s.store.Create(ctx, docstore.Appointments, docs...); err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Appointments, err)
	}
	for i := range appointments {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:     events.EventAppointmentBooked,
			TicketID: appointments[i].TicketID,
			Payload: events.AppointmentBookedPayload{
				AppointmentID: appointments[i].ID,
				StartDate:     appointments[i].StartDate,
				EndDate:       appointments[i].EndDate,
			},
		})
	}
	return ids, nil
}

// Get fetches one appointment.
func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := docstore.GetAs[domain.Appointment](ctx, s.store, id, docstore.Appointments)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Appointments, err)
	}
	if appointment == nil {
		return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
	}
	return appointment, nil
}

// List returns one page of appointments plus the total count.
func (s *AppointmentService) List(ctx context.Context, page, limit int, query docstore.Query) ([]domain.Appointment, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.store.Count(ctx, query, docstore.Appointments)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Appointments, err)
	}
	appointments, err := docstore.ListAs[domain.Appointment](ctx, s.store, (page-1)*limit, limit, query, docstore.Appointments)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Appointments, err)
	}
	return appointments, total, nil
}

// Update patches an appointment and stamps updatedAt.
func (s *AppointmentService) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = nowISO()
	ok, err := s.store.Update(ctx, id, patch, docstore.Appointments)
	if err != nil {
		return apperrors.NewGatewayFailure(docstore.Appointments, err)
	}
	if !ok {
		return apperrors.NewNotFound("appointment", map[string]any{"id": id})
	}
	return nil
}

// Delete removes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id, docstore.Appointments); err != nil {
		return apperrors.NewGatewayFailure(docstore.Appointments, err)
	}
	return nil
}
