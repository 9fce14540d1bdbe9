package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	"github.com/saecheverry/stefanini-go-tickets/internal/flow"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// TicketService coordinates ticket persistence and the flow pipeline.
type TicketService struct {
	store      docstore.Store
	pipeline   *flow.Pipeline
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(store docstore.Store, pipeline *flow.Pipeline, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{store: store, pipeline: pipeline, dispatcher: dispatcher}
}

// Create stores a batch of tickets, rejecting duplicate ticket numbers.
// Returns the generated ids in input order.
func (s *TicketService) Create(ctx context.Context, tickets []domain.Ticket) ([]string, error) {
	createdAt := nowISO()
	docs := make([]any, 0, len(tickets))
	ids := make([]string, 0, len(tickets))
	batchNumbers := make(map[string]bool, len(tickets))

	for i := range tickets {
		if batchNumbers[tickets[i].TicketNumber] {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("%s already exists", tickets[i].TicketNumber), nil)
		}
		batchNumbers[tickets[i].TicketNumber] = true

		existing, err := s.store.List(ctx, 0, 1, docstore.Query{
			Filters: map[string]any{"ticket_number": tickets[i].TicketNumber},
		}, docstore.Tickets)
		if err != nil {
			return nil, apperrors.NewGatewayFailure(docstore.Tickets, err)
		}
		if len(existing) > 0 {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("%s already exists", tickets[i].TicketNumber), nil)
		}

		tickets[i].ID = uuid.NewString()
		tickets[i].CreatedAt = createdAt
		docs = append(docs, tickets[i])
		ids = append(ids, tickets[i].ID)
	}

	if err := s.store.Create(ctx, docstore.Tickets, docs...); err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Tickets, err)
	}

	for i := range tickets {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:     events.EventTicketCreated,
			TicketID: tickets[i].ID,
			Payload: events.TicketCreatedPayload{
				TicketNumber: tickets[i].TicketNumber,
				CommerceID:   tickets[i].CommerceID,
				BranchID:     tickets[i].BranchID,
				Priority:     tickets[i].Priority,
			},
		})
	}
	return ids, nil
}

// Get fetches one ticket by id.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := docstore.GetAs[domain.Ticket](ctx, s.store, id, docstore.Tickets)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Tickets, err)
	}
	if ticket == nil {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// List returns one page of tickets plus the total count, newest first.
func (s *TicketService) List(ctx context.Context, page, limit int, query docstore.Query) ([]domain.Ticket, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.store.Count(ctx, query, docstore.Tickets)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Tickets, err)
	}
	query.Sort = mergeSort(query.Sort, "createdAt", "desc")
	tickets, err := docstore.ListAs[domain.Ticket](ctx, s.store, (page-1)*limit, limit, query, docstore.Tickets)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Tickets, err)
	}
	return tickets, total, nil
}

// Update patches a ticket and stamps updatedAt.
func (s *TicketService) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = nowISO()
	ok, err := s.store.Update(ctx, id, patch, docstore.Tickets)
	if err != nil {
		return apperrors.NewGatewayFailure(docstore.Tickets, err)
	}
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return nil
}

// Delete removes a ticket by id.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id, docstore.Tickets); err != nil {
		return apperrors.NewGatewayFailure(docstore.Tickets, err)
	}
	return nil
}

// Flows composes the denormalized view for a single ticket.
func (s *TicketService) Flows(ctx context.Context, id string) (*domain.TicketFlow, error) {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	flows, err := s.pipeline.ComposeFlows(ctx, []domain.Ticket{*ticket})
	if err != nil {
		return nil, err
	}
	return &flows[0], nil
}

// ListFlows composes flows for one page of tickets, ordered by planned
// date descending.
func (s *TicketService) ListFlows(ctx context.Context, page, limit int, query docstore.Query) ([]domain.TicketFlow, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.store.Count(ctx, query, docstore.Tickets)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Tickets, err)
	}
	query.Sort = mergeSort(query.Sort, "plannedDate", "desc")
	tickets, err := docstore.ListAs[domain.Ticket](ctx, s.store, (page-1)*limit, limit, query, docstore.Tickets)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Tickets, err)
	}
	flows, err := s.pipeline.ComposeFlows(ctx, tickets)
	if err != nil {
		return nil, 0, err
	}
	return flows, total, nil
}

// Summary derives fleet statistics over the filtered population.
func (s *TicketService) Summary(ctx context.Context, filter flow.SummaryFilter) (*domain.Summary, error) {
	return s.pipeline.Summarize(ctx, filter)
}

func mergeSort(sort map[string]string, field, dir string) map[string]string {
	if sort == nil {
		sort = map[string]string{}
	}
	sort[field] = dir
	return sort
}
