package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// refStates is the id of the state vocabulary inside the datas
// collection.
const refStates = "states"

// StatesHistoryService appends state changes and keeps the parent
// ticket's currentState in sync.
type StatesHistoryService struct {
	store      docstore.Store
	dispatcher events.Dispatcher
}

// NewStatesHistoryService constructs the service.
func NewStatesHistoryService(store docstore.Store, dispatcher events.Dispatcher) *StatesHistoryService {
	return &StatesHistoryService{store: store, dispatcher: dispatcher}
}

// Create appends history entries. For each entry the raw state id is
// resolved against the state vocabulary, the entry is written, and then
// the parent ticket's currentState is updated, the sole
// cross-collection write in the system. When the history entry was
// written but the ticket update failed, the partial failure is surfaced
// as a conflict instead of being swallowed.
func (s *StatesHistoryService) Create(ctx context.Context, entries []domain.StatusHistory) ([]string, error) {
	statesTable, err := docstore.GetAs[domain.ReferenceTable](ctx, s.store, refStates, docstore.Datas)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Datas, err)
	}

	createdAt := nowISO()
	ids := make([]string, 0, len(entries))

	for i := range entries {
		entries[i].ID = uuid.NewString()
		entries[i].CreatedAt = createdAt
		entries[i].State = resolveState(statesTable, entries[i].StateID)

		if err := s.store.Create(ctx, docstore.StatesHistory, entries[i]); err != nil {
			return ids, apperrors.NewGatewayFailure(docstore.StatesHistory, err)
		}
		ids = append(ids, entries[i].ID)

		ok, err := s.store.Update(ctx, entries[i].TicketID,
			map[string]any{"currentState": entries[i].StateID}, docstore.Tickets)
		if err != nil {
			return ids, apperrors.NewGatewayFailure(docstore.Tickets, err)
		}
		if !ok {
			return ids, apperrors.NewConflict(
				"state history recorded but ticket state update failed",
				map[string]any{"historyId": entries[i].ID, "ticketId": entries[i].TicketID})
		}

		publishEvent(ctx, s.dispatcher, events.Event{
			Type:     events.EventTicketStateChanged,
			TicketID: entries[i].TicketID,
			Payload: events.TicketStateChangedPayload{
				HistoryID: entries[i].ID,
				StateID:   entries[i].StateID,
				StateName: entries[i].State.Name,
			},
		})
	}
	return ids, nil
}

// Get fetches one history entry.
func (s *StatesHistoryService) Get(ctx context.Context, id string) (*domain.StatusHistory, error) {
	entry, err := docstore.GetAs[domain.StatusHistory](ctx, s.store, id, docstore.StatesHistory)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.StatesHistory, err)
	}
	if entry == nil {
		return nil, apperrors.NewNotFound("state history entry", map[string]any{"id": id})
	}
	return entry, nil
}

// List returns one page of history entries plus the total count.
func (s *StatesHistoryService) List(ctx context.Context, page, limit int, query docstore.Query) ([]domain.StatusHistory, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.store.Count(ctx, query, docstore.StatesHistory)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.StatesHistory, err)
	}
	entries, err := docstore.ListAs[domain.StatusHistory](ctx, s.store, (page-1)*limit, limit, query, docstore.StatesHistory)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.StatesHistory, err)
	}
	return entries, total, nil
}

// Update patches a history entry and stamps updatedAt.
func (s *StatesHistoryService) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = nowISO()
	ok, err := s.store.Update(ctx, id, patch, docstore.StatesHistory)
	if err != nil {
		return apperrors.NewGatewayFailure(docstore.StatesHistory, err)
	}
	if !ok {
		return apperrors.NewNotFound("state history entry", map[string]any{"id": id})
	}
	return nil
}

// Delete removes a history entry.
func (s *StatesHistoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id, docstore.StatesHistory); err != nil {
		return apperrors.NewGatewayFailure(docstore.StatesHistory, err)
	}
	return nil
}

// resolveState maps a raw state id to its vocabulary entry; unknown ids
// fall back to the raw id with whitespace stripped from the value.
func resolveState(table *domain.ReferenceTable, stateID string) *domain.StateRef {
	if table != nil {
		for _, value := range table.Values {
			if value.Value == stateID {
				return &domain.StateRef{Name: value.Name, Value: stripWhitespace(value.Value)}
			}
		}
	}
	return &domain.StateRef{Name: stateID, Value: stripWhitespace(stateID)}
}

func stripWhitespace(value string) string {
	return strings.Join(strings.Fields(value), "")
}
