package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// EvidenceService persists service evidences.
type EvidenceService struct {
	store      docstore.Store
	dispatcher events.Dispatcher
}

// NewEvidenceService constructs the service.
func NewEvidenceService(store docstore.Store, dispatcher events.Dispatcher) *EvidenceService {
	return &EvidenceService{store: store, dispatcher: dispatcher}
}

// Create stores a batch of evidences and returns the generated ids.
func (s *EvidenceService) Create(ctx context.Context, evidences []domain.Evidence) ([]string, error) {
	createdAt := nowISO()
	docs := make([]any, 0, len(evidences))
	ids := make([]string, 0, len(evidences))
	for i := range evidences {
		evidences[i].ID = uuid.NewString()
		evidences[i].CreatedAt = createdAt
		docs = append(docs, evidences[i])
		ids = append(ids, evidences[i].ID)
	}
	if err := s.store.Create(ctx, docstore.Evidences, docs...); err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Evidences, err)
	}
	for i := range evidences {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:     events.EventEvidenceAdded,
			TicketID: evidences[i].TicketID,
			Payload: events.EvidenceAddedPayload{
				EvidenceID: evidences[i].ID,
				Problem:    evidences[i].Problem,
			},
		})
	}
	return ids, nil
}

// Get fetches one evidence.
func (s *EvidenceService) Get(ctx context.Context, id string) (*domain.Evidence, error) {
	evidence, err := docstore.GetAs[domain.Evidence](ctx, s.store, id, docstore.Evidences)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Evidences, err)
	}
	if evidence == nil {
		return nil, apperrors.NewNotFound("evidence", map[string]any{"id": id})
	}
	return evidence, nil
}

// List returns one page of evidences plus the total count.
func (s *EvidenceService) List(ctx context.Context, page, limit int, query docstore.Query) ([]domain.Evidence, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.store.Count(ctx, query, docstore.Evidences)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Evidences, err)
	}
	evidences, err := docstore.ListAs[domain.Evidence](ctx, s.store, (page-1)*limit, limit, query, docstore.Evidences)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Evidences, err)
	}
	return evidences, total, nil
}

// Update patches an evidence and stamps updatedAt.
func (s *EvidenceService) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = nowISO()
	ok, err := s.store.Update(ctx, id, patch, docstore.Evidences)
	if err != nil {
		return apperrors.NewGatewayFailure(docstore.Evidences, err)
	}
	if !ok {
		return apperrors.NewNotFound("evidence", map[string]any{"id": id})
	}
	return nil
}

// Delete removes an evidence.
func (s *EvidenceService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id, docstore.Evidences); err != nil {
		return apperrors.NewGatewayFailure(docstore.Evidences, err)
	}
	return nil
}
