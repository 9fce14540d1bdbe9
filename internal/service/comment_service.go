package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/saecheverry/stefanini-go-tickets/internal/docstore"
	"github.com/saecheverry/stefanini-go-tickets/internal/domain"
	"github.com/saecheverry/stefanini-go-tickets/internal/events"
	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

// CommentService persists append-only ticket comments.
type CommentService struct {
	store      docstore.Store
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(store docstore.Store, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{store: store, dispatcher: dispatcher}
}

// Create stores a batch of comments and returns the generated ids.
func (s *CommentService) Create(ctx context.Context, comments []domain.Comment) ([]string, error) {
	createdAt := nowISO()
	docs := make([]any, 0, len(comments))
	ids := make([]string, 0, len(comments))
	for i := range comments {
		comments[i].ID = uuid.NewString()
		comments[i].CreatedAt = createdAt
		docs = append(docs, comments[i])
		ids = append(ids, comments[i].ID)
	}
	if err := s.store.Create(ctx, docstore.Comments, docs...); err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Comments, err)
	}
	for i := range comments {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:     events.EventCommentAdded,
			TicketID: comments[i].TicketID,
			Payload: events.CommentAddedPayload{
				CommentID:  comments[i].ID,
				EmployeeID: comments[i].EmployeeID,
			},
		})
	}
	return ids, nil
}

// Get fetches one comment.
func (s *CommentService) Get(ctx context.Context, id string) (*domain.Comment, error) {
	comment, err := docstore.GetAs[domain.Comment](ctx, s.store, id, docstore.Comments)
	if err != nil {
		return nil, apperrors.NewGatewayFailure(docstore.Comments, err)
	}
	if comment == nil {
		return nil, apperrors.NewNotFound("comment", map[string]any{"id": id})
	}
	return comment, nil
}

// List returns one page of comments plus the total count.
func (s *CommentService) List(ctx context.Context, page, limit int, query docstore.Query) ([]domain.Comment, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.store.Count(ctx, query, docstore.Comments)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Comments, err)
	}
	comments, err := docstore.ListAs[domain.Comment](ctx, s.store, (page-1)*limit, limit, query, docstore.Comments)
	if err != nil {
		return nil, 0, apperrors.NewGatewayFailure(docstore.Comments, err)
	}
	return comments, total, nil
}

// Update patches a comment and stamps updatedAt.
func (s *CommentService) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = nowISO()
	ok, err := s.store.Update(ctx, id, patch, docstore.Comments)
	if err != nil {
		return apperrors.NewGatewayFailure(docstore.Comments, err)
	}
	if !ok {
		return apperrors.NewNotFound("comment", map[string]any{"id": id})
	}
	return nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.store.Delete(ctx, id, docstore.Comments); err != nil {
		return apperrors.NewGatewayFailure(docstore.Comments, err)
	}
	return nil
}
