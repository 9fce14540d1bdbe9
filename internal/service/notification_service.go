package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/saecheverry/stefanini-go-tickets/internal/events"
)

// NotificationService logs domain events for downstream notification
// channels; delivery itself lives outside this service.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleEvent("TicketCreated"))
	n.dispatcher.Subscribe(events.EventTicketStateChanged, n.handleEvent("TicketStateChanged"))
	n.dispatcher.Subscribe(events.EventCommentAdded, n.handleEvent("CommentAdded"))
	n.dispatcher.Subscribe(events.EventEvidenceAdded, n.handleEvent("EvidenceAdded"))
	n.dispatcher.Subscribe(events.EventAppointmentBooked, n.handleEvent("AppointmentBooked"))
}

func (n *NotificationService) handleEvent(name string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.String("ticket_id", event.TicketID),
			zap.Any("payload", event.Payload))
		return nil
	}
}
