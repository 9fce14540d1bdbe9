package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saecheverry/stefanini-go-tickets/internal/events"
)

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
