package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)

	var got []EventType
	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		got = append(got, event.Type)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "T1"})
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventTicketCreated}, got)
}

func TestPublishLogsHandlerFailureAndContinues(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	secondRan := false
	dispatcher.Subscribe(EventTicketStateChanged, func(ctx context.Context, event Event) error {
		return errors.New("smtp unreachable")
	})
	dispatcher.Subscribe(EventTicketStateChanged, func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketStateChanged, TicketID: "T1"})
	require.NoError(t, err)
	assert.True(t, secondRan)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "T1", entries[0].ContextMap()["ticket_id"])
}

func TestPublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)
	err := dispatcher.Publish(context.Background(), Event{Type: EventCommentAdded})
	assert.NoError(t, err)
}
