package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []string
	dispatcher.Subscribe(EventTicketOpened, func(_ context.Context, e Event) error {
		seen = append(seen, e.SubjectID)
		return nil
	})
	dispatcher.Subscribe(EventTicketOpened, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.SubjectID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketOpened, SubjectID: "t-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t-1", "second:t-1"}, seen)
}

func TestDispatcherIgnoresUnrelatedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventDeadlineSweep, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketOpened}))
	assert.False(t, called)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var order []int
	dispatcher.Subscribe(EventProjectCompleted, func(context.Context, Event) error {
		order = append(order, 1)
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventProjectCompleted, func(context.Context, Event) error {
		order = append(order, 2)
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventProjectCompleted}))
	assert.Equal(t, []int{1, 2}, order)
}
