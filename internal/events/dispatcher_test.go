package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var stored, cleared []Event
	d.Subscribe(EventSlotStored, func(_ context.Context, e Event) error {
		stored = append(stored, e)
		return nil
	})
	d.Subscribe(EventSlotCleared, func(_ context.Context, e Event) error {
		cleared = append(cleared, e)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewSlotStored("resident", "u-1")))
	require.NoError(t, d.Publish(context.Background(), NewSlotCleared("admin", ReasonExpired)))

	require.Len(t, stored, 1)
	assert.Equal(t, "u-1", stored[0].SubjectID)
	assert.NotEmpty(t, stored[0].ID)
	require.Len(t, cleared, 1)
	assert.Equal(t, ReasonExpired, cleared[0].Reason)
	assert.Equal(t, "admin", cleared[0].Slot)
}

func TestDispatcherJoinsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	first := errors.New("first")
	calls := 0

	d.Subscribe(EventSlotCleared, func(context.Context, Event) error {
		calls++
		return first
	})
	d.Subscribe(EventSlotCleared, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), NewSlotCleared("resident", ReasonLogout))
	assert.ErrorIs(t, err, first)
	assert.Equal(t, 2, calls)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewSlotStored("admin", "")))
}

func TestDispatcherRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()
	reached := false

	d.Subscribe(EventSlotStored, func(context.Context, Event) error {
		panic("boom")
	})
	d.Subscribe(EventSlotStored, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), NewSlotStored("resident", "u-2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: boom")
	assert.True(t, reached)
}
