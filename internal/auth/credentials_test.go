package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/barangay-portal/internal/events"
	"github.com/spec-kit/barangay-portal/internal/slot"
)

type recordedEvents struct {
	items []events.Event
}

func newTestCredentials(t *testing.T) (*Credentials, *recordedEvents) {
	t.Helper()
	rec := &recordedEvents{}
	d := events.NewInMemoryDispatcher()
	handler := func(_ context.Context, e events.Event) error {
		rec.items = append(rec.items, e)
		return nil
	}
	d.Subscribe(events.EventSlotStored, handler)
	d.Subscribe(events.EventSlotCleared, handler)
	return NewCredentials(slot.NewCookieBackend(slot.CookieOptions{}), d, nil), rec
}

func TestCheckExpiredClearsSlot(t *testing.T) {
	creds, rec := newTestCredentials(t)
	ctx := context.Background()
	store := slot.NewMemoryStore()
	require.NoError(t, store.Set(ctx, Resident.Key, "abc.eyJleHAiOjB9.sig"))

	res := creds.Check(ctx, store, Resident)
	assert.Equal(t, OutcomeExpired, res.Outcome)

	_, err := store.Get(ctx, Resident.Key)
	assert.ErrorIs(t, err, slot.ErrNotFound)
	require.Len(t, rec.items, 1)
	assert.Equal(t, events.ReasonExpired, rec.items[0].Reason)

	again := creds.Check(ctx, store, Resident)
	assert.Equal(t, OutcomeMissing, again.Outcome)
	assert.Len(t, rec.items, 1, "second check has no side effect")
}

func TestCheckMalformedClearsSlotIdempotently(t *testing.T) {
	creds, rec := newTestCredentials(t)
	ctx := context.Background()
	store := slot.NewMemoryStore()
	require.NoError(t, store.Set(ctx, Admin.Key, "not-a-token"))

	assert.Equal(t, OutcomeMalformed, creds.Check(ctx, store, Admin).Outcome)
	assert.Equal(t, OutcomeMissing, creds.Check(ctx, store, Admin).Outcome)
	require.Len(t, rec.items, 1)
	assert.Equal(t, events.ReasonMalformed, rec.items[0].Reason)
	assert.Equal(t, "admin", rec.items[0].Slot)
}

func TestCheckTrailingPayloadClearsSlot(t *testing.T) {
	creds, rec := newTestCredentials(t)
	ctx := context.Background()
	store := slot.NewMemoryStore()
	require.NoError(t, store.Set(ctx, Resident.Key, rawToken(`{"exp":9999999999} not json`)))

	res := creds.Check(ctx, store, Resident)
	assert.Equal(t, OutcomeMalformed, res.Outcome)
	assert.False(t, res.Allowed())

	_, err := store.Get(ctx, Resident.Key)
	assert.ErrorIs(t, err, slot.ErrNotFound)
	require.Len(t, rec.items, 1)
	assert.Equal(t, events.ReasonMalformed, rec.items[0].Reason)
}

func TestCheckValidPreservesSlot(t *testing.T) {
	creds, rec := newTestCredentials(t)
	ctx := context.Background()
	store := slot.NewMemoryStore()
	tok := rawToken(`{"exp":` + itoa(time.Now().Add(time.Hour).Unix()) + `,"sub":"r-7"}`)
	require.NoError(t, store.Set(ctx, Resident.Key, tok))

	res := creds.Check(ctx, store, Resident)
	assert.True(t, res.Allowed())
	assert.Equal(t, "r-7", res.SubjectID)

	val, err := store.Get(ctx, Resident.Key)
	require.NoError(t, err)
	assert.Equal(t, tok, val)
	assert.Empty(t, rec.items)
}

func TestSlotsAreIndependent(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()
	store := slot.NewMemoryStore()
	valid := rawToken(`{"exp":` + itoa(time.Now().Add(time.Hour).Unix()) + `}`)

	require.NoError(t, creds.Store(ctx, store, Admin, valid))
	require.NoError(t, creds.Store(ctx, store, Resident, "abc.eyJleHAiOjB9.sig"))

	assert.Equal(t, OutcomeExpired, creds.Check(ctx, store, Resident).Outcome)
	assert.True(t, creds.Check(ctx, store, Admin).Allowed())

	require.NoError(t, creds.Clear(ctx, store, Admin, events.ReasonLogout))
	require.NoError(t, creds.Store(ctx, store, Resident, valid))
	assert.True(t, creds.Check(ctx, store, Resident).Allowed())
	assert.Equal(t, OutcomeMissing, creds.Check(ctx, store, Admin).Outcome)
}

func TestStorePublishesSubject(t *testing.T) {
	creds, rec := newTestCredentials(t)
	store := slot.NewMemoryStore()

	require.NoError(t, creds.Store(context.Background(), store, Resident, rawToken(`{"exp":1,"id":"u-9"}`)))
	require.Len(t, rec.items, 1)
	assert.Equal(t, events.EventSlotStored, rec.items[0].Type)
	assert.Equal(t, "u-9", rec.items[0].SubjectID)
}

type failingStore struct{ slot.Store }

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("redis down")
}

func TestCheckReadErrorIsMissing(t *testing.T) {
	creds, rec := newTestCredentials(t)
	res := creds.Check(context.Background(), failingStore{}, Resident)
	assert.Equal(t, OutcomeMissing, res.Outcome)
	assert.Empty(t, rec.items)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
