package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/events"
	"github.com/spec-kit/barangay-portal/internal/slot"
)

const storeLocalsKey = "auth_slot_store"

// Credentials is the single place that reads, writes and validates
// credential slots. Gates, the header and pages all go through it.
type Credentials struct {
	backend    slot.Backend
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewCredentials constructs the service. dispatcher may be nil.
func NewCredentials(backend slot.Backend, dispatcher events.Dispatcher, logger *zap.Logger) *Credentials {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Credentials{backend: backend, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// Check re-derives validity of the slot and clears it when it holds a
// malformed or expired token.
func (s *Credentials) Check(ctx context.Context, store slot.Store, sl Slot) Result {
	raw, err := store.Get(ctx, sl.Key)
	if err != nil {
		if !errors.Is(err, slot.ErrNotFound) {
			s.logger.Warn("credential slot read failed", zap.String("slot", sl.Name), zap.Error(err))
		}
		return Result{Outcome: OutcomeMissing}
	}

	res := Evaluate(raw, s.now())
	switch res.Outcome {
	case OutcomeMalformed:
		s.clear(ctx, store, sl, events.ReasonMalformed)
	case OutcomeExpired:
		s.clear(ctx, store, sl, events.ReasonExpired)
	}
	return res
}

// Store writes a token issued at login into the slot.
func (s *Credentials) Store(ctx context.Context, store slot.Store, sl Slot, token string) error {
	if err := store.Set(ctx, sl.Key, token); err != nil {
		return err
	}
	var subject string
	if claims, err := DecodeClaims(token); err == nil {
		subject = claims.SubjectID
	}
	s.publish(ctx, events.NewSlotStored(sl.Name, subject))
	return nil
}

// Clear empties the slot, e.g. on logout.
func (s *Credentials) Clear(ctx context.Context, store slot.Store, sl Slot, reason events.ClearReason) error {
	if err := store.Delete(ctx, sl.Key); err != nil {
		return err
	}
	s.publish(ctx, events.NewSlotCleared(sl.Name, reason))
	return nil
}

func (s *Credentials) clear(ctx context.Context, store slot.Store, sl Slot, reason events.ClearReason) {
	if err := s.Clear(ctx, store, sl, reason); err != nil {
		s.logger.Warn("credential slot clear failed", zap.String("slot", sl.Name), zap.Error(err))
	}
}

func (s *Credentials) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("slot event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

// Open returns the visitor's store for the request, opening it once.
func (s *Credentials) Open(c *fiber.Ctx) (slot.Store, error) {
	if store, ok := c.Locals(storeLocalsKey).(slot.Store); ok {
		return store, nil
	}
	store, err := s.backend.Open(c)
	if err != nil {
		return nil, err
	}
	c.Locals(storeLocalsKey, store)
	return store, nil
}

// CheckRequest checks a slot for the visitor behind c.
func (s *Credentials) CheckRequest(c *fiber.Ctx, sl Slot) Result {
	store, err := s.Open(c)
	if err != nil {
		s.logger.Warn("open credential store failed", zap.String("slot", sl.Name), zap.Error(err))
		return Result{Outcome: OutcomeMissing}
	}
	return s.Check(c.UserContext(), store, sl)
}

// Login stores token for the visitor behind c.
func (s *Credentials) Login(c *fiber.Ctx, sl Slot, token string) error {
	store, err := s.Open(c)
	if err != nil {
		return err
	}
	return s.Store(c.UserContext(), store, sl, token)
}

// Logout clears the slot for the visitor behind c.
func (s *Credentials) Logout(c *fiber.Ctx, sl Slot) error {
	store, err := s.Open(c)
	if err != nil {
		return err
	}
	return s.Clear(c.UserContext(), store, sl, events.ReasonLogout)
}
