package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSlotStored  EventType = "slot_stored"
	EventSlotCleared EventType = "slot_cleared"
)

// ClearReason tells why a credential slot was emptied.
type ClearReason string

const (
	ReasonLogout    ClearReason = "logout"
	ReasonMalformed ClearReason = "malformed"
	ReasonExpired   ClearReason = "expired"
)

// Event represents a change to a visitor's credential slot.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Slot      string      `json:"slot"`
	SubjectID string      `json:"subject_id,omitempty"`
	Reason    ClearReason `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSlotStored builds the event published after a login.
func NewSlotStored(slot, subjectID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventSlotStored,
		Slot:      slot,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
	}
}

// NewSlotCleared builds the event published when a slot is emptied.
func NewSlotCleared(slot string, reason ClearReason) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventSlotCleared,
		Slot:      slot,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}
}
