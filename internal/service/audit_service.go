package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/events"
	"github.com/spec-kit/barangay-portal/internal/observability"
)

// AuditService records credential slot changes in the log and metrics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to slot events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSlotStored, a.handleSlotStored)
	a.dispatcher.Subscribe(events.EventSlotCleared, a.handleSlotCleared)
}

func (a *AuditService) handleSlotStored(_ context.Context, event events.Event) error {
	a.logger.Info("SlotStored",
		zap.String("event_id", event.ID),
		zap.String("slot", event.Slot),
		zap.String("subject_id", event.SubjectID))
	a.metrics.RecordSlotEvent(event.Slot, string(event.Type), "")
	return nil
}

func (a *AuditService) handleSlotCleared(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("slot", event.Slot),
		zap.String("reason", string(event.Reason)),
	}
	if event.Reason == events.ReasonLogout {
		a.logger.Info("SlotCleared", fields...)
	} else {
		a.logger.Debug("SlotCleared", fields...)
	}
	a.metrics.RecordSlotEvent(event.Slot, string(event.Type), string(event.Reason))
	return nil
}
