package worker

import (
	"github.com/spec-kit/barangay-portal/internal/service"
)

// StartAuditWorker registers the slot audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
