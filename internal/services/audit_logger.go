package services

import (
	"log/slog"

	"bank-management/internal/models"
	"bank-management/internal/repositories"
)

// auditLogger appends audit rows on behalf of the services. Audit failures
// are logged and swallowed; they never fail the operation being audited.
type auditLogger struct {
	auditRepo repositories.AuditLogRepositoryInterface
	logger    *slog.Logger
}

func newAuditLogger(auditRepo repositories.AuditLogRepositoryInterface, logger *slog.Logger) *auditLogger {
	return &auditLogger{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (a *auditLogger) record(userID *int64, action, resource, resourceID string, metadata models.JSONBMap) {
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   metadata,
	}

	if err := a.auditRepo.Create(entry); err != nil {
		a.logger.Error("failed to write audit log",
			slog.String("action", action),
			slog.String("resource", resource),
			slog.String("error", err.Error()))
	}
}
