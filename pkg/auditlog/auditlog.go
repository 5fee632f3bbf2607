package auditlog

import (
	"assetdesk/pkg/models"

	"go.uber.org/zap"
)

type Repository interface {
	PersistLog(auditLog models.AuditLog, data interface{}) error
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

type Auditlog struct {
	r Repository
}

func NewAuditLog(r Repository) *Auditlog {
	return &Auditlog{r: r}
}

// Log records an action against a resource. Failures are logged and
// swallowed; auditing never fails the originating request.
func (a *Auditlog) Log(action string, data map[string]interface{}, item Auditable) {
	entry := item.CreateLogView()
	entry.Action = action

	if err := a.r.PersistLog(entry, data); err != nil {
		zap.L().Warn("unable to persist audit log entry",
			zap.Int("resource_id", entry.ResourceID),
			zap.String("resource_type", entry.ResourceType),
			zap.Error(err))
	}
}
