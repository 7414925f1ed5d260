package repository

import "github.com/sepatuhub/pos-api/internal/domain/entity"

// AuditLogRepository puerto append-only del registro de auditoría.
// Create se invoca dentro de la misma transacción que la mutación que
// documenta, para que log y cambio de estado nunca queden separados por un crash.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(entityFilter string, limit, offset int) ([]*entity.AuditLog, int, error)
}
