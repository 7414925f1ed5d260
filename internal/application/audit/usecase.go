package audit

import (
	"context"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// UseCase lectura del registro de auditoría. El registro es append-only: no
// existen operaciones de edición ni borrado, solo este listado.
type UseCase struct {
	auditRepo repository.AuditLogRepository
}

// New construye el caso de uso de auditoría.
func New(auditRepo repository.AuditLogRepository) *UseCase {
	return &UseCase{auditRepo: auditRepo}
}

// List devuelve entradas paginadas, más recientes primero, opcionalmente
// filtradas por entidad ("ProductSize", "Transaction", ...).
func (uc *UseCase) List(ctx context.Context, entityFilter string, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	page.DefaultPage()
	logs, total, err := uc.auditRepo.List(entityFilter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.AuditLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			UserName:  l.UserName,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Changes:   l.Changes,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt,
		})
	}
	return &dto.AuditLogListResponse{
		Data: out,
		Meta: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
