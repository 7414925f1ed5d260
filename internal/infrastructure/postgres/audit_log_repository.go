package postgres

import (
	"context"
	"fmt"

	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del puerto AuditLogRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: solo INSERT y SELECT.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta la entrada. Changes se persiste como JSONB {"before","after"}.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity, entity_id, changes, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.UserID, log.Action, log.Entity, log.EntityID, log.Changes, log.Detail,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List devuelve entradas paginadas, más recientes primero, con el nombre del
// operador resuelto (LEFT JOIN: vacío si el usuario fue borrado).
func (r *AuditLogRepo) List(entityFilter string, limit, offset int) ([]*entity.AuditLog, int, error) {
	args := []any{}
	where := ""
	if entityFilter != "" {
		where = " WHERE al.entity = $1"
		args = append(args, entityFilter)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM audit_logs al` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	pos := len(args) + 1
	query := `
		SELECT al.id, al.user_id, al.action, al.entity, al.entity_id, al.changes,
		       al.detail, al.created_at, COALESCE(u.nama, '')
		FROM audit_logs al
		LEFT JOIN users u ON u.id = al.user_id` + where +
		fmt.Sprintf(" ORDER BY al.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Action, &l.Entity, &l.EntityID, &l.Changes,
			&l.Detail, &l.CreatedAt, &l.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
