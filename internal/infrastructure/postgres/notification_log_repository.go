package postgres

import (
	"context"
	"fmt"

	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

var _ repository.NotificationLogRepository = (*NotificationLogRepo)(nil)

// NotificationLogRepo implementación del marcador de deduplicación de alertas
// sobre PostgreSQL (usable con pool o tx).
type NotificationLogRepo struct {
	q Querier
}

// NewNotificationLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationLogRepository(q Querier) *NotificationLogRepo {
	return &NotificationLogRepo{q: q}
}

// Create inserta el marcador de alerta enviada.
func (r *NotificationLogRepo) Create(log *entity.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (id, product_id, status, created_at)
		VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, log.ID, log.ProductID, log.Status)
	if err != nil {
		return fmt.Errorf("create notification log: %w", err)
	}
	return nil
}

// ExistsForProduct verifica si ya hay marcador del estado para el producto.
func (r *NotificationLogRepo) ExistsForProduct(productID, status string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM notification_logs WHERE product_id = $1 AND status = $2)`,
		productID, status).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists notification log: %w", err)
	}
	return exists, nil
}

// DeleteForProduct elimina los marcadores del producto para los estados dados
// (todos si no se pasa ninguno).
func (r *NotificationLogRepo) DeleteForProduct(productID string, statuses ...string) error {
	var err error
	if len(statuses) == 0 {
		_, err = r.q.Exec(context.Background(),
			`DELETE FROM notification_logs WHERE product_id = $1`, productID)
	} else {
		_, err = r.q.Exec(context.Background(),
			`DELETE FROM notification_logs WHERE product_id = $1 AND status = ANY($2)`, productID, statuses)
	}
	if err != nil {
		return fmt.Errorf("delete notification logs: %w", err)
	}
	return nil
}

// DeleteForProducts limpia todos los marcadores de los productos indicados
// (limpieza batch de productos repuestos).
func (r *NotificationLogRepo) DeleteForProducts(productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM notification_logs WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return fmt.Errorf("delete notification logs batch: %w", err)
	}
	return nil
}
