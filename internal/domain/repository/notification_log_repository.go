package repository

import "github.com/sepatuhub/pos-api/internal/domain/entity"

// NotificationLogRepository puerto del marcador de deduplicación de alertas.
type NotificationLogRepository interface {
	Create(log *entity.NotificationLog) error
	ExistsForProduct(productID, status string) (bool, error)
	DeleteForProduct(productID string, statuses ...string) error
	DeleteForProducts(productIDs []string) error
}
