package alerting

import (
	"context"

	"github.com/sepatuhub/pos-api/internal/domain/entity"
)

// Notifier puerto de entrega de alertas de stock (push, email, lo que sea).
// Un error de entrega NO crea el marcador de deduplicación: la alerta se
// reintenta en el próximo chequeo.
type Notifier interface {
	NotifyLowStock(ctx context.Context, product *entity.Product) error
	NotifyOutOfStock(ctx context.Context, product *entity.Product) error
}
