// Package notify implementa la entrega de alertas de stock. La implementación
// actual escribe en el log estructurado; el puerto admite reemplazarla por un
// proveedor push sin tocar el core.
package notify

import (
	"context"

	"github.com/sepatuhub/pos-api/internal/application/alerting"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/pkg/logger"
)

var _ alerting.Notifier = (*LogNotifier)(nil)

// LogNotifier entrega alertas vía zerolog.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyLowStock(_ context.Context, product *entity.Product) error {
	n.log.Warn().
		Str("product_id", product.ID).
		Str("nama", product.Nama).
		Int("stock", product.Stock).
		Int("min_stock", product.MinStock).
		Msg("alerta: stock bajo")
	return nil
}

func (n *LogNotifier) NotifyOutOfStock(_ context.Context, product *entity.Product) error {
	n.log.Error().
		Str("product_id", product.ID).
		Str("nama", product.Nama).
		Msg("alerta: stock agotado")
	return nil
}
