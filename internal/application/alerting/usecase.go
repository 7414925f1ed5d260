package alerting

import (
	"context"

	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
	"github.com/sepatuhub/pos-api/pkg/logger"

	"github.com/google/uuid"
)

// UseCase chequeo de stock bajo/agotado con deduplicación vía NotificationLog:
// cada producto alerta UNA vez por estado; al pasar a agotado el marcador
// LOW_STOCK se reemplaza por OUT_OF_STOCK; al reponer por encima del mínimo
// los marcadores se limpian y el producto puede volver a alertar.
// Corre siempre fuera de las transacciones del ledger.
type UseCase struct {
	productRepo repository.ProductRepository
	notifRepo   repository.NotificationLogRepository
	notifier    Notifier // opcional; sin notifier solo se mantienen los marcadores
	log         *logger.Logger
}

// New construye el chequeador de alertas.
func New(productRepo repository.ProductRepository, notifRepo repository.NotificationLogRepository, notifier Notifier, log *logger.Logger) *UseCase {
	return &UseCase{productRepo: productRepo, notifRepo: notifRepo, notifier: notifier, log: log}
}

// CheckResult resumen de un chequeo global.
type CheckResult struct {
	LowStockAlerts   int `json:"lowStockAlerts"`
	OutOfStockAlerts int `json:"outOfStockAlerts"`
	ClearedProducts  int `json:"clearedProducts"`
}

// CheckProduct evalúa un solo producto después de un cambio de stock.
// Implementa el colaborador post-commit del ledger: los errores se loguean y
// se descartan, nunca afectan la operación que disparó el chequeo.
func (uc *UseCase) CheckProduct(ctx context.Context, productID string) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		if err != nil {
			uc.log.Warn().Err(err).Str("product_id", productID).Msg("chequeo de alerta: lectura de producto falló")
		}
		return
	}
	switch {
	case product.Stock == 0:
		if err := uc.alertOutOfStock(ctx, product); err != nil {
			uc.log.Warn().Err(err).Str("product_id", productID).Msg("chequeo de alerta: out of stock falló")
		}
	case product.Stock <= product.MinStock:
		if err := uc.alertLowStock(ctx, product); err != nil {
			uc.log.Warn().Err(err).Str("product_id", productID).Msg("chequeo de alerta: low stock falló")
		}
	default:
		// Stock repuesto: limpiar marcadores para que pueda volver a alertar.
		if err := uc.notifRepo.DeleteForProduct(productID, entity.StockStatusLow, entity.StockStatusOut); err != nil {
			uc.log.Warn().Err(err).Str("product_id", productID).Msg("chequeo de alerta: limpieza falló")
		}
	}
}

// CheckAll recorre todos los productos en estado alertable y los repuestos con
// marcadores pendientes. Pensado para un cron o el endpoint manual.
func (uc *UseCase) CheckAll(ctx context.Context) (*CheckResult, error) {
	result := &CheckResult{}

	low, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	for _, product := range low {
		sent, err := uc.lowStockOnce(ctx, product)
		if err != nil {
			uc.log.Warn().Err(err).Str("product_id", product.ID).Msg("chequeo global: low stock falló")
			continue
		}
		if sent {
			result.LowStockAlerts++
		}
	}

	out, err := uc.productRepo.ListOutOfStock()
	if err != nil {
		return nil, err
	}
	for _, product := range out {
		sent, err := uc.outOfStockOnce(ctx, product)
		if err != nil {
			uc.log.Warn().Err(err).Str("product_id", product.ID).Msg("chequeo global: out of stock falló")
			continue
		}
		if sent {
			result.OutOfStockAlerts++
		}
	}

	restocked, err := uc.productRepo.ListRestockedWithAlerts()
	if err != nil {
		return nil, err
	}
	if len(restocked) > 0 {
		ids := make([]string, 0, len(restocked))
		for _, product := range restocked {
			ids = append(ids, product.ID)
		}
		if err := uc.notifRepo.DeleteForProducts(ids); err != nil {
			return nil, err
		}
		result.ClearedProducts = len(ids)
	}

	return result, nil
}

func (uc *UseCase) alertLowStock(ctx context.Context, product *entity.Product) error {
	_, err := uc.lowStockOnce(ctx, product)
	return err
}

func (uc *UseCase) alertOutOfStock(ctx context.Context, product *entity.Product) error {
	_, err := uc.outOfStockOnce(ctx, product)
	return err
}

// lowStockOnce alerta LOW_STOCK si no hay marcador previo. Devuelve si envió.
func (uc *UseCase) lowStockOnce(ctx context.Context, product *entity.Product) (bool, error) {
	exists, err := uc.notifRepo.ExistsForProduct(product.ID, entity.StockStatusLow)
	if err != nil || exists {
		return false, err
	}
	if uc.notifier != nil {
		if err := uc.notifier.NotifyLowStock(ctx, product); err != nil {
			return false, err
		}
	}
	return true, uc.notifRepo.Create(&entity.NotificationLog{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Status:    entity.StockStatusLow,
	})
}

// outOfStockOnce alerta OUT_OF_STOCK si no hay marcador previo, reemplazando
// el marcador LOW_STOCK si existía.
func (uc *UseCase) outOfStockOnce(ctx context.Context, product *entity.Product) (bool, error) {
	exists, err := uc.notifRepo.ExistsForProduct(product.ID, entity.StockStatusOut)
	if err != nil || exists {
		return false, err
	}
	if uc.notifier != nil {
		if err := uc.notifier.NotifyOutOfStock(ctx, product); err != nil {
			return false, err
		}
	}
	if err := uc.notifRepo.DeleteForProduct(product.ID, entity.StockStatusLow); err != nil {
		return false, err
	}
	return true, uc.notifRepo.Create(&entity.NotificationLog{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Status:    entity.StockStatusOut,
	})
}
