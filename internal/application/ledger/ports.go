package ledger

import (
	"context"

	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger de stock:
// mutación de la fila (producto, talla) + recálculo del agregado + entrada de
// auditoría son una sola unidad, nunca observable parcialmente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// StockAlerter recibe, DESPUÉS del commit, los productos cuyo stock cambió.
// La entrega de alertas es responsabilidad del colaborador; el core nunca
// bloquea una transacción esperándolo.
type StockAlerter interface {
	CheckProduct(ctx context.Context, productID string)
}
