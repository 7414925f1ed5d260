package settlement

import (
	"context"

	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una única transacción de base de datos con
// todos los repositorios que necesita una liquidación. Si fn devuelve error
// se hace rollback completo: ni venta, ni débitos de stock, ni auditoría.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(
		txnRepo repository.TransactionRepository,
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
