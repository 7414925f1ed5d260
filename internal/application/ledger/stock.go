package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// SyncProductStock recalcula y persiste product.stock como SUM(quantity) de
// sus filas ProductSize, leídas dentro de la transacción en curso. Es la regla
// central de consistencia: todo camino que mute una fila de talla DEBE llamar
// esto antes del commit. El agregado nunca se incrementa ad hoc.
func SyncProductStock(psRepo repository.ProductSizeRepository, productRepo repository.ProductRepository, productID string) (int, error) {
	total, err := psRepo.SumByProduct(productID)
	if err != nil {
		return 0, fmt.Errorf("sumar stock del producto %s: %w", productID, err)
	}
	if err := productRepo.UpdateStock(productID, total); err != nil {
		return 0, fmt.Errorf("actualizar stock agregado del producto %s: %w", productID, err)
	}
	return total, nil
}

// AdjustInTx aplica delta a la variante (productID, sizeID) usando los
// repositorios del caller (misma transacción). Bloquea la fila, verifica que
// el resultado no sea negativo y registra la auditoría. El caller es
// responsable de invocar SyncProductStock antes del commit.
// Lo usa también el motor de liquidación para débitos y restauraciones;
// devuelve el producto para que ese caller snapshotee los precios vigentes.
func AdjustInTx(
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
	actorID, productID, sizeID string,
	delta int,
	detail string,
) (*entity.ProductSize, *entity.Product, error) {
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, &domain.NotFoundError{Entity: "Product", ID: productID}
	}
	ps, err := psRepo.GetForUpdate(productID, sizeID)
	if err != nil {
		return nil, nil, err
	}
	if ps == nil {
		return nil, nil, &domain.NotFoundError{Entity: "ProductSize", ID: productID + "/" + sizeID}
	}
	newQuantity := ps.Quantity + delta
	if newQuantity < 0 {
		return nil, nil, &domain.InsufficientStockError{
			ProductName: product.Nama,
			SizeLabel:   ps.SizeLabel,
			Available:   ps.Quantity,
			Requested:   -delta,
		}
	}
	if err := psRepo.UpdateQuantity(ps.ID, newQuantity); err != nil {
		return nil, nil, err
	}
	if err := recordStockAudit(auditRepo, actorID, entity.AuditActionUpdate, ps.ID, ps.Quantity, newQuantity, detail); err != nil {
		return nil, nil, err
	}
	ps.Quantity = newQuantity
	ps.ProductName = product.Nama
	return ps, product, nil
}

// recordStockAudit añade la entrada de auditoría en la transacción en curso.
// Sin actor (operación de sistema) no se escribe entrada: hueco deliberado y
// documentado, no un fallo.
func recordStockAudit(auditRepo repository.AuditLogRepository, actorID, action, entityID string, before, after int, detail string) error {
	if actorID == "" {
		return nil
	}
	return auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    actorID,
		Action:    action,
		Entity:    "ProductSize",
		EntityID:  entityID,
		Changes:   entity.QuantityChange{Before: before, After: after},
		Detail:    detail,
		CreatedAt: time.Now(),
	})
}
