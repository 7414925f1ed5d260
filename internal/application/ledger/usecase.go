package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// UseCase es el ledger de stock: dueño de las filas (producto, talla) y del
// campo agregado product.stock. Cada operación corre dentro de una transacción
// vía TxRunner; el chequeo de disponibilidad y el débito ocurren bajo
// SELECT FOR UPDATE para que dos ventas concurrentes no puedan sobrevender.
type UseCase struct {
	txRunner TxRunner
	alerter  StockAlerter // opcional; se invoca post-commit, nunca dentro de la tx
}

// New construye el ledger.
func New(txRunner TxRunner, alerter StockAlerter) *UseCase {
	return &UseCase{txRunner: txRunner, alerter: alerter}
}

// AdjustQuantity aplica delta (positivo = reposición/devolución, negativo =
// salida) a la variante (productID, sizeID). Falla con InsufficientStockError
// si el resultado sería negativo y con NotFoundError si el par no existe.
func (uc *UseCase) AdjustQuantity(ctx context.Context, actorID, productID, sizeID string, delta int) (*entity.ProductSize, error) {
	if delta == 0 {
		return nil, &domain.ValidationError{Field: "delta", Detail: "no puede ser cero"}
	}
	var result *entity.ProductSize
	err := uc.txRunner.Run(ctx, func(
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		ps, _, err := AdjustInTx(psRepo, productRepo, auditRepo, actorID, productID, sizeID, delta, "ajuste manual de stock")
		if err != nil {
			return err
		}
		if _, err := SyncProductStock(psRepo, productRepo, productID); err != nil {
			return err
		}
		result = ps
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notify(productID)
	return result, nil
}

// SetQuantity sobreescribe la cantidad de la variante (corrección manual).
func (uc *UseCase) SetQuantity(ctx context.Context, actorID, productSizeID string, quantity int) (*entity.ProductSize, error) {
	if quantity < 0 {
		return nil, &domain.ValidationError{Field: "quantity", Detail: "no puede ser negativa"}
	}
	var result *entity.ProductSize
	var productID string
	err := uc.txRunner.Run(ctx, func(
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		ps, err := psRepo.GetForUpdateByID(productSizeID)
		if err != nil {
			return err
		}
		if ps == nil {
			return &domain.NotFoundError{Entity: "ProductSize", ID: productSizeID}
		}
		before := ps.Quantity
		if err := psRepo.UpdateQuantity(ps.ID, quantity); err != nil {
			return err
		}
		if err := recordStockAudit(auditRepo, actorID, entity.AuditActionUpdate, ps.ID, before, quantity,
			fmt.Sprintf("corrección manual de stock (producto %s talla %s)", ps.ProductID, ps.SizeLabel)); err != nil {
			return err
		}
		if _, err := SyncProductStock(psRepo, productRepo, ps.ProductID); err != nil {
			return err
		}
		ps.Quantity = quantity
		result = ps
		productID = ps.ProductID
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notify(productID)
	return result, nil
}

// CreateSizeVariant crea la variante (productID, sizeID) con su cantidad
// inicial. Falla con ConflictError si el par ya existe.
func (uc *UseCase) CreateSizeVariant(ctx context.Context, actorID, productID, sizeID string, initialQuantity int) (*entity.ProductSize, error) {
	if initialQuantity < 0 {
		return nil, &domain.ValidationError{Field: "quantity", Detail: "no puede ser negativa"}
	}
	var result *entity.ProductSize
	err := uc.txRunner.Run(ctx, func(
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{Entity: "Product", ID: productID}
		}
		existing, err := psRepo.GetByProductAndSize(productID, sizeID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.ConflictError{Entity: "ProductSize", Detail: "el par producto-talla ya existe"}
		}
		ps := &entity.ProductSize{
			ID:        uuid.New().String(),
			ProductID: productID,
			SizeID:    sizeID,
			Quantity:  initialQuantity,
		}
		if err := psRepo.Create(ps); err != nil {
			return err
		}
		if err := recordStockAudit(auditRepo, actorID, entity.AuditActionCreate, ps.ID, 0, initialQuantity,
			fmt.Sprintf("alta de variante de talla (producto %q)", product.Nama)); err != nil {
			return err
		}
		if _, err := SyncProductStock(psRepo, productRepo, productID); err != nil {
			return err
		}
		result = ps
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notify(productID)
	return result, nil
}

// DeleteSizeVariant elimina la variante y recalcula el agregado.
func (uc *UseCase) DeleteSizeVariant(ctx context.Context, actorID, productSizeID string) error {
	var productID string
	err := uc.txRunner.Run(ctx, func(
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		ps, err := psRepo.GetForUpdateByID(productSizeID)
		if err != nil {
			return err
		}
		if ps == nil {
			return &domain.NotFoundError{Entity: "ProductSize", ID: productSizeID}
		}
		if err := psRepo.Delete(ps.ID); err != nil {
			return err
		}
		if err := recordStockAudit(auditRepo, actorID, entity.AuditActionDelete, ps.ID, ps.Quantity, 0,
			fmt.Sprintf("baja de variante de talla (producto %s talla %s)", ps.ProductID, ps.SizeLabel)); err != nil {
			return err
		}
		if _, err := SyncProductStock(psRepo, productRepo, ps.ProductID); err != nil {
			return err
		}
		productID = ps.ProductID
		return nil
	})
	if err != nil {
		return err
	}
	uc.notify(productID)
	return nil
}

// SyncAllStocks recalcula el agregado de TODOS los productos (reparación de
// datos). Operación de sistema: sin actor, por lo tanto sin auditoría.
func (uc *UseCase) SyncAllStocks(ctx context.Context) (int, error) {
	count := 0
	err := uc.txRunner.Run(ctx, func(
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		_ repository.AuditLogRepository,
	) error {
		ids, err := productRepo.ListIDs()
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := SyncProductStock(psRepo, productRepo, id); err != nil {
				return err
			}
		}
		count = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (uc *UseCase) notify(productID string) {
	if uc.alerter == nil || productID == "" {
		return
	}
	// Fire-and-forget: la alerta corre fuera de cualquier transacción.
	go uc.alerter.CheckProduct(context.Background(), productID)
}
