package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/application/ledger"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// UseCase es el motor de liquidación de ventas. Una venta se confirma en una
// única transacción: validación, snapshot de precios, débito de stock bajo
// FOR UPDATE, recálculo de agregados y auditoría, todo o nada. La edición
// revierte los ítems viejos y reaplica los nuevos dentro de la misma unidad
// atómica; el borrado restaura el stock debitado.
type UseCase struct {
	txRunner TxRunner
	txnRepo  repository.TransactionRepository // lecturas fuera de transacción
	alerter  ledger.StockAlerter              // opcional; post-commit
}

// New construye el motor de liquidación.
func New(txRunner TxRunner, txnRepo repository.TransactionRepository, alerter ledger.StockAlerter) *UseCase {
	return &UseCase{txRunner: txRunner, txnRepo: txnRepo, alerter: alerter}
}

// CreateSale liquida una venta nueva. Los precios NUNCA vienen del cliente:
// se snapshotean de cada producto dentro de la transacción, después de tomar
// el lock de la variante. Si alguna línea no tiene stock suficiente, toda la
// venta se revierte y se devuelve InsufficientStockError con el detalle.
func (uc *UseCase) CreateSale(ctx context.Context, actorID string, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleInput(req.Diskon, req.Items); err != nil {
		return nil, err
	}
	txnID := uuid.New().String()
	affected := map[string]struct{}{}
	err := uc.txRunner.RunSettlement(ctx, func(
		txnRepo repository.TransactionRepository,
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		items, err := debitAndSnapshot(psRepo, productRepo, auditRepo, actorID, txnID, req.Items, affected)
		if err != nil {
			return err
		}
		totalAmount, profit := ComputeTotals(items, req.Diskon)
		txn := &entity.Transaction{
			ID:            txnID,
			CustomerID:    req.CustomerID,
			UserID:        actorID,
			PaymentMethod: req.PaymentMethod,
			Diskon:        req.Diskon,
			TotalAmount:   totalAmount,
			Profit:        profit,
			Catatan:       req.Catatan,
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}
		if err := txnRepo.CreateItems(items); err != nil {
			return err
		}
		if err := recordSaleAudit(auditRepo, actorID, entity.AuditActionCreate, txnID, 0, totalUnits(items),
			fmt.Sprintf("liquidación de venta (%d líneas)", len(items))); err != nil {
			return err
		}
		return syncAffected(psRepo, productRepo, affected)
	})
	if err != nil {
		return nil, err
	}
	uc.notifyAll(affected)
	return uc.GetByID(ctx, txnID)
}

// UpdateSale edita una venta ya liquidada: restaura el stock de los ítems
// originales, los elimina y reaplica los nuevos con precios re-snapshoteados,
// todo en una sola transacción. Un fallo en cualquier paso (incluido stock
// insuficiente para la nueva composición) deja la venta original intacta.
func (uc *UseCase) UpdateSale(ctx context.Context, actorID, id string, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleInput(req.Diskon, req.Items); err != nil {
		return nil, err
	}
	affected := map[string]struct{}{}
	err := uc.txRunner.RunSettlement(ctx, func(
		txnRepo repository.TransactionRepository,
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		txn, err := txnRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if txn == nil {
			return &domain.NotFoundError{Entity: "Transaction", ID: id}
		}
		oldItems, err := txnRepo.ListItems(id)
		if err != nil {
			return err
		}
		if err := restoreItems(psRepo, productRepo, auditRepo, actorID, id, oldItems, affected); err != nil {
			return err
		}
		if err := txnRepo.DeleteItems(id); err != nil {
			return err
		}
		newItems, err := debitAndSnapshot(psRepo, productRepo, auditRepo, actorID, id, req.Items, affected)
		if err != nil {
			return err
		}
		totalAmount, profit := ComputeTotals(newItems, req.Diskon)
		txn.CustomerID = req.CustomerID
		txn.PaymentMethod = req.PaymentMethod
		txn.Diskon = req.Diskon
		txn.Catatan = req.Catatan
		txn.TotalAmount = totalAmount
		txn.Profit = profit
		if err := txnRepo.UpdateHeader(txn); err != nil {
			return err
		}
		if err := txnRepo.CreateItems(newItems); err != nil {
			return err
		}
		if err := recordSaleAudit(auditRepo, actorID, entity.AuditActionUpdate, id, totalUnits(oldItems), totalUnits(newItems),
			"edición de venta: reversión y reaplicación de líneas"); err != nil {
			return err
		}
		return syncAffected(psRepo, productRepo, affected)
	})
	if err != nil {
		return nil, err
	}
	uc.notifyAll(affected)
	return uc.GetByID(ctx, id)
}

// DeleteSale anula una venta liquidada devolviendo cada unidad debitada a su
// variante de origen antes de borrar cabecera e ítems.
func (uc *UseCase) DeleteSale(ctx context.Context, actorID, id string) error {
	affected := map[string]struct{}{}
	err := uc.txRunner.RunSettlement(ctx, func(
		txnRepo repository.TransactionRepository,
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		txn, err := txnRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if txn == nil {
			return &domain.NotFoundError{Entity: "Transaction", ID: id}
		}
		items, err := txnRepo.ListItems(id)
		if err != nil {
			return err
		}
		if err := restoreItems(psRepo, productRepo, auditRepo, actorID, id, items, affected); err != nil {
			return err
		}
		if err := txnRepo.DeleteItems(id); err != nil {
			return err
		}
		if err := txnRepo.Delete(id); err != nil {
			return err
		}
		if err := recordSaleAudit(auditRepo, actorID, entity.AuditActionDelete, id, totalUnits(items), 0,
			"anulación de venta: stock restaurado"); err != nil {
			return err
		}
		return syncAffected(psRepo, productRepo, affected)
	})
	if err != nil {
		return err
	}
	uc.notifyAll(affected)
	return nil
}

// GetByID devuelve la venta con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	txn, err := uc.txnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, &domain.NotFoundError{Entity: "Transaction", ID: id}
	}
	if txn.Items == nil {
		items, err := uc.txnRepo.ListItems(id)
		if err != nil {
			return nil, err
		}
		txn.Items = items
	}
	resp := toSaleResponse(txn)
	return &resp, nil
}

// List devuelve ventas paginadas, más recientes primero.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	txns, total, err := uc.txnRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(txns))
	for _, txn := range txns {
		if txn.Items == nil {
			items, err := uc.txnRepo.ListItems(txn.ID)
			if err != nil {
				return nil, err
			}
			txn.Items = items
		}
		out = append(out, toSaleResponse(txn))
	}
	return &dto.SaleListResponse{
		Data: out,
		Meta: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// debitAndSnapshot debita cada línea bajo lock y congela los precios vigentes
// del producto en el ítem. El mismo par (producto, talla) puede repetirse:
// cada línea re-lee la fila ya bloqueada por esta transacción.
func debitAndSnapshot(
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
	actorID, txnID string,
	reqItems []dto.SaleItemRequest,
	affected map[string]struct{},
) ([]entity.TransactionItem, error) {
	items := make([]entity.TransactionItem, 0, len(reqItems))
	for _, it := range reqItems {
		ps, product, err := ledger.AdjustInTx(psRepo, productRepo, auditRepo,
			actorID, it.ProductID, it.SizeID, -it.Quantity, "débito por venta "+txnID)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.TransactionItem{
			ID:            uuid.New().String(),
			TransactionID: txnID,
			ProductID:     it.ProductID,
			SizeID:        it.SizeID,
			Quantity:      it.Quantity,
			HargaJual:     product.HargaJual,
			HargaBeli:     product.HargaBeli,
			Diskon:        it.Diskon,
			ProductName:   product.Nama,
			SizeLabel:     ps.SizeLabel,
		})
		affected[it.ProductID] = struct{}{}
	}
	return items, nil
}

// restoreItems devuelve al ledger las unidades de cada ítem liquidado.
func restoreItems(
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
	actorID, txnID string,
	items []entity.TransactionItem,
	affected map[string]struct{},
) error {
	for _, it := range items {
		if _, _, err := ledger.AdjustInTx(psRepo, productRepo, auditRepo,
			actorID, it.ProductID, it.SizeID, it.Quantity, "restauración por venta "+txnID); err != nil {
			return err
		}
		affected[it.ProductID] = struct{}{}
	}
	return nil
}

func syncAffected(psRepo repository.ProductSizeRepository, productRepo repository.ProductRepository, affected map[string]struct{}) error {
	for productID := range affected {
		if _, err := ledger.SyncProductStock(psRepo, productRepo, productID); err != nil {
			return err
		}
	}
	return nil
}

func validateSaleInput(diskon decimal.Decimal, items []dto.SaleItemRequest) error {
	if diskon.IsNegative() {
		return &domain.ValidationError{Field: "diskon", Detail: "no puede ser negativo"}
	}
	if len(items) == 0 {
		return &domain.ValidationError{Field: "items", Detail: "la venta necesita al menos una línea"}
	}
	for i, it := range items {
		if it.Quantity <= 0 {
			return &domain.ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Detail: "debe ser mayor que cero"}
		}
		if it.Diskon.IsNegative() {
			return &domain.ValidationError{Field: fmt.Sprintf("items[%d].diskon", i), Detail: "no puede ser negativo"}
		}
	}
	return nil
}

// recordSaleAudit registra la entrada de auditoría de la cabecera. Sin actor
// no hay entrada (mismo criterio que el ledger).
func recordSaleAudit(auditRepo repository.AuditLogRepository, actorID, action, txnID string, before, after int, detail string) error {
	if actorID == "" {
		return nil
	}
	return auditRepo.Create(&entity.AuditLog{
		ID:       uuid.New().String(),
		UserID:   actorID,
		Action:   action,
		Entity:   "Transaction",
		EntityID: txnID,
		Changes:  entity.QuantityChange{Before: before, After: after},
		Detail:   detail,
	})
}

func totalUnits(items []entity.TransactionItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func (uc *UseCase) notifyAll(affected map[string]struct{}) {
	if uc.alerter == nil {
		return
	}
	for productID := range affected {
		go uc.alerter.CheckProduct(context.Background(), productID)
	}
}

func toSaleResponse(txn *entity.Transaction) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(txn.Items))
	for _, it := range txn.Items {
		items = append(items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SizeID:      it.SizeID,
			SizeLabel:   it.SizeLabel,
			Quantity:    it.Quantity,
			HargaJual:   it.HargaJual,
			HargaBeli:   it.HargaBeli,
			Diskon:      it.Diskon,
		})
	}
	return dto.SaleResponse{
		ID:            txn.ID,
		CustomerID:    txn.CustomerID,
		CustomerName:  txn.CustomerName,
		UserID:        txn.UserID,
		UserName:      txn.UserName,
		PaymentMethod: txn.PaymentMethod,
		Diskon:        txn.Diskon,
		TotalAmount:   txn.TotalAmount,
		Profit:        txn.Profit,
		Catatan:       txn.Catatan,
		Items:         items,
		CreatedAt:     txn.CreatedAt,
	}
}
