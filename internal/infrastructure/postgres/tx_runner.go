package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sepatuhub/pos-api/internal/application/ledger"
	"github.com/sepatuhub/pos-api/internal/application/settlement"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and settlement.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ settlement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	psRepo := NewProductSizeRepository(tx)
	productRepo := NewProductRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(psRepo, productRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSettlement inicia una transacción con los repos que necesita el motor de
// liquidación (para CreateSale/UpdateSale/DeleteSale).
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	txnRepo repository.TransactionRepository,
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txnRepo := NewTransactionRepository(tx)
	psRepo := NewProductSizeRepository(tx)
	productRepo := NewProductRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(txnRepo, psRepo, productRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
