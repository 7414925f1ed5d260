package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *TransactionRepo) Create(txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, customer_id, user_id, payment_method, diskon, total_amount, profit, catatan, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.CustomerID, txn.UserID, txn.PaymentMethod,
		txn.Diskon, txn.TotalAmount, txn.Profit, txn.Catatan,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// CreateItems persiste las líneas con sus snapshots de precio.
func (r *TransactionRepo) CreateItems(items []entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, size_id, quantity, harga_jual, harga_beli, diskon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), query,
			it.ID, it.TransactionID, it.ProductID, it.SizeID,
			it.Quantity, it.HargaJual, it.HargaBeli, it.Diskon,
		)
		if err != nil {
			return fmt.Errorf("create transaction item: %w", err)
		}
	}
	return nil
}

const transactionSelect = `
	SELECT t.id, t.customer_id, t.user_id, t.payment_method, t.diskon, t.total_amount,
	       t.profit, t.catatan, t.created_at, COALESCE(c.nama, ''), COALESCE(u.nama, '')
	FROM transactions t
	LEFT JOIN customers c ON c.id = t.customer_id
	LEFT JOIN users u ON u.id = t.user_id`

// GetByID obtiene la cabecera con nombres de cliente/operador resueltos.
// nil si no existe. Las líneas se cargan con ListItems.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	txn, err := scanTransaction(r.q.QueryRow(context.Background(), transactionSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return txn, nil
}

// GetForUpdate bloquea la cabecera mientras dura una reversión/reaplicación,
// para que dos ediciones concurrentes de la misma venta se serialicen.
func (r *TransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	query := `
		SELECT id, customer_id, user_id, payment_method, diskon, total_amount, profit, catatan, created_at
		FROM transactions WHERE id = $1
		FOR UPDATE`
	var txn entity.Transaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&txn.ID, &txn.CustomerID, &txn.UserID, &txn.PaymentMethod,
		&txn.Diskon, &txn.TotalAmount, &txn.Profit, &txn.Catatan, &txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction for update: %w", err)
	}
	return &txn, nil
}

// ListItems devuelve las líneas con nombres de producto/talla resueltos
// (LEFT JOIN: vacíos si la relación fue borrada).
func (r *TransactionRepo) ListItems(transactionID string) ([]entity.TransactionItem, error) {
	query := `
		SELECT ti.id, ti.transaction_id, ti.product_id, ti.size_id, ti.quantity,
		       ti.harga_jual, ti.harga_beli, ti.diskon, COALESCE(p.nama, ''), COALESCE(s.label, '')
		FROM transaction_items ti
		LEFT JOIN products p ON p.id = ti.product_id
		LEFT JOIN sizes s ON s.id = ti.size_id
		WHERE ti.transaction_id = $1
		ORDER BY ti.id`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()

	var items []entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(
			&it.ID, &it.TransactionID, &it.ProductID, &it.SizeID, &it.Quantity,
			&it.HargaJual, &it.HargaBeli, &it.Diskon, &it.ProductName, &it.SizeLabel,
		); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List devuelve cabeceras paginadas, más recientes primero.
func (r *TransactionRepo) List(limit, offset int) ([]*entity.Transaction, int, error) {
	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		transactionSelect+` ORDER BY t.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, txn)
	}
	return list, total, rows.Err()
}

// UpdateHeader persiste la cabecera editada (totales ya recalculados).
func (r *TransactionRepo) UpdateHeader(txn *entity.Transaction) error {
	query := `
		UPDATE transactions SET customer_id = $2, payment_method = $3, diskon = $4,
			total_amount = $5, profit = $6, catatan = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.CustomerID, txn.PaymentMethod, txn.Diskon,
		txn.TotalAmount, txn.Profit, txn.Catatan,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Transaction", ID: txn.ID}
	}
	return nil
}

// DeleteItems elimina todas las líneas de la venta.
func (r *TransactionRepo) DeleteItems(transactionID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM transaction_items WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("delete transaction items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera.
func (r *TransactionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Transaction", ID: id}
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := row.Scan(
		&txn.ID, &txn.CustomerID, &txn.UserID, &txn.PaymentMethod, &txn.Diskon,
		&txn.TotalAmount, &txn.Profit, &txn.Catatan, &txn.CreatedAt,
		&txn.CustomerName, &txn.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
