package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reporting sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListSettledSales carga las ventas del rango con sus líneas en una sola
// consulta (JOIN) y las agrupa en memoria. Producto y marca se resuelven con
// LEFT JOIN: si fueron borrados los nombres quedan vacíos y reporting pone el
// placeholder.
func (r *ReportRepo) ListSettledSales(ctx context.Context, from, to *time.Time) ([]repository.SettledSale, error) {
	query := `
		SELECT t.id, t.diskon, t.created_at,
		       ti.product_id, COALESCE(p.nama, ''), COALESCE(b.nama, ''),
		       ti.quantity, ti.harga_jual, ti.harga_beli, ti.diskon
		FROM transactions t
		JOIN transaction_items ti ON ti.transaction_id = t.id
		LEFT JOIN products p ON p.id = ti.product_id
		LEFT JOIN brands b ON b.id = p.brand_id`
	args := []any{}
	pos := 1
	where := ""
	if from != nil {
		where += fmt.Sprintf(" AND t.created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		where += fmt.Sprintf(" AND t.created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	if where != "" {
		query += " WHERE" + where[4:]
	}
	query += " ORDER BY t.created_at ASC, t.id, ti.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list settled sales: %w", err)
	}
	defer rows.Close()

	var sales []repository.SettledSale
	index := map[string]int{}
	for rows.Next() {
		var (
			saleID    string
			diskon    decimal.Decimal
			createdAt time.Time
			item      repository.SettledSaleItem
		)
		if err := rows.Scan(
			&saleID, &diskon, &createdAt,
			&item.ProductID, &item.ProductName, &item.BrandName,
			&item.Quantity, &item.HargaJual, &item.HargaBeli, &item.Diskon,
		); err != nil {
			return nil, fmt.Errorf("scan settled sale: %w", err)
		}
		i, ok := index[saleID]
		if !ok {
			sales = append(sales, repository.SettledSale{ID: saleID, Diskon: diskon, CreatedAt: createdAt})
			i = len(sales) - 1
			index[saleID] = i
		}
		sales[i].Items = append(sales[i].Items, item)
	}
	return sales, rows.Err()
}

// monthWindow devuelve el rango semiabierto [día 1, día 1 del mes siguiente)
// en UTC, la misma zona con la que reporting arma el rango del gráfico; si
// difirieran, resumen y top de productos podrían cubrir días distintos.
func monthWindow(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// GetFinancialSummary agrega totales del mes calendario [día 1, último día].
func (r *ReportRepo) GetFinancialSummary(ctx context.Context, year int, month time.Month) (decimal.Decimal, decimal.Decimal, int, error) {
	start, end := monthWindow(year, month)

	query := `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(profit), 0), COUNT(*)
		FROM transactions
		WHERE created_at >= $1 AND created_at < $2`
	var revenue, profit decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx, query, start, end).Scan(&revenue, &profit, &count)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("financial summary: %w", err)
	}
	return revenue, profit, count, nil
}
