package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SettledSale es la proyección de solo lectura que consume reporting: una
// venta liquidada con sus líneas y los nombres de producto/marca resueltos
// vía LEFT JOIN (vacíos si la relación fue borrada; reporting sustituye el
// placeholder, nunca falla).
type SettledSale struct {
	ID        string
	Diskon    decimal.Decimal
	CreatedAt time.Time
	Items     []SettledSaleItem
}

// SettledSaleItem línea de venta con los snapshots de precio históricos.
type SettledSaleItem struct {
	ProductID   string
	ProductName string
	BrandName   string
	Quantity    int
	HargaJual   decimal.Decimal
	HargaBeli   decimal.Decimal
	Diskon      decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre transacciones liquidadas.
type ReportRepository interface {
	// ListSettledSales carga las ventas del rango con sus líneas, ordenadas
	// por fecha ascendente. from/to nil = sin cota.
	ListSettledSales(ctx context.Context, from, to *time.Time) ([]SettledSale, error)
	// GetFinancialSummary agrega SUM(total_amount), SUM(profit) y COUNT(*)
	// de las transacciones del mes indicado.
	GetFinancialSummary(ctx context.Context, year int, month time.Month) (revenue, profit decimal.Decimal, count int, err error)
}
