package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
	PaymentQRIS     = "QRIS"
)

// Transaction es una venta liquidada: inmutable una vez confirmada, salvo por
// los caminos de actualización/borrado del motor de liquidación, que revierten
// y reaplican el stock completo en una sola unidad atómica.
// TotalAmount y Profit se calculan en la liquidación con la política de
// descuento plano: el diskon de la transacción se resta una sola vez del total,
// no se prorratea por ítem (el prorrateo existe solo en reporting).
type Transaction struct {
	ID            string
	CustomerID    *string
	UserID        string
	PaymentMethod string
	Diskon        decimal.Decimal
	TotalAmount   decimal.Decimal
	Profit        decimal.Decimal
	Catatan       string
	CreatedAt     time.Time

	Items []TransactionItem
	// Denormalizados para lecturas (JOIN).
	CustomerName string
	UserName     string
}

// TransactionItem es una línea de venta. HargaJual y HargaBeli son snapshots
// del precio del producto AL MOMENTO de la venta: nunca deben seguir cambios
// posteriores del producto.
type TransactionItem struct {
	ID            string
	TransactionID string
	ProductID     string
	SizeID        string
	Quantity      int
	HargaJual     decimal.Decimal
	HargaBeli     decimal.Decimal
	Diskon        decimal.Decimal
	// Denormalizados para lecturas (JOIN).
	ProductName string
	SizeLabel   string
}
