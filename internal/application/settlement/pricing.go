package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/sepatuhub/pos-api/internal/domain/entity"
)

// ComputeTotals calcula el total y la ganancia de una venta a partir de los
// ítems ya valorizados (precios snapshoteados al momento de la venta).
//
//	ingreso ítem  = hargaJual * cantidad - diskon ítem
//	ganancia ítem = (hargaJual - hargaBeli) * cantidad - diskon ítem
//
// El descuento de la transacción se resta plano del total y de la ganancia.
// (El reporte de gráficos lo prorratea por ítem; aquí no.)
func ComputeTotals(items []entity.TransactionItem, diskon decimal.Decimal) (totalAmount, profit decimal.Decimal) {
	totalAmount = decimal.Zero
	profit = decimal.Zero
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		revenue := it.HargaJual.Mul(qty).Sub(it.Diskon)
		itemProfit := it.HargaJual.Sub(it.HargaBeli).Mul(qty).Sub(it.Diskon)
		totalAmount = totalAmount.Add(revenue)
		profit = profit.Add(itemProfit)
	}
	return totalAmount.Sub(diskon), profit.Sub(diskon)
}
