package settlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sepatuhub/pos-api/internal/application/settlement"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
)

func TestComputeTotals_SinDescuentos(t *testing.T) {
	items := []entity.TransactionItem{
		{Quantity: 2, HargaJual: dec("500000"), HargaBeli: dec("300000")},
		{Quantity: 1, HargaJual: dec("400000"), HargaBeli: dec("250000")},
	}
	total, profit := settlement.ComputeTotals(items, dec("0"))
	assert.True(t, dec("1400000").Equal(total), "total: %s", total)
	assert.True(t, dec("550000").Equal(profit), "profit: %s", profit)
}

func TestComputeTotals_DiskonPorItemYPlano(t *testing.T) {
	items := []entity.TransactionItem{
		{Quantity: 2, HargaJual: dec("500000"), HargaBeli: dec("300000"), Diskon: dec("50000")},
	}
	// El diskon de la venta se resta UNA vez, plano, del total y del profit.
	total, profit := settlement.ComputeTotals(items, dec("100000"))
	assert.True(t, dec("850000").Equal(total), "total: %s", total)
	assert.True(t, dec("250000").Equal(profit), "profit: %s", profit)
}

func TestComputeTotals_SinClampPuedeSerNegativo(t *testing.T) {
	// Un descuento mayor que el total no se recorta a cero: el resultado
	// negativo queda registrado tal cual.
	items := []entity.TransactionItem{
		{Quantity: 1, HargaJual: dec("100000"), HargaBeli: dec("80000")},
	}
	total, profit := settlement.ComputeTotals(items, dec("150000"))
	assert.True(t, dec("-50000").Equal(total), "total: %s", total)
	assert.True(t, dec("-130000").Equal(profit), "profit: %s", profit)
}

func TestComputeTotals_SinItems(t *testing.T) {
	total, profit := settlement.ComputeTotals(nil, dec("0"))
	assert.True(t, total.IsZero())
	assert.True(t, profit.IsZero())
}
