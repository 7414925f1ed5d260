package reporting_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepatuhub/pos-api/internal/application/reporting"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// fakeReportRepo devuelve ventas fijas; reporting no toca ninguna otra dependencia.
type fakeReportRepo struct {
	sales   []repository.SettledSale
	revenue decimal.Decimal
	profit  decimal.Decimal
	count   int
}

func (f *fakeReportRepo) ListSettledSales(_ context.Context, from, to *time.Time) ([]repository.SettledSale, error) {
	return f.sales, nil
}

func (f *fakeReportRepo) GetFinancialSummary(_ context.Context, _ int, _ time.Month) (decimal.Decimal, decimal.Decimal, int, error) {
	return f.revenue, f.profit, f.count, nil
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestProfitGraph_ProrrateaElDiskonDeLaVentaPorItem(t *testing.T) {
	createdAt := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{sales: []repository.SettledSale{{
		ID:        "txn-1",
		Diskon:    dec("100"),
		CreatedAt: createdAt,
		Items: []repository.SettledSaleItem{
			{ProductID: "p-a", ProductName: "Alpha", BrandName: "Nike", Quantity: 3, HargaJual: dec("100"), HargaBeli: dec("60")},
			{ProductID: "p-b", ProductName: "Beta", BrandName: "Nike", Quantity: 1, HargaJual: dec("100"), HargaBeli: dec("50")},
		},
	}}}
	uc := reporting.New(repo)

	out, err := uc.ProfitGraph(context.Background(), nil, nil)
	require.NoError(t, err)

	// Ingresos: 300 + 100. El diskon de 100 se reparte 75/25 según participación.
	// profit Alpha = (100-60)*3 - 75 = 45; profit Beta = (100-50)*1 - 25 = 25.
	assert.True(t, dec("400").Equal(out.Summary.TotalRevenue), "revenue: %s", out.Summary.TotalRevenue)
	assert.True(t, dec("70").Equal(out.Summary.TotalProfit), "profit: %s", out.Summary.TotalProfit)

	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "Alpha", out.TopProducts[0].ProductName, "mayor profit primero")
	assert.True(t, dec("45").Equal(out.TopProducts[0].Profit), "profit Alpha: %s", out.TopProducts[0].Profit)
	assert.True(t, dec("25").Equal(out.TopProducts[1].Profit), "profit Beta: %s", out.TopProducts[1].Profit)

	// Buckets temporales: todo el profit de la venta cae en sus claves.
	assert.True(t, dec("70").Equal(out.ProfitByDay["2025-06-10"]))
	assert.True(t, dec("70").Equal(out.ProfitByWeek["2025-W24"]))
	assert.True(t, dec("70").Equal(out.ProfitByMonth["2025-06"]))
	assert.True(t, dec("70").Equal(out.ProfitByYear["2025"]))
}

func TestProfitGraph_DiskonDeItemReduceLaBaseDeProrrateo(t *testing.T) {
	repo := &fakeReportRepo{sales: []repository.SettledSale{{
		ID:        "txn-1",
		Diskon:    dec("90"),
		CreatedAt: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Items: []repository.SettledSaleItem{
			// ingreso = 100*2 - 50 = 150
			{ProductID: "p-a", ProductName: "Alpha", BrandName: "Nike", Quantity: 2, HargaJual: dec("100"), HargaBeli: dec("70"), Diskon: dec("50")},
			// ingreso = 150*1 = 150
			{ProductID: "p-b", ProductName: "Beta", BrandName: "Adidas", Quantity: 1, HargaJual: dec("150"), HargaBeli: dec("100")},
		},
	}}}
	uc := reporting.New(repo)

	out, err := uc.ProfitGraph(context.Background(), nil, nil)
	require.NoError(t, err)

	// Participaciones iguales (150/300): cada ítem absorbe 45 del diskon.
	// profit Alpha = (100-70)*2 - 50 - 45 = -35; profit Beta = 50 - 45 = 5.
	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "Beta", out.TopProducts[0].ProductName)
	assert.True(t, dec("5").Equal(out.TopProducts[0].Profit), "profit Beta: %s", out.TopProducts[0].Profit)
	assert.True(t, dec("-35").Equal(out.TopProducts[1].Profit), "profit Alpha: %s", out.TopProducts[1].Profit)
}

func TestProfitGraph_RelacionesBorradasUsanPlaceholders(t *testing.T) {
	repo := &fakeReportRepo{sales: []repository.SettledSale{{
		ID:        "txn-1",
		CreatedAt: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Items: []repository.SettledSaleItem{
			{ProductID: "p-borrado", Quantity: 1, HargaJual: dec("100"), HargaBeli: dec("60")},
		},
	}}}
	uc := reporting.New(repo)

	out, err := uc.ProfitGraph(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "Producto eliminado", out.TopProducts[0].ProductName)
	require.Len(t, out.BrandPerformance, 1)
	assert.Equal(t, "Marca desconocida", out.BrandPerformance[0].Brand)
}

func TestProfitGraph_TopProductsSeCortaEnCinco(t *testing.T) {
	sale := repository.SettledSale{
		ID:        "txn-1",
		CreatedAt: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
	// Siete productos con profits crecientes: 10, 20, ..., 70.
	for i := 1; i <= 7; i++ {
		sale.Items = append(sale.Items, repository.SettledSaleItem{
			ProductID:   fmt.Sprintf("p-%d", i),
			ProductName: fmt.Sprintf("Producto %d", i),
			BrandName:   "Nike",
			Quantity:    1,
			HargaJual:   decimal.NewFromInt(int64(i * 10)),
			HargaBeli:   decimal.Zero,
		})
	}
	uc := reporting.New(&fakeReportRepo{sales: []repository.SettledSale{sale}})

	out, err := uc.ProfitGraph(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, out.TopProducts, 5)
	assert.Equal(t, "Producto 7", out.TopProducts[0].ProductName)
	assert.Equal(t, "Producto 3", out.TopProducts[4].ProductName)
}

func TestProfitGraph_MargenDeMarca(t *testing.T) {
	repo := &fakeReportRepo{sales: []repository.SettledSale{{
		ID:        "txn-1",
		CreatedAt: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Items: []repository.SettledSaleItem{
			{ProductID: "p-a", ProductName: "Alpha", BrandName: "Nike", Quantity: 1, HargaJual: dec("200"), HargaBeli: dec("150")},
		},
	}}}
	uc := reporting.New(repo)

	out, err := uc.ProfitGraph(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, out.BrandPerformance, 1)
	// margen = 50 / 200 * 100 = 25%
	assert.True(t, dec("25").Equal(out.BrandPerformance[0].ProfitMargin),
		"margen: %s", out.BrandPerformance[0].ProfitMargin)
}

func TestProfitGraph_SinVentas(t *testing.T) {
	uc := reporting.New(&fakeReportRepo{})

	out, err := uc.ProfitGraph(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.True(t, out.Summary.TotalProfit.IsZero())
	assert.Empty(t, out.TopProducts)
	assert.Empty(t, out.BrandPerformance)
	assert.Empty(t, out.ProfitByDay)
}

func TestMonthlySummary(t *testing.T) {
	repo := &fakeReportRepo{revenue: dec("5000000"), profit: dec("1200000"), count: 42}
	uc := reporting.New(repo)

	out, err := uc.MonthlySummary(context.Background(), 2025, time.June)
	require.NoError(t, err)

	assert.True(t, dec("5000000").Equal(out.TotalRevenue))
	assert.True(t, dec("1200000").Equal(out.TotalProfit))
	assert.Equal(t, 42, out.TransactionCount)
	assert.Equal(t, "June", out.Month)
	assert.Equal(t, 2025, out.Year)
}
