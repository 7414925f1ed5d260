package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// Placeholders para relaciones borradas: el reporte nunca falla porque un
// producto o una marca ya no existan.
const (
	placeholderProduct = "Producto eliminado"
	placeholderBrand   = "Marca desconocida"
)

const topProductsLimit = 5

// UseCase consultas de solo lectura sobre ventas liquidadas. Acá el diskon de
// cada transacción se prorratea entre sus ítems según su participación en el
// ingreso; esta política es EXCLUSIVA de reporting y no debe unificarse con la
// resta plana que aplica el motor de liquidación.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// New construye el caso de uso de reporting.
func New(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// ProfitGraph arma el reporte de rentabilidad del rango [from, to]: totales,
// profit por día / semana ISO / mes / año, top productos por profit y rollup
// por marca con margen. from/to nil = sin cota.
func (uc *UseCase) ProfitGraph(ctx context.Context, from, to *time.Time) (*dto.ProfitGraphResponse, error) {
	sales, err := uc.reportRepo.ListSettledSales(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfitGraphResponse{
		ProfitByDay:   map[string]decimal.Decimal{},
		ProfitByWeek:  map[string]decimal.Decimal{},
		ProfitByMonth: map[string]decimal.Decimal{},
		ProfitByYear:  map[string]decimal.Decimal{},
	}

	productAgg := map[string]*dto.ProductPerformance{}
	productOrder := []string{}
	brandAgg := map[string]*dto.BrandPerformance{}
	brandOrder := []string{}

	totalRevenue, totalCost, totalProfit := decimal.Zero, decimal.Zero, decimal.Zero

	for _, sale := range sales {
		// Base de prorrateo: ingreso de los ítems antes del diskon de la venta.
		subtotal := decimal.Zero
		for _, it := range sale.Items {
			subtotal = subtotal.Add(itemRevenue(it))
		}

		txnRevenue, txnCost, txnProfit := decimal.Zero, decimal.Zero, decimal.Zero
		for _, it := range sale.Items {
			revenue := itemRevenue(it)
			share := decimal.Zero
			if subtotal.IsPositive() {
				share = revenue.Div(subtotal).Mul(sale.Diskon)
			}
			qty := decimal.NewFromInt(int64(it.Quantity))
			cost := it.HargaBeli.Mul(qty)
			profit := it.HargaJual.Sub(it.HargaBeli).Mul(qty).Sub(it.Diskon).Sub(share)

			txnRevenue = txnRevenue.Add(revenue)
			txnCost = txnCost.Add(cost)
			txnProfit = txnProfit.Add(profit)

			productName := it.ProductName
			if productName == "" {
				productName = placeholderProduct
			}
			brandName := it.BrandName
			if brandName == "" {
				brandName = placeholderBrand
			}

			p, ok := productAgg[it.ProductID]
			if !ok {
				p = &dto.ProductPerformance{ProductID: it.ProductID, ProductName: productName, BrandName: brandName}
				productAgg[it.ProductID] = p
				productOrder = append(productOrder, it.ProductID)
			}
			p.QuantitySold += it.Quantity
			p.Revenue = p.Revenue.Add(revenue)
			p.Cost = p.Cost.Add(cost)
			p.Profit = p.Profit.Add(profit)

			b, ok := brandAgg[brandName]
			if !ok {
				b = &dto.BrandPerformance{Brand: brandName}
				brandAgg[brandName] = b
				brandOrder = append(brandOrder, brandName)
			}
			b.QuantitySold += it.Quantity
			b.Revenue = b.Revenue.Add(revenue)
			b.Cost = b.Cost.Add(cost)
			b.Profit = b.Profit.Add(profit)
		}

		totalRevenue = totalRevenue.Add(txnRevenue)
		totalCost = totalCost.Add(txnCost)
		totalProfit = totalProfit.Add(txnProfit)

		addBucket(resp.ProfitByDay, dateKey(sale.CreatedAt), txnProfit)
		addBucket(resp.ProfitByWeek, isoWeekKey(sale.CreatedAt), txnProfit)
		addBucket(resp.ProfitByMonth, monthKey(sale.CreatedAt), txnProfit)
		addBucket(resp.ProfitByYear, yearKey(sale.CreatedAt), txnProfit)
	}

	resp.Summary = dto.ProfitSummary{TotalRevenue: totalRevenue, TotalCost: totalCost, TotalProfit: totalProfit}

	products := make([]dto.ProductPerformance, 0, len(productOrder))
	for _, id := range productOrder {
		products = append(products, *productAgg[id])
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Profit.GreaterThan(products[j].Profit)
	})
	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}
	resp.TopProducts = products

	brands := make([]dto.BrandPerformance, 0, len(brandOrder))
	for _, name := range brandOrder {
		b := *brandAgg[name]
		if b.Revenue.IsPositive() {
			b.ProfitMargin = b.Profit.Div(b.Revenue).Mul(decimal.NewFromInt(100))
		} else {
			b.ProfitMargin = decimal.Zero
		}
		brands = append(brands, b)
	}
	sort.SliceStable(brands, func(i, j int) bool {
		return brands[i].Profit.GreaterThan(brands[j].Profit)
	})
	resp.BrandPerformance = brands

	return resp, nil
}

// MonthlySummary agrega ingresos, profit y cantidad de transacciones del mes.
func (uc *UseCase) MonthlySummary(ctx context.Context, year int, month time.Month) (*dto.FinancialSummaryResponse, error) {
	revenue, profit, count, err := uc.reportRepo.GetFinancialSummary(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return &dto.FinancialSummaryResponse{
		TotalRevenue:     revenue,
		TotalProfit:      profit,
		TransactionCount: count,
		Month:            month.String(),
		Year:             year,
	}, nil
}

func itemRevenue(it repository.SettledSaleItem) decimal.Decimal {
	return it.HargaJual.Mul(decimal.NewFromInt(int64(it.Quantity))).Sub(it.Diskon)
}

func addBucket(m map[string]decimal.Decimal, key string, profit decimal.Decimal) {
	m[key] = m[key].Add(profit)
}
