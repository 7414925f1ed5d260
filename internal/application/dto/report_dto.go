package dto

import "github.com/shopspring/decimal"

// ProfitSummary totales del rango consultado.
type ProfitSummary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
}

// ProductPerformance desempeño de un producto en el rango (ranking por profit).
type ProductPerformance struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	BrandName    string          `json:"brandName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
}

// BrandPerformance rollup por marca con margen (profit/revenue*100; 0 si revenue=0).
type BrandPerformance struct {
	Brand        string          `json:"brand"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// ProfitGraphResponse salida del reporte de rentabilidad: totales, profit por
// bucket temporal (día / semana ISO / mes / año), top productos y marcas.
type ProfitGraphResponse struct {
	Summary          ProfitSummary              `json:"summary"`
	ProfitByDay      map[string]decimal.Decimal `json:"profitByDay"`
	ProfitByWeek     map[string]decimal.Decimal `json:"profitByWeek"`
	ProfitByMonth    map[string]decimal.Decimal `json:"profitByMonth"`
	ProfitByYear     map[string]decimal.Decimal `json:"profitByYear"`
	TopProducts      []ProductPerformance       `json:"topProducts"`
	BrandPerformance []BrandPerformance         `json:"brandPerformance"`
}

// FinancialSummaryResponse resumen financiero mensual.
type FinancialSummaryResponse struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	TransactionCount int             `json:"transactionCount"`
	Month            string          `json:"month"`
	Year             int             `json:"year"`
}
