package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/sepatuhub/pos-api/internal/application/dto"
)

// PDFGenerator puerto hacia el renderizador del reporte mensual.
type PDFGenerator interface {
	GenerateMonthlyReport(ctx context.Context, summary *dto.FinancialSummaryResponse, topProducts []dto.ProductPerformance) ([]byte, error)
}

// PDFUseCase arma el reporte mensual descargable: resumen financiero del mes
// más el top de productos del mismo rango.
type PDFUseCase struct {
	reports *UseCase
	gen     PDFGenerator
}

// NewPDFUseCase construye el caso de uso del PDF mensual.
func NewPDFUseCase(reports *UseCase, gen PDFGenerator) *PDFUseCase {
	return &PDFUseCase{reports: reports, gen: gen}
}

// MonthlyReportPDF devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *PDFUseCase) MonthlyReportPDF(ctx context.Context, year int, month time.Month) ([]byte, string, error) {
	summary, err := uc.reports.MonthlySummary(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	// Mismo rango semiabierto que usa el resumen: [primer día, primer día del mes siguiente).
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	graph, err := uc.reports.ProfitGraph(ctx, &from, &to)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := uc.gen.GenerateMonthlyReport(ctx, summary, graph.TopProducts)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF mensual: %w", err)
	}

	filename := fmt.Sprintf("reporte-%04d-%02d.pdf", year, int(month))
	return pdfBytes, filename, nil
}
