package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/application/reporting"
)

// ReportHandler reportes de rentabilidad y resumen financiero.
type ReportHandler struct {
	uc    *reporting.UseCase
	pdfUC *reporting.PDFUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reporting.UseCase, pdfUC *reporting.PDFUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, pdfUC: pdfUC}
}

// parseDateRange lee startDate/endDate (YYYY-MM-DD). endDate se extiende al
// final del día para que el rango incluya las ventas de esa fecha completa.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("startDate"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, fmt.Errorf("startDate inválida: %q", s)
		}
		from = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, fmt.Errorf("endDate inválida: %q", s)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

// parseYearMonth lee year/month con el mes corriente como defecto.
func parseYearMonth(c *fiber.Ctx) (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if s := c.Query("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("year inválido: %q", s)
		}
		year = y
	}
	if s := c.Query("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("month inválido: %q", s)
		}
		month = time.Month(m)
	}
	return year, month, nil
}

// ProfitGraph godoc
// @Summary      Reporte de rentabilidad por rango de fechas
// @Tags         reports
// @Produce      json
// @Param        startDate  query     string  false  "YYYY-MM-DD"
// @Param        endDate    query     string  false  "YYYY-MM-DD (incluye el día completo)"
// @Success      200        {object}  dto.ProfitGraphResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) ProfitGraph(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.ProfitGraph(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MonthlySummary godoc
// @Summary      Resumen financiero mensual
// @Tags         reports
// @Produce      json
// @Param        year   query     int  false  "año (defecto: actual)"
// @Param        month  query     int  false  "mes 1-12 (defecto: actual)"
// @Success      200    {object}  dto.FinancialSummaryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) MonthlySummary(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.MonthlySummary(c.UserContext(), year, month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MonthlyReportPDF godoc
// @Summary      Descargar el reporte mensual en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        year   query  int  false  "año (defecto: actual)"
// @Param        month  query  int  false  "mes 1-12 (defecto: actual)"
// @Success      200    {file}    file
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/summary/pdf [get]
func (h *ReportHandler) MonthlyReportPDF(c *fiber.Ctx) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdfBytes, filename, err := h.pdfUC.MonthlyReportPDF(c.UserContext(), year, month)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
