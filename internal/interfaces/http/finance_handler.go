package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

// FinanceHandler maneja los endpoints del módulo de finanzas (solo lectura).
type FinanceHandler struct {
	svc    *finance.Service
	report *finance.ReportUseCase
	log    zerolog.Logger
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(svc *finance.Service, report *finance.ReportUseCase, log zerolog.Logger) *FinanceHandler {
	return &FinanceHandler{svc: svc, report: report, log: log}
}

// GetSummary godoc
// @Summary      Resumen financiero mensual (base caja)
// @Description  Ventas, costo, cobranzas, tesorería, gastos y márgenes del mes.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        month     query  string  false  "Mes YYYY-MM. Default: mes en curso."
// @Param        category  query  string  false  "Categoría de tesorería"
// @Param        source    query  string  false  "Origen de tesorería"
// @Success      200  {object}  dto.MonthlySummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) GetSummary(c *fiber.Ctx) error {
	orgID := GetCompanyID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	out, err := h.svc.MonthlySummary(c.UserContext(), finance.SummaryRequest{
		OrganizationID: orgID,
		Month:          c.Query("month"),
		Filter:         treasuryFilter(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Balance aproximado al cierre del mes
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        month     query  string  false  "Mes YYYY-MM. Default: mes en curso."
// @Param        category  query  string  false  "Categoría de tesorería"
// @Param        source    query  string  false  "Origen de tesorería"
// @Success      200  {object}  dto.BalanceSnapshotDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/finance/balance [get]
func (h *FinanceHandler) GetBalance(c *fiber.Ctx) error {
	orgID := GetCompanyID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	out, err := h.svc.BalanceSnapshot(c.UserContext(), finance.SummaryRequest{
		OrganizationID: orgID,
		Month:          c.Query("month"),
		Filter:         treasuryFilter(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetSeries godoc
// @Summary      Serie temporal de los últimos N meses (más antiguo primero)
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        months    query  int     false  "Cantidad de meses. Ausente o 0: default configurable."
// @Param        category  query  string  false  "Categoría de tesorería"
// @Param        source    query  string  false  "Origen de tesorería"
// @Success      200  {object}  dto.TimeSeriesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/series [get]
func (h *FinanceHandler) GetSeries(c *fiber.Ctx) error {
	orgID := GetCompanyID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	months := 0
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return writeError(c, h.log, fmt.Errorf("%w: months=%q", domain.ErrInvalidWindow, raw))
		}
		months = n
	}
	out, err := h.svc.TimeSeries(c.UserContext(), finance.SeriesRequest{
		OrganizationID: orgID,
		Months:         months,
		Filter:         treasuryFilter(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetExpectedCash godoc
// @Summary      Efectivo esperado en caja para un rango (cierre de caja)
// @Description  Fondo inicial más ventas en efectivo redondeadas venta a venta.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  true   "Inicio (RFC3339 o YYYY-MM-DDTHH:MM hora local)"
// @Param        to       query  string  true   "Fin, inclusive; una fecha sola (YYYY-MM-DD) cubre el día completo"
// @Param        opening  query  string  false  "Fondo inicial de caja"
// @Success      200  {object}  dto.ExpectedCashDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/cash/expected [get]
func (h *FinanceHandler) GetExpectedCash(c *fiber.Ctx) error {
	orgID := GetCompanyID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	var q dto.ExpectedCashRequest
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: parámetros de consulta", domain.ErrInvalidInput))
	}

	cal := h.svc.Calendar()
	from, err := cal.ParseInstant(q.From)
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: from: %v", domain.ErrInvalidInput, err))
	}
	to, err := cal.ParseRangeEnd(q.To)
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: to: %v", domain.ErrInvalidInput, err))
	}
	opening := decimal.Zero
	if q.Opening != "" {
		if opening, err = decimal.NewFromString(q.Opening); err != nil {
			return writeError(c, h.log, fmt.Errorf("%w: opening=%q", domain.ErrInvalidInput, q.Opening))
		}
	}

	out, err := h.svc.ExpectedCash(c.UserContext(), finance.ExpectedCashRequest{
		OrganizationID: orgID,
		From:           from,
		To:             to,
		Opening:        opening,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetReportPDF godoc
// @Summary      Reporte financiero mensual en PDF
// @Tags         finance
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  query  string  false  "Mes YYYY-MM. Default: mes en curso."
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/report/pdf [get]
func (h *FinanceHandler) GetReportPDF(c *fiber.Ctx) error {
	orgID := GetCompanyID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	pdfBytes, filename, err := h.report.MonthlyReportPDF(c.UserContext(), orgID, c.Query("month"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

func treasuryFilter(c *fiber.Ctx) repository.TreasuryFilter {
	return repository.TreasuryFilter{
		Category: c.Query("category"),
		Source:   c.Query("source"),
	}
}
