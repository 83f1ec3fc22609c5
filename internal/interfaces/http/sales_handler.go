package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/billing"
)

// SalesHandler expone el calculador de totales de documentos de venta.
type SalesHandler struct {
	calc *billing.TotalsCalculator
	log  zerolog.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(calc *billing.TotalsCalculator, log zerolog.Logger) *SalesHandler {
	return &SalesHandler{calc: calc, log: log}
}

// Totals calcula subtotal, impuesto, descuento y total de un documento sin persistirlo.
// POST /api/sales/totals
func (h *SalesHandler) Totals(c *fiber.Ctx) error {
	var in dto.DocumentTotalsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return writeError(c, h.log, fmt.Errorf("%w: items requerido", domain.ErrInvalidInput))
	}

	lines := make([]billing.Line, len(in.Items))
	for i, it := range in.Items {
		lines[i] = billing.Line{
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			LineDiscount: it.LineDiscount,
			TaxRate:      it.TaxRate,
		}
	}

	totals, err := h.calc.Calculate(lines, in.GlobalDiscount)
	if err != nil {
		return writeError(c, h.log, err)
	}

	out := dto.DocumentTotalsResponse{
		Subtotal:  totals.Subtotal,
		TaxAmount: totals.TaxAmount,
		Discount:  totals.Discount,
		Total:     totals.Total,
		Lines:     make([]dto.LineTotalsResponse, len(totals.Lines)),
	}
	for i, lt := range totals.Lines {
		out.Lines[i] = dto.LineTotalsResponse{
			Subtotal:  lt.Subtotal,
			TaxAmount: lt.TaxAmount,
			Discount:  lt.Discount,
			Total:     lt.Total,
		}
	}
	return c.JSON(out)
}
