package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/pyme-finanzas/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve el resumen del mes en curso y la tendencia por defecto.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO. No requiere parámetros; el mes se calcula en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}

	summary, err := h.uc.GetSummary(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(summary)
}
