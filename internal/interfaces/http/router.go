package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/pyme-finanzas/internal/application/analytics"
	"github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/billing"
)

// Módulo que debe estar activo para consultar finanzas.
const FinanceModule = "finance"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Finance       *finance.Service
	Report        *finance.ReportUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Totals        *billing.TotalsCalculator
	ModuleChecker moduleChecker
	JWTSecret     string
	Logger        zerolog.Logger
}

// Router registra las rutas de la API. /health queda fuera (público, lo registra main).
func Router(app *fiber.App, deps RouterDeps) {
	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Cálculo de totales: cualquier usuario autenticado de la organización
	salesHandler := NewSalesHandler(deps.Totals, deps.Logger)
	api.Post("/sales/totals", salesHandler.Totals)

	// Finanzas y dashboard: admin o contador, con módulo activo
	reader := []fiber.Handler{
		RequireRole("admin", "contador"),
		RequireModule(FinanceModule, deps.ModuleChecker, deps.Logger),
	}

	financeGroup := api.Group("/finance", reader...)
	financeHandler := NewFinanceHandler(deps.Finance, deps.Report, deps.Logger)
	financeGroup.Get("/summary", financeHandler.GetSummary)
	financeGroup.Get("/balance", financeHandler.GetBalance)
	financeGroup.Get("/series", financeHandler.GetSeries)
	financeGroup.Get("/cash/expected", financeHandler.GetExpectedCash)
	financeGroup.Get("/report/pdf", financeHandler.GetReportPDF)

	dashboard := api.Group("/dashboard", reader...)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Logger)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
