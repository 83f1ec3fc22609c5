package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/pyme-finanzas/internal/application/analytics"
	"github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/billing"
	fin "github.com/jhoicas/pyme-finanzas/internal/domain/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
	"github.com/jhoicas/pyme-finanzas/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pyme-finanzas/internal/infrastructure/pdf"
	"github.com/jhoicas/pyme-finanzas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pyme-finanzas/internal/interfaces/http"
	"github.com/jhoicas/pyme-finanzas/pkg/clock"
	"github.com/jhoicas/pyme-finanzas/pkg/config"
	"github.com/jhoicas/pyme-finanzas/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// organizationStore lo que el servicio, el reporte y el middleware de módulos necesitan de las organizaciones.
type organizationStore interface {
	repository.OrganizationRepository
	finance.OrganizationReader
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ledger", cfg.Finance.LedgerDriver).
		Msg("iniciando aplicación")

	cal, err := fin.NewCalendar(cfg.Finance.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Finance.Timezone).Msg("zona horaria del negocio")
	}
	cash, err := fin.NewCashRounding(cfg.Finance.CashRoundingUnit, cfg.Finance.CashRoundingMode)
	if err != nil {
		log.Fatal().Err(err).Msg("política de redondeo de efectivo")
	}

	// ── Libro de hechos ───────────────────────────────────────────────────────
	var (
		ledger repository.LedgerReader
		orgs   organizationStore
	)
	ctx := context.Background()
	switch cfg.Finance.LedgerDriver {
	case config.LedgerDriverMemory:
		l := memory.NewLedger()
		memory.SeedDemo(l, time.Now().In(cal.Location()))
		ledger, orgs = l, l
		log.Warn().Str("organization_id", memory.DemoOrganizationID).Msg("libro en memoria con datos demo")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		ledger = postgres.NewLedgerRepository(pool)
		orgs = postgres.NewOrganizationRepository(pool)
	}

	financeSvc := finance.NewService(ledger, orgs, cal, clock.System{}, cash, finance.Options{
		DefaultTrendMonths: cfg.Finance.DefaultTrendMonths,
		MaxTrendMonths:     cfg.Finance.MaxTrendMonths,
		SeriesConcurrency:  cfg.Finance.SeriesConcurrency,
	}, log.Component("finance"))
	reportUC := finance.NewReportUseCase(financeSvc, orgs, infrapdf.NewMarotoPDFGenerator())
	dashboardUC := appanalytics.NewDashboardUseCase(financeSvc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Pyme Finanzas API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Finance:       financeSvc,
		Report:        reportUC,
		DashboardUC:   dashboardUC,
		Totals:        billing.NewTotalsCalculator(int32(cfg.Finance.CurrencyDecimals)),
		ModuleChecker: orgs,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
