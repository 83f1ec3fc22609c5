package finance_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appfin "github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	fin "github.com/jhoicas/pyme-finanzas/internal/domain/finance"
	"github.com/jhoicas/pyme-finanzas/internal/infrastructure/memory"
	"github.com/jhoicas/pyme-finanzas/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testOrgID = "00000000-0000-0000-0000-000000000002"

func santiago(t *testing.T) *time.Location {
	t.Helper()
	cal, err := fin.NewCalendar(fin.DefaultTimezone)
	require.NoError(t, err)
	return cal.Location()
}

// at devuelve un instante en hora de Santiago.
func at(t *testing.T, y int, m time.Month, d, h int) time.Time {
	t.Helper()
	return time.Date(y, m, d, h, 0, 0, 0, santiago(t))
}

// testNow 15 de marzo de 2026, mediodía en Santiago.
func testNow(t *testing.T) time.Time {
	return at(t, 2026, time.March, 15, 12)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newLedger() *memory.Ledger {
	l := memory.NewLedger()
	l.AddOrganization(entity.Organization{ID: testOrgID, Name: "Comercial Test"}, entity.ModuleFinance)
	return l
}

type serviceOpt func(*serviceConfig)

type serviceConfig struct {
	unit int
	opts appfin.Options
}

func withCashUnit(unit int) serviceOpt { return func(c *serviceConfig) { c.unit = unit } }

func withSeriesConcurrency(n int) serviceOpt {
	return func(c *serviceConfig) { c.opts.SeriesConcurrency = n }
}

func newService(t *testing.T, l *memory.Ledger, opts ...serviceOpt) *appfin.Service {
	t.Helper()
	cfg := serviceConfig{unit: 10, opts: appfin.Options{DefaultTrendMonths: 6, MaxTrendMonths: 24, SeriesConcurrency: 4}}
	for _, o := range opts {
		o(&cfg)
	}
	cal, err := fin.NewCalendar(fin.DefaultTimezone)
	require.NoError(t, err)
	cash, err := fin.NewCashRounding(cfg.unit, "half_down")
	require.NoError(t, err)
	return appfin.NewService(l, l, cal, clock.Fixed{At: testNow(t)}, cash, cfg.opts, zerolog.Nop())
}

// paidSale venta PAID con impuesto incluido en total.
func paidSale(method string, total, tax string, issued time.Time) entity.SalesDocument {
	tt, tx := dec(total), dec(tax)
	return entity.SalesDocument{
		OrganizationID: testOrgID,
		PaymentMethod:  method,
		Status:         entity.DocumentStatusPaid,
		Subtotal:       tt.Sub(tx),
		TaxAmount:      tx,
		Total:          tt,
		IssuedAt:       issued,
	}
}
