package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfin "github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	"github.com/jhoicas/pyme-finanzas/internal/infrastructure/memory"
)

// seriesLedger un hecho distinto en cada mes, de octubre 2025 a marzo 2026.
func seriesLedger(t *testing.T) *memory.Ledger {
	t.Helper()
	l := newLedger()
	start := at(t, 2025, time.October, 10, 10)
	for i := 0; i < 6; i++ {
		month := start.AddDate(0, i, 0)
		l.AddSale(paidSale(entity.PaymentMethodCash, "1000", "0", month))
		l.AddOperationalExpense(entity.OperationalExpense{
			OrganizationID: testOrgID,
			Amount:         decimal.NewFromInt(int64(100 * (i + 1))),
			Date:           month,
		})
	}
	l.AddSale(paidSale(entity.PaymentMethodCredit, "700", "0", at(t, 2025, time.December, 20, 10)))
	l.AddPayment(entity.Payment{OrganizationID: testOrgID, Amount: dec("700"), PaidAt: at(t, 2026, time.February, 2, 10)})
	return l
}

func TestTimeSeries_PuntosOrdenadosDelMasAntiguoAlMasReciente(t *testing.T) {
	svc := newService(t, seriesLedger(t))

	series, err := svc.TimeSeries(context.Background(), appfin.SeriesRequest{OrganizationID: testOrgID, Months: 6})
	require.NoError(t, err)

	require.Len(t, series.Points, 6)
	keys := make([]string, 0, 6)
	for _, p := range series.Points {
		keys = append(keys, p.Month)
	}
	assert.Equal(t, []string{"2025-10", "2025-11", "2025-12", "2026-01", "2026-02", "2026-03"}, keys)
	assert.Equal(t, "Octubre 2025", series.Points[0].Label)
	assert.Equal(t, int64(900), series.Points[0].NetCashFlow)
	assert.Equal(t, int64(1700-500), series.Points[4].NetCashFlow, "febrero incluye la cobranza del crédito de diciembre")
}

func TestTimeSeries_CadaPuntoIgualAlResumenIndependiente(t *testing.T) {
	svc := newService(t, seriesLedger(t))
	ctx := context.Background()

	series, err := svc.TimeSeries(ctx, appfin.SeriesRequest{OrganizationID: testOrgID, Months: 6})
	require.NoError(t, err)

	for _, p := range series.Points {
		s, err := svc.MonthlySummary(ctx, appfin.SummaryRequest{OrganizationID: testOrgID, Month: p.Month})
		require.NoError(t, err)
		assert.Equal(t, s.Label, p.Label)
		assert.Equal(t, s.NetCashFlow, p.NetCashFlow, p.Month)
		assert.Equal(t, s.OperatingResult, p.OperatingResult, p.Month)
		assert.Equal(t, s.CashInflowsTotal, p.CashInflowsTotal, p.Month)
		assert.Equal(t, s.CashOutflowsTotal, p.CashOutflowsTotal, p.Month)
	}
}

func TestTimeSeries_MismoResultadoConCualquierConcurrencia(t *testing.T) {
	l := seriesLedger(t)
	ctx := context.Background()
	req := appfin.SeriesRequest{OrganizationID: testOrgID, Months: 6}

	serial, err := newService(t, l, withSeriesConcurrency(1)).TimeSeries(ctx, req)
	require.NoError(t, err)
	parallel, err := newService(t, l, withSeriesConcurrency(6)).TimeSeries(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestTimeSeries_VentanaPorDefecto(t *testing.T) {
	series, err := newService(t, newLedger()).TimeSeries(context.Background(), appfin.SeriesRequest{OrganizationID: testOrgID})
	require.NoError(t, err)

	assert.Equal(t, 6, series.Months)
	assert.Len(t, series.Points, 6)
	assert.Equal(t, "2026-03", series.Points[5].Month)
}

func TestTimeSeries_VentanaCruzaElAnio(t *testing.T) {
	series, err := newService(t, newLedger()).TimeSeries(context.Background(), appfin.SeriesRequest{OrganizationID: testOrgID, Months: 24})
	require.NoError(t, err)

	require.Len(t, series.Points, 24)
	assert.Equal(t, "2024-04", series.Points[0].Month)
	assert.Equal(t, "2026-03", series.Points[23].Month)
}

func TestTimeSeries_VentanaInvalida(t *testing.T) {
	for _, months := range []int{-1, 25, 100} {
		l := newLedger()
		series, err := newService(t, l).TimeSeries(context.Background(), appfin.SeriesRequest{OrganizationID: testOrgID, Months: months})

		assert.Nil(t, series)
		assert.ErrorIs(t, err, domain.ErrInvalidWindow, "months=%d", months)
		assert.Zero(t, l.Reads())
	}
}
