package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfin "github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
)

func shift(t *testing.T) (time.Time, time.Time) {
	return at(t, 2026, time.March, 14, 9), at(t, 2026, time.March, 14, 18)
}

// Regresión: 1,2,2,4 redondeados a 5 uno por uno suman 5; la suma (9) redondeada da 10.
func TestExpectedCash_RedondeoPorVentaNoPorTotal(t *testing.T) {
	l := newLedger()
	from, _ := shift(t)
	for i, total := range []string{"1", "2", "2", "4"} {
		l.AddSale(paidSale(entity.PaymentMethodCash, total, "0", from.Add(time.Duration(i+1)*time.Minute)))
	}
	svc := newService(t, l, withCashUnit(5))
	from, to := shift(t)

	out, err := svc.ExpectedCash(context.Background(), appfin.ExpectedCashRequest{
		OrganizationID: testOrgID, From: from, To: to, Opening: decimal.NewFromInt(20000),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, out.CashSalesCount)
	assert.Equal(t, int64(9), out.CashSalesTotal)
	assert.Equal(t, int64(5), out.RoundedCashSales)
	assert.Equal(t, int64(-4), out.RoundingAdjustment)
	assert.Equal(t, int64(20005), out.ExpectedCash)
	assert.Equal(t, int64(20010), out.AggregateRoundedCash)
	require.Len(t, out.Warnings, 1, "la diferencia con el redondeo agregado se informa")
	assert.Contains(t, out.Warnings[0], "difiere")
}

func TestExpectedCash_RedondeoChilenoADiez(t *testing.T) {
	l := newLedger()
	from, to := shift(t)
	for i, total := range []string{"1995", "3994", "1006"} {
		l.AddSale(paidSale(entity.PaymentMethodCash, total, "0", from.Add(time.Duration(i+1)*time.Hour)))
	}

	out, err := newService(t, l).ExpectedCash(context.Background(), appfin.ExpectedCashRequest{
		OrganizationID: testOrgID, From: from, To: to,
	})
	require.NoError(t, err)

	// 1995 → 1990 (el 5 baja), 3994 → 3990, 1006 → 1010
	assert.Equal(t, int64(6990), out.RoundedCashSales)
	assert.Equal(t, int64(6990), out.ExpectedCash)
	assert.Equal(t, int64(6995), out.CashSalesTotal)
	// 6995 agregado → 6990, coincide
	assert.Empty(t, out.Warnings)
}

func TestExpectedCash_SoloVentasEnEfectivoPagadasDelTurno(t *testing.T) {
	l := newLedger()
	from, to := shift(t)
	l.AddSale(paidSale(entity.PaymentMethodCash, "1000", "0", from))
	l.AddSale(paidSale(entity.PaymentMethodCash, "2000", "0", to))
	l.AddSale(paidSale(entity.PaymentMethodCard, "5000", "0", from.Add(time.Hour)))
	l.AddSale(paidSale(entity.PaymentMethodCash, "7000", "0", to.Add(time.Second)))
	draft := paidSale(entity.PaymentMethodCash, "9000", "0", from.Add(time.Hour))
	draft.Status = entity.DocumentStatusDraft
	l.AddSale(draft)

	out, err := newService(t, l).ExpectedCash(context.Background(), appfin.ExpectedCashRequest{
		OrganizationID: testOrgID, From: from, To: to,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.CashSalesCount)
	assert.Equal(t, int64(3000), out.ExpectedCash)
}

func TestExpectedCash_EntradaInvalida(t *testing.T) {
	from, to := shift(t)
	cases := []struct {
		name    string
		req     appfin.ExpectedCashRequest
		wantErr error
	}{
		{"rango invertido", appfin.ExpectedCashRequest{OrganizationID: testOrgID, From: to, To: from}, domain.ErrInvalidInput},
		{"sin desde", appfin.ExpectedCashRequest{OrganizationID: testOrgID, To: to}, domain.ErrInvalidInput},
		{"fondo negativo", appfin.ExpectedCashRequest{OrganizationID: testOrgID, From: from, To: to, Opening: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
		{"organización inexistente", appfin.ExpectedCashRequest{OrganizationID: "9b1f6f2e-0000-4000-8000-000000000099", From: from, To: to}, domain.ErrOrganizationNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger()
			_, err := newService(t, l).ExpectedCash(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, l.Reads())
		})
	}
}

func TestExpectedCash_FalloDeLectura(t *testing.T) {
	l := newLedger()
	l.FailRead("ListCashSaleTotals", errors.New("sin conexión"))
	from, to := shift(t)

	out, err := newService(t, l).ExpectedCash(context.Background(), appfin.ExpectedCashRequest{OrganizationID: testOrgID, From: from, To: to})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
}
