package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyme-finanzas/internal/domain/finance"
)

func decs(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestRoundSingleCashAmount_ReglaChilena(t *testing.T) {
	p, err := finance.NewCashRounding(10, "half_down")
	require.NoError(t, err)

	cases := map[string]string{
		"1991":   "1990",
		"1995":   "1990", // la mitad baja
		"1996":   "2000",
		"1999":   "2000",
		"2000":   "2000",
		"4":      "0",
		"1995.1": "2000",
		"-1996":  "-2000",
		"-1995":  "-1990",
	}
	for in, want := range cases {
		got := p.RoundSingleCashAmount(decimal.RequireFromString(in))
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%s → esperado %s, obtenido %s", in, want, got)
	}
}

func TestRoundSingleCashAmount_MitadSube(t *testing.T) {
	p, err := finance.NewCashRounding(10, "HALF_UP")
	require.NoError(t, err)

	assert.Equal(t, "2000", p.RoundSingleCashAmount(decimal.NewFromInt(1995)).String())
	assert.Equal(t, "1990", p.RoundSingleCashAmount(decimal.NewFromInt(1994)).String())
}

func TestRoundSingleCashAmount_UnidadUnoNoRedondea(t *testing.T) {
	for _, unit := range []int{0, 1} {
		p, err := finance.NewCashRounding(unit, "")
		require.NoError(t, err)
		assert.Equal(t, "1234.56", p.RoundSingleCashAmount(decimal.RequireFromString("1234.56")).String())
	}
}

// Regresión: redondear cada venta y sumar no es lo mismo que redondear la suma.
func TestSumOfRoundedCashAmounts_DifiereDelRedondeoAgregado(t *testing.T) {
	p, err := finance.NewCashRounding(5, "half_down")
	require.NoError(t, err)
	totals := decs(1, 2, 2, 4)

	perTransaction := p.SumOfRoundedCashAmounts(totals)
	aggregate := p.RoundSingleCashAmount(finance.Sum(totals...))

	assert.Equal(t, "5", perTransaction.String())
	assert.Equal(t, "10", aggregate.String())
	assert.False(t, perTransaction.Equal(aggregate))
}

func TestSumOfRoundedCashAmounts_ListaVacia(t *testing.T) {
	p, err := finance.NewCashRounding(10, "half_down")
	require.NoError(t, err)
	assert.True(t, p.SumOfRoundedCashAmounts(nil).IsZero())
}

func TestNewCashRounding_Invalido(t *testing.T) {
	_, err := finance.NewCashRounding(10, "bankers")
	assert.Error(t, err)
	_, err = finance.NewCashRounding(-5, "half_down")
	assert.Error(t, err)
}
