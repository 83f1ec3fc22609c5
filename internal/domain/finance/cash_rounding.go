package finance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CashRoundingMode decide qué pasa con la mitad exacta de la denominación.
type CashRoundingMode string

const (
	// CashRoundHalfDown: la mitad baja (Chile: terminaciones 1-5 bajan, 6-9 suben).
	CashRoundHalfDown CashRoundingMode = "half_down"
	// CashRoundHalfUp: la mitad sube.
	CashRoundHalfUp CashRoundingMode = "half_up"
)

var half = decimal.NewFromFloat(0.5)

// CashRounding redondeo de pagos en efectivo a la denominación legal más cercana.
// Unit <= 1 deja los montos intactos.
type CashRounding struct {
	Unit decimal.Decimal
	Mode CashRoundingMode
}

// NewCashRounding valida y construye la política.
func NewCashRounding(unit int, mode string) (CashRounding, error) {
	m := CashRoundingMode(strings.ToLower(mode))
	if m == "" {
		m = CashRoundHalfDown
	}
	if m != CashRoundHalfDown && m != CashRoundHalfUp {
		return CashRounding{}, fmt.Errorf("redondeo de efectivo: modo desconocido %q", mode)
	}
	if unit < 0 {
		return CashRounding{}, fmt.Errorf("redondeo de efectivo: unidad negativa %d", unit)
	}
	return CashRounding{Unit: decimal.NewFromInt(int64(unit)), Mode: m}, nil
}

// RoundSingleCashAmount redondea el total de UNA transacción en efectivo
// (monto a cobrar y vuelto en el punto de venta).
func (p CashRounding) RoundSingleCashAmount(total decimal.Decimal) decimal.Decimal {
	if p.Unit.LessThanOrEqual(decimal.NewFromInt(1)) {
		return total
	}
	abs := total.Abs()
	q := abs.Div(p.Unit)
	units := q.Floor()
	frac := q.Sub(units)
	switch {
	case frac.GreaterThan(half):
		units = units.Add(decimal.NewFromInt(1))
	case frac.Equal(half) && p.Mode == CashRoundHalfUp:
		units = units.Add(decimal.NewFromInt(1))
	}
	rounded := units.Mul(p.Unit)
	if total.IsNegative() {
		return rounded.Neg()
	}
	return rounded
}

// SumOfRoundedCashAmounts redondea cada total por separado y luego suma.
// Es la forma correcta de reconstruir el efectivo esperado de un turno:
// no equivale a redondear la suma.
func (p CashRounding) SumOfRoundedCashAmounts(totals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(p.RoundSingleCashAmount(t))
	}
	return sum
}
