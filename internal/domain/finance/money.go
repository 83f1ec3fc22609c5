package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundUnits redondea a unidades enteras de moneda (mitad se aleja de cero).
// Es el único modo de redondeo de los montos de salida.
func RoundUnits(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Units convierte a entero de moneda. Solo se usa al construir la respuesta.
func Units(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Percent devuelve part/whole*100 con un decimal; 0 si whole es cero.
func Percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(1).InexactFloat64()
}

// Sum suma una lista de montos sin redondear.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
