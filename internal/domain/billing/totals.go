// Package billing contiene el cálculo de totales de un documento de venta.
// Los montos que produce son los que luego lee el motor financiero como hechos ya validados.
package billing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-finanzas/internal/domain"
)

var one = decimal.NewFromInt(1)

// Line línea de entrada del documento.
type Line struct {
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	LineDiscount decimal.Decimal
	TaxRate      decimal.Decimal // 0.19 o 19 (se interpreta como porcentaje si es > 1)
}

// LineTotals montos calculados para una línea.
type LineTotals struct {
	Subtotal  decimal.Decimal // cantidad * precio, neto de impuesto
	TaxAmount decimal.Decimal
	Discount  decimal.Decimal // descuento de línea + parte asignada del descuento global
	Total     decimal.Decimal
}

// DocumentTotals montos del documento. Total = Subtotal + TaxAmount - Discount,
// y la suma de los totales de línea es exactamente Total.
type DocumentTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Lines     []LineTotals
}

// TotalsCalculator calcula totales a la precisión de la moneda (CLP: 0 decimales).
type TotalsCalculator struct {
	decimals int32
	unit     decimal.Decimal
}

// NewTotalsCalculator construye el calculador para una moneda con `decimals` decimales.
func NewTotalsCalculator(decimals int32) *TotalsCalculator {
	if decimals < 0 {
		decimals = 0
	}
	return &TotalsCalculator{decimals: decimals, unit: decimal.New(1, -decimals)}
}

// Calculate calcula los totales por línea y del documento.
//
// El impuesto de cada línea se calcula sobre su bruto (cantidad*precio - descuento de línea).
// El descuento global se reparte en proporción al bruto de cada línea con el método de
// restos mayores, de modo que no queda residuo de redondeo sin asignar.
// Un descuento global mayor que la suma de brutos devuelve domain.ErrInvalidDiscount.
func (c *TotalsCalculator) Calculate(lines []Line, globalDiscount decimal.Decimal) (*DocumentTotals, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: el documento no tiene líneas", domain.ErrInvalidInput)
	}
	if globalDiscount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento global negativo", domain.ErrInvalidDiscount)
	}

	bases := make([]decimal.Decimal, len(lines))
	lineDiscounts := make([]decimal.Decimal, len(lines))
	grosses := make([]decimal.Decimal, len(lines))
	sumGross := decimal.Zero

	for i, l := range lines {
		if !l.Quantity.IsPositive() || l.UnitPrice.IsNegative() || l.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d", domain.ErrInvalidInput, i+1)
		}
		base := l.Quantity.Mul(l.UnitPrice).Round(c.decimals)
		ld := l.LineDiscount.Round(c.decimals)
		if ld.IsNegative() || ld.GreaterThan(base) {
			return nil, fmt.Errorf("%w: línea %d", domain.ErrInvalidDiscount, i+1)
		}
		bases[i] = base
		lineDiscounts[i] = ld
		grosses[i] = base.Sub(ld)
		sumGross = sumGross.Add(grosses[i])
	}

	global := globalDiscount.Round(c.decimals)
	if global.GreaterThan(sumGross) {
		return nil, fmt.Errorf("%w: descuento %s sobre bruto %s",
			domain.ErrInvalidDiscount, global.String(), sumGross.String())
	}

	allocated := c.allocate(global, grosses, sumGross)

	out := &DocumentTotals{Lines: make([]LineTotals, len(lines))}
	for i, l := range lines {
		tax := grosses[i].Mul(normalizeRate(l.TaxRate)).Round(c.decimals)
		discount := lineDiscounts[i].Add(allocated[i])
		lt := LineTotals{
			Subtotal:  bases[i],
			TaxAmount: tax,
			Discount:  discount,
			Total:     bases[i].Add(tax).Sub(discount),
		}
		out.Lines[i] = lt
		out.Subtotal = out.Subtotal.Add(lt.Subtotal)
		out.TaxAmount = out.TaxAmount.Add(lt.TaxAmount)
		out.Discount = out.Discount.Add(lt.Discount)
		out.Total = out.Total.Add(lt.Total)
	}
	return out, nil
}

// allocate reparte amount en proporción a weights. La suma del resultado es exactamente amount.
func (c *TotalsCalculator) allocate(amount decimal.Decimal, weights []decimal.Decimal, total decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	for i := range shares {
		shares[i] = decimal.Zero
	}
	if amount.IsZero() || !total.IsPositive() {
		return shares
	}

	remainders := make([]decimal.Decimal, len(weights))
	assigned := decimal.Zero
	for i, w := range weights {
		exact := amount.Mul(w).Div(total)
		shares[i] = exact.RoundDown(c.decimals)
		remainders[i] = exact.Sub(shares[i])
		assigned = assigned.Add(shares[i])
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	left := amount.Sub(assigned).Div(c.unit).IntPart()
	for k := int64(0); k < left; k++ {
		idx := order[k%int64(len(order))]
		shares[idx] = shares[idx].Add(c.unit)
	}
	return shares
}

// normalizeRate acepta la tasa como fracción (0.19) o porcentaje (19).
func normalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(one) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}
