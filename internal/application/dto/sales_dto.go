package dto

import "github.com/shopspring/decimal"

// DocumentLineRequest línea para el cálculo de totales.
type DocumentLineRequest struct {
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineDiscount decimal.Decimal `json:"line_discount"`
	TaxRate      decimal.Decimal `json:"tax_rate"` // 0.19 o 19
}

// DocumentTotalsRequest cuerpo de POST /api/sales/totals.
type DocumentTotalsRequest struct {
	Items          []DocumentLineRequest `json:"items"`
	GlobalDiscount decimal.Decimal       `json:"global_discount"`
}

// LineTotalsResponse totales de una línea.
type LineTotalsResponse struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// DocumentTotalsResponse totales del documento; Σ lines.total == total.
type DocumentTotalsResponse struct {
	Subtotal  decimal.Decimal      `json:"subtotal"`
	TaxAmount decimal.Decimal      `json:"tax_amount"`
	Discount  decimal.Decimal      `json:"discount"`
	Total     decimal.Decimal      `json:"total"`
	Lines     []LineTotalsResponse `json:"lines"`
}
