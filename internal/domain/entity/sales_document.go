package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago de un documento de venta.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCredit   = "CREDIT"
	PaymentMethodMulti    = "MULTI"
	PaymentMethodOther    = "OTHER"
)

// Estados de un documento de venta. Solo PAID cuenta para finanzas.
const (
	DocumentStatusDraft     = "DRAFT"
	DocumentStatusPaid      = "PAID"
	DocumentStatusCancelled = "CANCELLED"
)

// SalesDocument cabecera de una boleta/factura emitida.
// Total = Subtotal + TaxAmount - Discount, lo garantiza billing.TotalsCalculator al emitir.
type SalesDocument struct {
	ID                   string
	OrganizationID       string
	PaymentMethod        string
	Status               string
	Subtotal             decimal.Decimal
	TaxAmount            decimal.Decimal
	Discount             decimal.Decimal
	Total                decimal.Decimal
	CardCommissionAmount decimal.Decimal
	IssuedAt             time.Time
}
