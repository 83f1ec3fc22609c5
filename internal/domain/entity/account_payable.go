package entity

import "github.com/shopspring/decimal"

// Estados de una cuenta por pagar.
const (
	PayableStatusPending   = "PENDING"
	PayableStatusPartial   = "PARTIAL"
	PayableStatusOverdue   = "OVERDUE"
	PayableStatusPaid      = "PAID"
	PayableStatusCancelled = "CANCELLED"
)

// AccountPayable deuda con un proveedor.
type AccountPayable struct {
	ID             string
	OrganizationID string
	SupplierName   string
	Balance        decimal.Decimal
	Status         string
}

// IsActive una cuenta por pagar cuenta como pasivo si está pendiente, parcial o vencida con saldo.
func (a *AccountPayable) IsActive() bool {
	switch a.Status {
	case PayableStatusPending, PayableStatusPartial, PayableStatusOverdue:
		return a.Balance.IsPositive()
	}
	return false
}
