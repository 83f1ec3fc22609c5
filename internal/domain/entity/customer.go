package entity

import "github.com/shopspring/decimal"

// Customer cliente con cuenta corriente (ventas a crédito).
// CurrentDebt lo mantiene el módulo de crédito: suma ventas CREDIT y resta abonos.
type Customer struct {
	ID             string
	OrganizationID string
	Name           string
	CurrentDebt    decimal.Decimal
}
