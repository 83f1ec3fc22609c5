package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment abono de un cliente contra su deuda de ventas a crédito.
type Payment struct {
	ID             string
	OrganizationID string
	CustomerID     string
	Amount         decimal.Decimal
	PaidAt         time.Time
}

// ProjectPayment cobro recibido contra el monto contratado de un proyecto.
type ProjectPayment struct {
	ID             string
	OrganizationID string
	ProjectID      string
	Amount         decimal.Decimal
	PaidAt         time.Time
}
