package entity

import "github.com/shopspring/decimal"

// Estados de proyecto.
const (
	ProjectStatusActive    = "ACTIVE"
	ProjectStatusCompleted = "COMPLETED"
	ProjectStatusCancelled = "CANCELLED"
)

// Project proyecto contratado. Si ContractedAmount es nil vale el total de la cotización de origen.
type Project struct {
	ID               string
	OrganizationID   string
	Name             string
	Status           string
	ContractedAmount *decimal.Decimal
	QuoteTotal       *decimal.Decimal
}
