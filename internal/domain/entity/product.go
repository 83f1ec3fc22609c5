package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo, usado aquí solo para valorizar inventario a costo.
// Cost nil significa producto sin costo cargado.
type Product struct {
	ID             string
	OrganizationID string
	SKU            string
	Name           string
	Cost           *decimal.Decimal
	CurrentStock   decimal.Decimal
	TrackStock     bool
	Active         bool
}
