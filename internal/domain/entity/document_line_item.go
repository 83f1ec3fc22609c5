package entity

import "github.com/shopspring/decimal"

// DocumentLineItem línea de un documento de venta.
// UnitCost es la foto del costo del producto al vender; nil = línea sin costo.
type DocumentLineItem struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal
}
