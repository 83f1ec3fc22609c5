package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationalExpense gasto operacional del negocio (arriendo, sueldos, servicios).
type OperationalExpense struct {
	ID             string
	OrganizationID string
	Category       string
	Amount         decimal.Decimal
	Date           time.Time
}

// ProjectExpense gasto imputado a un proyecto.
type ProjectExpense struct {
	ID             string
	OrganizationID string
	ProjectID      string
	Amount         decimal.Decimal
	Date           time.Time
}

// ProjectResource línea de costo directo de un proyecto (materiales, mano de obra).
type ProjectResource struct {
	ID             string
	OrganizationID string
	ProjectID      string
	TotalCost      decimal.Decimal
	Date           time.Time
}
