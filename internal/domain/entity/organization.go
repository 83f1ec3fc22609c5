package entity

import "time"

// Organization representa una organización/tenant del sistema (multi-tenant).
type Organization struct {
	ID        string
	Name      string
	TaxID     string // RUT
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla organization_modules).
const (
	ModuleSales     = "sales"
	ModuleInventory = "inventory"
	ModuleCredit    = "credit"
	ModuleProjects  = "projects"
	ModuleFinance   = "finance"
)
