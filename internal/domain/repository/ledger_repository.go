package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange rango de fechas inclusivo en ambos extremos.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains informa si t cae dentro del rango (inclusivo).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// TreasuryFilter filtro opcional que solo aplica a lecturas de movimientos de tesorería.
// Campos vacíos = sin filtrar.
type TreasuryFilter struct {
	Category string
	Source   string
}

// SalesByMethod agregado de documentos PAID agrupados por medio de pago.
type SalesByMethod struct {
	PaymentMethod   string
	Count           int
	Total           decimal.Decimal
	Net             decimal.Decimal // total - impuesto
	TaxAmount       decimal.Decimal
	Discount        decimal.Decimal
	CardCommissions decimal.Decimal
}

// CostOfSales costo de lo vendido: Σ cantidad × costo foto, solo líneas con costo.
// UncostedLines cuenta las líneas excluidas por no tener costo.
type CostOfSales struct {
	Cost          decimal.Decimal
	CostedLines   int
	UncostedLines int
}

// AmountTotal suma y conteo de una lectura agregada.
type AmountTotal struct {
	Total decimal.Decimal
	Count int
}

// ProjectBalance monto contratado y cobrado de un proyecto activo.
// ContractedAmount nil = usar QuoteTotal; ambos nil = proyecto sin monto.
type ProjectBalance struct {
	ProjectID        string
	ContractedAmount *decimal.Decimal
	QuoteTotal       *decimal.Decimal
	PaymentsTotal    decimal.Decimal
}

// LedgerReader puerto de lectura de hechos financieros de una organización.
//
// Las implementaciones son read-only y deben ser consistentes durante una llamada.
// Todos los rangos son inclusivos en ambos extremos; los montos vienen sin redondear.
type LedgerReader interface {
	// ── Hechos del período ────────────────────────────────────────────────────

	// SumSalesByPaymentMethod agrupa por medio de pago los documentos PAID emitidos en el rango.
	SumSalesByPaymentMethod(ctx context.Context, orgID string, r DateRange) ([]SalesByMethod, error)

	// SumCostOfSales suma cantidad × costo de las líneas de documentos PAID emitidos en el rango.
	SumCostOfSales(ctx context.Context, orgID string, r DateRange) (CostOfSales, error)

	// SumCustomerPayments abonos de clientes recibidos en el rango (cobranza de crédito).
	SumCustomerPayments(ctx context.Context, orgID string, r DateRange) (AmountTotal, error)

	// SumProjectPayments cobros de proyectos recibidos en el rango.
	SumProjectPayments(ctx context.Context, orgID string, r DateRange) (AmountTotal, error)

	// SumTreasuryMovements movimientos de tesorería del tipo indicado (INFLOW/OUTFLOW) en el rango.
	SumTreasuryMovements(ctx context.Context, orgID string, r DateRange, movementType string, f TreasuryFilter) (AmountTotal, error)

	SumOperationalExpenses(ctx context.Context, orgID string, r DateRange) (AmountTotal, error)
	SumProjectExpenses(ctx context.Context, orgID string, r DateRange) (AmountTotal, error)
	SumProjectResources(ctx context.Context, orgID string, r DateRange) (AmountTotal, error)

	// ListCashSaleTotals totales individuales de ventas PAID en efectivo del rango, ordenados por emisión.
	ListCashSaleTotals(ctx context.Context, orgID string, r DateRange) ([]decimal.Decimal, error)

	// ── Fotos al momento de la consulta ───────────────────────────────────────

	// SumCustomerReceivables Σ deuda de clientes con deuda > 0.
	SumCustomerReceivables(ctx context.Context, orgID string) (AmountTotal, error)

	// ListActiveProjectBalances proyectos no cancelados con su monto contratado y cobrado.
	ListActiveProjectBalances(ctx context.Context, orgID string) ([]ProjectBalance, error)

	// SumInventoryAtCost Σ stock × costo de productos activos, con control de stock y costo conocido.
	SumInventoryAtCost(ctx context.Context, orgID string) (AmountTotal, error)

	// SumActivePayables Σ saldo de cuentas por pagar PENDING, PARTIAL u OVERDUE con saldo > 0.
	SumActivePayables(ctx context.Context, orgID string) (AmountTotal, error)
}

// OrganizationRepository consultas mínimas sobre organizaciones (tenants).
type OrganizationRepository interface {
	// Exists informa si la organización existe y no está dada de baja.
	Exists(ctx context.Context, orgID string) (bool, error)

	// HasActiveModule informa si la organización tiene el módulo activo y sin vencer.
	HasActiveModule(ctx context.Context, orgID, moduleName string) (bool, error)
}
