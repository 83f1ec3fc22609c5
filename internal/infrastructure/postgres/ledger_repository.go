package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

var _ repository.LedgerReader = (*LedgerRepo)(nil)

// LedgerRepo consultas de solo lectura sobre los hechos financieros.
// Los rangos usan BETWEEN (inclusivo en ambos extremos) y los montos vuelven
// como NUMERIC sin redondear.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Acepta pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// SumSalesByPaymentMethod agrupa por medio de pago los documentos PAID del rango.
func (r *LedgerRepo) SumSalesByPaymentMethod(ctx context.Context, orgID string, rg repository.DateRange) ([]repository.SalesByMethod, error) {
	const query = `
	SELECT
	    sd.payment_method,
	    COUNT(*)                                         AS doc_count,
	    COALESCE(SUM(sd.total), 0)                       AS total,
	    COALESCE(SUM(sd.total - sd.tax_amount), 0)       AS net,
	    COALESCE(SUM(sd.tax_amount), 0)                  AS tax_amount,
	    COALESCE(SUM(sd.discount), 0)                    AS discount,
	    COALESCE(SUM(sd.card_commission_amount), 0)      AS card_commissions
	FROM sales_documents sd
	WHERE sd.organization_id = $1
	  AND sd.status = $2
	  AND sd.issued_at BETWEEN $3 AND $4
	GROUP BY sd.payment_method
	ORDER BY sd.payment_method`

	rows, err := r.q.Query(ctx, query, orgID, entity.DocumentStatusPaid, rg.From, rg.To)
	if err != nil {
		return nil, fmt.Errorf("ledger.SumSalesByPaymentMethod: %w", err)
	}
	defer rows.Close()

	results := []repository.SalesByMethod{}
	for rows.Next() {
		var row repository.SalesByMethod
		if err := rows.Scan(
			&row.PaymentMethod,
			&row.Count,
			&row.Total,
			&row.Net,
			&row.TaxAmount,
			&row.Discount,
			&row.CardCommissions,
		); err != nil {
			return nil, fmt.Errorf("ledger.SumSalesByPaymentMethod scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger.SumSalesByPaymentMethod rows: %w", err)
	}
	return results, nil
}

// SumCostOfSales Σ cantidad × costo foto de las líneas vendidas. Las líneas sin costo
// no suman y se cuentan aparte.
func (r *LedgerRepo) SumCostOfSales(ctx context.Context, orgID string, rg repository.DateRange) (repository.CostOfSales, error) {
	const query = `
	SELECT
	    COALESCE(SUM(li.quantity * li.unit_cost) FILTER (WHERE li.unit_cost IS NOT NULL), 0) AS cost,
	    COUNT(*) FILTER (WHERE li.unit_cost IS NOT NULL)                                     AS costed_lines,
	    COUNT(*) FILTER (WHERE li.unit_cost IS NULL)                                         AS uncosted_lines
	FROM document_line_items li
	JOIN sales_documents sd ON sd.id = li.document_id
	WHERE sd.organization_id = $1
	  AND sd.status = $2
	  AND sd.issued_at BETWEEN $3 AND $4`

	var out repository.CostOfSales
	err := r.q.QueryRow(ctx, query, orgID, entity.DocumentStatusPaid, rg.From, rg.To).
		Scan(&out.Cost, &out.CostedLines, &out.UncostedLines)
	if err != nil {
		return repository.CostOfSales{}, fmt.Errorf("ledger.SumCostOfSales: %w", err)
	}
	return out, nil
}

// sumAmount ejecuta una consulta de la forma SELECT COALESCE(SUM(x),0), COUNT(*).
func (r *LedgerRepo) sumAmount(ctx context.Context, op, query string, args ...any) (repository.AmountTotal, error) {
	out := repository.AmountTotal{Total: decimal.Zero}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&out.Total, &out.Count); err != nil {
		return repository.AmountTotal{}, fmt.Errorf("ledger.%s: %w", op, err)
	}
	return out, nil
}

// SumCustomerPayments abonos de clientes recibidos en el rango.
func (r *LedgerRepo) SumCustomerPayments(ctx context.Context, orgID string, rg repository.DateRange) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumCustomerPayments", `
	SELECT COALESCE(SUM(amount), 0), COUNT(*)
	FROM payments
	WHERE organization_id = $1
	  AND paid_at BETWEEN $2 AND $3`, orgID, rg.From, rg.To)
}

// SumProjectPayments cobros de proyectos recibidos en el rango.
func (r *LedgerRepo) SumProjectPayments(ctx context.Context, orgID string, rg repository.DateRange) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumProjectPayments", `
	SELECT COALESCE(SUM(amount), 0), COUNT(*)
	FROM project_payments
	WHERE organization_id = $1
	  AND paid_at BETWEEN $2 AND $3`, orgID, rg.From, rg.To)
}

// SumTreasuryMovements movimientos de tesorería del tipo indicado; categoría y
// origen vacíos no filtran.
func (r *LedgerRepo) SumTreasuryMovements(ctx context.Context, orgID string, rg repository.DateRange, movementType string, f repository.TreasuryFilter) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumTreasuryMovements", `
	SELECT COALESCE(SUM(amount), 0), COUNT(*)
	FROM treasury_movements
	WHERE organization_id = $1
	  AND type = $2
	  AND occurred_at BETWEEN $3 AND $4
	  AND ($5::text = '' OR category = $5::text)
	  AND ($6::text = '' OR source   = $6::text)`,
		orgID, movementType, rg.From, rg.To, f.Category, f.Source)
}

func (r *LedgerRepo) SumOperationalExpenses(ctx context.Context, orgID string, rg repository.DateRange) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumOperationalExpenses", `
	SELECT COALESCE(SUM(amount), 0), COUNT(*)
	FROM operational_expenses
	WHERE organization_id = $1
	  AND date BETWEEN $2 AND $3`, orgID, rg.From, rg.To)
}

func (r *LedgerRepo) SumProjectExpenses(ctx context.Context, orgID string, rg repository.DateRange) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumProjectExpenses", `
	SELECT COALESCE(SUM(amount), 0), COUNT(*)
	FROM project_expenses
	WHERE organization_id = $1
	  AND date BETWEEN $2 AND $3`, orgID, rg.From, rg.To)
}

func (r *LedgerRepo) SumProjectResources(ctx context.Context, orgID string, rg repository.DateRange) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumProjectResources", `
	SELECT COALESCE(SUM(total_cost), 0), COUNT(*)
	FROM project_resources
	WHERE organization_id = $1
	  AND date BETWEEN $2 AND $3`, orgID, rg.From, rg.To)
}

// ListCashSaleTotals totales de las ventas PAID en efectivo del rango, en orden de emisión.
func (r *LedgerRepo) ListCashSaleTotals(ctx context.Context, orgID string, rg repository.DateRange) ([]decimal.Decimal, error) {
	const query = `
	SELECT total
	FROM sales_documents
	WHERE organization_id = $1
	  AND status = $2
	  AND payment_method = $3
	  AND issued_at BETWEEN $4 AND $5
	ORDER BY issued_at, id`

	rows, err := r.q.Query(ctx, query, orgID, entity.DocumentStatusPaid, entity.PaymentMethodCash, rg.From, rg.To)
	if err != nil {
		return nil, fmt.Errorf("ledger.ListCashSaleTotals: %w", err)
	}
	defer rows.Close()

	totals := []decimal.Decimal{}
	for rows.Next() {
		var total decimal.Decimal
		if err := rows.Scan(&total); err != nil {
			return nil, fmt.Errorf("ledger.ListCashSaleTotals scan: %w", err)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger.ListCashSaleTotals rows: %w", err)
	}
	return totals, nil
}

// ── Fotos ─────────────────────────────────────────────────────────────────────

func (r *LedgerRepo) SumCustomerReceivables(ctx context.Context, orgID string) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumCustomerReceivables", `
	SELECT COALESCE(SUM(current_debt), 0), COUNT(*)
	FROM customers
	WHERE organization_id = $1
	  AND current_debt > 0`, orgID)
}

// ListActiveProjectBalances proyectos no cancelados con monto contratado, total de la
// cotización de origen y lo cobrado hasta hoy.
func (r *LedgerRepo) ListActiveProjectBalances(ctx context.Context, orgID string) ([]repository.ProjectBalance, error) {
	const query = `
	SELECT
	    p.id::text,
	    p.contracted_amount,
	    q.total                          AS quote_total,
	    COALESCE(pp.paid, 0)             AS payments_total
	FROM projects p
	LEFT JOIN quotes q ON q.id = p.quote_id
	LEFT JOIN (
	    SELECT project_id, SUM(amount) AS paid
	    FROM project_payments
	    WHERE organization_id = $1
	    GROUP BY project_id
	) pp ON pp.project_id = p.id
	WHERE p.organization_id = $1
	  AND p.status <> $2
	ORDER BY p.id`

	rows, err := r.q.Query(ctx, query, orgID, entity.ProjectStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("ledger.ListActiveProjectBalances: %w", err)
	}
	defer rows.Close()

	results := []repository.ProjectBalance{}
	for rows.Next() {
		var (
			row        repository.ProjectBalance
			contracted decimal.NullDecimal
			quote      decimal.NullDecimal
		)
		if err := rows.Scan(&row.ProjectID, &contracted, &quote, &row.PaymentsTotal); err != nil {
			return nil, fmt.Errorf("ledger.ListActiveProjectBalances scan: %w", err)
		}
		if contracted.Valid {
			row.ContractedAmount = &contracted.Decimal
		}
		if quote.Valid {
			row.QuoteTotal = &quote.Decimal
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger.ListActiveProjectBalances rows: %w", err)
	}
	return results, nil
}

func (r *LedgerRepo) SumInventoryAtCost(ctx context.Context, orgID string) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumInventoryAtCost", `
	SELECT COALESCE(SUM(current_stock * cost), 0), COUNT(*)
	FROM products
	WHERE organization_id = $1
	  AND active = true
	  AND track_stock = true
	  AND cost IS NOT NULL`, orgID)
}

func (r *LedgerRepo) SumActivePayables(ctx context.Context, orgID string) (repository.AmountTotal, error) {
	return r.sumAmount(ctx, "SumActivePayables", `
	SELECT COALESCE(SUM(balance), 0), COUNT(*)
	FROM accounts_payable
	WHERE organization_id = $1
	  AND status IN ($2, $3, $4)
	  AND balance > 0`,
		orgID, entity.PayableStatusPending, entity.PayableStatusPartial, entity.PayableStatusOverdue)
}
