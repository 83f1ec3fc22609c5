// Package memory implementa el libro de hechos en memoria. Se usa como doble en
// los tests y como driver de desarrollo (FINANCE_LEDGER_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

// Ledger implementa repository.LedgerReader y repository.OrganizationRepository.
type Ledger struct {
	mu sync.RWMutex

	orgs     map[string]entity.Organization
	modules  map[string]map[string]bool
	sales    []entity.SalesDocument
	lines    map[string][]entity.DocumentLineItem // por documento
	payments []entity.Payment
	projPay  []entity.ProjectPayment
	treasury []entity.TreasuryMovement
	opEx     []entity.OperationalExpense
	projEx   []entity.ProjectExpense
	projRes  []entity.ProjectResource
	customer []entity.Customer
	projects []entity.Project
	products []entity.Product
	payables []entity.AccountPayable

	failures map[string]error
	reads    atomic.Int64
}

var (
	_ repository.LedgerReader           = (*Ledger)(nil)
	_ repository.OrganizationRepository = (*Ledger)(nil)
)

// NewLedger crea un libro vacío.
func NewLedger() *Ledger {
	return &Ledger{
		orgs:     make(map[string]entity.Organization),
		modules:  make(map[string]map[string]bool),
		lines:    make(map[string][]entity.DocumentLineItem),
		failures: make(map[string]error),
	}
}

// ── Carga de hechos ───────────────────────────────────────────────────────────

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// AddOrganization registra una organización con sus módulos activos.
func (l *Ledger) AddOrganization(org entity.Organization, modules ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	org.ID = newID(org.ID)
	if org.Status == "" {
		org.Status = "active"
	}
	l.orgs[org.ID] = org
	set := make(map[string]bool, len(modules))
	for _, m := range modules {
		set[m] = true
	}
	l.modules[org.ID] = set
}

// AddSale registra un documento de venta con sus líneas.
func (l *Ledger) AddSale(doc entity.SalesDocument, lines ...entity.DocumentLineItem) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	doc.ID = newID(doc.ID)
	l.sales = append(l.sales, doc)
	for _, li := range lines {
		li.ID = newID(li.ID)
		li.DocumentID = doc.ID
		l.lines[doc.ID] = append(l.lines[doc.ID], li)
	}
	return doc.ID
}

func (l *Ledger) AddPayment(p entity.Payment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p.ID = newID(p.ID)
	l.payments = append(l.payments, p)
}

func (l *Ledger) AddProjectPayment(p entity.ProjectPayment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p.ID = newID(p.ID)
	l.projPay = append(l.projPay, p)
}

func (l *Ledger) AddTreasuryMovement(m entity.TreasuryMovement) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m.ID = newID(m.ID)
	l.treasury = append(l.treasury, m)
}

func (l *Ledger) AddOperationalExpense(e entity.OperationalExpense) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.ID = newID(e.ID)
	l.opEx = append(l.opEx, e)
}

func (l *Ledger) AddProjectExpense(e entity.ProjectExpense) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.ID = newID(e.ID)
	l.projEx = append(l.projEx, e)
}

func (l *Ledger) AddProjectResource(r entity.ProjectResource) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r.ID = newID(r.ID)
	l.projRes = append(l.projRes, r)
}

func (l *Ledger) AddCustomer(c entity.Customer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c.ID = newID(c.ID)
	l.customer = append(l.customer, c)
}

// AddProject registra un proyecto y devuelve su ID.
func (l *Ledger) AddProject(p entity.Project) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	p.ID = newID(p.ID)
	l.projects = append(l.projects, p)
	return p.ID
}

func (l *Ledger) AddProduct(p entity.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p.ID = newID(p.ID)
	l.products = append(l.products, p)
}

func (l *Ledger) AddPayable(p entity.AccountPayable) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p.ID = newID(p.ID)
	l.payables = append(l.payables, p)
}

// FailRead hace que la lectura indicada (nombre del método) devuelva err.
func (l *Ledger) FailRead(method string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[method] = err
}

// Reads cantidad de lecturas del libro atendidas (no cuenta Exists ni HasActiveModule).
func (l *Ledger) Reads() int64 {
	return l.reads.Load()
}

// begin registra la lectura y aplica cancelación y fallas inyectadas.
// Debe llamarse con el lock de lectura tomado.
func (l *Ledger) begin(ctx context.Context, method string) error {
	l.reads.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.failures[method]
}

// ── OrganizationRepository ────────────────────────────────────────────────────

// Exists informa si la organización existe y está activa.
func (l *Ledger) Exists(ctx context.Context, orgID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	org, ok := l.orgs[orgID]
	return ok && org.Status != "inactive", nil
}

// HasActiveModule informa si la organización tiene el módulo activo.
func (l *Ledger) HasActiveModule(ctx context.Context, orgID, moduleName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modules[orgID][moduleName], nil
}

// ── Hechos del período ────────────────────────────────────────────────────────

func (l *Ledger) SumSalesByPaymentMethod(ctx context.Context, orgID string, r repository.DateRange) ([]repository.SalesByMethod, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumSalesByPaymentMethod"); err != nil {
		return nil, err
	}
	groups := make(map[string]*repository.SalesByMethod)
	for _, d := range l.sales {
		if !l.countedSale(d, orgID, r) {
			continue
		}
		g, ok := groups[d.PaymentMethod]
		if !ok {
			g = &repository.SalesByMethod{PaymentMethod: d.PaymentMethod}
			groups[d.PaymentMethod] = g
		}
		g.Count++
		g.Total = g.Total.Add(d.Total)
		g.Net = g.Net.Add(d.Total.Sub(d.TaxAmount))
		g.TaxAmount = g.TaxAmount.Add(d.TaxAmount)
		g.Discount = g.Discount.Add(d.Discount)
		g.CardCommissions = g.CardCommissions.Add(d.CardCommissionAmount)
	}
	out := make([]repository.SalesByMethod, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentMethod < out[j].PaymentMethod })
	return out, nil
}

func (l *Ledger) SumCostOfSales(ctx context.Context, orgID string, r repository.DateRange) (repository.CostOfSales, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumCostOfSales"); err != nil {
		return repository.CostOfSales{}, err
	}
	out := repository.CostOfSales{Cost: decimal.Zero}
	for _, d := range l.sales {
		if !l.countedSale(d, orgID, r) {
			continue
		}
		for _, li := range l.lines[d.ID] {
			if li.UnitCost == nil {
				out.UncostedLines++
				continue
			}
			out.CostedLines++
			out.Cost = out.Cost.Add(li.Quantity.Mul(*li.UnitCost))
		}
	}
	return out, nil
}

func (l *Ledger) SumCustomerPayments(ctx context.Context, orgID string, r repository.DateRange) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumCustomerPayments"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, p := range l.payments {
		if p.OrganizationID == orgID && r.Contains(p.PaidAt) {
			out.Total = out.Total.Add(p.Amount)
			out.Count++
		}
	}
	return out, nil
}

func (l *Ledger) SumProjectPayments(ctx context.Context, orgID string, r repository.DateRange) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumProjectPayments"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, p := range l.projPay {
		if p.OrganizationID == orgID && r.Contains(p.PaidAt) {
			out.Total = out.Total.Add(p.Amount)
			out.Count++
		}
	}
	return out, nil
}

func (l *Ledger) SumTreasuryMovements(ctx context.Context, orgID string, r repository.DateRange, movementType string, f repository.TreasuryFilter) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumTreasuryMovements"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, m := range l.treasury {
		if m.OrganizationID != orgID || m.Type != movementType || !r.Contains(m.OccurredAt) {
			continue
		}
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if f.Source != "" && m.Source != f.Source {
			continue
		}
		out.Total = out.Total.Add(m.Amount)
		out.Count++
	}
	return out, nil
}

func (l *Ledger) SumOperationalExpenses(ctx context.Context, orgID string, r repository.DateRange) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumOperationalExpenses"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, e := range l.opEx {
		if e.OrganizationID == orgID && r.Contains(e.Date) {
			out.Total = out.Total.Add(e.Amount)
			out.Count++
		}
	}
	return out, nil
}

func (l *Ledger) SumProjectExpenses(ctx context.Context, orgID string, r repository.DateRange) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumProjectExpenses"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, e := range l.projEx {
		if e.OrganizationID == orgID && r.Contains(e.Date) {
			out.Total = out.Total.Add(e.Amount)
			out.Count++
		}
	}
	return out, nil
}

func (l *Ledger) SumProjectResources(ctx context.Context, orgID string, r repository.DateRange) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumProjectResources"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, res := range l.projRes {
		if res.OrganizationID == orgID && r.Contains(res.Date) {
			out.Total = out.Total.Add(res.TotalCost)
			out.Count++
		}
	}
	return out, nil
}

func (l *Ledger) ListCashSaleTotals(ctx context.Context, orgID string, r repository.DateRange) ([]decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "ListCashSaleTotals"); err != nil {
		return nil, err
	}
	cash := make([]entity.SalesDocument, 0)
	for _, d := range l.sales {
		if l.countedSale(d, orgID, r) && d.PaymentMethod == entity.PaymentMethodCash {
			cash = append(cash, d)
		}
	}
	sort.SliceStable(cash, func(i, j int) bool { return cash[i].IssuedAt.Before(cash[j].IssuedAt) })
	out := make([]decimal.Decimal, len(cash))
	for i, d := range cash {
		out[i] = d.Total
	}
	return out, nil
}

func (l *Ledger) countedSale(d entity.SalesDocument, orgID string, r repository.DateRange) bool {
	return d.OrganizationID == orgID && d.Status == entity.DocumentStatusPaid && r.Contains(d.IssuedAt)
}

// ── Fotos ─────────────────────────────────────────────────────────────────────

func (l *Ledger) SumCustomerReceivables(ctx context.Context, orgID string) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumCustomerReceivables"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, c := range l.customer {
		if c.OrganizationID == orgID && c.CurrentDebt.IsPositive() {
			out.Total = out.Total.Add(c.CurrentDebt)
			out.Count++
		}
	}
	return out, nil
}

func (l *Ledger) ListActiveProjectBalances(ctx context.Context, orgID string) ([]repository.ProjectBalance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "ListActiveProjectBalances"); err != nil {
		return nil, err
	}
	paid := make(map[string]decimal.Decimal)
	for _, p := range l.projPay {
		if p.OrganizationID == orgID {
			paid[p.ProjectID] = paid[p.ProjectID].Add(p.Amount)
		}
	}
	out := make([]repository.ProjectBalance, 0)
	for _, p := range l.projects {
		if p.OrganizationID != orgID || p.Status == entity.ProjectStatusCancelled {
			continue
		}
		out = append(out, repository.ProjectBalance{
			ProjectID:        p.ID,
			ContractedAmount: p.ContractedAmount,
			QuoteTotal:       p.QuoteTotal,
			PaymentsTotal:    paid[p.ID],
		})
	}
	return out, nil
}

func (l *Ledger) SumInventoryAtCost(ctx context.Context, orgID string) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumInventoryAtCost"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for _, p := range l.products {
		if p.OrganizationID != orgID || !p.Active || !p.TrackStock || p.Cost == nil {
			continue
		}
		out.Total = out.Total.Add(p.CurrentStock.Mul(*p.Cost))
		out.Count++
	}
	return out, nil
}

func (l *Ledger) SumActivePayables(ctx context.Context, orgID string) (repository.AmountTotal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.begin(ctx, "SumActivePayables"); err != nil {
		return repository.AmountTotal{}, err
	}
	out := repository.AmountTotal{Total: decimal.Zero}
	for i := range l.payables {
		p := &l.payables[i]
		if p.OrganizationID == orgID && p.IsActive() {
			out.Total = out.Total.Add(p.Balance)
			out.Count++
		}
	}
	return out, nil
}

// GetByID devuelve la organización o nil si no existe.
func (l *Ledger) GetByID(ctx context.Context, orgID string) (*entity.Organization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	org, ok := l.orgs[orgID]
	if !ok {
		return nil, nil
	}
	return &org, nil
}
