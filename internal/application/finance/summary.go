package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	fin "github.com/jhoicas/pyme-finanzas/internal/domain/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

// Advertencias del resumen mensual, en el orden en que se emiten.
const (
	WarningCreditSales                       = "Hay ventas a crédito en el mes: cuentan como venta al emitirse y como ingreso de caja solo cuando se cobran."
	WarningProjectCollections                = "Hay cobros de proyectos en el mes: el ingreso de caja se reconoce al cobrar, no al contratar."
	WarningProjectOutflowsWithoutCollections = "Hay egresos de proyectos sin cobros de proyectos en el mismo mes: puede ser un desfase de tiempo, no necesariamente un error."
	WarningTreasuryMovements                 = "Hay movimientos de tesorería en el mes: afectan el flujo de caja pero no el resultado operacional."
)

// SummaryRequest parámetros del resumen mensual. Month vacío = mes en curso.
type SummaryRequest struct {
	OrganizationID string
	Month          string
	Filter         repository.TreasuryFilter
}

// MonthlySummary calcula el resumen financiero de un mes.
//
// La entrada se valida antes de cualquier lectura del libro. Si una lectura falla
// no se devuelve un resumen parcial.
func (s *Service) MonthlySummary(ctx context.Context, req SummaryRequest) (*dto.MonthlySummaryDTO, error) {
	period, err := s.cal.Resolve(req.Month, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := validateFilter(req.Filter); err != nil {
		return nil, err
	}
	if err := s.checkOrganization(ctx, req.OrganizationID); err != nil {
		return nil, err
	}
	return s.monthlySummary(ctx, req.OrganizationID, period, req.Filter)
}

// monthlyFacts resultado de las lecturas independientes de un mes.
// Cada goroutine escribe solo su propio campo.
type monthlyFacts struct {
	sales              []repository.SalesByMethod
	cost               repository.CostOfSales
	collections        repository.AmountTotal
	projectCollections repository.AmountTotal
	treasuryIn         repository.AmountTotal
	treasuryOut        repository.AmountTotal
	operational        repository.AmountTotal
	projectExpenses    repository.AmountTotal
	projectResources   repository.AmountTotal
}

func (s *Service) fetchMonthlyFacts(ctx context.Context, orgID string, r repository.DateRange, f repository.TreasuryFilter) (*monthlyFacts, error) {
	var facts monthlyFacts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		if facts.sales, err = s.ledger.SumSalesByPaymentMethod(gctx, orgID, r); err != nil {
			return readErr("ventas por medio de pago", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.cost, err = s.ledger.SumCostOfSales(gctx, orgID, r); err != nil {
			return readErr("costo de ventas", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.collections, err = s.ledger.SumCustomerPayments(gctx, orgID, r); err != nil {
			return readErr("abonos de clientes", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.projectCollections, err = s.ledger.SumProjectPayments(gctx, orgID, r); err != nil {
			return readErr("cobros de proyectos", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.treasuryIn, err = s.ledger.SumTreasuryMovements(gctx, orgID, r, entity.TreasuryInflow, f); err != nil {
			return readErr("ingresos de tesorería", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.treasuryOut, err = s.ledger.SumTreasuryMovements(gctx, orgID, r, entity.TreasuryOutflow, f); err != nil {
			return readErr("egresos de tesorería", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.operational, err = s.ledger.SumOperationalExpenses(gctx, orgID, r); err != nil {
			return readErr("gastos operacionales", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.projectExpenses, err = s.ledger.SumProjectExpenses(gctx, orgID, r); err != nil {
			return readErr("gastos de proyectos", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if facts.projectResources, err = s.ledger.SumProjectResources(gctx, orgID, r); err != nil {
			return readErr("recursos de proyectos", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		// Si el llamador canceló, su error manda sobre el de la lectura que lo notó.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return &facts, nil
}

// monthlySummary calcula el resumen de un período ya validado.
func (s *Service) monthlySummary(ctx context.Context, orgID string, p fin.Period, f repository.TreasuryFilter) (*dto.MonthlySummaryDTO, error) {
	started := time.Now()
	facts, err := s.fetchMonthlyFacts(ctx, orgID, repository.DateRange{From: p.Start, To: p.End}, f)
	if err != nil {
		return nil, err
	}
	out := buildSummary(orgID, p, f, facts)
	s.log.Debug().
		Str("organization_id", orgID).
		Str("month", out.Month).
		Dur("elapsed", time.Since(started)).
		Msg("resumen mensual calculado")
	return out, nil
}

// buildSummary deriva los totales. Cada agregado del libro se redondea una sola vez;
// los campos compuestos se calculan con los componentes ya redondeados para que
// las identidades se cumplan exactas.
func buildSummary(orgID string, p fin.Period, f repository.TreasuryFilter, facts *monthlyFacts) *dto.MonthlySummaryDTO {
	count := 0
	total, net, tax := decimal.Zero, decimal.Zero, decimal.Zero
	discount, commissions, credit := decimal.Zero, decimal.Zero, decimal.Zero
	for _, m := range facts.sales {
		count += m.Count
		total = total.Add(m.Total)
		net = net.Add(m.Net)
		tax = tax.Add(m.TaxAmount)
		discount = discount.Add(m.Discount)
		commissions = commissions.Add(m.CardCommissions)
		if m.PaymentMethod == entity.PaymentMethodCredit {
			credit = credit.Add(m.Total)
		}
	}

	salesTotal := fin.RoundUnits(total)
	salesNet := fin.RoundUnits(net)
	creditSales := fin.RoundUnits(credit)
	immediateCash := salesTotal.Sub(creditSales)
	costOfSales := fin.RoundUnits(facts.cost.Cost)
	cardCommissions := fin.RoundUnits(commissions)
	grossProfit := salesNet.Sub(costOfSales).Sub(cardCommissions)

	collections := fin.RoundUnits(facts.collections.Total)
	projectCollections := fin.RoundUnits(facts.projectCollections.Total)
	treasuryIn := fin.RoundUnits(facts.treasuryIn.Total)
	treasuryOut := fin.RoundUnits(facts.treasuryOut.Total)
	operational := fin.RoundUnits(facts.operational.Total)
	projectExpenses := fin.RoundUnits(facts.projectExpenses.Total)
	projectResources := fin.RoundUnits(facts.projectResources.Total)
	projectOutflows := projectExpenses.Add(projectResources)

	cashIn := fin.Sum(immediateCash, collections, projectCollections, treasuryIn)
	cashOut := fin.Sum(operational, projectOutflows, treasuryOut)
	netCashFlow := cashIn.Sub(cashOut)
	operatingResult := grossProfit.Add(projectCollections).Sub(operational).Sub(projectOutflows)

	warnings := make([]string, 0, 4)
	if credit.IsPositive() {
		warnings = append(warnings, WarningCreditSales)
	}
	if facts.projectCollections.Total.IsPositive() {
		warnings = append(warnings, WarningProjectCollections)
	}
	if projectOutflows.IsPositive() && facts.projectCollections.Total.IsZero() {
		warnings = append(warnings, WarningProjectOutflowsWithoutCollections)
	}
	if facts.treasuryIn.Count+facts.treasuryOut.Count > 0 ||
		!facts.treasuryIn.Total.IsZero() || !facts.treasuryOut.Total.IsZero() {
		warnings = append(warnings, WarningTreasuryMovements)
	}

	return &dto.MonthlySummaryDTO{
		OrganizationID: orgID,
		Month:          p.Key(),
		Label:          p.Label(),
		PeriodStart:    p.Start.Format(time.RFC3339Nano),
		PeriodEnd:      p.End.Format(time.RFC3339Nano),
		TreasuryFilter: dto.TreasuryFilterDTO{Category: f.Category, Source: f.Source},

		SalesCount:              count,
		SalesTotal:              fin.Units(salesTotal),
		SalesNet:                fin.Units(salesNet),
		SalesTax:                fin.Units(tax),
		SalesDiscount:           fin.Units(discount),
		CreditSalesTotal:        fin.Units(creditSales),
		ImmediateCashSalesTotal: fin.Units(immediateCash),
		CardCommissionsTotal:    fin.Units(cardCommissions),
		CostOfSalesTotal:        fin.Units(costOfSales),
		GrossProfit:             fin.Units(grossProfit),

		CollectionsTotal:        fin.Units(collections),
		ProjectCollectionsTotal: fin.Units(projectCollections),

		TreasuryInflowsTotal:  fin.Units(treasuryIn),
		TreasuryOutflowsTotal: fin.Units(treasuryOut),

		OperationalExpensesTotal: fin.Units(operational),
		ProjectExpensesTotal:     fin.Units(projectExpenses),
		ProjectResourcesTotal:    fin.Units(projectResources),
		ProjectOutflowsTotal:     fin.Units(projectOutflows),

		CashInflowsTotal:       fin.Units(cashIn),
		CashOutflowsTotal:      fin.Units(cashOut),
		NetCashFlow:            fin.Units(netCashFlow),
		OperatingResult:        fin.Units(operatingResult),
		GrossMarginPercent:     fin.Percent(grossProfit, salesNet),
		OperatingMarginPercent: fin.Percent(operatingResult, salesNet),

		CostCoverage: costCoverage(facts.cost),
		Warnings:     warnings,
	}
}

// costCoverage porcentaje de líneas vendidas con costo conocido. Sin líneas = 100.
func costCoverage(c repository.CostOfSales) dto.CostCoverageDTO {
	lines := c.CostedLines + c.UncostedLines
	pct := 100.0
	if lines > 0 {
		pct = fin.Percent(decimal.NewFromInt(int64(c.CostedLines)), decimal.NewFromInt(int64(lines)))
	}
	return dto.CostCoverageDTO{
		CostedLines:   c.CostedLines,
		UncostedLines: c.UncostedLines,
		Percent:       pct,
	}
}
