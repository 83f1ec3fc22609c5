package finance

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	fin "github.com/jhoicas/pyme-finanzas/internal/domain/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

// Advertencias del balance.
const (
	WarningCashApproximation     = "La posición de caja se aproxima con el flujo neto del mes; no es un saldo de caja acumulado."
	WarningProjectsWithoutAmount = "Hay proyectos activos sin monto contratado ni cotización; no suman a cuentas por cobrar."
)

// BalanceSnapshot construye el balance aproximado: un resumen mensual más las fotos
// de cuentas por cobrar, inventario a costo y cuentas por pagar, leídas en paralelo.
func (s *Service) BalanceSnapshot(ctx context.Context, req SummaryRequest) (*dto.BalanceSnapshotDTO, error) {
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

	orgID := req.OrganizationID
	var (
		summary     *dto.MonthlySummaryDTO
		receivables repository.AmountTotal
		projects    []repository.ProjectBalance
		inventory   repository.AmountTotal
		payables    repository.AmountTotal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = s.monthlySummary(gctx, orgID, period, req.Filter)
		return err
	})
	g.Go(func() (err error) {
		if receivables, err = s.ledger.SumCustomerReceivables(gctx, orgID); err != nil {
			return readErr("deuda de clientes", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if projects, err = s.ledger.ListActiveProjectBalances(gctx, orgID); err != nil {
			return readErr("saldos de proyectos", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if inventory, err = s.ledger.SumInventoryAtCost(gctx, orgID); err != nil {
			return readErr("inventario a costo", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if payables, err = s.ledger.SumActivePayables(gctx, orgID); err != nil {
			return readErr("cuentas por pagar", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	projectAR, pending, withoutAmount := projectReceivables(projects)

	cash := decimal.NewFromInt(summary.NetCashFlow)
	customerAR := fin.RoundUnits(receivables.Total)
	projectARUnits := fin.RoundUnits(projectAR)
	accountsReceivable := customerAR.Add(projectARUnits)
	inventoryAtCost := fin.RoundUnits(inventory.Total)
	accountsPayable := fin.RoundUnits(payables.Total)

	assets := fin.Sum(cash, accountsReceivable, inventoryAtCost)
	equity := assets.Sub(accountsPayable)

	warnings := []string{WarningCashApproximation}
	if withoutAmount > 0 {
		warnings = append(warnings, WarningProjectsWithoutAmount)
	}

	return &dto.BalanceSnapshotDTO{
		OrganizationID: orgID,
		Month:          summary.Month,
		Label:          summary.Label,
		Summary:        *summary,
		Assets: dto.BalanceAssetsDTO{
			CashPosition:               summary.NetCashFlow,
			CustomerAccountsReceivable: fin.Units(customerAR),
			ProjectAccountsReceivable:  fin.Units(projectARUnits),
			AccountsReceivable:         fin.Units(accountsReceivable),
			InventoryAtCost:            fin.Units(inventoryAtCost),
			Total:                      fin.Units(assets),
		},
		Liabilities: dto.BalanceLiabilitiesDTO{
			AccountsPayable: fin.Units(accountsPayable),
			Total:           fin.Units(accountsPayable),
		},
		Equity: fin.Units(equity),
		Context: dto.BalanceContextDTO{
			CustomersWithDebt:         receivables.Count,
			ProjectsPendingCollection: pending,
			PendingPayables:           payables.Count,
			CostValuedProducts:        inventory.Count,
		},
		Warnings: warnings,
	}, nil
}

// projectReceivables suma lo pendiente de cobro de cada proyecto.
// Solo cuentan los proyectos con saldo positivo; los pagados o sin monto no suman
// ni se cuentan como pendientes.
func projectReceivables(projects []repository.ProjectBalance) (total decimal.Decimal, pending, withoutAmount int) {
	total = decimal.Zero
	for _, p := range projects {
		var contract decimal.Decimal
		switch {
		case p.ContractedAmount != nil:
			contract = *p.ContractedAmount
		case p.QuoteTotal != nil:
			contract = *p.QuoteTotal
		default:
			withoutAmount++
			continue
		}
		due := contract.Sub(p.PaymentsTotal)
		if !due.IsPositive() {
			continue
		}
		total = total.Add(due)
		pending++
	}
	return total, pending, withoutAmount
}
