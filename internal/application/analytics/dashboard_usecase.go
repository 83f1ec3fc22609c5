// Package analytics contiene el caso de uso del Dashboard financiero.
package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/application/finance"
)

// DashboardUseCase arma el resumen del mes en curso y la tendencia reciente.
//
// No tiene fórmulas propias: consume el mismo resumen mensual que el balance y el reporte.
type DashboardUseCase struct {
	finance *finance.Service
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(svc *finance.Service) *DashboardUseCase {
	return &DashboardUseCase{finance: svc}
}

// GetSummary construye el DashboardSummaryDTO para la organización indicada.
//
// Dos llamadas en paralelo:
//  1. BalanceSnapshot(mes en curso) → ventas, márgenes, flujo, CxC, CxP, patrimonio
//  2. TimeSeries(ventana por defecto) → Trend
func (uc *DashboardUseCase) GetSummary(ctx context.Context, organizationID string) (*dto.DashboardSummaryDTO, error) {
	var (
		balance *dto.BalanceSnapshotDTO
		series  *dto.TimeSeriesDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, err = uc.finance.BalanceSnapshot(gctx, finance.SummaryRequest{OrganizationID: organizationID})
		return err
	})
	g.Go(func() error {
		var err error
		series, err = uc.finance.TimeSeries(gctx, finance.SeriesRequest{OrganizationID: organizationID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := balance.Summary
	return &dto.DashboardSummaryDTO{
		DateLabel:          balance.Label,
		MonthlySales:       sum.SalesTotal,
		GrossProfit:        sum.GrossProfit,
		GrossMarginPercent: sum.GrossMarginPercent,
		NetCashFlow:        sum.NetCashFlow,
		OperatingResult:    sum.OperatingResult,
		AccountsReceivable: balance.Assets.AccountsReceivable,
		AccountsPayable:    balance.Liabilities.AccountsPayable,
		Equity:             balance.Equity,
		Trend:              series.Points,
		Warnings:           balance.Warnings,
	}, nil
}
