package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	fin "github.com/jhoicas/pyme-finanzas/internal/domain/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

// ExpectedCashRequest turno de caja a reconstruir. From y To son inclusivos.
type ExpectedCashRequest struct {
	OrganizationID string
	From           time.Time
	To             time.Time
	Opening        decimal.Decimal
}

// ExpectedCash reconstruye el efectivo que debería haber en caja al cierre de un turno:
// fondo inicial más la suma de las ventas en efectivo redondeadas una por una.
//
// También calcula el redondeo de la suma agregada, solo para informar si difiere.
func (s *Service) ExpectedCash(ctx context.Context, req ExpectedCashRequest) (*dto.ExpectedCashDTO, error) {
	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: rango de turno inválido", domain.ErrInvalidInput)
	}
	if req.Opening.IsNegative() {
		return nil, fmt.Errorf("%w: el fondo inicial no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := s.checkOrganization(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	totals, err := s.ledger.ListCashSaleTotals(ctx, req.OrganizationID, repository.DateRange{From: req.From, To: req.To})
	if err != nil {
		return nil, readErr("ventas en efectivo", err)
	}

	raw := fin.Sum(totals...)
	perSale := s.cash.SumOfRoundedCashAmounts(totals)
	aggregate := s.cash.RoundSingleCashAmount(raw)

	warnings := []string{}
	if !aggregate.Equal(perSale) {
		warnings = append(warnings, fmt.Sprintf(
			"El redondeo del total agregado (%s) difiere de la suma de redondeos por venta (%s); se usa la suma por venta.",
			aggregate.StringFixed(0), perSale.StringFixed(0),
		))
	}

	loc := s.cal.Location()
	return &dto.ExpectedCashDTO{
		OrganizationID:       req.OrganizationID,
		From:                 req.From.In(loc).Format(time.RFC3339),
		To:                   req.To.In(loc).Format(time.RFC3339),
		CashSalesCount:       len(totals),
		OpeningAmount:        fin.Units(req.Opening),
		CashSalesTotal:       fin.Units(raw),
		RoundedCashSales:     fin.Units(perSale),
		RoundingAdjustment:   fin.Units(perSale.Sub(raw)),
		ExpectedCash:         fin.Units(req.Opening.Add(perSale)),
		AggregateRoundedCash: fin.Units(req.Opening.Add(aggregate)),
		Warnings:             warnings,
	}, nil
}
