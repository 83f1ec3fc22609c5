package finance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
)

// SeriesRequest parámetros de la serie temporal. Months 0 = ventana por defecto.
type SeriesRequest struct {
	OrganizationID string
	Months         int
	Filter         repository.TreasuryFilter
}

// TimeSeries devuelve un punto por mes para los últimos N meses, del más antiguo
// al mes en curso. Cada punto es el mismo que entrega MonthlySummary para ese mes.
func (s *Service) TimeSeries(ctx context.Context, req SeriesRequest) (*dto.TimeSeriesDTO, error) {
	n := req.Months
	if n == 0 {
		n = s.opts.DefaultTrendMonths
	}
	if n < 1 || n > s.opts.MaxTrendMonths {
		return nil, fmt.Errorf("%w: %d (1 a %d)", domain.ErrInvalidWindow, req.Months, s.opts.MaxTrendMonths)
	}
	if err := validateFilter(req.Filter); err != nil {
		return nil, err
	}
	if err := s.checkOrganization(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	periods := s.cal.Trailing(s.clock.Now(), n)
	points := make([]dto.TimeSeriesPointDTO, len(periods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.SeriesConcurrency)
	for i, p := range periods {
		i, p := i, p
		g.Go(func() error {
			sum, err := s.monthlySummary(gctx, req.OrganizationID, p, req.Filter)
			if err != nil {
				return err
			}
			points[i] = pointFromSummary(sum)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	return &dto.TimeSeriesDTO{
		OrganizationID: req.OrganizationID,
		Months:         n,
		Points:         points,
	}, nil
}

func pointFromSummary(sum *dto.MonthlySummaryDTO) dto.TimeSeriesPointDTO {
	return dto.TimeSeriesPointDTO{
		Month:             sum.Month,
		Label:             sum.Label,
		NetCashFlow:       sum.NetCashFlow,
		OperatingResult:   sum.OperatingResult,
		CashInflowsTotal:  sum.CashInflowsTotal,
		CashOutflowsTotal: sum.CashOutflowsTotal,
	}
}
