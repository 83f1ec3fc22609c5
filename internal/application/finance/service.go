// Package finance contiene los casos de uso del motor de conciliación financiera
// en base caja: resumen mensual, balance aproximado, serie temporal, efectivo
// esperado de un turno y reporte PDF del mes.
//
// Todo se recalcula en cada llamada a partir del libro de hechos; no hay estado
// compartido ni escrituras.
package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	fin "github.com/jhoicas/pyme-finanzas/internal/domain/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain/repository"
	"github.com/jhoicas/pyme-finanzas/pkg/clock"
)

// Options límites de la serie temporal.
type Options struct {
	DefaultTrendMonths int
	MaxTrendMonths     int
	SeriesConcurrency  int
}

func (o Options) withDefaults() Options {
	if o.MaxTrendMonths <= 0 {
		o.MaxTrendMonths = 24
	}
	if o.DefaultTrendMonths <= 0 {
		o.DefaultTrendMonths = 6
	}
	if o.DefaultTrendMonths > o.MaxTrendMonths {
		o.DefaultTrendMonths = o.MaxTrendMonths
	}
	if o.SeriesConcurrency <= 0 {
		o.SeriesConcurrency = 4
	}
	return o
}

// Service construye los estados financieros de una organización.
type Service struct {
	ledger repository.LedgerReader
	orgs   repository.OrganizationRepository
	cal    *fin.Calendar
	clock  clock.Clock
	cash   fin.CashRounding
	opts   Options
	log    zerolog.Logger
}

// NewService construye el servicio.
func NewService(
	ledger repository.LedgerReader,
	orgs repository.OrganizationRepository,
	cal *fin.Calendar,
	clk clock.Clock,
	cash fin.CashRounding,
	opts Options,
	log zerolog.Logger,
) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{
		ledger: ledger,
		orgs:   orgs,
		cal:    cal,
		clock:  clk,
		cash:   cash,
		opts:   opts.withDefaults(),
		log:    log,
	}
}

// Calendar calendario de negocio usado por el servicio.
func (s *Service) Calendar() *fin.Calendar { return s.cal }

// DefaultTrendMonths ventana por defecto de la serie temporal.
func (s *Service) DefaultTrendMonths() int { return s.opts.DefaultTrendMonths }

// checkOrganization valida el identificador y que la organización exista.
func (s *Service) checkOrganization(ctx context.Context, orgID string) error {
	if _, err := uuid.Parse(orgID); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrOrganizationNotFound, orgID)
	}
	ok, err := s.orgs.Exists(ctx, orgID)
	if err != nil {
		return readErr("organización", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrOrganizationNotFound, orgID)
	}
	return nil
}

func validateFilter(f repository.TreasuryFilter) error {
	if f.Category != "" && !entity.ValidTreasuryCategory(f.Category) {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidFilter, f.Category)
	}
	if f.Source != "" && !entity.ValidTreasurySource(f.Source) {
		return fmt.Errorf("%w: origen %q", domain.ErrInvalidFilter, f.Source)
	}
	return nil
}

// readErr envuelve un fallo de lectura del libro. La cancelación se devuelve tal cual.
func readErr(what string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrLedgerUnavailable, what, err)
}
