package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	appfin "github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
)

type fakeGenerator struct {
	org *entity.Organization
	got *dto.BalanceSnapshotDTO
	err error
}

func (g *fakeGenerator) GenerateMonthlyReportPDF(_ context.Context, org *entity.Organization, b *dto.BalanceSnapshotDTO) ([]byte, error) {
	g.org = org
	g.got = b
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestMonthlyReportPDF_UsaElBalanceDelMes(t *testing.T) {
	l := newLedger()
	l.AddSale(paidSale(entity.PaymentMethodCash, "1000", "0", at(t, 2026, time.February, 3, 10)))
	gen := &fakeGenerator{}
	uc := appfin.NewReportUseCase(newService(t, l), l, gen)

	pdf, filename, err := uc.MonthlyReportPDF(context.Background(), testOrgID, "2026-02")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "finanzas_2026-02.pdf", filename)
	require.NotNil(t, gen.got)
	assert.Equal(t, int64(1000), gen.got.Summary.SalesTotal)
	assert.Equal(t, "Comercial Test", gen.org.Name)
}

func TestMonthlyReportPDF_Errores(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("fuente no encontrada")}
	l := newLedger()
	uc := appfin.NewReportUseCase(newService(t, l), l, gen)

	_, _, err := uc.MonthlyReportPDF(context.Background(), testOrgID, "2026-02")
	assert.ErrorContains(t, err, "fuente no encontrada")

	_, _, err = uc.MonthlyReportPDF(context.Background(), testOrgID, "febrero")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
