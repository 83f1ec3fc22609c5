package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfin "github.com/jhoicas/pyme-finanzas/internal/application/finance"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
)

func marchBalance(t *testing.T, svc *appfin.Service) (int64, int) {
	t.Helper()
	b, err := svc.BalanceSnapshot(context.Background(), appfin.SummaryRequest{OrganizationID: testOrgID, Month: "2026-03"})
	require.NoError(t, err)
	return b.Assets.ProjectAccountsReceivable, b.Context.ProjectsPendingCollection
}

func TestBalanceSnapshot_ProyectoConAbonoParcial(t *testing.T) {
	l := newLedger()
	pid := l.AddProject(entity.Project{OrganizationID: testOrgID, Status: entity.ProjectStatusActive, ContractedAmount: decPtr(5000000)})
	l.AddProjectPayment(entity.ProjectPayment{OrganizationID: testOrgID, ProjectID: pid, Amount: dec("1500000"), PaidAt: at(t, 2026, time.January, 10, 10)})
	l.AddProjectPayment(entity.ProjectPayment{OrganizationID: testOrgID, ProjectID: pid, Amount: dec("500000"), PaidAt: at(t, 2026, time.March, 10, 10)})
	svc := newService(t, l)

	ar, pending := marchBalance(t, svc)
	assert.Equal(t, int64(3000000), ar)
	assert.Equal(t, 1, pending)

	// Se completa el pago: deja de sumar y no se cuenta como pendiente.
	l.AddProjectPayment(entity.ProjectPayment{OrganizationID: testOrgID, ProjectID: pid, Amount: dec("3000000"), PaidAt: at(t, 2026, time.March, 12, 10)})
	ar, pending = marchBalance(t, svc)
	assert.Equal(t, int64(0), ar)
	assert.Equal(t, 0, pending)
}

func TestBalanceSnapshot_ProyectosSobrepagadosCanceladosYSinMonto(t *testing.T) {
	l := newLedger()
	over := l.AddProject(entity.Project{OrganizationID: testOrgID, Status: entity.ProjectStatusActive, ContractedAmount: decPtr(1000)})
	l.AddProjectPayment(entity.ProjectPayment{OrganizationID: testOrgID, ProjectID: over, Amount: dec("1500"), PaidAt: at(t, 2026, time.February, 1, 10)})
	l.AddProject(entity.Project{OrganizationID: testOrgID, Status: entity.ProjectStatusCancelled, ContractedAmount: decPtr(9000)})
	l.AddProject(entity.Project{OrganizationID: testOrgID, Status: entity.ProjectStatusActive, QuoteTotal: decPtr(4000)})
	l.AddProject(entity.Project{OrganizationID: testOrgID, Status: entity.ProjectStatusActive})

	b, err := newService(t, l).BalanceSnapshot(context.Background(), appfin.SummaryRequest{OrganizationID: testOrgID, Month: "2026-03"})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), b.Assets.ProjectAccountsReceivable, "sobrepago no resta; cancelado no suma; se usa la cotización")
	assert.Equal(t, 1, b.Context.ProjectsPendingCollection)
	assert.Contains(t, b.Warnings, appfin.WarningProjectsWithoutAmount)
}

func TestBalanceSnapshot_ActivosPasivosYPatrimonio(t *testing.T) {
	l := newLedger()
	l.AddSale(paidSale(entity.PaymentMethodCash, "100000", "15966", at(t, 2026, time.March, 2, 10)))
	l.AddOperationalExpense(entity.OperationalExpense{OrganizationID: testOrgID, Amount: dec("40000"), Date: at(t, 2026, time.March, 3, 10)})
	l.AddCustomer(entity.Customer{OrganizationID: testOrgID, CurrentDebt: dec("25000")})
	l.AddCustomer(entity.Customer{OrganizationID: testOrgID, CurrentDebt: dec("0")})
	l.AddCustomer(entity.Customer{OrganizationID: testOrgID, CurrentDebt: dec("-500")})
	l.AddProject(entity.Project{OrganizationID: testOrgID, Status: entity.ProjectStatusActive, ContractedAmount: decPtr(10000)})
	l.AddProduct(entity.Product{OrganizationID: testOrgID, Cost: decPtr(1500), CurrentStock: dec("10"), TrackStock: true, Active: true})
	l.AddProduct(entity.Product{OrganizationID: testOrgID, Cost: decPtr(999), CurrentStock: dec("10"), TrackStock: true, Active: false})
	l.AddProduct(entity.Product{OrganizationID: testOrgID, Cost: decPtr(999), CurrentStock: dec("10"), TrackStock: false, Active: true})
	l.AddProduct(entity.Product{OrganizationID: testOrgID, CurrentStock: dec("10"), TrackStock: true, Active: true})
	l.AddPayable(entity.AccountPayable{OrganizationID: testOrgID, Balance: dec("7000"), Status: entity.PayableStatusPending})
	l.AddPayable(entity.AccountPayable{OrganizationID: testOrgID, Balance: dec("3000"), Status: entity.PayableStatusOverdue})
	l.AddPayable(entity.AccountPayable{OrganizationID: testOrgID, Balance: dec("2000"), Status: entity.PayableStatusPartial})
	l.AddPayable(entity.AccountPayable{OrganizationID: testOrgID, Balance: dec("8000"), Status: entity.PayableStatusPaid})
	l.AddPayable(entity.AccountPayable{OrganizationID: testOrgID, Balance: dec("8000"), Status: entity.PayableStatusCancelled})

	b, err := newService(t, l).BalanceSnapshot(context.Background(), appfin.SummaryRequest{OrganizationID: testOrgID, Month: "2026-03"})
	require.NoError(t, err)

	assert.Equal(t, int64(60000), b.Summary.NetCashFlow)
	assert.Equal(t, b.Summary.NetCashFlow, b.Assets.CashPosition)
	assert.Equal(t, int64(25000), b.Assets.CustomerAccountsReceivable)
	assert.Equal(t, int64(10000), b.Assets.ProjectAccountsReceivable)
	assert.Equal(t, int64(35000), b.Assets.AccountsReceivable)
	assert.Equal(t, int64(15000), b.Assets.InventoryAtCost)
	assert.Equal(t, b.Summary.NetCashFlow+b.Assets.AccountsReceivable+b.Assets.InventoryAtCost, b.Assets.Total)
	assert.Equal(t, int64(12000), b.Liabilities.AccountsPayable)
	assert.Equal(t, b.Liabilities.AccountsPayable, b.Liabilities.Total)
	assert.Equal(t, b.Assets.Total-b.Liabilities.Total, b.Equity)

	assert.Equal(t, 1, b.Context.CustomersWithDebt)
	assert.Equal(t, 1, b.Context.ProjectsPendingCollection)
	assert.Equal(t, 3, b.Context.PendingPayables)
	assert.Equal(t, 1, b.Context.CostValuedProducts)

	assert.Equal(t, "2026-03", b.Month)
	assert.Equal(t, []string{appfin.WarningCashApproximation}, b.Warnings)
}

func TestBalanceSnapshot_FalloDeUnaFoto_FallaElBalance(t *testing.T) {
	for _, method := range []string{"SumCustomerReceivables", "ListActiveProjectBalances", "SumInventoryAtCost", "SumActivePayables", "SumOperationalExpenses"} {
		t.Run(method, func(t *testing.T) {
			l := newLedger()
			l.FailRead(method, errors.New("timeout"))

			b, err := newService(t, l).BalanceSnapshot(context.Background(), appfin.SummaryRequest{OrganizationID: testOrgID, Month: "2026-03"})

			assert.Nil(t, b)
			assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
		})
	}
}

func TestBalanceSnapshot_MesInvalido(t *testing.T) {
	l := newLedger()
	b, err := newService(t, l).BalanceSnapshot(context.Background(), appfin.SummaryRequest{OrganizationID: testOrgID, Month: "2026-00"})

	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	assert.Zero(t, l.Reads())
}
