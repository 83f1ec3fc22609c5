package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
)

// DemoOrganizationID organización cargada por SeedDemo.
const DemoOrganizationID = "7f3c2a9e-4b1d-4c8e-9a55-2d6f1e0b8c41"

// SeedDemo carga un set pequeño de hechos para probar la API en local:
// ventas de contado y a crédito, una cobranza, un proyecto con abono parcial,
// gastos, un aporte de capital, inventario y una cuenta por pagar.
func SeedDemo(l *Ledger, now time.Time) {
	org := DemoOrganizationID
	l.AddOrganization(entity.Organization{ID: org, Name: "Ferretería Demo", TaxID: "76.123.456-0"},
		entity.ModuleSales, entity.ModuleCredit, entity.ModuleProjects, entity.ModuleFinance)

	d := decimal.NewFromInt
	ptr := func(v int64) *decimal.Decimal { x := d(v); return &x }
	thisMonth := time.Date(now.Year(), now.Month(), 5, 12, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	for i, at := range []time.Time{lastMonth, thisMonth} {
		l.AddSale(entity.SalesDocument{
			OrganizationID: org, PaymentMethod: entity.PaymentMethodCash, Status: entity.DocumentStatusPaid,
			Subtotal: d(84034), TaxAmount: d(15966), Total: d(100000), IssuedAt: at,
		}, entity.DocumentLineItem{Quantity: d(4), UnitCost: ptr(12000)})
		l.AddSale(entity.SalesDocument{
			OrganizationID: org, PaymentMethod: entity.PaymentMethodCard, Status: entity.DocumentStatusPaid,
			Subtotal: d(50420), TaxAmount: d(9580), Total: d(60000), CardCommissionAmount: d(1770),
			IssuedAt: at.Add(time.Duration(i+1) * time.Hour),
		}, entity.DocumentLineItem{Quantity: d(2), UnitCost: ptr(15000)}, entity.DocumentLineItem{Quantity: d(1)})
	}
	l.AddSale(entity.SalesDocument{
		OrganizationID: org, PaymentMethod: entity.PaymentMethodCredit, Status: entity.DocumentStatusPaid,
		Subtotal: d(168067), TaxAmount: d(31933), Total: d(200000), IssuedAt: lastMonth.Add(48 * time.Hour),
	}, entity.DocumentLineItem{Quantity: d(10), UnitCost: ptr(9000)})
	l.AddPayment(entity.Payment{OrganizationID: org, Amount: d(120000), PaidAt: thisMonth.Add(24 * time.Hour)})
	l.AddCustomer(entity.Customer{OrganizationID: org, Name: "Constructora Sur", CurrentDebt: d(80000)})

	pid := l.AddProject(entity.Project{OrganizationID: org, Name: "Remodelación local", Status: entity.ProjectStatusActive, ContractedAmount: ptr(5000000)})
	l.AddProjectPayment(entity.ProjectPayment{OrganizationID: org, ProjectID: pid, Amount: d(2000000), PaidAt: thisMonth})
	l.AddProjectResource(entity.ProjectResource{OrganizationID: org, ProjectID: pid, TotalCost: d(30000), Date: thisMonth})
	l.AddOperationalExpense(entity.OperationalExpense{OrganizationID: org, Category: "arriendo", Amount: d(50000), Date: thisMonth})
	l.AddTreasuryMovement(entity.TreasuryMovement{
		OrganizationID: org, Type: entity.TreasuryInflow, Category: entity.TreasuryCategoryCapitalInjection,
		Source: entity.TreasurySourceBank, Amount: d(300000), OccurredAt: lastMonth,
	})

	l.AddProduct(entity.Product{OrganizationID: org, SKU: "MART-01", Name: "Martillo", Cost: ptr(6500), CurrentStock: d(20), TrackStock: true, Active: true})
	l.AddProduct(entity.Product{OrganizationID: org, SKU: "SERV-01", Name: "Instalación", TrackStock: false, Active: true})
	l.AddPayable(entity.AccountPayable{OrganizationID: org, SupplierName: "Distribuidora Norte", Balance: d(150000), Status: entity.PayableStatusPending})
}
