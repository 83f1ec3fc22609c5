// Package pdf genera el reporte financiero mensual en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte financiero  │  Mes + período               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESULTADO: ventas / costo / comisiones / margen             │
//	│  FLUJO DE CAJA: ingresos | egresos | flujo neto              │
//	│  BALANCE: activos | pasivos | patrimonio                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ADVERTENCIAS                                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/domain/entity"
	"github.com/jhoicas/pyme-finanzas/pkg/rut"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa finance.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se formatean con
// separador de miles en español (25.000).
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateMonthlyReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMonthlyReportPDF(_ context.Context, org *entity.Organization, b *dto.BalanceSnapshotDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte financiero "+b.Label, true).
		WithAuthor(nonEmpty(org.Name, org.ID), true).
		Build()

	m := maroto.New(cfg)
	s := b.Summary

	m.AddRows(g.headerRow(org, b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("RESULTADO DEL MES"))
	m.AddRows(g.amountRows([]amountLine{
		{"Ventas totales", s.SalesTotal},
		{"Ventas a crédito", s.CreditSalesTotal},
		{"Ventas netas (sin impuesto)", s.SalesNet},
		{"Costo de ventas", -s.CostOfSalesTotal},
		{"Comisiones de tarjeta", -s.CardCommissionsTotal},
		{"Utilidad bruta", s.GrossProfit},
		{"Cobros de proyectos", s.ProjectCollectionsTotal},
		{"Gastos operacionales", -s.OperationalExpensesTotal},
		{"Egresos de proyectos", -s.ProjectOutflowsTotal},
		{"Resultado operacional", s.OperatingResult},
	})...)
	m.AddRows(g.percentRow(s))

	m.AddRows(sectionRow("FLUJO DE CAJA"))
	m.AddRows(g.amountRows([]amountLine{
		{"Ventas de contado", s.ImmediateCashSalesTotal},
		{"Cobranza de crédito", s.CollectionsTotal},
		{"Cobros de proyectos", s.ProjectCollectionsTotal},
		{"Ingresos de tesorería", s.TreasuryInflowsTotal},
		{"Total ingresos", s.CashInflowsTotal},
		{"Gastos operacionales", s.OperationalExpensesTotal},
		{"Egresos de proyectos", s.ProjectOutflowsTotal},
		{"Egresos de tesorería", s.TreasuryOutflowsTotal},
		{"Total egresos", s.CashOutflowsTotal},
		{"Flujo neto", s.NetCashFlow},
	})...)

	m.AddRows(sectionRow("BALANCE APROXIMADO"))
	m.AddRows(g.amountRows([]amountLine{
		{"Caja (flujo neto del mes)", b.Assets.CashPosition},
		{"Cuentas por cobrar clientes", b.Assets.CustomerAccountsReceivable},
		{"Cuentas por cobrar proyectos", b.Assets.ProjectAccountsReceivable},
		{"Inventario a costo", b.Assets.InventoryAtCost},
		{"Total activos", b.Assets.Total},
		{"Cuentas por pagar", b.Liabilities.AccountsPayable},
		{"Patrimonio", b.Equity},
	})...)

	warnings := append(append([]string{}, s.Warnings...), b.Warnings...)
	if len(warnings) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(sectionRow("ADVERTENCIAS"))
		for _, w := range warnings {
			m.AddRows(row.New(6).Add(col.New(12).Add(
				text.New("• "+w, props.Text{Size: 7.5, Color: colorGray, Top: 1, Left: 2}),
			)))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type amountLine struct {
	label string
	value int64
}

// headerRow: organización (izq) y mes + período (der).
func (g *MarotoPDFGenerator) headerRow(org *entity.Organization, b *dto.BalanceSnapshotDTO) core.Row {
	taxID := ""
	if org.TaxID != "" {
		formatted := org.TaxID
		if f, err := rut.Format(org.TaxID); err == nil {
			formatted = f
		}
		taxID = "RUT: " + formatted
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(org.Name, "REPORTE FINANCIERO"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(taxID, b.OrganizationID), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(b.Label, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New(datePart(b.Summary.PeriodStart)+" al "+datePart(b.Summary.PeriodEnd), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

func (g *MarotoPDFGenerator) amountRows(lines []amountLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		valueProps := props.Text{Size: 8.5, Align: align.Right, Top: 1, Right: 1}
		if l.value < 0 {
			valueProps.Color = colorRed
		}
		rows = append(rows, row.New(5).Add(
			col.New(2),
			col.New(5).Add(text.New(l.label, props.Text{Size: 8.5, Top: 1})),
			col.New(3).Add(text.New(g.money(l.value), valueProps)),
			col.New(2),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) percentRow(s dto.MonthlySummaryDTO) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(g.printer.Sprintf("Margen bruto %.1f%%   |   Margen operacional %.1f%%   |   Cobertura de costo %.1f%%",
			s.GrossMarginPercent, s.OperatingMarginPercent, s.CostCoverage.Percent,
		), props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
	))
}

// money formatea un monto entero con separador de miles, ej: -25000 → "-$25.000".
func (g *MarotoPDFGenerator) money(v int64) string {
	if v < 0 {
		return g.printer.Sprintf("-$%d", -v)
	}
	return g.printer.Sprintf("$%d", v)
}

// datePart recorta un timestamp RFC3339 a su fecha.
func datePart(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
