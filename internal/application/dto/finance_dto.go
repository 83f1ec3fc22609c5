package dto

// Montos en unidades enteras de moneda; porcentajes con un decimal.

// TreasuryFilterDTO filtro aplicado a los movimientos de tesorería.
type TreasuryFilterDTO struct {
	Category string `json:"category,omitempty" query:"category"`
	Source   string `json:"source,omitempty" query:"source"`
}

// CostCoverageDTO cobertura de costo de las líneas vendidas (calidad de datos).
type CostCoverageDTO struct {
	CostedLines   int     `json:"costedLines"`
	UncostedLines int     `json:"uncostedLines"`
	Percent       float64 `json:"percent"` // líneas con costo / líneas totales * 100
}

// MonthlySummaryDTO respuesta de GET /api/finance/summary.
type MonthlySummaryDTO struct {
	OrganizationID string            `json:"organizationId"`
	Month          string            `json:"month"` // YYYY-MM
	Label          string            `json:"label"` // ej: "Octubre 2026"
	PeriodStart    string            `json:"periodStart"`
	PeriodEnd      string            `json:"periodEnd"`
	TreasuryFilter TreasuryFilterDTO `json:"treasuryFilter"`

	// Ventas (devengo: se reconocen al emitir)
	SalesCount              int   `json:"salesCount"`
	SalesTotal              int64 `json:"salesTotal"`
	SalesNet                int64 `json:"salesNet"`
	SalesTax                int64 `json:"salesTax"`
	SalesDiscount           int64 `json:"salesDiscount"`
	CreditSalesTotal        int64 `json:"creditSalesTotal"`
	ImmediateCashSalesTotal int64 `json:"immediateCashSalesTotal"`
	CardCommissionsTotal    int64 `json:"cardCommissionsTotal"`
	CostOfSalesTotal        int64 `json:"costOfSalesTotal"`
	GrossProfit             int64 `json:"grossProfit"`

	// Cobranza (caja: se reconoce al cobrar)
	CollectionsTotal        int64 `json:"collectionsTotal"`
	ProjectCollectionsTotal int64 `json:"projectCollectionsTotal"`

	// Tesorería (no comercial)
	TreasuryInflowsTotal  int64 `json:"treasuryInflowsTotal"`
	TreasuryOutflowsTotal int64 `json:"treasuryOutflowsTotal"`

	// Egresos
	OperationalExpensesTotal int64 `json:"operationalExpensesTotal"`
	ProjectExpensesTotal     int64 `json:"projectExpensesTotal"`
	ProjectResourcesTotal    int64 `json:"projectResourcesTotal"`
	ProjectOutflowsTotal     int64 `json:"projectOutflowsTotal"`

	// Flujo y resultado
	CashInflowsTotal       int64   `json:"cashInflowsTotal"`
	CashOutflowsTotal      int64   `json:"cashOutflowsTotal"`
	NetCashFlow            int64   `json:"netCashFlow"`
	OperatingResult        int64   `json:"operatingResult"`
	GrossMarginPercent     float64 `json:"grossMarginPercent"`
	OperatingMarginPercent float64 `json:"operatingMarginPercent"`

	CostCoverage CostCoverageDTO `json:"costCoverage"`
	Warnings     []string        `json:"warnings"`
}

// BalanceAssetsDTO activos aproximados.
type BalanceAssetsDTO struct {
	CashPosition               int64 `json:"cashPosition"` // aproximado: flujo neto del mes
	CustomerAccountsReceivable int64 `json:"customerAccountsReceivable"`
	ProjectAccountsReceivable  int64 `json:"projectAccountsReceivable"`
	AccountsReceivable         int64 `json:"accountsReceivable"`
	InventoryAtCost            int64 `json:"inventoryAtCost"`
	Total                      int64 `json:"total"`
}

// BalanceLiabilitiesDTO pasivos.
type BalanceLiabilitiesDTO struct {
	AccountsPayable int64 `json:"accountsPayable"`
	Total           int64 `json:"total"`
}

// BalanceContextDTO contadores para drill-down en la UI; no participan en los cálculos.
type BalanceContextDTO struct {
	CustomersWithDebt         int `json:"customersWithDebt"`
	ProjectsPendingCollection int `json:"projectsPendingCollection"`
	PendingPayables           int `json:"pendingPayables"`
	CostValuedProducts        int `json:"costValuedProducts"`
}

// BalanceSnapshotDTO respuesta de GET /api/finance/balance.
type BalanceSnapshotDTO struct {
	OrganizationID string                `json:"organizationId"`
	Month          string                `json:"month"`
	Label          string                `json:"label"`
	Summary        MonthlySummaryDTO     `json:"summary"`
	Assets         BalanceAssetsDTO      `json:"assets"`
	Liabilities    BalanceLiabilitiesDTO `json:"liabilities"`
	Equity         int64                 `json:"equity"` // activos - pasivos
	Context        BalanceContextDTO     `json:"context"`
	Warnings       []string              `json:"warnings"`
}

// TimeSeriesPointDTO un mes de la serie.
type TimeSeriesPointDTO struct {
	Month             string `json:"month"`
	Label             string `json:"label"`
	NetCashFlow       int64  `json:"netCashFlow"`
	OperatingResult   int64  `json:"operatingResult"`
	CashInflowsTotal  int64  `json:"cashInflowsTotal"`
	CashOutflowsTotal int64  `json:"cashOutflowsTotal"`
}

// TimeSeriesDTO respuesta de GET /api/finance/series. Points va del mes más antiguo al más reciente.
type TimeSeriesDTO struct {
	OrganizationID string               `json:"organizationId"`
	Months         int                  `json:"months"`
	Points         []TimeSeriesPointDTO `json:"points"`
}

// ExpectedCashRequest parámetros de GET /api/finance/cash/expected.
type ExpectedCashRequest struct {
	From    string `query:"from"`    // RFC3339 o YYYY-MM-DDTHH:MM en zona del negocio
	To      string `query:"to"`
	Opening string `query:"opening"` // fondo inicial de caja
}

// ExpectedCashDTO efectivo esperado al cierre de un turno.
type ExpectedCashDTO struct {
	OrganizationID       string   `json:"organizationId"`
	From                 string   `json:"from"`
	To                   string   `json:"to"`
	CashSalesCount       int      `json:"cashSalesCount"`
	OpeningAmount        int64    `json:"openingAmount"`
	CashSalesTotal       int64    `json:"cashSalesTotal"`       // suma sin redondeo de efectivo
	RoundedCashSales     int64    `json:"roundedCashSales"`     // Σ redondeo por transacción
	RoundingAdjustment   int64    `json:"roundingAdjustment"`   // roundedCashSales - cashSalesTotal
	ExpectedCash         int64    `json:"expectedCash"`         // opening + roundedCashSales
	AggregateRoundedCash int64    `json:"aggregateRoundedCash"` // opening + redondeo de la suma (solo referencia)
	Warnings             []string `json:"warnings"`
}
