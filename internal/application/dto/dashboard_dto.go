package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	DateLabel          string               `json:"date_label"`
	MonthlySales       int64                `json:"monthly_sales"`
	GrossProfit        int64                `json:"gross_profit"`
	GrossMarginPercent float64              `json:"gross_margin_percent"`
	NetCashFlow        int64                `json:"net_cash_flow"`
	OperatingResult    int64                `json:"operating_result"`
	AccountsReceivable int64                `json:"accounts_receivable"`
	AccountsPayable    int64                `json:"accounts_payable"`
	Equity             int64                `json:"equity"`
	Trend              []TimeSeriesPointDTO `json:"trend"`
	Warnings           []string             `json:"warnings"`
}
