package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de tesorería.
const (
	TreasuryInflow  = "INFLOW"
	TreasuryOutflow = "OUTFLOW"
)

// Categorías de movimiento de tesorería.
const (
	TreasuryCategoryCapitalInjection  = "CAPITAL_INJECTION"
	TreasuryCategoryOwnerWithdrawal   = "OWNER_WITHDRAWAL"
	TreasuryCategoryLoanIn            = "LOAN_IN"
	TreasuryCategoryLoanOut           = "LOAN_OUT"
	TreasuryCategoryPayableSettlement = "PAYABLE_SETTLEMENT"
	TreasuryCategoryOther             = "OTHER"
)

// Origen de fondos de un movimiento de tesorería.
const (
	TreasurySourceCash     = "CASH"
	TreasurySourceBank     = "BANK"
	TreasurySourceTransfer = "TRANSFER"
	TreasurySourceOther    = "OTHER"
)

// TreasuryMovement movimiento de caja no comercial (aporte, retiro, préstamo, pago a proveedor).
// Afecta el flujo de caja, nunca el resultado operacional.
type TreasuryMovement struct {
	ID             string
	OrganizationID string
	Type           string
	Category       string
	Source         string
	Amount         decimal.Decimal
	OccurredAt     time.Time
}

// ValidTreasuryCategory informa si la categoría es conocida.
func ValidTreasuryCategory(c string) bool {
	switch c {
	case TreasuryCategoryCapitalInjection, TreasuryCategoryOwnerWithdrawal,
		TreasuryCategoryLoanIn, TreasuryCategoryLoanOut,
		TreasuryCategoryPayableSettlement, TreasuryCategoryOther:
		return true
	}
	return false
}

// ValidTreasurySource informa si el origen es conocido.
func ValidTreasurySource(s string) bool {
	switch s {
	case TreasurySourceCash, TreasurySourceBank, TreasurySourceTransfer, TreasurySourceOther:
		return true
	}
	return false
}
