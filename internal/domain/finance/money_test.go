package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pyme-finanzas/internal/domain/finance"
)

func TestUnits_MitadSeAlejaDeCero(t *testing.T) {
	assert.Equal(t, int64(3), finance.Units(decimal.RequireFromString("2.5")))
	assert.Equal(t, int64(-3), finance.Units(decimal.RequireFromString("-2.5")))
	assert.Equal(t, int64(2), finance.Units(decimal.RequireFromString("2.49")))
	assert.Equal(t, "1001", finance.RoundUnits(decimal.RequireFromString("1000.5")).String())
}

func TestPercent_UnDecimalYCeroSinBase(t *testing.T) {
	assert.Equal(t, 33.3, finance.Percent(decimal.NewFromInt(1), decimal.NewFromInt(3)))
	assert.Equal(t, -12.5, finance.Percent(decimal.NewFromInt(-1), decimal.NewFromInt(8)))
	assert.Equal(t, 0.0, finance.Percent(decimal.NewFromInt(5), decimal.Zero))
}
