package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceLine_WithDiscount(t *testing.T) {
	line := PriceLine(decimal.RequireFromString("100.00"), decimal.RequireFromString("10"), 3)

	assert.True(t, line.OriginalPrice.Equal(decimal.RequireFromString("300")), "original price: %s", line.OriginalPrice)
	assert.True(t, line.DiscountApplied.Equal(decimal.RequireFromString("30")), "discount applied: %s", line.DiscountApplied)
	assert.True(t, line.FinalPrice.Equal(decimal.RequireFromString("270")), "final price: %s", line.FinalPrice)
}

func TestPriceLine_NoDiscount(t *testing.T) {
	line := PriceLine(decimal.RequireFromString("49.99"), decimal.Zero, 2)

	assert.True(t, line.OriginalPrice.Equal(decimal.RequireFromString("99.98")))
	assert.True(t, line.DiscountApplied.IsZero())
	assert.True(t, line.FinalPrice.Equal(decimal.RequireFromString("99.98")))
}

func TestPriceLine_FractionalDiscountKeepsPrecision(t *testing.T) {
	// 33.33 at 7.5% for 1 unit: the discount is an exact decimal, not a
	// float approximation.
	line := PriceLine(decimal.RequireFromString("33.33"), decimal.RequireFromString("7.5"), 1)

	assert.True(t, line.DiscountApplied.Equal(decimal.RequireFromString("2.49975")), "discount applied: %s", line.DiscountApplied)
	assert.True(t, line.FinalPrice.Equal(decimal.RequireFromString("30.83025")), "final price: %s", line.FinalPrice)
}

func TestSumLines_TotalsAreConsistent(t *testing.T) {
	lines := []LinePrice{
		PriceLine(decimal.RequireFromString("100.00"), decimal.RequireFromString("10"), 3),
		PriceLine(decimal.RequireFromString("50.00"), decimal.RequireFromString("20"), 2),
	}

	totals := SumLines(lines)

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("400")))
	assert.True(t, totals.TotalDiscount.Equal(decimal.RequireFromString("50")))
	assert.True(t, totals.TotalAmount.Equal(decimal.RequireFromString("350")))
	assert.True(t, totals.TotalAmount.Equal(totals.Subtotal.Sub(totals.TotalDiscount)))
}

func TestSumLines_Empty(t *testing.T) {
	totals := SumLines(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TotalDiscount.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5000), MinorUnits(decimal.RequireFromString("50.00")))
	assert.Equal(t, int64(1999), MinorUnits(decimal.RequireFromString("19.99")))
	assert.Equal(t, int64(1000), MinorUnits(decimal.RequireFromString("9.995")))
	assert.Equal(t, int64(0), MinorUnits(decimal.Zero))
}
