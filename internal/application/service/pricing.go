package service

import "github.com/shopspring/decimal"

// LinePrice carries the priced amounts for one order line. All values are
// exact decimals; nothing is rounded until presentation.
type LinePrice struct {
	OriginalPrice   decimal.Decimal
	DiscountApplied decimal.Decimal
	FinalPrice      decimal.Decimal
}

// OrderTotals carries the summed amounts for a whole order
type OrderTotals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalAmount   decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// PriceLine computes the discounted price for quantity units of a product.
//
//	originalPrice   = sellingPrice * quantity
//	discountAmount  = sellingPrice * discountPercentage / 100   (per unit)
//	discountApplied = discountAmount * quantity
//	finalPrice      = (sellingPrice - discountAmount) * quantity
//
// A zero-value discount percentage means no discount.
func PriceLine(sellingPrice, discountPercentage decimal.Decimal, quantity int) LinePrice {
	qty := decimal.NewFromInt(int64(quantity))
	discountAmount := sellingPrice.Mul(discountPercentage).Div(oneHundred)

	return LinePrice{
		OriginalPrice:   sellingPrice.Mul(qty),
		DiscountApplied: discountAmount.Mul(qty),
		FinalPrice:      sellingPrice.Sub(discountAmount).Mul(qty),
	}
}

// SumLines folds line prices into order totals. The resulting totals satisfy
// TotalAmount == Subtotal - TotalDiscount exactly, because each line does.
func SumLines(lines []LinePrice) OrderTotals {
	totals := OrderTotals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalAmount:   decimal.Zero,
	}
	for _, line := range lines {
		totals.Subtotal = totals.Subtotal.Add(line.OriginalPrice)
		totals.TotalDiscount = totals.TotalDiscount.Add(line.DiscountApplied)
		totals.TotalAmount = totals.TotalAmount.Add(line.FinalPrice)
	}
	return totals
}

// MinorUnits converts a decimal currency amount to integer minor units
// (cents) for the payment gateway, rounding to the nearest cent.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
