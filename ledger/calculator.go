// Package ledger computes room-account totals. Everything here is pure:
// no I/O, no mutation, decimal arithmetic only. Float64 never touches a
// monetary value; rounding to 2 decimals happens at the presentation
// boundary, never mid-computation.
package ledger

import (
	"github.com/shopspring/decimal"

	"frontdesk-backend/models"
)

// LineItem is the common accessor shared by the product/extra/payment
// variants.
type LineItem interface {
	Amount() decimal.Decimal
}

// StayTotal is nights x nightly price.
func StayTotal(nights int, nightlyPrice decimal.Decimal) decimal.Decimal {
	return nightlyPrice.Mul(decimal.NewFromInt(int64(nights)))
}

// LineItemsTotal sums the monetary field of each item. A zero-value
// decimal contributes nothing, which covers rows whose amount column was
// never set.
func LineItemsTotal[T LineItem](items []T) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}

// Balance returns the signed outstanding amount for an occupation:
// stay + products + extras - payments. Guards (overpayment, checkout)
// use this value; DisplayBalance is for presentation only.
func Balance(occ models.Occupation, nightlyPrice decimal.Decimal) decimal.Decimal {
	owed := StayTotal(occ.Nights, nightlyPrice).
		Add(LineItemsTotal(occ.Products)).
		Add(LineItemsTotal(occ.Extras))
	return owed.Sub(LineItemsTotal(occ.Payments))
}

// DisplayBalance floors a signed balance at zero and rounds to 2 decimals.
func DisplayBalance(signed decimal.Decimal) decimal.Decimal {
	if signed.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return signed.Round(2)
}
