// Package costing derives unit costs and inventory valuation from purchase figures.
// Every value stays at full decimal precision; rounding happens only when formatting.
package costing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Undefined is shown wherever a unit cost cannot be derived.
const Undefined = "—"

const (
	CurrencyPlaces = 2
	UnitCostPlaces = 4

	divisionPrecision = 16
)

// Stored amounts are limited to 9 integer digits and 6 decimal places. Fifteen significant digits
// survive a round trip through every supported store, including SQLite REAL coercion.
const (
	MaxIntegerDigits = 9
	MaxScale         = 6

	// minExponent rejects absurd scales before any rescaling work.
	minExponent = -(MaxScale + 32)
)

var (
	ErrTooLarge   = errors.New("must have at most 9 digits before the decimal point")
	ErrTooPrecise = errors.New("must have at most 6 decimal places")
)

// CheckStorable reports whether d can be persisted without losing digits. It inspects the
// coefficient and exponent first so oversized input is refused without expanding it.
func CheckStorable(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	if d.NumDigits()+int(d.Exponent()) > MaxIntegerDigits {
		return ErrTooLarge
	}
	if d.Exponent() < minExponent || !d.Round(MaxScale).Equal(d) {
		return ErrTooPrecise
	}
	return nil
}

// Line is the slice of an inventory item the valuation needs.
type Line struct {
	Stock            decimal.Decimal
	PurchaseCost     decimal.Decimal
	PurchaseQuantity decimal.Decimal
}

// UnitCost returns purchaseCost / purchaseQuantity. ok is false when the quantity is zero
// or either input is negative.
func UnitCost(purchaseCost, purchaseQuantity decimal.Decimal) (cost decimal.Decimal, ok bool) {
	if purchaseQuantity.IsZero() || purchaseQuantity.IsNegative() || purchaseCost.IsNegative() {
		return decimal.Zero, false
	}
	return purchaseCost.DivRound(purchaseQuantity, divisionPrecision), true
}

// ParseUnitCost is UnitCost for raw user input. Unparseable input is undefined, never an error.
func ParseUnitCost(purchaseCost, purchaseQuantity string) (decimal.Decimal, bool) {
	cost, err := decimal.NewFromString(purchaseCost)
	if err != nil {
		return decimal.Zero, false
	}
	qty, err := decimal.NewFromString(purchaseQuantity)
	if err != nil {
		return decimal.Zero, false
	}
	return UnitCost(cost, qty)
}

// Value is stock * unit cost, or zero when the unit cost is undefined.
// The multiplication happens before the division so whole results stay exact.
func (l Line) Value() decimal.Decimal {
	if _, ok := UnitCost(l.PurchaseCost, l.PurchaseQuantity); !ok {
		return decimal.Zero
	}
	return l.Stock.Mul(l.PurchaseCost).DivRound(l.PurchaseQuantity, divisionPrecision)
}

// InventoryValue sums the value of every line. A malformed line contributes zero.
func InventoryValue(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Value())
	}
	return total
}

// FormatCurrency renders a money amount with at most 2 decimals.
func FormatCurrency(d decimal.Decimal) string {
	return d.Round(CurrencyPlaces).String()
}

// FormatQuantity renders a stock quantity at its stored precision, without trailing zeros.
// Quantities like 0.125 kg must not be shown as money.
func FormatQuantity(d decimal.Decimal) string {
	return d.Round(MaxScale).String()
}

// FormatUnitCost renders a unit-cost preview, or Undefined.
func FormatUnitCost(d decimal.Decimal, ok bool) string {
	if !ok {
		return Undefined
	}
	return d.Round(UnitCostPlaces).String()
}
