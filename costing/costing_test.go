package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUnitCost(t *testing.T) {
	cost, ok := UnitCost(d("10.00"), d("4"))
	require.True(t, ok)
	assert.True(t, cost.Equal(d("2.50")), "got %s", cost)

	cost, ok = UnitCost(d("0"), d("3"))
	require.True(t, ok)
	assert.True(t, cost.IsZero())
}

func TestUnitCost_Undefined(t *testing.T) {
	cases := []struct {
		name string
		cost string
		qty  string
	}{
		{"zero quantity", "10", "0"},
		{"negative quantity", "10", "-2"},
		{"negative cost", "-1", "2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cost, ok := UnitCost(d(tc.cost), d(tc.qty))
			assert.False(t, ok)
			assert.True(t, cost.IsZero())
		})
	}
}

func TestParseUnitCost(t *testing.T) {
	cost, ok := ParseUnitCost("7.5", "3")
	require.True(t, ok)
	assert.Equal(t, "2.5", cost.String())

	_, ok = ParseUnitCost("abc", "3")
	assert.False(t, ok)
	_, ok = ParseUnitCost("1", "")
	assert.False(t, ok)
	_, ok = ParseUnitCost("NaN", "1")
	assert.False(t, ok)
}

func TestInventoryValue(t *testing.T) {
	lines := []Line{
		{Stock: d("3"), PurchaseCost: d("10"), PurchaseQuantity: d("3")},
		{Stock: d("2.5"), PurchaseCost: d("8"), PurchaseQuantity: d("4")},
		{Stock: d("100"), PurchaseCost: d("5"), PurchaseQuantity: d("0")},
		{Stock: d("0"), PurchaseCost: d("10.00"), PurchaseQuantity: d("4")},
	}

	total := InventoryValue(lines)
	assert.True(t, total.Equal(d("15")), "got %s", total)
}

func TestInventoryValue_OrderInvariant(t *testing.T) {
	lines := []Line{
		{Stock: d("1.25"), PurchaseCost: d("9.99"), PurchaseQuantity: d("7")},
		{Stock: d("40"), PurchaseCost: d("12.5"), PurchaseQuantity: d("3")},
		{Stock: d("0.333"), PurchaseCost: d("1"), PurchaseQuantity: d("0.1")},
		{Stock: d("5"), PurchaseCost: d("3"), PurchaseQuantity: d("0")},
	}
	reversed := make([]Line, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}
	rotated := append(append([]Line{}, lines[2:]...), lines[:2]...)

	want := InventoryValue(lines)
	assert.True(t, want.Equal(InventoryValue(reversed)))
	assert.True(t, want.Equal(InventoryValue(rotated)))

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Value())
	}
	assert.True(t, want.Equal(sum))
}

func TestInventoryValue_Empty(t *testing.T) {
	assert.True(t, InventoryValue(nil).IsZero())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2.5", FormatUnitCost(d("2.5"), true))
	assert.Equal(t, "0.3333", FormatUnitCost(d("0.333333"), true))
	assert.Equal(t, Undefined, FormatUnitCost(decimal.Zero, false))
	assert.Equal(t, "1234.57", FormatCurrency(d("1234.5678")))
	assert.Equal(t, "10", FormatQuantity(d("10.000")))
	assert.Equal(t, "0.125", FormatQuantity(d("0.125")))
	assert.Equal(t, "0.13", FormatCurrency(d("0.125")))
}

func TestCheckStorable(t *testing.T) {
	ok := []string{"0", "0e50", "999999999.999999", "-999999999.999999", "1.500000000", "0.000001", "12.5"}
	for _, raw := range ok {
		assert.NoError(t, CheckStorable(d(raw)), raw)
	}

	tooLarge := []string{"1000000000", "1e9", "1e2000000", "-1234567890.5"}
	for _, raw := range tooLarge {
		assert.ErrorIs(t, CheckStorable(d(raw)), ErrTooLarge, raw)
	}

	tooPrecise := []string{"0.0000001", "0.12345678901234567891", "1e-2000000"}
	for _, raw := range tooPrecise {
		assert.ErrorIs(t, CheckStorable(d(raw)), ErrTooPrecise, raw)
	}
}
