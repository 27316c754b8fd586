package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleAdmin))
	assert.False(t, RoleAdmin.AtLeast(RoleSuperAdmin))
	assert.False(t, Role("").AtLeast(RoleAdmin))
	assert.False(t, Role("owner").AtLeast(RoleAdmin))
}

func TestRole_CanManage(t *testing.T) {
	cases := []struct {
		actor, target Role
		want          bool
	}{
		{RoleUser, RoleUser, false},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, Role(""), true},
		{RoleAdmin, RoleAdmin, false},
		{RoleAdmin, RoleSuperAdmin, false},
		{RoleSuperAdmin, RoleUser, true},
		{RoleSuperAdmin, RoleAdmin, true},
		{RoleSuperAdmin, RoleSuperAdmin, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.actor.CanManage(tc.target), "%s -> %s", tc.actor, tc.target)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}

func TestUser_IsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	assert.True(t, (&User{}).IsActive(now))
	assert.False(t, (&User{Banned: true}).IsActive(now), "permanent ban")
	assert.False(t, (&User{Banned: true, BanExpiresAt: &future}).IsActive(now))
	assert.True(t, (&User{Banned: true, BanExpiresAt: &past}).IsActive(now), "expired ban")
	assert.True(t, (&User{Banned: true, BanExpiresAt: &now}).IsActive(now))
}

func TestInventoryItem_Derived(t *testing.T) {
	item := InventoryItem{
		PurchaseCost:     decimal.RequireFromString("10.00"),
		PurchaseQuantity: decimal.RequireFromString("4"),
		Stock:            decimal.Zero,
	}
	cost, ok := item.UnitCost()
	assert.True(t, ok)
	assert.True(t, cost.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, item.CostLine().Value().IsZero())
	assert.True(t, item.OutOfStock())

	assert.True(t, Unit("kg").Valid())
	assert.False(t, Unit("KG").Valid())
	assert.True(t, CategoryFood.Valid())
	assert.False(t, Category("drink").Valid())
}
