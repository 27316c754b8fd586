package services

import (
	"context"
	"crumbs/infra"
	"crumbs/models"
	"crumbs/repositories"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	users     repositories.IUserRepository
	inventory repositories.IInventoryRepository
	recipes   repositories.IRecipeRepository
	tokens    repositories.ITokenRepository
	logger    *slog.Logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := infra.SetupMemoryDB()
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	require.NoError(t, infra.MigrateTokens(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testEnv{
		db:        db,
		users:     repositories.NewUserRepository(db),
		inventory: repositories.NewInventoryRepository(db),
		recipes:   repositories.NewRecipeRepository(db),
		tokens:    repositories.NewTokenRepository(db),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (e *testEnv) seedUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: email, Email: email, Password: "x", Role: role, Plan: "free", Currency: "USD"}
	require.NoError(t, e.users.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) seedItem(t *testing.T, ownerID uint, name, cost, qty, stock string) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		OwnerID:          ownerID,
		Name:             name,
		Category:         models.CategoryFood,
		PurchaseCost:     decimal.RequireFromString(cost),
		PurchaseQuantity: decimal.RequireFromString(qty),
		Stock:            decimal.RequireFromString(stock),
		Unit:             "pcs",
	}
	require.NoError(t, e.inventory.Create(context.Background(), item))
	return item
}

func strPtr(s string) *string {
	return &s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
