package repositories

import (
	"context"
	"crumbs/infra"
	"crumbs/models"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.SetupMemoryDB()
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: email, Email: email, Password: "x", Role: role, Currency: "USD", Plan: "free"}
	require.NoError(t, NewUserRepository(db).CreateUser(context.Background(), user))
	return user
}

func seedItem(t *testing.T, repo IInventoryRepository, ownerID uint, name, stock string) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		OwnerID:          ownerID,
		Name:             name,
		Category:         models.CategoryFood,
		PurchaseCost:     dec("10.00"),
		PurchaseQuantity: dec("4"),
		Stock:            dec(stock),
		Unit:             "kg",
	}
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func TestInventoryRepository_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewInventoryRepository(db)
	alice := seedUser(t, db, "alice@example.com", models.RoleUser)
	bob := seedUser(t, db, "bob@example.com", models.RoleUser)

	item := seedItem(t, repo, alice.ID, "Flour", "3")

	_, err := repo.FindById(ctx, item.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, item.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.AddStock(ctx, item.ID, bob.ID, dec("1"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	updated := *item
	updated.OwnerID = bob.ID
	updated.Name = "Stolen"
	_, err = repo.Update(ctx, updated)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	items, err := repo.FindAll(ctx, bob.ID, ListOrder{})
	require.NoError(t, err)
	assert.Empty(t, items)

	found, err := repo.FindById(ctx, item.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", found.Name)
	assert.True(t, found.Stock.Equal(dec("3")))
}

func TestInventoryRepository_UpdateOverwritesFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewInventoryRepository(db)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	supplier := "Mill Co"
	item := seedItem(t, repo, owner.ID, "Flour", "3")

	edit := *item
	edit.Name = "Rye Flour"
	edit.Category = models.CategoryOther
	edit.Supplier = &supplier
	edit.PurchaseCost = dec("12.5")
	edit.PurchaseQuantity = dec("5")
	edit.Stock = dec("0")
	edit.Unit = "g"

	updated, err := repo.Update(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "Rye Flour", updated.Name)
	assert.Equal(t, models.CategoryOther, updated.Category)
	require.NotNil(t, updated.Supplier)
	assert.Equal(t, "Mill Co", *updated.Supplier)
	assert.True(t, updated.PurchaseCost.Equal(dec("12.5")))
	assert.True(t, updated.Stock.IsZero())
	assert.Equal(t, models.Unit("g"), updated.Unit)
	assert.Equal(t, owner.ID, updated.OwnerID)
	assert.Greater(t, updated.Version, item.Version)

	edit.Supplier = nil
	updated, err = repo.Update(ctx, edit)
	require.NoError(t, err)
	assert.Nil(t, updated.Supplier)
}

func TestInventoryRepository_AddStockSequential(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewInventoryRepository(db)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)

	split := seedItem(t, repo, owner.ID, "Split", "10")
	whole := seedItem(t, repo, owner.ID, "Whole", "10")

	_, err := repo.AddStock(ctx, split.ID, owner.ID, dec("0.1"))
	require.NoError(t, err)
	afterSplit, err := repo.AddStock(ctx, split.ID, owner.ID, dec("0.2"))
	require.NoError(t, err)

	afterWhole, err := repo.AddStock(ctx, whole.ID, owner.ID, dec("0.3"))
	require.NoError(t, err)

	assert.True(t, afterSplit.Stock.Equal(afterWhole.Stock), "%s != %s", afterSplit.Stock, afterWhole.Stock)
	assert.True(t, afterSplit.Stock.Equal(dec("10.3")))

	stored, err := repo.FindById(ctx, split.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, stored.Stock.Equal(dec("10.3")), "stored %s", stored.Stock)
}

func TestInventoryRepository_AddStockConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewInventoryRepository(db)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	item := seedItem(t, repo, owner.ID, "Sugar", "10")

	const workers = 25
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddStock(ctx, item.ID, owner.ID, dec("1.5"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := repo.FindById(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, stored.Stock.Equal(dec("47.5")), "stock %s", stored.Stock)
	assert.Equal(t, uint(workers), stored.Version)
}

func TestInventoryRepository_LowestStockAndCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewInventoryRepository(db)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)

	seedItem(t, repo, owner.ID, "A", "12")
	seedItem(t, repo, owner.ID, "B", "0")
	seedItem(t, repo, owner.ID, "C", "2.5")
	seedItem(t, repo, owner.ID, "D", "0")
	seedItem(t, repo, owner.ID, "E", "-1")
	seedItem(t, repo, owner.ID, "F", "100")
	seedItem(t, repo, owner.ID, "G", "2.5")
	seedItem(t, repo, other.ID, "Z", "-50")

	lowest, err := repo.LowestStock(ctx, owner.ID, 5)
	require.NoError(t, err)
	require.Len(t, lowest, 5)

	names := make([]string, 0, len(lowest))
	for i, item := range lowest {
		names = append(names, item.Name)
		if i > 0 {
			assert.False(t, item.Stock.LessThan(lowest[i-1].Stock), "not non-decreasing at %d", i)
		}
	}
	assert.Equal(t, []string{"E", "B", "D", "C", "G"}, names)

	count, err := repo.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	outOfStock, err := repo.CountOutOfStock(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), outOfStock)
}

func TestInventoryRepository_FindAllOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewInventoryRepository(db)
	owner := seedUser(t, db, "owner@example.com", models.RoleUser)

	seedItem(t, repo, owner.ID, "Butter", "5")
	seedItem(t, repo, owner.ID, "Apples", "9")
	seedItem(t, repo, owner.ID, "Cocoa", "1")

	byName, err := repo.FindAll(ctx, owner.ID, ListOrder{Field: "name"})
	require.NoError(t, err)
	assert.Equal(t, "Apples", byName[0].Name)

	byStockDesc, err := repo.FindAll(ctx, owner.ID, ListOrder{Field: "stock", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "Apples", byStockDesc[0].Name)
	assert.Equal(t, "Cocoa", byStockDesc[2].Name)

	unknown, err := repo.FindAll(ctx, owner.ID, ListOrder{Field: "price; DROP TABLE users"})
	require.NoError(t, err)
	assert.Equal(t, "Butter", unknown[0].Name)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	inventory := NewInventoryRepository(db)
	recipes := NewRecipeRepository(db)

	doomed := seedUser(t, db, "doomed@example.com", models.RoleUser)
	keeper := seedUser(t, db, "keeper@example.com", models.RoleUser)
	seedItem(t, inventory, doomed.ID, "Salt", "1")
	seedItem(t, inventory, keeper.ID, "Pepper", "1")
	require.NoError(t, recipes.Create(ctx, &models.Recipe{OwnerID: doomed.ID, Name: "Bread"}))
	require.NoError(t, recipes.Create(ctx, &models.Recipe{OwnerID: keeper.ID, Name: "Soup"}))

	require.NoError(t, users.Delete(ctx, doomed.ID))

	_, err := users.FindById(ctx, doomed.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var orphanItems, orphanRecipes int64
	db.Model(&models.InventoryItem{}).Where("owner_id = ?", doomed.ID).Count(&orphanItems)
	db.Model(&models.Recipe{}).Where("owner_id = ?", doomed.ID).Count(&orphanRecipes)
	assert.Zero(t, orphanItems)
	assert.Zero(t, orphanRecipes)

	kept, err := recipes.CountByOwner(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), kept)

	assert.ErrorIs(t, users.Delete(ctx, doomed.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdateColumns(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	user := seedUser(t, db, "u@example.com", models.RoleUser)
	seedUser(t, db, "taken@example.com", models.RoleUser)

	updated, err := users.UpdateColumns(ctx, user.ID, map[string]interface{}{"name": "Renamed", "plan": "pro"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "pro", updated.Plan)
	assert.Equal(t, "u@example.com", updated.Email)

	_, err = users.UpdateColumns(ctx, user.ID, map[string]interface{}{"email": "taken@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = users.UpdateColumns(ctx, 9999, map[string]interface{}{"name": "ghost"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTokenRepository(t *testing.T) {
	db, err := infra.SetupMemoryDB()
	require.NoError(t, err)
	require.NoError(t, infra.MigrateTokens(db))
	ctx := context.Background()
	repo := NewTokenRepository(db)

	require.NoError(t, repo.AddBlacklistedToken(ctx, "live", 4102444800))
	require.NoError(t, repo.AddBlacklistedToken(ctx, "live", 4102444800))
	require.NoError(t, repo.AddBlacklistedToken(ctx, "stale", 1))

	ok, err := repo.IsTokenBlacklisted(ctx, "live")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := repo.CleanExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	ok, err = repo.IsTokenBlacklisted(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)
}
