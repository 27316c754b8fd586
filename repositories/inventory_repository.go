package repositories

import (
	"context"
	"crumbs/costing"
	"crumbs/models"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxStockRetries bounds how often AddStock re-reads a row another writer changed underneath it.
const maxStockRetries = 10

var errStaleWrite = errors.New("inventory item changed concurrently")

// ErrStockOutOfRange is returned when an increment would leave stock unstorable.
var ErrStockOutOfRange = errors.New("stock would exceed the storable range")

// ListOrder is a caller-requested ordering for FindAll. Unknown fields fall back to insertion order.
type ListOrder struct {
	Field string
	Desc  bool
}

var sortColumns = map[string]string{
	"name":      "name",
	"stock":     "stock",
	"createdAt": "created_at",
	"category":  "category",
}

type IInventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	FindById(ctx context.Context, itemID uint, ownerID uint) (*models.InventoryItem, error)
	FindAll(ctx context.Context, ownerID uint, order ListOrder) ([]models.InventoryItem, error)
	Update(ctx context.Context, item models.InventoryItem) (*models.InventoryItem, error)
	AddStock(ctx context.Context, itemID uint, ownerID uint, delta decimal.Decimal) (*models.InventoryItem, error)
	Delete(ctx context.Context, itemID uint, ownerID uint) error
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	CountOutOfStock(ctx context.Context, ownerID uint) (int64, error)
	LowestStock(ctx context.Context, ownerID uint, limit int) ([]models.InventoryItem, error)
}

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) IInventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) FindById(ctx context.Context, itemID uint, ownerID uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	result := r.db.WithContext(ctx).First(&item, "id = ? AND owner_id = ?", itemID, ownerID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *InventoryRepository) FindAll(ctx context.Context, ownerID uint, order ListOrder) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if column, ok := sortColumns[order.Field]; ok {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: order.Desc})
	}
	query = query.Order("id ASC")

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites every editable field of an item the owner holds. Concurrent full updates
// are last-writer-wins; the version bump makes in-flight stock adjustments retry.
func (r *InventoryRepository) Update(ctx context.Context, item models.InventoryItem) (*models.InventoryItem, error) {
	result := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ? AND owner_id = ?", item.ID, item.OwnerID).
		Updates(map[string]interface{}{
			"name":              item.Name,
			"category":          item.Category,
			"supplier":          item.Supplier,
			"purchase_cost":     item.PurchaseCost,
			"purchase_quantity": item.PurchaseQuantity,
			"stock":             item.Stock,
			"unit":              item.Unit,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindById(ctx, item.ID, item.OwnerID)
}

// AddStock increments stock by delta. The row is locked where the database supports it and the
// write is conditional on the version read, so an increment never lands on a stale snapshot.
func (r *InventoryRepository) AddStock(ctx context.Context, itemID uint, ownerID uint, delta decimal.Decimal) (*models.InventoryItem, error) {
	for attempt := 0; attempt < maxStockRetries; attempt++ {
		item, err := r.addStockOnce(ctx, itemID, ownerID, delta)
		if !errors.Is(err, errStaleWrite) {
			return item, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("add stock to item %d: %w", itemID, errStaleWrite)
}

func (r *InventoryRepository) addStockOnce(ctx context.Context, itemID uint, ownerID uint, delta decimal.Decimal) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ? AND owner_id = ?", itemID, ownerID).Error; err != nil {
			return err
		}

		next := item.Stock.Add(delta)
		if costing.CheckStorable(next) != nil {
			return ErrStockOutOfRange
		}
		result := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND version = ?", item.ID, item.Version).
			Updates(map[string]interface{}{
				"stock":   next,
				"version": item.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStaleWrite
		}

		item.Stock = next
		item.Version++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, itemID uint, ownerID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", itemID, ownerID).Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InventoryRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Where("owner_id = ?", ownerID).Count(&count)
	return count, result.Error
}

func (r *InventoryRepository) CountOutOfStock(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("owner_id = ? AND stock <= ?", ownerID, 0).
		Count(&count)
	return count, result.Error
}

// LowestStock returns up to limit items ordered by ascending stock, ties in insertion order.
func (r *InventoryRepository) LowestStock(ctx context.Context, ownerID uint, limit int) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("stock ASC").
		Order("id ASC").
		Limit(limit).
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}
