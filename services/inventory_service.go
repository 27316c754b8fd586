package services

import (
	"context"
	"crumbs/costing"
	"crumbs/dto"
	"crumbs/metrics"
	"crumbs/models"
	"crumbs/repositories"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

type IInventoryService interface {
	FindAll(ctx context.Context, ownerID uint, order repositories.ListOrder) ([]models.InventoryItem, error)
	FindById(ctx context.Context, itemID uint, ownerID uint) (*models.InventoryItem, error)
	Create(ctx context.Context, input dto.InventoryItemInput, ownerID uint) (*models.InventoryItem, error)
	Update(ctx context.Context, itemID uint, ownerID uint, input dto.InventoryItemInput) (*models.InventoryItem, error)
	AddStock(ctx context.Context, itemID uint, ownerID uint, input dto.AddStockInput) (*models.InventoryItem, error)
	Delete(ctx context.Context, itemID uint, ownerID uint) error
}

type InventoryService struct {
	repository repositories.IInventoryRepository
	logger     *slog.Logger
}

func NewInventoryService(repository repositories.IInventoryRepository, logger *slog.Logger) IInventoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{repository: repository, logger: logger}
}

func (s *InventoryService) FindAll(ctx context.Context, ownerID uint, order repositories.ListOrder) ([]models.InventoryItem, error) {
	return s.repository.FindAll(ctx, ownerID, order)
}

func (s *InventoryService) FindById(ctx context.Context, itemID uint, ownerID uint) (*models.InventoryItem, error) {
	item, err := s.repository.FindById(ctx, itemID, ownerID)
	if err != nil {
		return nil, translate(err, "inventory item")
	}
	return item, nil
}

func (s *InventoryService) Create(ctx context.Context, input dto.InventoryItemInput, ownerID uint) (*models.InventoryItem, error) {
	newItem, err := itemFromInput(input, false)
	if err != nil {
		return nil, err
	}
	newItem.OwnerID = ownerID

	if err := s.repository.Create(ctx, newItem); err != nil {
		return nil, err
	}
	s.logger.Info("inventory item added",
		slog.Uint64("owner_id", uint64(ownerID)),
		slog.Uint64("item_id", uint64(newItem.ID)),
	)
	return newItem, nil
}

func (s *InventoryService) Update(ctx context.Context, itemID uint, ownerID uint, input dto.InventoryItemInput) (*models.InventoryItem, error) {
	edit, err := itemFromInput(input, true)
	if err != nil {
		return nil, err
	}
	edit.ID = itemID
	edit.OwnerID = ownerID

	updated, err := s.repository.Update(ctx, *edit)
	if err != nil {
		return nil, translate(err, "inventory item")
	}
	return updated, nil
}

func (s *InventoryService) AddStock(ctx context.Context, itemID uint, ownerID uint, input dto.AddStockInput) (*models.InventoryItem, error) {
	delta, err := parseDecimal("quantity", input.Quantity)
	if err != nil {
		metrics.ObserveStockAdjustment("invalid")
		return nil, err
	}
	if !delta.IsPositive() {
		metrics.ObserveStockAdjustment("invalid")
		return nil, invalid("quantity", "must be greater than 0")
	}

	item, err := s.repository.AddStock(ctx, itemID, ownerID, delta)
	if errors.Is(err, repositories.ErrStockOutOfRange) {
		metrics.ObserveStockAdjustment("invalid")
		return nil, invalid("quantity", "would push stock out of the storable range")
	}
	metrics.ObserveStockAdjustment(metrics.Result(err))
	if err != nil {
		return nil, translate(err, "inventory item")
	}
	s.logger.Info("stock added",
		slog.Uint64("owner_id", uint64(ownerID)),
		slog.Uint64("item_id", uint64(itemID)),
		slog.String("delta", delta.String()),
		slog.String("stock", item.Stock.String()),
	)
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, itemID uint, ownerID uint) error {
	if err := s.repository.Delete(ctx, itemID, ownerID); err != nil {
		return translate(err, "inventory item")
	}
	return nil
}

// itemFromInput validates an add or edit request. Edits must restate the stock.
func itemFromInput(input dto.InventoryItemInput, requireStock bool) (*models.InventoryItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	category := models.Category(strings.TrimSpace(input.Category))
	if category == "" {
		return nil, invalid("category", "is required")
	}
	if !category.Valid() {
		return nil, invalid("category", "must be food or other")
	}

	purchaseCost, err := parseDecimal("purchaseCost", input.PurchaseCost)
	if err != nil {
		return nil, err
	}
	if purchaseCost.IsNegative() {
		return nil, invalid("purchaseCost", "must not be negative")
	}

	purchaseQuantity, err := parseDecimal("purchaseQuantity", input.PurchaseQuantity)
	if err != nil {
		return nil, err
	}
	if !purchaseQuantity.IsPositive() {
		return nil, invalid("purchaseQuantity", "must be greater than 0")
	}

	unit := models.Unit(strings.TrimSpace(input.Unit))
	if unit == "" {
		return nil, invalid("unit", "is required")
	}
	if !unit.Valid() {
		return nil, invalid("unit", "is not a known unit")
	}

	stock := decimal.Zero
	if input.Stock != nil {
		if stock, err = parseDecimal("stock", *input.Stock); err != nil {
			return nil, err
		}
	} else if requireStock {
		return nil, invalid("stock", "is required")
	}

	var supplier *string
	if input.Supplier != nil {
		if trimmed := strings.TrimSpace(*input.Supplier); trimmed != "" {
			supplier = &trimmed
		}
	}

	return &models.InventoryItem{
		Name:             name,
		Category:         category,
		Supplier:         supplier,
		PurchaseCost:     purchaseCost,
		PurchaseQuantity: purchaseQuantity,
		Stock:            stock,
		Unit:             unit,
	}, nil
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, invalid(field, "is required")
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalid(field, "must be a decimal number")
	}
	if err := costing.CheckStorable(value); err != nil {
		return decimal.Zero, invalid(field, err.Error())
	}
	return value, nil
}
