package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemInput carries every editable field. Amounts travel as decimal strings.
// Stock may be omitted when adding an item and then starts at zero.
type InventoryItemInput struct {
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Supplier         *string `json:"supplier"`
	PurchaseCost     string  `json:"purchaseCost"`
	PurchaseQuantity string  `json:"purchaseQuantity"`
	Stock            *string `json:"stock"`
	Unit             string  `json:"unit"`
}

type AddStockInput struct {
	Quantity string `json:"quantity"`
}

type InventoryItemResponse struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	Supplier         *string          `json:"supplier"`
	PurchaseCost     decimal.Decimal  `json:"purchaseCost"`
	PurchaseQuantity decimal.Decimal  `json:"purchaseQuantity"`
	Stock            decimal.Decimal  `json:"stock"`
	Unit             string           `json:"unit"`
	UnitCost         *decimal.Decimal `json:"unitCost"`
	UnitCostDisplay  string           `json:"unitCostDisplay"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type UnitCostPreviewResponse struct {
	UnitCost        *decimal.Decimal `json:"unitCost"`
	UnitCostDisplay string           `json:"unitCostDisplay"`
}
