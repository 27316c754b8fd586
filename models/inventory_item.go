package models

import (
	"crumbs/costing"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFood  Category = "food"
	CategoryOther Category = "other"
)

func (c Category) Valid() bool {
	return c == CategoryFood || c == CategoryOther
}

// Unit is the stocking unit an item is counted in.
type Unit string

// Units lists the accepted stocking units in display order.
var Units = []Unit{
	"g", "kg", "ml", "L", "pcs", "oz", "lb", "cup", "tbsp", "tsp",
	"pack", "box", "bottle", "can", "bag", "roll", "sheet",
}

func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

type InventoryItem struct {
	ID               uint            `gorm:"primaryKey"`
	OwnerID          uint            `gorm:"not null;index"`
	Name             string          `gorm:"not null"`
	Category         Category        `gorm:"type:varchar(16);not null"`
	Supplier         *string
	PurchaseCost     decimal.Decimal `gorm:"type:numeric;not null"`
	PurchaseQuantity decimal.Decimal `gorm:"type:numeric;not null"`
	Stock            decimal.Decimal `gorm:"type:numeric;not null;default:0;index"`
	Unit             Unit            `gorm:"type:varchar(16);not null"`
	// Version increases on every write so concurrent stock adjustments can detect stale reads.
	Version   uint `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *InventoryItem) CostLine() costing.Line {
	return costing.Line{
		Stock:            i.Stock,
		PurchaseCost:     i.PurchaseCost,
		PurchaseQuantity: i.PurchaseQuantity,
	}
}

// UnitCost is derived on read and never stored.
func (i *InventoryItem) UnitCost() (decimal.Decimal, bool) {
	return costing.UnitCost(i.PurchaseCost, i.PurchaseQuantity)
}

func (i *InventoryItem) OutOfStock() bool {
	return !i.Stock.IsPositive()
}
