package dto

import "github.com/shopspring/decimal"

type DashboardStatsResponse struct {
	TotalInventoryItems        int64           `json:"totalInventoryItems"`
	TotalInventoryValue        decimal.Decimal `json:"totalInventoryValue"`
	TotalInventoryValueDisplay string          `json:"totalInventoryValueDisplay"`
	OutOfStockItems            int64           `json:"outOfStockItems"`
	TotalRecipes               int64           `json:"totalRecipes"`
	Currency                   string          `json:"currency"`
}

type LowestStockItemResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Stock        decimal.Decimal `json:"stock"`
	StockDisplay string          `json:"stockDisplay"`
	Unit         string          `json:"unit"`
	OutOfStock   bool            `json:"outOfStock"`
}

type DashboardResponse struct {
	Stats            DashboardStatsResponse    `json:"stats"`
	LowestStockItems []LowestStockItemResponse `json:"lowestStockItems"`
}
