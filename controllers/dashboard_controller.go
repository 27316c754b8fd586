package controllers

import (
	"crumbs/costing"
	"crumbs/dto"
	"crumbs/models"
	"crumbs/services"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IDashboardController interface {
	GetStats(ctx *gin.Context)
	GetLowestStockItems(ctx *gin.Context)
	GetSummary(ctx *gin.Context)
}

type DashboardController struct {
	service services.IDashboardService
	logger  *slog.Logger
}

func NewDashboardController(service services.IDashboardService, logger *slog.Logger) IDashboardController {
	return &DashboardController{service: service, logger: logger}
}

func (c *DashboardController) GetStats(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	stats, err := c.service.GetStats(ctx.Request.Context(), owner.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": toStatsResponse(*stats)})
}

func (c *DashboardController) GetLowestStockItems(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	items, err := c.service.GetLowestStockItems(ctx.Request.Context(), owner.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": toLowestStockResponse(items)})
}

func (c *DashboardController) GetSummary(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	summary, err := c.service.GetSummary(ctx.Request.Context(), owner.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": dto.DashboardResponse{
		Stats:            toStatsResponse(summary.Stats),
		LowestStockItems: toLowestStockResponse(summary.LowestStockItems),
	}})
}

func toStatsResponse(stats services.DashboardStats) dto.DashboardStatsResponse {
	value := stats.TotalInventoryValue.Round(costing.CurrencyPlaces)
	return dto.DashboardStatsResponse{
		TotalInventoryItems:        stats.TotalInventoryItems,
		TotalInventoryValue:        value,
		TotalInventoryValueDisplay: costing.FormatCurrency(value),
		OutOfStockItems:            stats.OutOfStockItems,
		TotalRecipes:               stats.TotalRecipes,
		Currency:                   stats.Currency,
	}
}

func toLowestStockResponse(items []models.InventoryItem) []dto.LowestStockItemResponse {
	response := make([]dto.LowestStockItemResponse, 0, len(items))
	for i := range items {
		response = append(response, dto.LowestStockItemResponse{
			ID:           items[i].ID,
			Name:         items[i].Name,
			Stock:        items[i].Stock,
			StockDisplay: costing.FormatQuantity(items[i].Stock),
			Unit:         string(items[i].Unit),
			OutOfStock:   items[i].OutOfStock(),
		})
	}
	return response
}
