package controllers

import (
	"crumbs/constants"
	"crumbs/costing"
	"crumbs/dto"
	"crumbs/models"
	"crumbs/repositories"
	"crumbs/services"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IInventoryController interface {
	FindAll(ctx *gin.Context)
	FindById(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	AddStock(ctx *gin.Context)
	Delete(ctx *gin.Context)
	UnitCostPreview(ctx *gin.Context)
}

type InventoryController struct {
	service services.IInventoryService
	logger  *slog.Logger
}

func NewInventoryController(service services.IInventoryService, logger *slog.Logger) IInventoryController {
	return &InventoryController{service: service, logger: logger}
}

func (c *InventoryController) FindAll(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	order := repositories.ListOrder{}
	switch sort := ctx.Query("sort"); sort {
	case "", "name", "stock", "createdAt", "category":
		order.Field = sort
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidSortField, "field": "sort"})
		return
	}
	switch ctx.DefaultQuery("order", "asc") {
	case "asc":
	case "desc":
		order.Desc = true
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidSortOrder, "field": "order"})
		return
	}

	items, err := c.service.FindAll(ctx.Request.Context(), owner.ID, order)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	data := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, toInventoryItemResponse(item))
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data})
}

func (c *InventoryController) FindById(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	itemID, ok := idParam(ctx)
	if !ok {
		return
	}

	item, err := c.service.FindById(ctx.Request.Context(), itemID, owner.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": toInventoryItemResponse(*item)})
}

func (c *InventoryController) Create(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input dto.InventoryItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	newItem, err := c.service.Create(ctx.Request.Context(), input, owner.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"data": toInventoryItemResponse(*newItem)})
}

func (c *InventoryController) Update(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	itemID, ok := idParam(ctx)
	if !ok {
		return
	}

	var input dto.InventoryItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	updatedItem, err := c.service.Update(ctx.Request.Context(), itemID, owner.ID, input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": toInventoryItemResponse(*updatedItem)})
}

func (c *InventoryController) AddStock(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	itemID, ok := idParam(ctx)
	if !ok {
		return
	}

	var input dto.AddStockInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	item, err := c.service.AddStock(ctx.Request.Context(), itemID, owner.ID, input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": toInventoryItemResponse(*item)})
}

func (c *InventoryController) Delete(ctx *gin.Context) {
	owner, ok := caller(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	itemID, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), itemID, owner.ID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusOK)
}

// UnitCostPreview derives a unit cost from unsaved form values. Bad input previews as undefined.
func (c *InventoryController) UnitCostPreview(ctx *gin.Context) {
	unitCost, ok := costing.ParseUnitCost(ctx.Query("purchaseCost"), ctx.Query("purchaseQuantity"))
	response := dto.UnitCostPreviewResponse{UnitCostDisplay: costing.FormatUnitCost(unitCost, ok)}
	if ok {
		rounded := unitCost.Round(costing.UnitCostPlaces)
		response.UnitCost = &rounded
	}
	ctx.JSON(http.StatusOK, gin.H{"data": response})
}

func toInventoryItemResponse(item models.InventoryItem) dto.InventoryItemResponse {
	response := dto.InventoryItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		Category:         string(item.Category),
		Supplier:         item.Supplier,
		PurchaseCost:     item.PurchaseCost,
		PurchaseQuantity: item.PurchaseQuantity,
		Stock:            item.Stock,
		Unit:             string(item.Unit),
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
	unitCost, ok := item.UnitCost()
	if ok {
		rounded := unitCost.Round(costing.UnitCostPlaces)
		response.UnitCost = &rounded
	}
	response.UnitCostDisplay = costing.FormatUnitCost(unitCost, ok)
	return response
}
