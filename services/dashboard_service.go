package services

import (
	"context"
	"crumbs/costing"
	"crumbs/metrics"
	"crumbs/models"
	"crumbs/repositories"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// LowestStockLimit is how many items the dashboard flags.
const LowestStockLimit = 5

type DashboardStats struct {
	TotalInventoryItems int64
	TotalInventoryValue decimal.Decimal
	OutOfStockItems     int64
	TotalRecipes        int64
	Currency            string
}

type DashboardSummary struct {
	Stats            DashboardStats
	LowestStockItems []models.InventoryItem
}

// IDashboardService answers read-only rollups for one owner. Each query reads committed state
// when it runs; the rollup is not an atomic snapshot across queries.
type IDashboardService interface {
	GetStats(ctx context.Context, ownerID uint) (*DashboardStats, error)
	GetLowestStockItems(ctx context.Context, ownerID uint) ([]models.InventoryItem, error)
	GetSummary(ctx context.Context, ownerID uint) (*DashboardSummary, error)
}

type DashboardService struct {
	inventory repositories.IInventoryRepository
	recipes   repositories.IRecipeRepository
	users     repositories.IUserRepository
	logger    *slog.Logger
}

func NewDashboardService(
	inventory repositories.IInventoryRepository,
	recipes repositories.IRecipeRepository,
	users repositories.IUserRepository,
	logger *slog.Logger,
) IDashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{inventory: inventory, recipes: recipes, users: users, logger: logger}
}

func (s *DashboardService) GetStats(ctx context.Context, ownerID uint) (*DashboardStats, error) {
	summary, err := s.collect(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}
	return &summary.Stats, nil
}

func (s *DashboardService) GetLowestStockItems(ctx context.Context, ownerID uint) ([]models.InventoryItem, error) {
	items, err := s.inventory.LowestStock(ctx, ownerID, LowestStockLimit)
	if err != nil {
		return nil, fmt.Errorf("lowest stock items: %w", err)
	}
	return items, nil
}

func (s *DashboardService) GetSummary(ctx context.Context, ownerID uint) (*DashboardSummary, error) {
	return s.collect(ctx, ownerID, true)
}

// collect fans the independent queries out and joins them. Any failure, including cancellation
// of ctx, discards every partial result.
func (s *DashboardService) collect(ctx context.Context, ownerID uint, withLowest bool) (*DashboardSummary, error) {
	start := time.Now()
	var summary DashboardSummary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		owner, err := s.users.FindById(gctx, ownerID)
		if err != nil {
			return translate(err, "user")
		}
		summary.Stats.Currency = owner.Currency
		return nil
	})
	g.Go(func() error {
		count, err := s.inventory.CountByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("count inventory items: %w", err)
		}
		summary.Stats.TotalInventoryItems = count
		return nil
	})
	g.Go(func() error {
		items, err := s.inventory.FindAll(gctx, ownerID, repositories.ListOrder{})
		if err != nil {
			return fmt.Errorf("inventory value: %w", err)
		}
		lines := make([]costing.Line, 0, len(items))
		for i := range items {
			lines = append(lines, items[i].CostLine())
		}
		summary.Stats.TotalInventoryValue = costing.InventoryValue(lines)
		return nil
	})
	g.Go(func() error {
		count, err := s.inventory.CountOutOfStock(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("count out of stock items: %w", err)
		}
		summary.Stats.OutOfStockItems = count
		return nil
	})
	g.Go(func() error {
		count, err := s.recipes.CountByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("count recipes: %w", err)
		}
		summary.Stats.TotalRecipes = count
		return nil
	})
	if withLowest {
		g.Go(func() error {
			items, err := s.inventory.LowestStock(gctx, ownerID, LowestStockLimit)
			if err != nil {
				return fmt.Errorf("lowest stock items: %w", err)
			}
			summary.LowestStockItems = items
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	metrics.ObserveDashboard(metrics.Result(err), time.Since(start))
	if err != nil {
		s.logger.Warn("dashboard aggregation failed",
			slog.Uint64("owner_id", uint64(ownerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return &summary, nil
}
