package repositories

import (
	"context"
	"crumbs/models"

	"gorm.io/gorm"
)

// IRecipeRepository exposes the slice of the recipe store the dashboard reads.
type IRecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) IRecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *RecipeRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("owner_id = ?", ownerID).Count(&count)
	return count, result.Error
}
