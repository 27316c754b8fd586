package repositories

import (
	"context"
	"crumbs/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ITokenRepository interface {
	AddBlacklistedToken(ctx context.Context, token string, expiresAt int64) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) ITokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) AddBlacklistedToken(ctx context.Context, token string, expiresAt int64) error {
	blacklistedToken := models.BlacklistedToken{
		Token:     token,
		ExpiresAt: expiresAt,
	}
	err := r.db.WithContext(ctx).Create(&blacklistedToken).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Logging out twice is not an error.
		return nil
	}
	return err
}

func (r *TokenRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CleanExpiredTokens drops blacklist rows whose token has expired on its own.
func (r *TokenRepository) CleanExpiredTokens(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now().Unix()).Delete(&models.BlacklistedToken{})
	return result.RowsAffected, result.Error
}
