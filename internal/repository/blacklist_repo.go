package repository

import (
	"context"
	"time"

	"authapi/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

type blacklistedTokenModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Token     string    `gorm:"column:token;uniqueIndex;type:text"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (blacklistedTokenModel) TableName() string { return "token_blacklist" }

func (r *BlacklistRepository) Add(ctx context.Context, t *domain.BlacklistedToken) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m := blacklistedTokenModel{
		ID:        t.ID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	t.CreatedAt = m.CreatedAt
	return nil
}

// Exists reports whether the exact token value has been revoked.
func (r *BlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&blacklistedTokenModel{}).
		Where("token = ?", token).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *BlacklistRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&blacklistedTokenModel{})
	return tx.RowsAffected, tx.Error
}
