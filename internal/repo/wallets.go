package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/domain"
)

type gormWallets struct {
	db *gorm.DB
}

func (r *gormWallets) Create(ctx context.Context, w *domain.Wallet) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *gormWallets) Update(ctx context.Context, w *domain.Wallet) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *gormWallets) ByID(ctx context.Context, userID, id uint) (*domain.Wallet, error) {
	var w domain.Wallet
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *gormWallets) ListByUser(ctx context.Context, userID uint) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("name asc").
		Find(&wallets).Error
	return wallets, err
}

func (r *gormWallets) NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Wallet{}).
		Where("user_id = ? AND name = ? AND is_deleted = ?", userID, name, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
