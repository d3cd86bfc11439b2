package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/domain"
)

type gormOperationTypes struct {
	db *gorm.DB
}

func (r *gormOperationTypes) Create(ctx context.Context, t *domain.OperationType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *gormOperationTypes) Update(ctx context.Context, t *domain.OperationType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *gormOperationTypes) ByID(ctx context.Context, userID, id uint) (*domain.OperationType, error) {
	var t domain.OperationType
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormOperationTypes) ListByUser(ctx context.Context, userID uint) ([]domain.OperationType, error) {
	var types []domain.OperationType
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("kind asc, name asc").
		Find(&types).Error
	return types, err
}

func (r *gormOperationTypes) Taken(ctx context.Context, userID uint, kind domain.OperationKind, name string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.OperationType{}).
		Where("user_id = ? AND kind = ? AND name = ? AND is_deleted = ?", userID, kind, name, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
