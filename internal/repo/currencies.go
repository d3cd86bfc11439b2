package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/domain"
)

type gormCurrencies struct {
	db *gorm.DB
}

func (r *gormCurrencies) List(ctx context.Context) ([]domain.Currency, error) {
	var currencies []domain.Currency
	err := r.db.WithContext(ctx).Order("code asc").Find(&currencies).Error
	return currencies, err
}

func (r *gormCurrencies) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Currency{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// Upsert inserts new catalog entries and refreshes names of existing ones.
func (r *gormCurrencies) Upsert(ctx context.Context, currencies []domain.Currency) error {
	if len(currencies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&currencies).Error
}
