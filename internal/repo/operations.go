package repo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/domain"
)

type gormOperations struct {
	db *gorm.DB
}

func (r *gormOperations) Create(ctx context.Context, op *domain.Operation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *gormOperations) Update(ctx context.Context, op *domain.Operation) error {
	return r.db.WithContext(ctx).Save(op).Error
}

// userScope joins operations to their wallets so every lookup stays inside
// the requesting user's data.
func (r *gormOperations) userScope(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Operation{}).
		Joins("JOIN wallets ON wallets.id = operations.wallet_id").
		Where("wallets.user_id = ? AND wallets.is_deleted = ? AND operations.is_deleted = ?",
			userID, false, false)
}

func (r *gormOperations) ByID(ctx context.Context, userID, id uint) (*domain.Operation, error) {
	var op domain.Operation
	err := r.userScope(ctx, userID).
		Where("operations.id = ?", id).
		First(&op).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *gormOperations) List(ctx context.Context, userID, walletID uint, page, pageSize int) ([]domain.Operation, int64, error) {
	q := r.userScope(ctx, userID)
	if walletID != 0 {
		q = q.Where("operations.wallet_id = ?", walletID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ops []domain.Operation
	err := q.Order("operations.date desc, operations.id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&ops).Error
	return ops, total, err
}

func (r *gormOperations) CountByType(ctx context.Context, typeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Operation{}).
		Where("type_id = ? AND is_deleted = ?", typeID, false).
		Count(&count).Error
	return count, err
}

// kindTotal is the scan target for the report aggregation query.
type kindTotal struct {
	Kind  domain.OperationKind
	Total decimal.Decimal
}

func (r *gormOperations) TotalsByKind(ctx context.Context, userID uint, from, to time.Time) (map[domain.OperationKind]decimal.Decimal, error) {
	var rows []kindTotal
	err := r.userScope(ctx, userID).
		Joins("JOIN operation_types ON operation_types.id = operations.type_id").
		Where("operations.date >= ? AND operations.date <= ?", from, to).
		Select("operation_types.kind AS kind, COALESCE(SUM(operations.amount_base), 0) AS total").
		Group("operation_types.kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[domain.OperationKind]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Kind] = row.Total
	}
	return totals, nil
}
