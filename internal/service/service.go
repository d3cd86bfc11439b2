// Package service holds the application services: one per aggregate, each
// orchestrating validation, uniqueness checks, entity mutation and the
// transactional commit. Every method takes the acting user explicitly; there
// is no ambient request state.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fintrack/internal/apperr"
	"fintrack/internal/utils"
)

// Pagination defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateLayout is the wire format for operation and report dates.
const DateLayout = "2006-01-02"

// ReportCache drops a user's cached report responses after any write that
// changes what a report would return: operation writes and wallet writes
// alike, since soft-deleting a wallet removes its operations from the
// aggregation.
type ReportCache interface {
	InvalidateReports(ctx context.Context, userID uint)
}

// reportCachePrefix keys every cached report for one user.
func reportCachePrefix(userID uint) string {
	return fmt.Sprintf("report:user:%d:", userID)
}

type redisReportCache struct {
	rdb *redis.Client
}

// NewReportCache builds the redis-backed ReportCache. A nil rdb disables
// invalidation.
func NewReportCache(rdb *redis.Client) ReportCache {
	return &redisReportCache{rdb: rdb}
}

// InvalidateReports removes the user's cached reports. Cache failures are
// logged, never surfaced.
func (c *redisReportCache) InvalidateReports(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	if err := utils.DeleteCacheByPrefix(ctx, c.rdb, reportCachePrefix(userID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Failed to invalidate report cache")
	}
}

// RateProvider abstracts the external exchange-rate API.
type RateProvider interface {
	Rate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)
	Currencies(ctx context.Context) (map[string]string, error)
}

// NormalizePage clamps pagination parameters: pages below 1 become the first
// page, page sizes outside [1, MaxPageSize] fall back to the default.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// Page is a paginated result envelope.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// parseDate parses a wire-format date, reporting a field-level validation
// error on failure.
func parseDate(field, value string) (time.Time, *apperr.Error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperr.ValidationMsg(field, "must be a date in "+DateLayout+" format")
	}
	return t, nil
}

// checkAmount enforces the money-amount rules shared by create and update:
// positive value with at most two decimal places.
func checkAmount(amount decimal.Decimal) *apperr.Error {
	if !amount.IsPositive() {
		return apperr.ValidationMsg("amount_original", "must be greater than 0")
	}
	if amount.Exponent() < -2 {
		return apperr.ValidationMsg("amount_original", "must have at most 2 decimal places")
	}
	return nil
}
