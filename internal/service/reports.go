package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
	"fintrack/internal/repo"
	"fintrack/internal/utils"
)

// reportCacheTTL keeps report responses briefly; operation writes invalidate
// them eagerly anyway.
const reportCacheTTL = 60 * time.Second

// Report totals operations over an inclusive date range, in base currencies.
type Report struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}

// ReportService aggregates a user's operations into income/expense totals.
type ReportService struct {
	repos repo.Repos
	rdb   *redis.Client
}

// NewReportService builds a ReportService. rdb may be nil to disable caching.
func NewReportService(repos repo.Repos, rdb *redis.Client) *ReportService {
	return &ReportService{repos: repos, rdb: rdb}
}

// Daily reports totals for one calendar day.
func (s *ReportService) Daily(ctx context.Context, userID uint, day string) (*Report, error) {
	date, verr := parseDate("date", day)
	if verr != nil {
		return nil, verr
	}
	return s.build(ctx, userID, date, date)
}

// Period reports totals over an inclusive date range. A range whose start is
// after its end is rejected before any repository query runs.
func (s *ReportService) Period(ctx context.Context, userID uint, from, to string) (*Report, error) {
	start, verr := parseDate("from", from)
	if verr != nil {
		return nil, verr
	}
	end, verr := parseDate("to", to)
	if verr != nil {
		return nil, verr
	}
	if start.After(end) {
		return nil, apperr.ValidationMsg("from", "must not be after the end date")
	}
	return s.build(ctx, userID, start, end)
}

// build runs the aggregation, read through the per-user report cache.
func (s *ReportService) build(ctx context.Context, userID uint, from, to time.Time) (*Report, error) {
	cacheKey := reportCachePrefix(userID) + from.Format(DateLayout) + ":" + to.Format(DateLayout)
	if s.rdb != nil {
		var cached Report
		found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached)
		if err == nil && found {
			return &cached, nil
		}
	}
	totals, err := s.repos.Operations.TotalsByKind(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	report := &Report{
		From:         from.Format(DateLayout),
		To:           to.Format(DateLayout),
		TotalIncome:  totals[domain.KindIncome],
		TotalExpense: totals[domain.KindExpense],
	}
	report.Net = report.TotalIncome.Sub(report.TotalExpense)
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, report, reportCacheTTL)
	}
	return report, nil
}
