package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
	"fintrack/internal/repo"
	"fintrack/internal/utils"
)

// currencyCacheKey caches the full catalog; it only changes on refresh.
const (
	currencyCacheKey = "currencies:catalog"
	currencyCacheTTL = 10 * time.Minute
)

// CurrencyService serves the currency catalog and refreshes it from the
// provider's own catalog.
type CurrencyService struct {
	repos repo.Repos
	uow   repo.UnitOfWork
	rates RateProvider
	rdb   *redis.Client
}

// NewCurrencyService builds a CurrencyService. rdb may be nil to disable the
// catalog cache.
func NewCurrencyService(repos repo.Repos, uow repo.UnitOfWork, rates RateProvider, rdb *redis.Client) *CurrencyService {
	return &CurrencyService{repos: repos, uow: uow, rates: rates, rdb: rdb}
}

// List returns the supported currencies, read through the redis cache.
func (s *CurrencyService) List(ctx context.Context) ([]domain.Currency, error) {
	var currencies []domain.Currency
	if s.rdb != nil {
		found, err := utils.GetCache(ctx, s.rdb, currencyCacheKey, &currencies)
		if err == nil && found {
			return currencies, nil
		}
	}
	currencies, err := s.repos.Currencies.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		_ = utils.SetCache(ctx, s.rdb, currencyCacheKey, currencies, currencyCacheTTL)
	}
	return currencies, nil
}

// Refresh pulls the provider's currency catalog and upserts it into the
// local reference table, then drops the cached copy.
func (s *CurrencyService) Refresh(ctx context.Context) (int, error) {
	catalog, err := s.rates.Currencies(ctx)
	if err != nil {
		return 0, err
	}
	currencies := make([]domain.Currency, 0, len(catalog))
	for code, name := range catalog {
		currencies = append(currencies, domain.Currency{Code: code, Name: name})
	}
	err = s.uow.Do(ctx, func(r repo.Repos) error {
		return r.Currencies.Upsert(ctx, currencies)
	})
	if err != nil {
		return 0, err
	}
	if s.rdb != nil {
		_ = utils.DeleteCache(ctx, s.rdb, currencyCacheKey)
	}
	logrus.WithFields(logrus.Fields{"count": len(currencies)}).Info("Currency catalog refreshed")
	return len(currencies), nil
}
