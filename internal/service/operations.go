package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
	"fintrack/internal/repo"
	"fintrack/internal/validation"
)

// OperationInput is the create/update payload for a financial operation.
type OperationInput struct {
	TypeID         uint            `json:"type_id" validate:"required"`
	AmountOriginal decimal.Decimal `json:"amount_original"`
	CurrencyCode   *string         `json:"currency_code" validate:"omitempty,len=3,uppercase"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Note           string          `json:"note" validate:"max=256"`
}

// OperationService manages financial operations, including the base-amount
// conversion against the external rate provider.
type OperationService struct {
	repos repo.Repos
	uow   repo.UnitOfWork
	rates RateProvider
	cache ReportCache
}

// NewOperationService builds an OperationService. cache may be nil, which
// disables report-cache invalidation.
func NewOperationService(repos repo.Repos, uow repo.UnitOfWork, rates RateProvider, cache ReportCache) *OperationService {
	return &OperationService{repos: repos, uow: uow, rates: rates, cache: cache}
}

// Create records a new operation in a wallet. When the operation currency
// differs from the wallet's base currency the provider is asked for the rate
// at the operation date; otherwise the base amount is the original amount and
// no lookup happens.
func (s *OperationService) Create(ctx context.Context, userID, walletID uint, in OperationInput) (*domain.Operation, error) {
	if verr := validation.Struct(in); verr != nil {
		return nil, verr
	}
	if verr := checkAmount(in.AmountOriginal); verr != nil {
		return nil, verr
	}
	date, verr := parseDate("date", in.Date)
	if verr != nil {
		return nil, verr
	}
	var op *domain.Operation
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		wallet, err := r.Wallets.ByID(ctx, userID, walletID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return apperr.NotFound("wallet %d not found", walletID)
		}
		opType, err := r.OperationTypes.ByID(ctx, userID, in.TypeID)
		if err != nil {
			return err
		}
		if opType == nil {
			return apperr.NotFound("operation type %d not found", in.TypeID)
		}
		code, err := s.resolveCurrency(ctx, r, in.CurrencyCode, wallet)
		if err != nil {
			return err
		}
		base, err := s.convert(ctx, in.AmountOriginal, code, wallet.CurrencyCode, date)
		if err != nil {
			return err
		}
		op = &domain.Operation{
			WalletID:       wallet.ID,
			TypeID:         opType.ID,
			AmountOriginal: in.AmountOriginal,
			CurrencyCode:   in.CurrencyCode,
			AmountBase:     base,
			Date:           date,
			Note:           in.Note,
		}
		return r.Operations.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, userID)
	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"wallet_id":    walletID,
		"operation_id": op.ID,
		"amount_base":  op.AmountBase,
	}).Info("Operation recorded")
	return op, nil
}

// Update modifies an existing operation. The rate is re-fetched only when the
// currency or the original amount changed relative to the stored record.
func (s *OperationService) Update(ctx context.Context, userID, operationID uint, in OperationInput) (*domain.Operation, error) {
	if verr := validation.Struct(in); verr != nil {
		return nil, verr
	}
	if verr := checkAmount(in.AmountOriginal); verr != nil {
		return nil, verr
	}
	date, verr := parseDate("date", in.Date)
	if verr != nil {
		return nil, verr
	}
	var op *domain.Operation
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		var err error
		op, err = r.Operations.ByID(ctx, userID, operationID)
		if err != nil {
			return err
		}
		if op == nil {
			return apperr.NotFound("operation %d not found", operationID)
		}
		wallet, err := r.Wallets.ByID(ctx, userID, op.WalletID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return apperr.NotFound("wallet %d not found", op.WalletID)
		}
		opType, err := r.OperationTypes.ByID(ctx, userID, in.TypeID)
		if err != nil {
			return err
		}
		if opType == nil {
			return apperr.NotFound("operation type %d not found", in.TypeID)
		}
		newCode, err := s.resolveCurrency(ctx, r, in.CurrencyCode, wallet)
		if err != nil {
			return err
		}
		oldCode := wallet.CurrencyCode
		if op.CurrencyCode != nil {
			oldCode = *op.CurrencyCode
		}
		// Only a currency or amount change invalidates the stored base
		// amount; note/type/date-only edits keep the original conversion.
		if newCode != oldCode || !in.AmountOriginal.Equal(op.AmountOriginal) {
			base, err := s.convert(ctx, in.AmountOriginal, newCode, wallet.CurrencyCode, date)
			if err != nil {
				return err
			}
			op.AmountBase = base
		}
		op.TypeID = opType.ID
		op.AmountOriginal = in.AmountOriginal
		op.CurrencyCode = in.CurrencyCode
		op.Date = date
		op.Note = in.Note
		return r.Operations.Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, userID)
	return op, nil
}

// Get returns one operation owned by the user.
func (s *OperationService) Get(ctx context.Context, userID, operationID uint) (*domain.Operation, error) {
	op, err := s.repos.Operations.ByID(ctx, userID, operationID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, apperr.NotFound("operation %d not found", operationID)
	}
	return op, nil
}

// Delete soft-deletes an operation.
func (s *OperationService) Delete(ctx context.Context, userID, operationID uint) error {
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		op, err := r.Operations.ByID(ctx, userID, operationID)
		if err != nil {
			return err
		}
		if op == nil {
			return apperr.NotFound("operation %d not found", operationID)
		}
		op.IsDeleted = true
		return r.Operations.Update(ctx, op)
	})
	if err != nil {
		return err
	}
	s.invalidateReports(ctx, userID)
	return nil
}

// List returns a page of the user's operations, optionally scoped to one
// wallet (walletID 0 means all wallets). Page parameters are clamped, never
// rejected.
func (s *OperationService) List(ctx context.Context, userID, walletID uint, page, pageSize int) (*Page[domain.Operation], error) {
	page, pageSize = NormalizePage(page, pageSize)
	if walletID != 0 {
		wallet, err := s.repos.Wallets.ByID(ctx, userID, walletID)
		if err != nil {
			return nil, err
		}
		if wallet == nil {
			return nil, apperr.NotFound("wallet %d not found", walletID)
		}
	}
	ops, total, err := s.repos.Operations.List(ctx, userID, walletID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page[domain.Operation]{
		Items:      ops,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// resolveCurrency picks the operation currency (explicit code or the wallet's
// base currency) and checks explicit codes against the catalog.
func (s *OperationService) resolveCurrency(ctx context.Context, r repo.Repos, code *string, wallet *domain.Wallet) (string, error) {
	if code == nil {
		return wallet.CurrencyCode, nil
	}
	known, err := r.Currencies.Exists(ctx, *code)
	if err != nil {
		return "", err
	}
	if !known {
		return "", apperr.ValidationMsg("currency_code", "currency "+*code+" is not supported")
	}
	return *code, nil
}

// convert computes the base-currency amount at the given date. Same-currency
// operations never reach the provider.
func (s *OperationService) convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.rates.Rate(ctx, from, to, date)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), nil
}

// invalidateReports drops the user's cached report responses after a write.
func (s *OperationService) invalidateReports(ctx context.Context, userID uint) {
	if s.cache != nil {
		s.cache.InvalidateReports(ctx, userID)
	}
}
