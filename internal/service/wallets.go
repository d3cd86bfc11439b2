package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
	"fintrack/internal/repo"
	"fintrack/internal/validation"
)

// WalletInput is the create/update payload for a wallet.
type WalletInput struct {
	Name         string `json:"name" validate:"required,min=1,max=64"`
	CurrencyCode string `json:"currency_code" validate:"required,len=3,uppercase"`
}

// WalletService manages a user's wallets.
type WalletService struct {
	repos repo.Repos
	uow   repo.UnitOfWork
	cache ReportCache
}

// NewWalletService builds a WalletService. cache may be nil, which disables
// report-cache invalidation.
func NewWalletService(repos repo.Repos, uow repo.UnitOfWork, cache ReportCache) *WalletService {
	return &WalletService{repos: repos, uow: uow, cache: cache}
}

// List returns the user's non-deleted wallets.
func (s *WalletService) List(ctx context.Context, userID uint) ([]domain.Wallet, error) {
	return s.repos.Wallets.ListByUser(ctx, userID)
}

// Get returns one wallet owned by the user.
func (s *WalletService) Get(ctx context.Context, userID, walletID uint) (*domain.Wallet, error) {
	wallet, err := s.repos.Wallets.ByID(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, apperr.NotFound("wallet %d not found", walletID)
	}
	return wallet, nil
}

// Create validates the input, enforces per-user name uniqueness and the
// currency catalog, then persists the wallet.
func (s *WalletService) Create(ctx context.Context, userID uint, in WalletInput) (*domain.Wallet, error) {
	if verr := validation.Struct(in); verr != nil {
		return nil, verr
	}
	wallet := &domain.Wallet{UserID: userID, Name: in.Name, CurrencyCode: in.CurrencyCode}
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		if err := s.checkWallet(ctx, r, userID, in, 0); err != nil {
			return err
		}
		return r.Wallets.Create(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"wallet_id": wallet.ID,
		"currency":  wallet.CurrencyCode,
	}).Info("Wallet created")
	return wallet, nil
}

// Update renames a wallet or changes its base currency. Changing the currency
// does not recompute stored base amounts; historical operations keep the
// conversion made at their transaction date.
func (s *WalletService) Update(ctx context.Context, userID, walletID uint, in WalletInput) (*domain.Wallet, error) {
	if verr := validation.Struct(in); verr != nil {
		return nil, verr
	}
	var wallet *domain.Wallet
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		var err error
		wallet, err = r.Wallets.ByID(ctx, userID, walletID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return apperr.NotFound("wallet %d not found", walletID)
		}
		if err := s.checkWallet(ctx, r, userID, in, walletID); err != nil {
			return err
		}
		wallet.Name = in.Name
		wallet.CurrencyCode = in.CurrencyCode
		return r.Wallets.Update(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, userID)
	return wallet, nil
}

// Delete soft-deletes a wallet; its operations drop out of listings and
// reports because every query joins on non-deleted wallets, so cached
// reports must go too.
func (s *WalletService) Delete(ctx context.Context, userID, walletID uint) error {
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		wallet, err := r.Wallets.ByID(ctx, userID, walletID)
		if err != nil {
			return err
		}
		if wallet == nil {
			return apperr.NotFound("wallet %d not found", walletID)
		}
		wallet.IsDeleted = true
		return r.Wallets.Update(ctx, wallet)
	})
	if err != nil {
		return err
	}
	s.invalidateReports(ctx, userID)
	return nil
}

// invalidateReports drops the user's cached report responses after a write
// that changes what reports would return.
func (s *WalletService) invalidateReports(ctx context.Context, userID uint) {
	if s.cache != nil {
		s.cache.InvalidateReports(ctx, userID)
	}
}

// checkWallet runs the shared create/update business rules.
func (s *WalletService) checkWallet(ctx context.Context, r repo.Repos, userID uint, in WalletInput, excludeID uint) error {
	taken, err := r.Wallets.NameTaken(ctx, userID, in.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("wallet named %q already exists", in.Name)
	}
	known, err := r.Currencies.Exists(ctx, in.CurrencyCode)
	if err != nil {
		return err
	}
	if !known {
		return apperr.ValidationMsg("currency_code", "currency "+in.CurrencyCode+" is not supported")
	}
	return nil
}
