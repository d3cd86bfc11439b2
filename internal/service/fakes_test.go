package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repo"
)

// memStore is an in-memory implementation of every repository interface,
// shared by the service tests.
type memStore struct {
	users      map[uint]*domain.User
	wallets    map[uint]*domain.Wallet
	currencies map[string]domain.Currency
	types      map[uint]*domain.OperationType
	operations map[uint]*domain.Operation
	nextID     uint
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uint]*domain.User{},
		wallets:    map[uint]*domain.Wallet{},
		currencies: map[string]domain.Currency{},
		types:      map[uint]*domain.OperationType{},
		operations: map[uint]*domain.Operation{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) repos() repo.Repos {
	return repo.Repos{
		Users:          s,
		Wallets:        walletRepo{s},
		Currencies:     s,
		OperationTypes: typeRepo{s},
		Operations:     operationRepo{s},
	}
}

// memUnitOfWork satisfies repo.UnitOfWork without real transactions; the
// service rules under test do not depend on rollback behavior.
type memUnitOfWork struct {
	store *memStore
}

func (u *memUnitOfWork) Do(ctx context.Context, fn func(r repo.Repos) error) error {
	return fn(u.store.repos())
}

// Users

func (s *memStore) Create(ctx context.Context, u *domain.User) error {
	u.ID = s.id()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) Update(ctx context.Context, u *domain.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) ByID(ctx context.Context, id uint) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok || u.IsDeleted {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if !u.IsDeleted && u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	u, err := s.ByUsername(ctx, username)
	return u != nil, err
}

// Wallets

func (s *memStore) CreateWallet(w *domain.Wallet) {
	w.ID = s.id()
	cp := *w
	s.wallets[w.ID] = &cp
}

func (s *memStore) walletByID(userID, id uint) *domain.Wallet {
	w, ok := s.wallets[id]
	if !ok || w.IsDeleted || w.UserID != userID {
		return nil
	}
	cp := *w
	return &cp
}

// Currencies

func (s *memStore) List(ctx context.Context) ([]domain.Currency, error) {
	out := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *memStore) Exists(ctx context.Context, code string) (bool, error) {
	_, ok := s.currencies[code]
	return ok, nil
}

func (s *memStore) Upsert(ctx context.Context, currencies []domain.Currency) error {
	for _, c := range currencies {
		s.currencies[c.Code] = c
	}
	return nil
}

// Operation types

func (s *memStore) CountByType(ctx context.Context, typeID uint) (int64, error) {
	var count int64
	for _, op := range s.operations {
		if !op.IsDeleted && op.TypeID == typeID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) Taken(ctx context.Context, userID uint, kind domain.OperationKind, name string, excludeID uint) (bool, error) {
	for _, t := range s.types {
		if t.IsDeleted || t.UserID != userID || t.ID == excludeID {
			continue
		}
		if t.Kind == kind && t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) TotalsByKind(ctx context.Context, userID uint, from, to time.Time) (map[domain.OperationKind]decimal.Decimal, error) {
	totals := map[domain.OperationKind]decimal.Decimal{}
	for _, op := range s.operations {
		if op.IsDeleted || op.Date.Before(from) || op.Date.After(to) {
			continue
		}
		w, ok := s.wallets[op.WalletID]
		if !ok || w.IsDeleted || w.UserID != userID {
			continue
		}
		t, ok := s.types[op.TypeID]
		if !ok {
			continue
		}
		totals[t.Kind] = totals[t.Kind].Add(op.AmountBase)
	}
	return totals, nil
}

// The repo interfaces overlap on method names (Create/Update/ByID/List), so
// the per-entity variants live behind small adapter types.

type walletRepo struct{ s *memStore }

func (r walletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.s.CreateWallet(w)
	return nil
}

func (r walletRepo) Update(ctx context.Context, w *domain.Wallet) error {
	cp := *w
	r.s.wallets[w.ID] = &cp
	return nil
}

func (r walletRepo) ByID(ctx context.Context, userID, id uint) (*domain.Wallet, error) {
	return r.s.walletByID(userID, id), nil
}

func (r walletRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Wallet, error) {
	var out []domain.Wallet
	for _, w := range r.s.wallets {
		if !w.IsDeleted && w.UserID == userID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r walletRepo) NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	for _, w := range r.s.wallets {
		if w.IsDeleted || w.UserID != userID || w.ID == excludeID {
			continue
		}
		if w.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type typeRepo struct{ s *memStore }

func (r typeRepo) Create(ctx context.Context, t *domain.OperationType) error {
	t.ID = r.s.id()
	cp := *t
	r.s.types[t.ID] = &cp
	return nil
}

func (r typeRepo) Update(ctx context.Context, t *domain.OperationType) error {
	cp := *t
	r.s.types[t.ID] = &cp
	return nil
}

func (r typeRepo) ByID(ctx context.Context, userID, id uint) (*domain.OperationType, error) {
	t, ok := r.s.types[id]
	if !ok || t.IsDeleted || t.UserID != userID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r typeRepo) ListByUser(ctx context.Context, userID uint) ([]domain.OperationType, error) {
	var out []domain.OperationType
	for _, t := range r.s.types {
		if !t.IsDeleted && t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r typeRepo) Taken(ctx context.Context, userID uint, kind domain.OperationKind, name string, excludeID uint) (bool, error) {
	return r.s.Taken(ctx, userID, kind, name, excludeID)
}

type operationRepo struct{ s *memStore }

func (r operationRepo) Create(ctx context.Context, op *domain.Operation) error {
	op.ID = r.s.id()
	cp := *op
	r.s.operations[op.ID] = &cp
	return nil
}

func (r operationRepo) Update(ctx context.Context, op *domain.Operation) error {
	cp := *op
	r.s.operations[op.ID] = &cp
	return nil
}

func (r operationRepo) ByID(ctx context.Context, userID, id uint) (*domain.Operation, error) {
	op, ok := r.s.operations[id]
	if !ok || op.IsDeleted {
		return nil, nil
	}
	if r.s.walletByID(userID, op.WalletID) == nil {
		return nil, nil
	}
	cp := *op
	return &cp, nil
}

func (r operationRepo) List(ctx context.Context, userID, walletID uint, page, pageSize int) ([]domain.Operation, int64, error) {
	var all []domain.Operation
	for _, op := range r.s.operations {
		if op.IsDeleted {
			continue
		}
		if walletID != 0 && op.WalletID != walletID {
			continue
		}
		if r.s.walletByID(userID, op.WalletID) == nil {
			continue
		}
		all = append(all, *op)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r operationRepo) CountByType(ctx context.Context, typeID uint) (int64, error) {
	return r.s.CountByType(ctx, typeID)
}

func (r operationRepo) TotalsByKind(ctx context.Context, userID uint, from, to time.Time) (map[domain.OperationKind]decimal.Decimal, error) {
	return r.s.TotalsByKind(ctx, userID, from, to)
}

// fakeReportCache records which users had their cached reports dropped.
type fakeReportCache struct {
	invalidated []uint
}

func (f *fakeReportCache) InvalidateReports(ctx context.Context, userID uint) {
	f.invalidated = append(f.invalidated, userID)
}

// rateCall records one provider lookup for assertions.
type rateCall struct {
	From, To string
	Date     time.Time
}

// fakeRates is a scripted RateProvider.
type fakeRates struct {
	rate    decimal.Decimal
	err     error
	catalog map[string]string
	calls   []rateCall
}

func (f *fakeRates) Rate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	f.calls = append(f.calls, rateCall{From: from, To: to, Date: date})
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.rate, nil
}

func (f *fakeRates) Currencies(ctx context.Context) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}
