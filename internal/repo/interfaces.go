package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// Users persists user records. Lookups exclude soft-deleted rows.
type Users interface {
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	ByID(ctx context.Context, id uint) (*domain.User, error)
	ByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// Wallets persists wallet records scoped to their owning user.
type Wallets interface {
	Create(ctx context.Context, w *domain.Wallet) error
	Update(ctx context.Context, w *domain.Wallet) error
	ByID(ctx context.Context, userID, id uint) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Wallet, error)
	// NameTaken checks wallet-name uniqueness among the user's non-deleted
	// wallets; excludeID skips the wallet being updated (0 for creates).
	NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error)
}

// Currencies reads and refreshes the currency catalog.
type Currencies interface {
	List(ctx context.Context) ([]domain.Currency, error)
	Exists(ctx context.Context, code string) (bool, error)
	Upsert(ctx context.Context, currencies []domain.Currency) error
}

// OperationTypes persists user-defined operation categories.
type OperationTypes interface {
	Create(ctx context.Context, t *domain.OperationType) error
	Update(ctx context.Context, t *domain.OperationType) error
	ByID(ctx context.Context, userID, id uint) (*domain.OperationType, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.OperationType, error)
	// Taken checks (user, kind, name) uniqueness among non-deleted types.
	Taken(ctx context.Context, userID uint, kind domain.OperationKind, name string, excludeID uint) (bool, error)
}

// Operations persists financial operations. All lookups are scoped to the
// owning user through the wallet relation.
type Operations interface {
	Create(ctx context.Context, op *domain.Operation) error
	Update(ctx context.Context, op *domain.Operation) error
	ByID(ctx context.Context, userID, id uint) (*domain.Operation, error)
	// List returns one page of the user's operations, newest date first.
	// walletID of 0 means all wallets.
	List(ctx context.Context, userID, walletID uint, page, pageSize int) ([]domain.Operation, int64, error)
	// CountByType counts non-deleted operations referencing a type, backing
	// the cannot-delete-referenced-type rule.
	CountByType(ctx context.Context, typeID uint) (int64, error)
	// TotalsByKind sums base amounts per kind over [from, to] inclusive.
	TotalsByKind(ctx context.Context, userID uint, from, to time.Time) (map[domain.OperationKind]decimal.Decimal, error)
}

// Repos bundles every repository so the unit of work can hand a
// transaction-scoped set to a closure.
type Repos struct {
	Users          Users
	Wallets        Wallets
	Currencies     Currencies
	OperationTypes OperationTypes
	Operations     Operations
}

// UnitOfWork runs a function against transaction-scoped repositories and
// commits all of its mutations atomically.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}
