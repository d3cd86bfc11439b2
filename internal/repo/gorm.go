package repo

import (
	"context"

	"gorm.io/gorm"
)

// New builds the full repository set backed by a gorm handle. The same
// constructor serves both the request-scoped set and transaction-scoped sets
// inside the unit of work.
func New(db *gorm.DB) Repos {
	return Repos{
		Users:          &gormUsers{db: db},
		Wallets:        &gormWallets{db: db},
		Currencies:     &gormCurrencies{db: db},
		OperationTypes: &gormOperationTypes{db: db},
		Operations:     &gormOperations{db: db},
	}
}

// gormUnitOfWork wraps gorm's transaction support: every mutation made through
// the repositories handed to fn commits or rolls back together.
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork returns a UnitOfWork backed by gorm transactions.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// Do runs fn inside a single database transaction.
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(r Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
