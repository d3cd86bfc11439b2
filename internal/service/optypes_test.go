package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
)

func newTypeService(store *memStore) *OperationTypeService {
	return NewOperationTypeService(store.repos(), &memUnitOfWork{store: store})
}

func TestCreateOperationType(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTypeService(store)

	created, err := svc.Create(ctx, 1, OperationTypeInput{Name: "Groceries", Kind: int(domain.KindExpense)})
	require.NoError(t, err)
	assert.Equal(t, domain.KindExpense, created.Kind)

	// Same (user, kind, name) is a conflict
	_, err = svc.Create(ctx, 1, OperationTypeInput{Name: "Groceries", Kind: int(domain.KindExpense)})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeConflict, appErr.Code)

	// Same name under the other kind is allowed
	_, err = svc.Create(ctx, 1, OperationTypeInput{Name: "Groceries", Kind: int(domain.KindIncome)})
	assert.NoError(t, err)

	// And so is the same name for another user
	_, err = svc.Create(ctx, 2, OperationTypeInput{Name: "Groceries", Kind: int(domain.KindExpense)})
	assert.NoError(t, err)
}

func TestCreateOperationTypeRejectsUnknownKind(t *testing.T) {
	ctx := context.Background()
	svc := newTypeService(newMemStore())

	_, err := svc.Create(ctx, 1, OperationTypeInput{Name: "Groceries", Kind: 7})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "kind")
}

func TestDeleteOperationType(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTypeService(store)

	unused, err := svc.Create(ctx, 1, OperationTypeInput{Name: "Gifts", Kind: int(domain.KindExpense)})
	require.NoError(t, err)
	referenced, err := svc.Create(ctx, 1, OperationTypeInput{Name: "Groceries", Kind: int(domain.KindExpense)})
	require.NoError(t, err)

	// One live operation referencing the second type
	wallet := &domain.Wallet{UserID: 1, Name: "Main", CurrencyCode: "EUR"}
	store.CreateWallet(wallet)
	store.operations[100] = &domain.Operation{
		ID:             100,
		WalletID:       wallet.ID,
		TypeID:         referenced.ID,
		AmountOriginal: decimal.RequireFromString("10.00"),
		AmountBase:     decimal.RequireFromString("10.00"),
		Date:           time.Now(),
	}

	// Unreferenced type deletes cleanly
	require.NoError(t, svc.Delete(ctx, 1, unused.ID))

	// Referenced type is a conflict
	err = svc.Delete(ctx, 1, referenced.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeConflict, appErr.Code)

	// Soft-deleting the operation lifts the restriction
	store.operations[100].IsDeleted = true
	assert.NoError(t, svc.Delete(ctx, 1, referenced.ID))
}

func TestUpdateOperationTypeUniqueness(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTypeService(store)

	groceries, err := svc.Create(ctx, 1, OperationTypeInput{Name: "Groceries", Kind: int(domain.KindExpense)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, OperationTypeInput{Name: "Rent", Kind: int(domain.KindExpense)})
	require.NoError(t, err)

	// Renaming onto an existing (kind, name) is a conflict
	_, err = svc.Update(ctx, 1, groceries.ID, OperationTypeInput{Name: "Rent", Kind: int(domain.KindExpense)})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeConflict, appErr.Code)

	// Keeping its own name while changing kind is fine
	updated, err := svc.Update(ctx, 1, groceries.ID, OperationTypeInput{Name: "Groceries", Kind: int(domain.KindIncome)})
	require.NoError(t, err)
	assert.Equal(t, domain.KindIncome, updated.Kind)
}
