package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
)

// opEnv wires an OperationService over the in-memory store with one USD
// wallet and one expense type for user 1.
type opEnv struct {
	store  *memStore
	rates  *fakeRates
	svc    *OperationService
	wallet *domain.Wallet
	opType *domain.OperationType
}

func newOpEnv(t *testing.T) *opEnv {
	t.Helper()
	store := newMemStore()
	seedCatalog(store, "USD", "EUR", "GBP")
	rates := &fakeRates{rate: decimal.RequireFromString("1.08")}
	svc := NewOperationService(store.repos(), &memUnitOfWork{store: store}, rates, nil)

	wallet := &domain.Wallet{UserID: 1, Name: "Main", CurrencyCode: "USD"}
	store.CreateWallet(wallet)
	opType := &domain.OperationType{UserID: 1, Name: "Groceries", Kind: domain.KindExpense}
	require.NoError(t, typeRepo{store}.Create(context.Background(), opType))

	return &opEnv{store: store, rates: rates, svc: svc, wallet: wallet, opType: opType}
}

func strPtr(s string) *string { return &s }

func TestCreateOperationSameCurrency(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	op, err := env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("42.50"),
		CurrencyCode:   strPtr("USD"),
		Date:           "2026-08-30",
	})
	require.NoError(t, err)
	assert.True(t, op.AmountBase.Equal(decimal.RequireFromString("42.50")), "base amount must equal original")
	assert.Empty(t, env.rates.calls, "same-currency operations must not hit the provider")
}

func TestCreateOperationDefaultsToWalletCurrency(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	op, err := env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("19.99"),
		Date:           "2026-08-30",
	})
	require.NoError(t, err)
	assert.Nil(t, op.CurrencyCode)
	assert.True(t, op.AmountBase.Equal(decimal.RequireFromString("19.99")))
	assert.Empty(t, env.rates.calls)
}

func TestCreateOperationForeignCurrency(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	// 100 EUR into a USD wallet at EUR->USD = 1.08
	op, err := env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("100"),
		CurrencyCode:   strPtr("EUR"),
		Date:           "2026-08-15",
	})
	require.NoError(t, err)
	assert.True(t, op.AmountBase.Equal(decimal.RequireFromString("108.00")), "got %s", op.AmountBase)

	require.Len(t, env.rates.calls, 1)
	call := env.rates.calls[0]
	assert.Equal(t, "EUR", call.From)
	assert.Equal(t, "USD", call.To)
	assert.Equal(t, "2026-08-15", call.Date.Format(DateLayout), "lookup must use the operation date")
}

func TestCreateOperationUnknownBits(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)
	var appErr *apperr.Error

	// Missing wallet
	_, err := env.svc.Create(ctx, 1, 999, OperationInput{
		TypeID: env.opType.ID, AmountOriginal: decimal.RequireFromString("1"), Date: "2026-08-30",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)

	// Missing type
	_, err = env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID: 999, AmountOriginal: decimal.RequireFromString("1"), Date: "2026-08-30",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)

	// Unsupported currency
	_, err = env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID: env.opType.ID, AmountOriginal: decimal.RequireFromString("1"),
		CurrencyCode: strPtr("XXX"), Date: "2026-08-30",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)

	// Another user's wallet looks missing
	_, err = env.svc.Create(ctx, 2, env.wallet.ID, OperationInput{
		TypeID: env.opType.ID, AmountOriginal: decimal.RequireFromString("1"), Date: "2026-08-30",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestCreateOperationAmountRules(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	for name, amount := range map[string]string{
		"zero":              "0",
		"negative":          "-5.00",
		"too many decimals": "1.999",
	} {
		_, err := env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
			TypeID:         env.opType.ID,
			AmountOriginal: decimal.RequireFromString(amount),
			Date:           "2026-08-30",
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr, name)
		assert.Equal(t, apperr.CodeValidation, appErr.Code, name)
		assert.Contains(t, appErr.Fields, "amount_original", name)
	}
}

func TestUpdateOperationRecomputesOnlyWhenNeeded(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	op, err := env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("100"),
		CurrencyCode:   strPtr("EUR"),
		Date:           "2026-08-15",
	})
	require.NoError(t, err)
	require.Len(t, env.rates.calls, 1)

	// Note-only edit keeps the stored conversion and makes no lookup
	updated, err := env.svc.Update(ctx, 1, op.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("100"),
		CurrencyCode:   strPtr("EUR"),
		Date:           "2026-08-15",
		Note:           "supermarket",
	})
	require.NoError(t, err)
	assert.Len(t, env.rates.calls, 1)
	assert.True(t, updated.AmountBase.Equal(decimal.RequireFromString("108.00")))

	// Amount change triggers a fresh lookup
	env.rates.rate = decimal.RequireFromString("1.10")
	updated, err = env.svc.Update(ctx, 1, op.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("200"),
		CurrencyCode:   strPtr("EUR"),
		Date:           "2026-08-15",
	})
	require.NoError(t, err)
	assert.Len(t, env.rates.calls, 2)
	assert.True(t, updated.AmountBase.Equal(decimal.RequireFromString("220.00")))

	// Currency change triggers another
	updated, err = env.svc.Update(ctx, 1, op.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("200"),
		CurrencyCode:   strPtr("GBP"),
		Date:           "2026-08-15",
	})
	require.NoError(t, err)
	assert.Len(t, env.rates.calls, 3)
	assert.Equal(t, "GBP", env.rates.calls[2].From)
	assert.True(t, updated.AmountBase.Equal(decimal.RequireFromString("220.00")))

	// Switching to the wallet currency forces rate 1 with no lookup
	updated, err = env.svc.Update(ctx, 1, op.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("200"),
		CurrencyCode:   strPtr("USD"),
		Date:           "2026-08-15",
	})
	require.NoError(t, err)
	assert.Len(t, env.rates.calls, 3)
	assert.True(t, updated.AmountBase.Equal(decimal.RequireFromString("200")))
}

func TestOperationWritesInvalidateReportCache(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)
	cache := &fakeReportCache{}
	svc := NewOperationService(env.store.repos(), &memUnitOfWork{store: env.store}, env.rates, cache)

	op, err := svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("10"),
		Date:           "2026-08-30",
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, cache.invalidated)

	cache.invalidated = nil
	_, err = svc.Update(ctx, 1, op.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("12"),
		Date:           "2026-08-30",
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, cache.invalidated)

	cache.invalidated = nil
	require.NoError(t, svc.Delete(ctx, 1, op.ID))
	assert.Equal(t, []uint{1}, cache.invalidated)
}

func TestDeleteOperation(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	op, err := env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("10"),
		Date:           "2026-08-30",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, 1, op.ID))
	assert.True(t, env.store.operations[op.ID].IsDeleted, "delete must be a soft delete")

	err = env.svc.Delete(ctx, 1, op.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestListOperations(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	second := &domain.Wallet{UserID: 1, Name: "Savings", CurrencyCode: "USD"}
	env.store.CreateWallet(second)

	for day, walletID := range map[string]uint{
		"2026-08-01": env.wallet.ID,
		"2026-08-02": second.ID,
		"2026-08-03": env.wallet.ID,
	} {
		_, err := env.svc.Create(ctx, 1, walletID, OperationInput{
			TypeID:         env.opType.ID,
			AmountOriginal: decimal.RequireFromString("10"),
			Date:           day,
		})
		require.NoError(t, err)
	}

	// Unscoped listing sees all wallets, newest first
	page, err := env.svc.List(ctx, 1, 0, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "2026-08-03", page.Items[0].Date.Format(DateLayout))

	// Wallet-scoped listing filters
	page, err = env.svc.List(ctx, 1, second.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	// Unknown wallet scope is a 404
	_, err = env.svc.List(ctx, 1, 999, 1, 20)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestListOperationsClampsPaging(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	page, err := env.svc.List(ctx, 1, 0, -3, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{"valid", 3, 50, 3, 50},
		{"page below 1", 0, 50, 1, 50},
		{"negative page", -7, 50, 1, 50},
		{"size zero", 2, 0, 2, 20},
		{"size negative", 2, -1, 2, 20},
		{"size above max", 2, 101, 2, 20},
		{"size at max", 2, 100, 2, 100},
		{"size at min", 2, 1, 2, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size := NormalizePage(tc.page, tc.size)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantSize, size)
		})
	}
}

func TestOperationDateParsing(t *testing.T) {
	ctx := context.Background()
	env := newOpEnv(t)

	_, err := env.svc.Create(ctx, 1, env.wallet.ID, OperationInput{
		TypeID:         env.opType.ID,
		AmountOriginal: decimal.RequireFromString("10"),
		Date:           "30/08/2026",
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "date")
}
