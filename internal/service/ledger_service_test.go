package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

func newLedgerFixture(t *testing.T, balance decimal.Decimal) (*LedgerService, *memStore, domain.Brand) {
	t.Helper()
	store := newMemStore(nil)
	brand := store.addBrand("acme", balance)
	svc := NewLedgerService(LedgerDependencies{
		BrandRepo:  &memBrandRepo{store: store},
		LedgerRepo: &memLedgerRepo{store: store},
	})
	return svc, store, brand
}

func TestChargeDebitsBalanceAndRecordsTransaction(t *testing.T) {
	svc, _, brand := newLedgerFixture(t, decimal.NewFromInt(100))

	ticketID := "ticket-1"
	txn, err := svc.Charge(context.Background(), brand.ID, decimal.NewFromInt(5), &ticketID, "intake fee")
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeDebit, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(-5)), "debit amount should be negative")
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(95)))
	require.NotNil(t, txn.TicketID)
	assert.Equal(t, ticketID, *txn.TicketID)

	balance, err := svc.Balance(context.Background(), brand.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(95)))
}

func TestChargeInsufficientFundsLeavesNoTrace(t *testing.T) {
	svc, store, brand := newLedgerFixture(t, decimal.NewFromInt(3))

	_, err := svc.Charge(context.Background(), brand.ID, decimal.NewFromInt(5), nil, "intake fee")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInsufficientFunds))

	balance, err := svc.Balance(context.Background(), brand.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(3)), "failed charge must not move the balance")
	assert.Empty(t, store.txns, "failed charge must not append a transaction")
}

func TestChargeRejectsNonPositiveAmounts(t *testing.T) {
	svc, _, brand := newLedgerFixture(t, decimal.NewFromInt(10))

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := svc.Charge(context.Background(), brand.ID, amount, nil, "bad")
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidAmount))
	}
	_, err := svc.Credit(context.Background(), brand.ID, decimal.Zero, "bad")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidAmount))
}

func TestChargeStorageFailure(t *testing.T) {
	svc, store, brand := newLedgerFixture(t, decimal.NewFromInt(10))
	store.failApply = true

	_, err := svc.Charge(context.Background(), brand.ID, decimal.NewFromInt(1), nil, "fee")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageError))
}

func TestChargeUnknownBrand(t *testing.T) {
	svc, _, _ := newLedgerFixture(t, decimal.NewFromInt(10))

	_, err := svc.Charge(context.Background(), "missing", decimal.NewFromInt(1), nil, "fee")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCreditThenChargeChainsBalanceAfter(t *testing.T) {
	svc, store, brand := newLedgerFixture(t, decimal.Zero)
	ctx := context.Background()

	_, err := svc.Credit(ctx, brand.ID, decimal.NewFromInt(50), "top-up")
	require.NoError(t, err)
	_, err = svc.Charge(ctx, brand.ID, decimal.NewFromInt(20), nil, "fee")
	require.NoError(t, err)
	_, err = svc.Charge(ctx, brand.ID, decimal.NewFromInt(5), nil, "fee")
	require.NoError(t, err)

	// Replaying amounts over the history reproduces each balance_after.
	running := decimal.Zero
	for _, txn := range store.txns {
		running = running.Add(txn.Amount)
		assert.True(t, txn.BalanceAfter.Equal(running),
			"balance_after %s should equal running sum %s", txn.BalanceAfter, running)
	}
	assert.True(t, running.Equal(decimal.NewFromInt(25)))
}

func TestConcurrentChargesNeverOverdraw(t *testing.T) {
	// 100 in the bank, 40 workers charging 7 each: exactly 14 must
	// succeed and the balance must land on 2.
	svc, store, brand := newLedgerFixture(t, decimal.NewFromInt(100))
	fee := decimal.NewFromInt(7)

	const workers = 40
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Charge(context.Background(), brand.ID, fee, nil, "fee")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInsufficientFunds))
		}
	}
	assert.Equal(t, 14, succeeded)

	balance, err := svc.Balance(context.Background(), brand.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(2)), "balance is %s", balance)
	assert.Len(t, store.txns, 14)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	svc, _, brand := newLedgerFixture(t, decimal.NewFromInt(100))
	ctx := context.Background()

	_, err := svc.Charge(ctx, brand.ID, decimal.NewFromInt(1), nil, "first")
	require.NoError(t, err)
	_, err = svc.Charge(ctx, brand.ID, decimal.NewFromInt(2), nil, "second")
	require.NoError(t, err)

	txns, err := svc.ListTransactions(ctx, brand.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "second", txns[0].Description)
	assert.Equal(t, "first", txns[1].Description)
}
