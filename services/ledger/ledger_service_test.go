package ledger

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/BitVault/BitVault-Backend/services/monitoring/logging"
	"github.com/BitVault/BitVault-Backend/services/transaction"
	"github.com/BitVault/BitVault-Backend/services/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logging.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logging.Logger{Logger: l}
}

// memBalanceStore keeps balances in a map under one lock, mirroring the
// row-lock serialization of the SQL store.
type memBalanceStore struct {
	mu       sync.Mutex
	balances map[uuid.UUID]decimal.Decimal
	failWith error
}

func newMemBalanceStore() *memBalanceStore {
	return &memBalanceStore{balances: make(map[uuid.UUID]decimal.Decimal)}
}

func (m *memBalanceStore) create(accountID uuid.UUID, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[accountID] = balance
}

func (m *memBalanceStore) balance(accountID uuid.UUID) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[accountID]
}

func (m *memBalanceStore) ApplyDelta(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*wallet.WalletModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	balance, ok := m.balances[accountID]
	if !ok {
		return nil, wallet.ErrWalletNotFound
	}

	newBalance, err := wallet.ComputeNewBalance(balance, amount)
	if err != nil {
		return nil, err
	}

	m.balances[accountID] = newBalance
	return &wallet.WalletModel{AccountID: accountID, Balance: newBalance}, nil
}

type memRecorder struct {
	mu       sync.Mutex
	records  []transaction.TransactionModel
	failWith error
}

func (m *memRecorder) RecordAttempt(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, reason string, errorMessage *string) (*transaction.TransactionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	record := transaction.TransactionModel{
		ID:           uuid.New(),
		AccountID:    accountID,
		Amount:       amount,
		Timestamp:    time.Now(),
		Reason:       reason,
		Success:      errorMessage == nil,
		ErrorMessage: errorMessage,
	}
	m.records = append(m.records, record)
	return &record, nil
}

func (m *memRecorder) all() []transaction.TransactionModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]transaction.TransactionModel, len(m.records))
	copy(out, m.records)
	return out
}

func newEngine() (*LedgerService, *memBalanceStore, *memRecorder) {
	store := newMemBalanceStore()
	recorder := &memRecorder{}
	return NewLedgerService(store, recorder, newTestLogger()), store, recorder
}

func TestApplyOutcomeClassification(t *testing.T) {
	t.Parallel()

	storageDown := fmt.Errorf("connection refused")

	tests := []struct {
		name        string
		storeErr    error
		recorderErr error
		want        Status
	}{
		{"both sides succeed", nil, nil, StatusCompleted},
		{"rejection is recorded", wallet.ErrInsufficientFunds, nil, StatusRejected},
		{"balance moved without a record", nil, storageDown, StatusCompletedUnlogged},
		{"nothing written", storageDown, storageDown, StatusFailed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			engine, store, recorder := newEngine()
			accountID := uuid.New()
			store.create(accountID, decimal.NewFromInt(100))
			store.failWith = tc.storeErr
			recorder.failWith = tc.recorderErr

			outcome := engine.Apply(context.Background(), accountID, decimal.NewFromInt(-10), "purchase")
			assert.Equal(t, tc.want, outcome.Status)
		})
	}
}

func TestApplyGrantThenOverdraftThenPurchase(t *testing.T) {
	t.Parallel()

	engine, store, recorder := newEngine()
	accountID := uuid.New()
	store.create(accountID, decimal.Zero)
	ctx := context.Background()

	// grant 100 on a fresh wallet
	outcome := engine.Apply(ctx, accountID, decimal.NewFromInt(100), "grant")
	require.Equal(t, StatusCompleted, outcome.Status)
	assert.True(t, outcome.Balance.Equal(decimal.NewFromInt(100)))
	require.Len(t, recorder.all(), 1)
	assert.True(t, recorder.all()[0].Success)
	assert.True(t, recorder.all()[0].Amount.Equal(decimal.NewFromInt(100)))

	// overdraft attempt is rejected but still recorded
	outcome = engine.Apply(ctx, accountID, decimal.NewFromInt(-150), "purchase")
	require.Equal(t, StatusRejected, outcome.Status)
	assert.ErrorIs(t, outcome.Reason, wallet.ErrInsufficientFunds)
	assert.True(t, store.balance(accountID).Equal(decimal.NewFromInt(100)))
	records := recorder.all()
	require.Len(t, records, 2)
	assert.False(t, records[1].Success)
	require.NotNil(t, records[1].ErrorMessage)
	assert.True(t, records[1].Amount.Equal(decimal.NewFromInt(-150)))

	// affordable purchase goes through
	outcome = engine.Apply(ctx, accountID, decimal.NewFromInt(-50), "purchase")
	require.Equal(t, StatusCompleted, outcome.Status)
	assert.True(t, outcome.Balance.Equal(decimal.NewFromInt(50)))
	records = recorder.all()
	require.Len(t, records, 3)
	assert.True(t, records[2].Success)
}

func TestApplyUnknownAccount(t *testing.T) {
	t.Parallel()

	engine, _, recorder := newEngine()

	outcome := engine.Apply(context.Background(), uuid.New(), decimal.NewFromInt(10), "grant")
	require.Equal(t, StatusRejected, outcome.Status)
	assert.ErrorIs(t, outcome.Reason, wallet.ErrWalletNotFound)

	records := recorder.all()
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
}

func TestApplyUnloggedDebitKeepsPostDebitBalance(t *testing.T) {
	t.Parallel()

	engine, store, recorder := newEngine()
	accountID := uuid.New()
	store.create(accountID, decimal.NewFromInt(100))
	recorder.failWith = fmt.Errorf("ledger write failed")

	outcome := engine.Apply(context.Background(), accountID, decimal.NewFromInt(-50), "purchase")

	require.Equal(t, StatusCompletedUnlogged, outcome.Status)
	assert.True(t, outcome.BalanceChanged())
	// the debit committed even though the record did not
	assert.True(t, outcome.Balance.Equal(decimal.NewFromInt(50)))
	assert.True(t, store.balance(accountID).Equal(decimal.NewFromInt(50)))
	assert.Empty(t, recorder.all())
}

func TestApplyConcurrentDeltasAllAccepted(t *testing.T) {
	t.Parallel()

	engine, store, recorder := newEngine()
	accountID := uuid.New()
	store.create(accountID, decimal.NewFromInt(1000))

	const workers = 50
	var wg sync.WaitGroup
	outcomes := make([]Outcome, workers)

	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			// alternating credits and affordable debits
			delta := decimal.NewFromInt(3)
			if i%2 == 0 {
				delta = decimal.NewFromInt(-1)
			}
			outcomes[i] = engine.Apply(context.Background(), accountID, delta, "load test")
		}()
	}
	wg.Wait()

	expected := decimal.NewFromInt(1000)
	for i := 0; i < workers; i++ {
		require.Equal(t, StatusCompleted, outcomes[i].Status)
		if i%2 == 0 {
			expected = expected.Sub(decimal.NewFromInt(1))
		} else {
			expected = expected.Add(decimal.NewFromInt(3))
		}
	}

	assert.True(t, store.balance(accountID).Equal(expected),
		"final balance %s, want %s", store.balance(accountID), expected)
	assert.Len(t, recorder.all(), workers)
}

func TestApplyConcurrentOverdraftsRejectedExactly(t *testing.T) {
	t.Parallel()

	engine, store, recorder := newEngine()
	accountID := uuid.New()
	store.create(accountID, decimal.NewFromInt(5))

	const workers = 10
	var wg sync.WaitGroup
	outcomes := make([]Outcome, workers)

	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = engine.Apply(context.Background(), accountID, decimal.NewFromInt(-1), "purchase")
		}()
	}
	wg.Wait()

	completed := 0
	for _, o := range outcomes {
		switch o.Status {
		case StatusCompleted:
			completed++
		case StatusRejected:
			assert.ErrorIs(t, o.Reason, wallet.ErrInsufficientFunds)
		default:
			t.Fatalf("unexpected outcome %v", o.Status)
		}
	}

	// only the first five debits fit, whatever the interleaving
	assert.Equal(t, 5, completed)
	assert.True(t, store.balance(accountID).IsZero())
	assert.Len(t, recorder.all(), workers)
}

func TestApplyRandomizedNeverNegative(t *testing.T) {
	t.Parallel()

	engine, store, recorder := newEngine()
	accountID := uuid.New()
	store.create(accountID, decimal.Zero)

	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	expected := decimal.Zero
	for i := 0; i < 500; i++ {
		// deltas in [-5.00, +5.00] with two decimal places
		delta := decimal.New(int64(rng.Intn(1001)-500), -2)

		outcome := engine.Apply(ctx, accountID, delta, "fuzz")
		if expected.Add(delta).IsNegative() {
			require.Equal(t, StatusRejected, outcome.Status, "iteration %d", i)
		} else {
			require.Equal(t, StatusCompleted, outcome.Status, "iteration %d", i)
			expected = expected.Add(delta)
		}

		balance := store.balance(accountID)
		require.False(t, balance.IsNegative(), "iteration %d drove the balance negative", i)
		require.True(t, balance.Equal(expected), "iteration %d: balance %s, want %s", i, balance, expected)
	}

	// one record per attempt, success iff the balance moved
	records := recorder.all()
	require.Len(t, records, 500)
	sum := decimal.Zero
	for _, r := range records {
		if r.Success {
			sum = sum.Add(r.Amount)
			assert.Nil(t, r.ErrorMessage)
		} else {
			assert.NotNil(t, r.ErrorMessage)
		}
	}
	assert.True(t, sum.Equal(expected))
}
