package transaction

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	db "github.com/BitVault/BitVault-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAttemptParamsDerivesSuccess(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()
	amount := decimal.NewFromInt(-150)

	params := BuildAttemptParams(accountID, amount, "purchase", nil)
	assert.True(t, params.Success)
	assert.False(t, params.ErrorMessage.Valid)
	assert.Equal(t, "-150", params.Amount)

	msg := "insufficient funds"
	params = BuildAttemptParams(accountID, amount, "purchase", &msg)
	assert.False(t, params.Success)
	require.True(t, params.ErrorMessage.Valid)
	assert.Equal(t, msg, params.ErrorMessage.String)
	// the requested delta is stored even for a failed attempt
	assert.Equal(t, "-150", params.Amount)
}

func TestMissingWallet(t *testing.T) {
	t.Parallel()

	assert.True(t, missingWallet(&pq.Error{Code: db.ForeignKeyViolation}))
	assert.False(t, missingWallet(&pq.Error{Code: db.DuplicateEntry}))
	assert.False(t, missingWallet(fmt.Errorf("record transaction attempt: closed")))
	assert.False(t, missingWallet(nil))
}

func TestToTransactionModel(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	accountID := uuid.New()
	now := time.Now()

	model, err := ToTransactionModel(db.Transaction{
		ID:           id,
		AccountID:    accountID,
		Amount:       "-42.5000",
		Timestamp:    now,
		Reason:       "purchase",
		Success:      false,
		ErrorMessage: sql.NullString{String: "insufficient funds", Valid: true},
	})
	require.NoError(t, err)
	assert.Equal(t, id, model.ID)
	assert.Equal(t, accountID, model.AccountID)
	assert.True(t, model.Amount.Equal(decimal.NewFromFloat(-42.5)))
	assert.False(t, model.Success)
	require.NotNil(t, model.ErrorMessage)
	assert.Equal(t, "insufficient funds", *model.ErrorMessage)

	model, err = ToTransactionModel(db.Transaction{
		ID:        id,
		AccountID: accountID,
		Amount:    "100",
		Timestamp: now,
		Reason:    "grant",
		Success:   true,
	})
	require.NoError(t, err)
	assert.True(t, model.Success)
	assert.Nil(t, model.ErrorMessage)

	_, err = ToTransactionModel(db.Transaction{Amount: "broken"})
	assert.Error(t, err)
}
