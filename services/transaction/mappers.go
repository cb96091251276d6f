package transaction

import (
	"database/sql"
	"fmt"

	db "github.com/BitVault/BitVault-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildAttemptParams derives the insert parameters for one attempt.
// Success is the absence of an error message, never a separate flag the
// caller could get out of sync.
func BuildAttemptParams(accountID uuid.UUID, amount decimal.Decimal, reason string, errorMessage *string) db.CreateTransactionParams {
	params := db.CreateTransactionParams{
		AccountID: accountID,
		Amount:    amount.String(),
		Reason:    reason,
		Success:   errorMessage == nil,
	}
	if errorMessage != nil {
		params.ErrorMessage = sql.NullString{String: *errorMessage, Valid: true}
	}
	return params
}

func ToTransactionModel(tx db.Transaction) (*TransactionModel, error) {
	amount, err := decimal.NewFromString(tx.Amount)
	if err != nil {
		return nil, fmt.Errorf("parse transaction amount: %w", err)
	}

	model := &TransactionModel{
		ID:        tx.ID,
		AccountID: tx.AccountID,
		Amount:    amount,
		Timestamp: tx.Timestamp,
		Reason:    tx.Reason,
		Success:   tx.Success,
	}
	if tx.ErrorMessage.Valid {
		msg := tx.ErrorMessage.String
		model.ErrorMessage = &msg
	}
	return model, nil
}
