package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is one immutable row of the attempt history. Amount
// carries the requested delta exactly as the caller sent it, even when
// the attempt failed.
type TransactionModel struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
	Reason       string          `json:"reason"`
	Success      bool            `json:"success"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}
