package ledger

import (
	"github.com/BitVault/BitVault-Backend/services/transaction"
	"github.com/shopspring/decimal"
)

type Status int

const (
	// StatusCompleted - balance changed and the attempt was recorded.
	StatusCompleted Status = iota
	// StatusRejected - balance unchanged (business rejection or missing
	// wallet) and the failed attempt was recorded.
	StatusRejected
	// StatusCompletedUnlogged - balance changed but the audit record
	// could not be written. Money moved with no trace; this must never
	// be collapsed into an ordinary failure.
	StatusCompletedUnlogged
	// StatusFailed - neither the balance nor the history was written.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusRejected:
		return "rejected"
	case StatusCompletedUnlogged:
		return "completed_unlogged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of one Apply call. Balance is only
// meaningful when the balance actually changed (StatusCompleted and
// StatusCompletedUnlogged); Reason carries the underlying error for the
// other cases.
type Outcome struct {
	Status  Status
	Balance decimal.Decimal
	Reason  error
	Record  *transaction.TransactionModel
}

// BalanceChanged reports whether money moved, whatever happened to the
// audit record.
func (o Outcome) BalanceChanged() bool {
	return o.Status == StatusCompleted || o.Status == StatusCompletedUnlogged
}
