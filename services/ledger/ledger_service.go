package ledger

import (
	"context"

	"github.com/BitVault/BitVault-Backend/services/monitoring/logging"
	"github.com/BitVault/BitVault-Backend/services/transaction"
	"github.com/BitVault/BitVault-Backend/services/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BalanceStore applies a validated delta to the single stored balance
// of one account. Implemented by wallet.WalletService.
type BalanceStore interface {
	ApplyDelta(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*wallet.WalletModel, error)
}

// AttemptRecorder appends one immutable record per attempt. Implemented
// by transaction.TransactionService.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, reason string, errorMessage *string) (*transaction.TransactionModel, error)
}

// LedgerService composes the wallet store and the transaction history:
// every attempted mutation is applied-or-rejected against the stored
// balance and then recorded, and the pair of results is classified into
// one of the four outcomes.
//
// Apply has no retry or deduplication of its own. A caller that retries
// after a persistence failure of unknown commit status can double-apply
// a delta; retrying is the caller's call to make.
type LedgerService struct {
	wallets BalanceStore
	history AttemptRecorder
	logger  *logging.Logger
}

func NewLedgerService(wallets BalanceStore, history AttemptRecorder, logger *logging.Logger) *LedgerService {
	return &LedgerService{
		wallets: wallets,
		history: history,
		logger:  logger,
	}
}

// Apply attempts the balance mutation, records the attempt regardless
// of how the mutation went, and classifies the combined result. It
// never returns an error; everything the caller needs is in the
// Outcome.
func (s *LedgerService) Apply(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, reason string) Outcome {
	updated, applyErr := s.wallets.ApplyDelta(ctx, accountID, amount)

	var errorMessage *string
	if applyErr != nil {
		msg := applyErr.Error()
		errorMessage = &msg
	}

	record, recordErr := s.history.RecordAttempt(ctx, accountID, amount, reason, errorMessage)

	switch {
	case applyErr == nil && recordErr == nil:
		return Outcome{Status: StatusCompleted, Balance: updated.Balance, Record: record}

	case applyErr != nil && recordErr == nil:
		return Outcome{Status: StatusRejected, Reason: applyErr, Record: record}

	case applyErr == nil && recordErr != nil:
		s.logger.WithFields(logrus.Fields{
			"alert":      "unlogged_balance_change",
			"account_id": accountID.String(),
			"amount":     amount.String(),
			"balance":    updated.Balance.String(),
			"error":      recordErr.Error(),
		}).Error("balance changed but the attempt was not recorded, manual reconciliation required")
		return Outcome{Status: StatusCompletedUnlogged, Balance: updated.Balance, Reason: recordErr}

	default:
		s.logger.WithFields(logrus.Fields{
			"account_id":   accountID.String(),
			"apply_error":  applyErr.Error(),
			"record_error": recordErr.Error(),
		}).Error("transaction neither applied nor recorded")
		return Outcome{Status: StatusFailed, Reason: applyErr}
	}
}
