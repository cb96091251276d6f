package transaction

import (
	"context"
	"fmt"

	db "github.com/BitVault/BitVault-Backend/db/sqlc"
	"github.com/BitVault/BitVault-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// TransactionService owns the append-only attempt history. There is no
// update or delete path here and none may be added.
type TransactionService struct {
	store  *db.Store
	logger *logging.Logger
}

func NewTransactionService(store *db.Store, logger *logging.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// RecordAttempt appends exactly one record for a balance mutation
// attempt, successful or not. The ledger records whatever outcome it is
// told; business rules live upstream.
func (s *TransactionService) RecordAttempt(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, reason string, errorMessage *string) (*TransactionModel, error) {
	dbTx, err := s.store.CreateTransaction(ctx, BuildAttemptParams(accountID, amount, reason, errorMessage))
	if missingWallet(err) {
		return nil, fmt.Errorf("record transaction attempt: account %v has no wallet: %w", accountID, err)
	} else if err != nil {
		return nil, fmt.Errorf("record transaction attempt: %w", err)
	}
	return ToTransactionModel(dbTx)
}

// missingWallet reports whether the insert hit the wallets foreign key,
// i.e. there is no wallet row for the record to reference.
func missingWallet(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == db.ForeignKeyViolation
}
