package wallet

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	db "github.com/BitVault/BitVault-Backend/db/sqlc"
	"github.com/BitVault/BitVault-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type WalletService struct {
	store  *db.Store
	logger *logging.Logger
}

func NewWalletService(store *db.Store, logger *logging.Logger) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
	}
}

// CreateWallet inserts a wallet for the account with the default zero
// balance. Should only be called once per account, right after the
// account itself is created.
func (w *WalletService) CreateWallet(ctx context.Context, accountID uuid.UUID) (*WalletModel, error) {
	dbWallet, err := w.store.CreateWallet(ctx, accountID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			wErr := NewWalletError(ErrDuplicateWallet, accountID.String())
			w.logger.Info(wErr.ErrorOut())
			return nil, wErr
		}
		return nil, NewWalletError(ErrWalletNotPossible, accountID.String(), err)
	}
	return ToWalletModel(dbWallet)
}

func (w *WalletService) GetWallet(ctx context.Context, accountID uuid.UUID) (*WalletModel, error) {
	dbWallet, err := w.store.GetWallet(ctx, accountID)
	if err == sql.ErrNoRows {
		return nil, NewWalletError(ErrWalletNotFound, accountID.String())
	} else if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return ToWalletModel(dbWallet)
}

// ApplyDelta is the only write path for balances. It locks the wallet
// row, adds the requested amount and commits the new value in one DB
// transaction. A delta that would leave the balance negative rolls the
// transaction back and returns ErrInsufficientFunds with the row
// untouched.
func (w *WalletService) ApplyDelta(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*WalletModel, error) {
	var updated db.Wallet

	err := w.store.ExecTx(ctx, func(q *db.Queries) error {
		if err := q.SetLockTimeout(ctx, 5*time.Second); err != nil {
			return fmt.Errorf("set lock timeout: %w", err)
		}

		dbWallet, err := q.GetWalletForUpdate(ctx, accountID)
		if err == sql.ErrNoRows {
			return NewWalletError(ErrWalletNotFound, accountID.String())
		} else if lockTimedOut(err) {
			return fmt.Errorf("wallet lock wait timed out: %w", err)
		} else if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		balance, err := decimal.NewFromString(dbWallet.Balance)
		if err != nil {
			return fmt.Errorf("parse wallet balance: %w", err)
		}

		newBalance, err := ComputeNewBalance(balance, amount)
		if err != nil {
			return NewWalletError(err, accountID.String())
		}

		updated, err = q.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
			AccountID: accountID,
			Balance:   newBalance.String(),
		})
		if err != nil {
			return fmt.Errorf("update wallet balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToWalletModel(updated)
}

// lockTimedOut reports whether the error is Postgres 55P03, the
// bounded row-lock wait expiring under contention.
func lockTimedOut(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == db.LockNotAvailable
}

// ComputeNewBalance adds the delta with exact decimal arithmetic and
// enforces the non-negative balance invariant.
func ComputeNewBalance(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	newBalance := balance.Add(amount)
	if newBalance.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}
	return newBalance, nil
}
