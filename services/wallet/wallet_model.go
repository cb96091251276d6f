package wallet

import (
	"fmt"
	"time"

	db "github.com/BitVault/BitVault-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletModel struct {
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToWalletModel maps a wallets row to the service model. Balances are
// stored in a NUMERIC column and scanned as strings, so the conversion
// stays exact.
func ToWalletModel(wallet db.Wallet) (*WalletModel, error) {
	balance, err := decimal.NewFromString(wallet.Balance)
	if err != nil {
		return nil, fmt.Errorf("parse wallet balance: %w", err)
	}

	return &WalletModel{
		AccountID: wallet.AccountID,
		Balance:   balance,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}, nil
}
