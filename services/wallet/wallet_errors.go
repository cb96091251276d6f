package wallet

import "fmt"

var (
	ErrWalletNotFound    = fmt.Errorf("wallet not found")
	ErrWalletNotPossible = fmt.Errorf("could not create wallet")
	ErrDuplicateWallet   = fmt.Errorf("account already has a wallet")
	ErrInsufficientFunds = fmt.Errorf("insufficient funds")
)

type WalletError struct {
	ErrorObj  error
	AccountID string
	Other     []error
}

func (w *WalletError) Error() string {
	return w.ErrorObj.Error()
}

func (w *WalletError) Unwrap() error {
	return w.ErrorObj
}

func (w *WalletError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", w.ErrorObj.Error(), w.AccountID)
}

func NewWalletError(err error, accountID string, e ...error) *WalletError {
	return &WalletError{
		ErrorObj:  err,
		AccountID: accountID,
		Other:     e,
	}
}
