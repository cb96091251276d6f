package apistrings

const (
	/// Auth Related Strings
	AccountNotFound = "account does not exist"
	TokenAuthFailed = "token authentication failed"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Wallet Related Strings
	AccountNoWallet    = "account does not have a wallet created"
	DuplicateWallet    = "account already has a wallet"
	WalletNotPossible  = "wallet could not be created"
	InvalidTransaction = "check 'amount' or 'reason' keys, invalid request"

	/// Transaction Outcome Strings
	TransactionRejected = "could not complete the transaction, likely a balance failure"
	TransactionUnlogged = "transaction completed but not logged, contact support"
	TransactionFailed   = "transaction not completed or logged, likely a database issue"
)
