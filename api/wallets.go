package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BitVault/BitVault-Backend/api/apistrings"
	basemodels "github.com/BitVault/BitVault-Backend/models"
	"github.com/BitVault/BitVault-Backend/services/ledger"
	"github.com/BitVault/BitVault-Backend/services/transaction"
	"github.com/BitVault/BitVault-Backend/services/wallet"
	"github.com/BitVault/BitVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The handlers hold the slices of the services they actually call, so
// the HTTP mapping can be exercised without a database behind it.
type walletAccessor interface {
	CreateWallet(ctx context.Context, accountID uuid.UUID) (*wallet.WalletModel, error)
	GetWallet(ctx context.Context, accountID uuid.UUID) (*wallet.WalletModel, error)
}

type ledgerApplier interface {
	Apply(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, reason string) ledger.Outcome
}

type Wallet struct {
	server             *Server
	walletService      walletAccessor
	transactionService *transaction.TransactionService
	ledgerService      ledgerApplier
}

func (w Wallet) router(server *Server) {
	w.server = server
	walletService := wallet.NewWalletService(server.store, server.logger)
	w.walletService = walletService
	w.transactionService = transaction.NewTransactionService(server.store, server.logger)
	w.ledgerService = ledger.NewLedgerService(
		walletService,
		w.transactionService,
		server.logger,
	)

	serverGroupV1 := server.router.Group("/api/v1/wallets")
	serverGroupV1.POST("", AuthenticatedMiddleware(), w.createWallet)
	serverGroupV1.GET("", AuthenticatedMiddleware(), w.getWallet)
	serverGroupV1.POST("transactions", AuthenticatedMiddleware(), w.postTransaction)
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// Called by the identity service right after an account is created.
func (w *Wallet) createWallet(ctx *gin.Context) {
	activeAccount, err := utils.GetActiveAccount(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.AccountNotFound))
		return
	}

	newWallet, err := w.walletService.CreateWallet(ctx, activeAccount)
	if errors.Is(err, wallet.ErrDuplicateWallet) {
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.DuplicateWallet))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.WalletNotPossible))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Wallet Created Successfully", newWallet))
}

func (w *Wallet) getWallet(ctx *gin.Context) {
	activeAccount, err := utils.GetActiveAccount(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.AccountNotFound))
		return
	}

	userWallet, err := w.walletService.GetWallet(ctx, activeAccount)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.AccountNoWallet))
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Fetched Successfully", balanceResponse{
		Balance: userWallet.Balance,
	}))
}

func (w *Wallet) postTransaction(ctx *gin.Context) {
	// Observe request. Amount is a pointer so an absent field is
	// rejected instead of read as a zero delta.
	request := struct {
		Amount *decimal.Decimal `json:"amount"`
		Reason string           `json:"reason" binding:"required"`
	}{}

	err := ctx.ShouldBindJSON(&request)
	if err != nil || request.Amount == nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransaction))
		return
	}

	activeAccount, err := utils.GetActiveAccount(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.AccountNotFound))
		return
	}

	outcome := w.ledgerService.Apply(ctx, activeAccount, *request.Amount, request.Reason)

	switch outcome.Status {
	case ledger.StatusCompleted:
		if w.server.redis != nil {
			go w.trackDailyVolume(activeAccount, *request.Amount)
		}
		ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transaction Completed Successfully", balanceResponse{
			Balance: outcome.Balance,
		}))

	case ledger.StatusRejected:
		ctx.JSON(http.StatusConflict, basemodels.NewError(apistrings.TransactionRejected))

	case ledger.StatusCompletedUnlogged:
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.TransactionUnlogged))

	default:
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.TransactionFailed))
	}
}

// Operational read model only, updated off the request path.
func (w *Wallet) trackDailyVolume(accountID uuid.UUID, amount decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.server.redis.TrackDailyVolume(ctx, accountID.String(), amount); err != nil {
		w.server.logger.Errorf("Unable to track daily volume: %v", err)
	}
}
