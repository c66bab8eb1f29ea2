package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"banking-service/internal/domain"
	"banking-service/internal/pub"
	"banking-service/internal/repository"
	"banking-service/pkg/utils"
	"banking-service/pkg/xerrors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService orchestrates every balance-mutating operation. It holds no
// persistent state of its own: each operation opens exactly one atomic unit on
// the injected store, and either commits all of its effects or none of them.
type LedgerService struct {
	store  repository.Store
	logger *zap.Logger
	events *pub.TransactionEventPublisher // optional, may be nil
}

func NewLedgerService(store repository.Store, logger *zap.Logger, events *pub.TransactionEventPublisher) *LedgerService {
	return &LedgerService{
		store:  store,
		logger: logger,
		events: events,
	}
}

// CreateAccount allocates the next account number, inserts the account with
// status active, and, when the initial deposit is positive, appends the
// opening deposit row — all in one unit.
func (s *LedgerService) CreateAccount(ctx context.Context, in domain.CreateAccountInput) (string, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.AccountType == "" {
		return "", fmt.Errorf("%w: name, email, phone and type are required", xerrors.ErrInvalidRequest)
	}
	if in.InitialDeposit.IsNegative() {
		return "", fmt.Errorf("%w: initial deposit cannot be negative", xerrors.ErrInvalidRequest)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return "", s.storeErr("create account", err)
	}
	defer tx.Rollback(ctx)

	number, err := tx.NextAccountNumber(ctx)
	if err != nil {
		return "", s.storeErr("create account", err)
	}

	account := &domain.Account{
		AccountNumber: number,
		HolderName:    in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		AccountType:   in.AccountType,
		Balance:       in.InitialDeposit,
		Status:        domain.StatusActive,
		CreatedAt:     time.Now(),
		CreatedBy:     in.UserID,
	}
	if err := tx.InsertAccount(ctx, account); err != nil {
		if errors.Is(err, xerrors.ErrAllocationConflict) {
			return "", err
		}
		return "", s.storeErr("create account", err)
	}

	if in.InitialDeposit.IsPositive() {
		rec := &domain.TransactionRecord{
			TransactionID:   utils.NewTransactionID(),
			AccountNumber:   number,
			TransactionType: domain.TxDeposit,
			Amount:          in.InitialDeposit,
			BalanceAfter:    in.InitialDeposit,
			Note:            "Initial deposit",
			ProcessedBy:     in.UserID,
		}
		if err := tx.AppendTransaction(ctx, rec); err != nil {
			return "", s.storeErr("create account", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", s.storeErr("create account", err)
	}

	s.publish(ctx, "account.created", number, "", domain.TxDeposit, in.InitialDeposit, in.InitialDeposit, in.UserID)
	return number, nil
}

// Deposit credits an active account and appends the matching ledger row.
func (s *LedgerService) Deposit(ctx context.Context, in domain.TransactionInput) (decimal.Decimal, error) {
	return s.applyTransaction(ctx, domain.TxDeposit, in)
}

// Withdraw debits an active account, refusing to take the balance below zero.
func (s *LedgerService) Withdraw(ctx context.Context, in domain.TransactionInput) (decimal.Decimal, error) {
	return s.applyTransaction(ctx, domain.TxWithdrawal, in)
}

func (s *LedgerService) applyTransaction(ctx context.Context, kind domain.TransactionType, in domain.TransactionInput) (decimal.Decimal, error) {
	var zero decimal.Decimal

	if in.AccountNumber == "" {
		return zero, fmt.Errorf("%w: account number is required", xerrors.ErrInvalidRequest)
	}
	if !in.Amount.IsPositive() {
		return zero, fmt.Errorf("%w: amount must be positive", xerrors.ErrInvalidRequest)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return zero, s.storeErr("transaction", err)
	}
	defer tx.Rollback(ctx)

	account, err := tx.AccountForUpdate(ctx, in.AccountNumber)
	if err != nil {
		if errors.Is(err, xerrors.ErrAccountNotFound) {
			return zero, err
		}
		return zero, s.storeErr("transaction", err)
	}
	if account.Status != domain.StatusActive {
		return zero, fmt.Errorf("%w: account is %s", xerrors.ErrAccountNotActive, account.Status)
	}

	var newBalance decimal.Decimal
	switch kind {
	case domain.TxDeposit:
		newBalance = account.Balance.Add(in.Amount)
	case domain.TxWithdrawal:
		if account.Balance.LessThan(in.Amount) {
			return zero, xerrors.ErrInsufficientFunds
		}
		newBalance = account.Balance.Sub(in.Amount)
	default:
		return zero, fmt.Errorf("%w: unsupported transaction type %q", xerrors.ErrInvalidRequest, kind)
	}

	if err := tx.UpdateAccountBalance(ctx, in.AccountNumber, newBalance); err != nil {
		return zero, s.storeErr("transaction", err)
	}

	rec := &domain.TransactionRecord{
		TransactionID:   utils.NewTransactionID(),
		AccountNumber:   in.AccountNumber,
		TransactionType: kind,
		Amount:          in.Amount,
		BalanceAfter:    newBalance,
		Note:            in.Note,
		ProcessedBy:     in.UserID,
	}
	if err := tx.AppendTransaction(ctx, rec); err != nil {
		return zero, s.storeErr("transaction", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, s.storeErr("transaction", err)
	}

	s.publish(ctx, "transaction.completed", in.AccountNumber, "", kind, in.Amount, newBalance, in.UserID)
	return newBalance, nil
}

// Transfer moves amount between two active accounts: one debit, one credit,
// and two ledger rows, committed together or not at all.
func (s *LedgerService) Transfer(ctx context.Context, in domain.TransferInput) error {
	if in.FromAccount == "" || in.ToAccount == "" {
		return fmt.Errorf("%w: both accounts are required", xerrors.ErrInvalidRequest)
	}
	if in.FromAccount == in.ToAccount {
		return fmt.Errorf("%w: cannot transfer to the same account", xerrors.ErrInvalidRequest)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", xerrors.ErrInvalidRequest)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return s.storeErr("transfer", err)
	}
	defer tx.Rollback(ctx)

	// Lock the two rows in sorted order so two opposing transfers cannot
	// deadlock each other.
	ordered := []string{in.FromAccount, in.ToAccount}
	sort.Strings(ordered)

	accounts := make(map[string]*domain.Account, 2)
	for _, number := range ordered {
		account, err := tx.AccountForUpdate(ctx, number)
		if err != nil {
			if errors.Is(err, xerrors.ErrAccountNotFound) {
				return fmt.Errorf("account %s: %w", number, xerrors.ErrAccountNotFound)
			}
			return s.storeErr("transfer", err)
		}
		if account.Status != domain.StatusActive {
			return fmt.Errorf("%w: account %s is %s", xerrors.ErrAccountNotActive, number, account.Status)
		}
		accounts[number] = account
	}

	from, to := accounts[in.FromAccount], accounts[in.ToAccount]
	if from.Balance.LessThan(in.Amount) {
		return xerrors.ErrInsufficientFunds
	}

	fromBalance := from.Balance.Sub(in.Amount)
	toBalance := to.Balance.Add(in.Amount)

	if err := tx.UpdateAccountBalance(ctx, in.FromAccount, fromBalance); err != nil {
		return s.storeErr("transfer", err)
	}
	if err := tx.UpdateAccountBalance(ctx, in.ToAccount, toBalance); err != nil {
		return s.storeErr("transfer", err)
	}

	outRec := &domain.TransactionRecord{
		TransactionID:   utils.NewTransactionID(),
		AccountNumber:   in.FromAccount,
		TransactionType: domain.TxTransferOut,
		Amount:          in.Amount,
		BalanceAfter:    fromBalance,
		Note:            in.Note,
		RelatedAccount:  &in.ToAccount,
		ProcessedBy:     in.UserID,
	}
	inRec := &domain.TransactionRecord{
		TransactionID:   utils.NewTransactionID(),
		AccountNumber:   in.ToAccount,
		TransactionType: domain.TxTransferIn,
		Amount:          in.Amount,
		BalanceAfter:    toBalance,
		Note:            in.Note,
		RelatedAccount:  &in.FromAccount,
		ProcessedBy:     in.UserID,
	}
	if err := tx.AppendTransaction(ctx, outRec); err != nil {
		return s.storeErr("transfer", err)
	}
	if err := tx.AppendTransaction(ctx, inRec); err != nil {
		return s.storeErr("transfer", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.storeErr("transfer", err)
	}

	s.publish(ctx, "transfer.completed", in.FromAccount, in.ToAccount, domain.TxTransferOut, in.Amount, fromBalance, in.UserID)
	return nil
}

// storeErr logs the underlying driver detail and returns the bare sentinel;
// callers never see what the store said.
func (s *LedgerService) storeErr(op string, err error) error {
	s.logger.Error("store failure",
		zap.String("op", op),
		zap.String("pg_code", xerrors.ParsePGErrorCode(err)),
		zap.Error(err),
	)
	return xerrors.ErrStore
}

func (s *LedgerService) publish(ctx context.Context, event, account, related string, kind domain.TransactionType, amount, balanceAfter decimal.Decimal, userID string) {
	if s.events == nil {
		return
	}
	// Best effort: the unit is already committed, a publish failure only
	// costs the notification.
	err := s.events.Publish(ctx, &pub.TransactionEvent{
		EventType:       event,
		AccountNumber:   account,
		RelatedAccount:  related,
		TransactionType: string(kind),
		Amount:          amount.String(),
		BalanceAfter:    balanceAfter.String(),
		ProcessedBy:     userID,
	})
	if err != nil {
		s.logger.Warn("event publish failed", zap.String("event", event), zap.Error(err))
	}
}
