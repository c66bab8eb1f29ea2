package repository

import (
	"context"

	"banking-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Store hands out atomic units. Every ledger operation runs inside exactly one
// Tx bounded by Begin / Commit / Rollback; no operation spans two.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic unit over the account store and the transaction ledger.
// Implementations must serialize writers on the rows a unit touches: until
// Commit or Rollback, no other unit may observe or mutate them.
//
// All failures are normalized before they cross this boundary: missing rows
// become xerrors.ErrAccountNotFound, duplicate account numbers become
// xerrors.ErrAllocationConflict, and anything driver-level wraps
// xerrors.ErrStore.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// NextAccountNumber derives the next unused account number: the maximum
	// existing number interpreted as an integer (baseline 100000 on an empty
	// store) plus one. The read is serialized against concurrent allocators
	// for the remainder of the unit.
	NextAccountNumber(ctx context.Context) (string, error)

	// AccountForUpdate fetches an account and write-locks its row until the
	// unit ends.
	AccountForUpdate(ctx context.Context, number string) (*domain.Account, error)

	InsertAccount(ctx context.Context, a *domain.Account) error
	UpdateAccountBalance(ctx context.Context, number string, balance decimal.Decimal) error

	// AppendTransaction writes one immutable ledger row, stamping
	// TransactionDate if unset.
	AppendTransaction(ctx context.Context, t *domain.TransactionRecord) error
}
