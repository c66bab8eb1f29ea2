package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"banking-service/internal/domain"
	"banking-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// allocatorLockKey is the advisory-lock key serializing account-number
// allocation. Held until the unit commits or rolls back.
const allocatorLockKey = 815001

// PostgresStore implements Store over a shared pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("begin: %w: %w", xerrors.ErrStore, err)
	}
	return &postgresTx{tx: tx}, nil
}

type postgresTx struct {
	tx pgx.Tx
}

func (t *postgresTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w: %w", xerrors.ErrStore, err)
	}
	return nil
}

func (t *postgresTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback: %w: %w", xerrors.ErrStore, err)
	}
	return nil
}

func (t *postgresTx) NextAccountNumber(ctx context.Context) (string, error) {
	// Serialize allocators for the remainder of the unit so two concurrent
	// creates cannot read the same maximum. The unique index on
	// account_number backstops this.
	if _, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, allocatorLockKey); err != nil {
		return "", fmt.Errorf("allocator lock: %w: %w", xerrors.ErrStore, err)
	}

	var next int64
	err := t.tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(account_number::bigint), $1) + 1 FROM accounts`,
		domain.BaseAccountNumber,
	).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("next account number: %w: %w", xerrors.ErrStore, err)
	}
	return fmt.Sprintf("%d", next), nil
}

func (t *postgresTx) AccountForUpdate(ctx context.Context, number string) (*domain.Account, error) {
	row := t.tx.QueryRow(ctx, `
		SELECT account_number, account_holder_name, email, phone, account_type,
		       balance::text, status, created_at, created_by
		FROM accounts
		WHERE account_number = $1
		FOR UPDATE`, number)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("fetch account %s: %w: %w", number, xerrors.ErrStore, err)
	}
	return a, nil
}

func (t *postgresTx) InsertAccount(ctx context.Context, a *domain.Account) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO accounts
			(account_number, account_holder_name, email, phone, account_type,
			 balance, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9)`,
		a.AccountNumber, a.HolderName, a.Email, a.Phone, a.AccountType,
		a.Balance.String(), a.Status, a.CreatedAt, a.CreatedBy)
	if err != nil {
		if xerrors.IsUniqueViolation(err) {
			return xerrors.ErrAllocationConflict
		}
		return fmt.Errorf("insert account: %w: %w", xerrors.ErrStore, err)
	}
	return nil
}

func (t *postgresTx) UpdateAccountBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE accounts SET balance = $1::numeric WHERE account_number = $2`,
		balance.String(), number)
	if err != nil {
		return fmt.Errorf("update balance: %w: %w", xerrors.ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrAccountNotFound
	}
	return nil
}

func (t *postgresTx) AppendTransaction(ctx context.Context, rec *domain.TransactionRecord) error {
	if rec.TransactionDate.IsZero() {
		rec.TransactionDate = time.Now()
	}
	_, err := t.tx.Exec(ctx, `
		INSERT INTO transactions
			(transaction_id, account_number, transaction_type, amount,
			 balance_after, note, related_account, processed_by, transaction_date)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9)`,
		rec.TransactionID, rec.AccountNumber, rec.TransactionType,
		rec.Amount.String(), rec.BalanceAfter.String(),
		rec.Note, rec.RelatedAccount, rec.ProcessedBy, rec.TransactionDate)
	if err != nil {
		if xerrors.IsUniqueViolation(err) {
			return xerrors.ErrDuplicateRecord
		}
		return fmt.Errorf("append transaction: %w: %w", xerrors.ErrStore, err)
	}
	return nil
}

// scanAccount maps one accounts row. Balance travels as text and is parsed
// into an exact decimal exactly once, here at the store boundary.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a       domain.Account
		balance string
	)
	err := row.Scan(&a.AccountNumber, &a.HolderName, &a.Email, &a.Phone,
		&a.AccountType, &balance, &a.Status, &a.CreatedAt, &a.CreatedBy)
	if err != nil {
		return nil, err
	}
	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	return &a, nil
}
