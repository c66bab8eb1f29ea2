package repository

import (
	"context"
	"fmt"

	"banking-service/internal/domain"
	"banking-service/pkg/xerrors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionRepository serves read-only ledger queries. Rows are appended
// through Store/Tx only and are never updated or deleted.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List returns ledger rows newest first, optionally scoped to one account.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionRecord, error) {
	query := `
		SELECT transaction_id, account_number, transaction_type, amount::text,
		       balance_after::text, note, related_account, processed_by, transaction_date
		FROM transactions`
	args := []any{}

	if filter.AccountNumber != "" {
		query += ` WHERE account_number = $1`
		args = append(args, filter.AccountNumber)
	}
	query += ` ORDER BY transaction_date DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w: %w", xerrors.ErrStore, err)
	}
	defer rows.Close()

	var records []*domain.TransactionRecord
	for rows.Next() {
		var (
			rec          domain.TransactionRecord
			amount       string
			balanceAfter string
		)
		err := rows.Scan(&rec.TransactionID, &rec.AccountNumber, &rec.TransactionType,
			&amount, &balanceAfter, &rec.Note, &rec.RelatedAccount,
			&rec.ProcessedBy, &rec.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w: %w", xerrors.ErrStore, err)
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		if rec.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
			return nil, fmt.Errorf("parse balance_after %q: %w", balanceAfter, err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
