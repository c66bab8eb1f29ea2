package repository

import (
	"context"
	"errors"
	"fmt"

	"banking-service/internal/domain"
	"banking-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository serves the read-only account queries consumed by the HTTP
// layer and reporting. Mutations go through Store/Tx only.
type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByNumber retrieves a single account without locking it.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT account_number, account_holder_name, email, phone, account_type,
		       balance::text, status, created_at, created_by
		FROM accounts
		WHERE account_number = $1`, number)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account %s: %w: %w", number, xerrors.ErrStore, err)
	}
	return a, nil
}

// List returns accounts newest first, optionally filtered by a substring match
// on account number or holder name.
func (r *AccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	query := `
		SELECT account_number, account_holder_name, email, phone, account_type,
		       balance::text, status, created_at, created_by
		FROM accounts`
	args := []any{}

	if filter.Search != "" {
		query += ` WHERE account_number ILIKE $1 OR account_holder_name ILIKE $1`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w: %w", xerrors.ErrStore, err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w: %w", xerrors.ErrStore, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
