package repository

import (
	"context"
	"fmt"

	"banking-service/internal/domain"
	"banking-service/pkg/xerrors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ReportRepository serves the aggregate views. Everything here is read-only
// over committed state; the views live in migrations/schema.sql.
type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		stats   domain.DashboardStats
		balance string
	)
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(balance), 0)::text FROM accounts`,
	).Scan(&stats.TotalAccounts, &balance)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w: %w", xerrors.ErrStore, err)
	}
	if stats.TotalBalance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("parse total balance %q: %w", balance, err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE transaction_date::date = CURRENT_DATE`,
	).Scan(&stats.TodayTransactions)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w: %w", xerrors.ErrStore, err)
	}
	return &stats, nil
}

func (r *ReportRepository) AccountSummaries(ctx context.Context) ([]*domain.AccountSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT account_number, account_holder_name, account_type, balance::text,
		       status, transaction_count, total_deposited::text, total_withdrawn::text
		FROM account_summary`)
	if err != nil {
		return nil, fmt.Errorf("account summary: %w: %w", xerrors.ErrStore, err)
	}
	defer rows.Close()

	var out []*domain.AccountSummary
	for rows.Next() {
		var (
			s                             domain.AccountSummary
			balance, deposited, withdrawn string
		)
		err := rows.Scan(&s.AccountNumber, &s.HolderName, &s.AccountType, &balance,
			&s.Status, &s.TransactionCount, &deposited, &withdrawn)
		if err != nil {
			return nil, fmt.Errorf("account summary: %w: %w", xerrors.ErrStore, err)
		}
		if s.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, err
		}
		if s.TotalDeposited, err = decimal.NewFromString(deposited); err != nil {
			return nil, err
		}
		if s.TotalWithdrawn, err = decimal.NewFromString(withdrawn); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *ReportRepository) DailySummaries(ctx context.Context) ([]*domain.DailySummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT transaction_date, transaction_count, total_deposits::text,
		       total_withdrawals::text, total_transfers::text
		FROM daily_transaction_summary`)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w: %w", xerrors.ErrStore, err)
	}
	defer rows.Close()

	var out []*domain.DailySummary
	for rows.Next() {
		var (
			s                                domain.DailySummary
			deposits, withdrawals, transfers string
		)
		err := rows.Scan(&s.TransactionDate, &s.TransactionCount, &deposits,
			&withdrawals, &transfers)
		if err != nil {
			return nil, fmt.Errorf("daily summary: %w: %w", xerrors.ErrStore, err)
		}
		if s.TotalDeposits, err = decimal.NewFromString(deposits); err != nil {
			return nil, err
		}
		if s.TotalWithdrawals, err = decimal.NewFromString(withdrawals); err != nil {
			return nil, err
		}
		if s.TotalTransfers, err = decimal.NewFromString(transfers); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
