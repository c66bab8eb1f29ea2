package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the landing-page aggregate.
type DashboardStats struct {
	TotalAccounts     int64           `json:"totalAccounts"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	TodayTransactions int64           `json:"todayTransactions"`
}

// AccountSummary is one row of the account_summary view.
type AccountSummary struct {
	AccountNumber    string          `json:"account_number"`
	HolderName       string          `json:"account_holder_name"`
	AccountType      string          `json:"account_type"`
	Balance          decimal.Decimal `json:"balance"`
	Status           string          `json:"status"`
	TransactionCount int64           `json:"transaction_count"`
	TotalDeposited   decimal.Decimal `json:"total_deposited"`
	TotalWithdrawn   decimal.Decimal `json:"total_withdrawn"`
}

// DailySummary is one row of the daily_transaction_summary view.
type DailySummary struct {
	TransactionDate  time.Time       `json:"transaction_date"`
	TransactionCount int64           `json:"transaction_count"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalTransfers   decimal.Decimal `json:"total_transfers"`
}
