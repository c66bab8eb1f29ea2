package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxDeposit     TransactionType = "deposit"
	TxWithdrawal  TransactionType = "withdrawal"
	TxTransferOut TransactionType = "transfer_out"
	TxTransferIn  TransactionType = "transfer_in"
)

// TransactionRecord is one immutable ledger row. BalanceAfter is the owning
// account's balance captured in the same atomic unit that wrote the row.
type TransactionRecord struct {
	TransactionID   string          `json:"transaction_id"`
	AccountNumber   string          `json:"account_number"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Note            string          `json:"note"`
	RelatedAccount  *string         `json:"related_account,omitempty"`
	ProcessedBy     string          `json:"processed_by"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// TransactionInput carries a validated deposit or withdrawal request.
type TransactionInput struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	UserID        string          `json:"userId"`
}

// TransferInput carries a validated transfer request.
type TransferInput struct {
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	UserID      string          `json:"userId"`
}

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	AccountNumber string
	Limit         int
}
