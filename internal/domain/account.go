package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusClosed    AccountStatus = "closed"
)

// BaseAccountNumber is the allocation baseline: the first account created in an
// empty store gets BaseAccountNumber+1.
const BaseAccountNumber int64 = 100000

// Account is a uniquely numbered balance-bearing record. The account number is
// immutable once assigned; only the balance changes after creation, and only
// through ledger operations.
type Account struct {
	AccountNumber string          `json:"account_number"`
	HolderName    string          `json:"account_holder_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// CreateAccountInput carries a validated create-account request.
type CreateAccountInput struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	AccountType    string          `json:"type"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	UserID         string          `json:"userId"`
}

// AccountFilter narrows account listings. Search matches account number or
// holder name as a substring.
type AccountFilter struct {
	Search string
	Limit  int
}
