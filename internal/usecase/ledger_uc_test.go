package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"banking-service/internal/domain"
	"banking-service/internal/repository"
	"banking-service/internal/usecase"
	"banking-service/pkg/xerrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T) (*usecase.LedgerService, *repository.MemStore) {
	t.Helper()
	store := repository.NewMemStore()
	return usecase.NewLedgerService(store, zap.NewNop(), nil), store
}

func mustCreate(t *testing.T, svc *usecase.LedgerService, initial string) string {
	t.Helper()
	number, err := svc.CreateAccount(context.Background(), domain.CreateAccountInput{
		Name:           "Jordan Doe",
		Email:          "jordan@example.com",
		Phone:          "0700000001",
		AccountType:    "savings",
		InitialDeposit: decimal.RequireFromString(initial),
		UserID:         "1",
	})
	require.NoError(t, err)
	return number
}

func accountByNumber(t *testing.T, store *repository.MemStore, number string) domain.Account {
	t.Helper()
	for _, a := range store.Accounts() {
		if a.AccountNumber == number {
			return a
		}
	}
	t.Fatalf("account %s not found", number)
	return domain.Account{}
}

// signed sum of an account's ledger rows; must always equal its balance.
func ledgerSum(store *repository.MemStore, number string) decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range store.Ledger(number) {
		switch rec.TransactionType {
		case domain.TxDeposit, domain.TxTransferIn:
			sum = sum.Add(rec.Amount)
		case domain.TxWithdrawal, domain.TxTransferOut:
			sum = sum.Sub(rec.Amount)
		}
	}
	return sum
}

func assertBalanceMatchesLedger(t *testing.T, store *repository.MemStore) {
	t.Helper()
	for _, a := range store.Accounts() {
		assert.Truef(t, a.Balance.Equal(ledgerSum(store, a.AccountNumber)),
			"account %s: balance %s != ledger sum %s",
			a.AccountNumber, a.Balance, ledgerSum(store, a.AccountNumber))
	}
}

func TestCreateAccountWithInitialDeposit(t *testing.T) {
	svc, store := newTestLedger(t)

	number := mustCreate(t, svc, "500.00")
	assert.Equal(t, "100001", number)

	account := accountByNumber(t, store, number)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, domain.StatusActive, account.Status)

	rows := store.Ledger(number)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.TxDeposit, rows[0].TransactionType)
	assert.Equal(t, "Initial deposit", rows[0].Note)
	assert.True(t, rows[0].BalanceAfter.Equal(decimal.RequireFromString("500.00")))
	assertBalanceMatchesLedger(t, store)
}

func TestCreateAccountZeroDepositWritesNoRow(t *testing.T) {
	svc, store := newTestLedger(t)

	number := mustCreate(t, svc, "0")
	assert.Empty(t, store.Ledger(number))
	assert.True(t, accountByNumber(t, store, number).Balance.IsZero())
}

func TestCreateAccountValidation(t *testing.T) {
	svc, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, domain.CreateAccountInput{
		Email: "a@b.c", Phone: "1", AccountType: "savings",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidRequest)

	_, err = svc.CreateAccount(ctx, domain.CreateAccountInput{
		Name: "A", Email: "a@b.c", Phone: "1", AccountType: "savings",
		InitialDeposit: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidRequest)
}

func TestAccountNumbersAreSequential(t *testing.T) {
	svc, _ := newTestLedger(t)

	first := mustCreate(t, svc, "0")
	second := mustCreate(t, svc, "0")
	assert.Equal(t, "100001", first)
	assert.Equal(t, "100002", second)
}

func TestConcurrentCreateAccountAllocatesUniqueNumbers(t *testing.T) {
	svc, _ := newTestLedger(t)

	const n = 25
	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			number, err := svc.CreateAccount(context.Background(), domain.CreateAccountInput{
				Name:        fmt.Sprintf("Holder %d", i),
				Email:       fmt.Sprintf("h%d@example.com", i),
				Phone:       fmt.Sprintf("07%08d", i),
				AccountType: "checking",
				UserID:      "1",
			})
			if err == nil {
				numbers <- number
			}
		}(i)
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	count := 0
	for number := range numbers {
		assert.Falsef(t, seen[number], "account number %s allocated twice", number)
		seen[number] = true
		count++
	}
	assert.Equal(t, n, count)
}

func TestDepositAndWithdraw(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()
	number := mustCreate(t, svc, "0")

	balance, err := svc.Deposit(ctx, domain.TransactionInput{
		AccountNumber: number,
		Amount:        decimal.RequireFromString("200.00"),
		Note:          "payday",
		UserID:        "1",
	})
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("200.00")))

	balance, err = svc.Withdraw(ctx, domain.TransactionInput{
		AccountNumber: number,
		Amount:        decimal.RequireFromString("50.00"),
		UserID:        "1",
	})
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("150.00")))

	rows := store.Ledger(number)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.TxDeposit, rows[0].TransactionType)
	assert.Equal(t, domain.TxWithdrawal, rows[1].TransactionType)
	assert.True(t, rows[1].BalanceAfter.Equal(decimal.RequireFromString("150.00")))
	assertBalanceMatchesLedger(t, store)
}

func TestTransactionValidation(t *testing.T) {
	svc, _ := newTestLedger(t)
	ctx := context.Background()
	number := mustCreate(t, svc, "100.00")

	for _, amount := range []string{"0", "-5"} {
		_, err := svc.Deposit(ctx, domain.TransactionInput{
			AccountNumber: number,
			Amount:        decimal.RequireFromString(amount),
		})
		assert.ErrorIs(t, err, xerrors.ErrInvalidRequest)
	}

	_, err := svc.Deposit(ctx, domain.TransactionInput{
		AccountNumber: "999999",
		Amount:        decimal.RequireFromString("10"),
	})
	assert.ErrorIs(t, err, xerrors.ErrAccountNotFound)
}

func TestWithdrawInsufficientFundsLeavesStateUntouched(t *testing.T) {
	svc, store := newTestLedger(t)
	number := mustCreate(t, svc, "1000.00")

	_, err := svc.Withdraw(context.Background(), domain.TransactionInput{
		AccountNumber: number,
		Amount:        decimal.RequireFromString("1500.00"),
		UserID:        "1",
	})
	assert.ErrorIs(t, err, xerrors.ErrInsufficientFunds)

	account := accountByNumber(t, store, number)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1000.00")))
	assert.Len(t, store.Ledger(number), 1) // only the opening deposit
}

func TestDepositOnSuspendedAccount(t *testing.T) {
	svc, store := newTestLedger(t)
	number := mustCreate(t, svc, "100.00")
	store.SetAccountStatus(number, domain.StatusSuspended)

	_, err := svc.Deposit(context.Background(), domain.TransactionInput{
		AccountNumber: number,
		Amount:        decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, xerrors.ErrAccountNotActive)
	assert.Contains(t, err.Error(), "suspended")
	assert.Len(t, store.Ledger(number), 1)
}

func TestTransfer(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()
	from := mustCreate(t, svc, "1000.00")
	to := mustCreate(t, svc, "0")

	err := svc.Transfer(ctx, domain.TransferInput{
		FromAccount: from,
		ToAccount:   to,
		Amount:      decimal.RequireFromString("300.00"),
		Note:        "rent",
		UserID:      "1",
	})
	require.NoError(t, err)

	assert.True(t, accountByNumber(t, store, from).Balance.Equal(decimal.RequireFromString("700.00")))
	assert.True(t, accountByNumber(t, store, to).Balance.Equal(decimal.RequireFromString("300.00")))

	outRows := store.Ledger(from)
	inRows := store.Ledger(to)
	require.Len(t, outRows, 2) // opening deposit + transfer_out
	require.Len(t, inRows, 1)

	outLeg, inLeg := outRows[1], inRows[0]
	assert.Equal(t, domain.TxTransferOut, outLeg.TransactionType)
	assert.Equal(t, domain.TxTransferIn, inLeg.TransactionType)
	assert.True(t, outLeg.Amount.Equal(inLeg.Amount))
	require.NotNil(t, outLeg.RelatedAccount)
	require.NotNil(t, inLeg.RelatedAccount)
	assert.Equal(t, to, *outLeg.RelatedAccount)
	assert.Equal(t, from, *inLeg.RelatedAccount)
	assert.NotEqual(t, outLeg.TransactionID, inLeg.TransactionID)
	assert.Len(t, outLeg.TransactionID, len(inLeg.TransactionID))
	assertBalanceMatchesLedger(t, store)
}

func TestTransferRejectsSelfTransfer(t *testing.T) {
	svc, _ := newTestLedger(t)
	number := mustCreate(t, svc, "100.00")

	err := svc.Transfer(context.Background(), domain.TransferInput{
		FromAccount: number,
		ToAccount:   number,
		Amount:      decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidRequest)
}

func TestTransferFailuresCommitNothing(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()
	from := mustCreate(t, svc, "100.00")
	to := mustCreate(t, svc, "0")

	cases := []struct {
		name    string
		input   domain.TransferInput
		wantErr error
		prep    func()
	}{
		{
			name:    "missing destination",
			input:   domain.TransferInput{FromAccount: from, ToAccount: "999999", Amount: decimal.RequireFromString("10")},
			wantErr: xerrors.ErrAccountNotFound,
		},
		{
			name:    "insufficient funds",
			input:   domain.TransferInput{FromAccount: from, ToAccount: to, Amount: decimal.RequireFromString("5000")},
			wantErr: xerrors.ErrInsufficientFunds,
		},
		{
			name:    "suspended destination",
			input:   domain.TransferInput{FromAccount: from, ToAccount: to, Amount: decimal.RequireFromString("10")},
			wantErr: xerrors.ErrAccountNotActive,
			prep:    func() { store.SetAccountStatus(to, domain.StatusSuspended) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.prep != nil {
				tc.prep()
			}
			err := svc.Transfer(ctx, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, accountByNumber(t, store, from).Balance.Equal(decimal.RequireFromString("100.00")))
			assert.True(t, accountByNumber(t, store, to).Balance.IsZero())
			assert.Len(t, store.Ledger(from), 1)
			assert.Empty(t, store.Ledger(to))
		})
	}
}

func TestDepositWithdrawTransferScenario(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()

	a := mustCreate(t, svc, "0")
	b := mustCreate(t, svc, "0")

	_, err := svc.Deposit(ctx, domain.TransactionInput{AccountNumber: a, Amount: decimal.RequireFromString("200.00"), UserID: "1"})
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, domain.TransactionInput{AccountNumber: a, Amount: decimal.RequireFromString("50.00"), UserID: "1"})
	require.NoError(t, err)
	err = svc.Transfer(ctx, domain.TransferInput{FromAccount: a, ToAccount: b, Amount: decimal.RequireFromString("30.00"), UserID: "1"})
	require.NoError(t, err)

	assert.True(t, accountByNumber(t, store, a).Balance.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, accountByNumber(t, store, b).Balance.Equal(decimal.RequireFromString("30.00")))
	assert.Len(t, store.Ledger(a), 3)
	assert.Len(t, store.Ledger(b), 1)
	assertBalanceMatchesLedger(t, store)
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	svc, store := newTestLedger(t)
	number := mustCreate(t, svc, "500.00")

	const attempts = 10
	var wg sync.WaitGroup
	var succeeded int32
	var mu sync.Mutex

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Withdraw(context.Background(), domain.TransactionInput{
				AccountNumber: number,
				Amount:        decimal.RequireFromString("100.00"),
				UserID:        "1",
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 5, succeeded)
	assert.True(t, accountByNumber(t, store, number).Balance.IsZero())
	assertBalanceMatchesLedger(t, store)
}
