package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"banking-service/internal/domain"
	"banking-service/pkg/xerrors"

	"github.com/shopspring/decimal"
)

// MemStore is an in-memory Store used by tests and local development. A unit
// takes the store mutex for its whole lifetime (exclusive table locking), so
// units are fully serialized: concurrent readers or writers never observe a
// partially applied unit.
type MemStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	ledger   []domain.TransactionRecord
}

func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[string]domain.Account)}
}

func (s *MemStore) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	t := &memTx{
		store:    s,
		accounts: make(map[string]domain.Account, len(s.accounts)),
	}
	for k, v := range s.accounts {
		t.accounts[k] = v
	}
	return t, nil
}

// Accounts returns a snapshot of all accounts, for assertions and listings.
func (s *MemStore) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out
}

// Ledger returns a snapshot of all committed transaction rows, optionally
// filtered by account number.
func (s *MemStore) Ledger(accountNumber string) []domain.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TransactionRecord
	for _, rec := range s.ledger {
		if accountNumber == "" || rec.AccountNumber == accountNumber {
			out = append(out, rec)
		}
	}
	return out
}

type memTx struct {
	store    *MemStore
	accounts map[string]domain.Account // working copy
	appended []domain.TransactionRecord
	done     bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return xerrors.ErrStore
	}
	t.store.accounts = t.accounts
	t.store.ledger = append(t.store.ledger, t.appended...)
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil // already committed or rolled back
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) NextAccountNumber(ctx context.Context) (string, error) {
	max := domain.BaseAccountNumber
	for number := range t.accounts {
		if n, err := strconv.ParseInt(number, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10), nil
}

func (t *memTx) AccountForUpdate(ctx context.Context, number string) (*domain.Account, error) {
	a, ok := t.accounts[number]
	if !ok {
		return nil, xerrors.ErrAccountNotFound
	}
	return &a, nil
}

func (t *memTx) InsertAccount(ctx context.Context, a *domain.Account) error {
	if _, exists := t.accounts[a.AccountNumber]; exists {
		return xerrors.ErrAllocationConflict
	}
	t.accounts[a.AccountNumber] = *a
	return nil
}

func (t *memTx) UpdateAccountBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	a, ok := t.accounts[number]
	if !ok {
		return xerrors.ErrAccountNotFound
	}
	a.Balance = balance
	t.accounts[number] = a
	return nil
}

func (t *memTx) AppendTransaction(ctx context.Context, rec *domain.TransactionRecord) error {
	for _, existing := range t.appended {
		if existing.TransactionID == rec.TransactionID {
			return xerrors.ErrDuplicateRecord
		}
	}
	for _, existing := range t.store.ledger {
		if existing.TransactionID == rec.TransactionID {
			return xerrors.ErrDuplicateRecord
		}
	}
	if rec.TransactionDate.IsZero() {
		rec.TransactionDate = time.Now()
	}
	t.appended = append(t.appended, *rec)
	return nil
}

// SetAccountStatus flips an account's status directly, bypassing the ledger.
// Test and local-admin helper; the engine exposes no status mutation.
func (s *MemStore) SetAccountStatus(number string, status domain.AccountStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[number]; ok {
		a.Status = status
		s.accounts[number] = a
	}
}

// SearchAccounts mirrors the read-side account listing for in-memory runs:
// substring match on account number or holder name.
func (s *MemStore) SearchAccounts(search string, limit int) []domain.Account {
	all := s.Accounts()
	var out []domain.Account
	for _, a := range all {
		if search == "" ||
			strings.Contains(a.AccountNumber, search) ||
			strings.Contains(strings.ToLower(a.HolderName), strings.ToLower(search)) {
			out = append(out, a)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
