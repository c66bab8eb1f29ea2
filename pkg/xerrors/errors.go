package xerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
)

// Ledger
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotActive   = errors.New("account not active")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAllocationConflict = errors.New("account number already allocated")
	ErrDuplicateRecord    = errors.New("duplicate record")

	// ErrStore wraps underlying persistence failures. The driver detail it carries
	// is for internal logging only and must never be echoed to callers.
	ErrStore = errors.New("store failure")
)

// Auth
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired")
)

// ParsePGErrorCode extracts the SQLSTATE code from a postgres error, or
// "unknown" when the error did not come from the driver.
func ParsePGErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// IsUniqueViolation reports whether err is a postgres unique-constraint violation.
func IsUniqueViolation(err error) bool {
	return ParsePGErrorCode(err) == "23505"
}
