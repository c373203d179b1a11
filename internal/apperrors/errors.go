package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidLedgerRef indicates that a ledger reference could not be resolved
// to either the personal ledger or a shared account id. This is fatal to the
// requested operation; callers must never substitute the personal ledger.
var ErrInvalidLedgerRef = errors.New("invalid ledger reference")

// ErrNetwork indicates a transient remote failure (timeout, connection refused,
// DNS). Read paths recover from it by serving cached data in degraded mode.
var ErrNetwork = errors.New("network error")

// PermissionError is a policy rejection from the permission validator. It is
// produced before any network call is attempted and carries a message suitable
// for direct display to the user, so callers can tell "blocked by policy"
// apart from transport failures.
type PermissionError struct {
	Action    string
	LedgerKey string
	Reason    string
}

func (e *PermissionError) Error() string {
	return e.Reason
}

// Unwrap lets errors.Is(err, ErrForbidden) match every policy rejection.
func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

// NewPermissionError builds a PermissionError for the given action and ledger.
func NewPermissionError(action, ledgerKey, reason string) *PermissionError {
	return &PermissionError{Action: action, LedgerKey: ledgerKey, Reason: reason}
}

// ReconciliationMismatch reports that the backend summary disagreed with the
// balance recomputed from the visible transaction list. It is recovered by
// preferring the recomputed value; it is logged, never fatal.
type ReconciliationMismatch struct {
	LedgerKey  string
	Reported   string
	Recomputed string
}

func (e *ReconciliationMismatch) Error() string {
	return fmt.Sprintf("summary mismatch for ledger %s: backend reported balance %s, recomputed %s",
		e.LedgerKey, e.Reported, e.Recomputed)
}
