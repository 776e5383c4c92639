package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	// ErrInvalid marks input the ledger refuses to accept (negative opening
	// balance, non-positive amount, unknown type).
	ErrInvalid = errors.New("invalid")
	// ErrInsufficientFunds is returned when a balance would drop below zero.
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrConflict          = errors.New("conflict")
)
