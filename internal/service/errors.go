package service

import "errors"

// Sentinel errors mapped to HTTP status codes at the controller boundary.
var (
	// ErrForbidden: the caller's identity does not satisfy the ledger rule
	// for the operation (only the requester deletes, only the processor
	// approves, ...).
	ErrForbidden = errors.New("operation not allowed for this employee")

	// ErrAlreadySubmitted: a response already exists for the (request,
	// target) pair. This is the submit gate the console UI applied.
	ErrAlreadySubmitted = errors.New("a response already exists for this employee")

	// ErrNotPending: the approval request has already been processed.
	ErrNotPending = errors.New("approval request is not pending")
)

// ValidationError is a user-input failure reported before any write.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}
