package domain

import "errors"

// Precondition failures reported to callers. Every one of these leaves the
// marketplace aggregate exactly as it was before the call.
var (
	ErrUnauthorized            = errors.New("capability does not authorize this marketplace")
	ErrInvalidPrice            = errors.New("listing price must be greater than zero")
	ErrInvalidListingIndex     = errors.New("no listing with this index")
	ErrNotListed               = errors.New("listing is not available for rent")
	ErrInsufficientPayment     = errors.New("payment does not match the amount due")
	ErrAlreadyExpired          = errors.New("rental has already expired")
	ErrNotYetExpired           = errors.New("rental has not expired yet")
	ErrNotRented               = errors.New("no outstanding rental matches this record")
	ErrInvalidWithdrawalAmount = errors.New("withdrawal amount exceeds revenue balance")

	// ErrInsufficientBalance is the escrow ledger's own spelling of an
	// over-withdrawal. The lifecycle engine maps it to
	// ErrInvalidWithdrawalAmount before it reaches a caller.
	ErrInsufficientBalance = errors.New("insufficient revenue balance")

	// ErrAlreadyInState is returned by the catalog when a listed-flag
	// update would not change anything.
	ErrAlreadyInState = errors.New("listing is already in the requested state")
)
