package domain

import (
	"errors"
	"math"
)

// ErrFundsOverflow is returned when a merge or deposit would exceed the
// carrying range of the cents counter.
var ErrFundsOverflow = errors.New("fund amount overflows")

// ErrSplitExceedsValue is returned when a split asks for more than the
// fund unit holds.
var ErrSplitExceedsValue = errors.New("split amount exceeds fund value")

// Funds is an opaque carrier for a single fungible unit (cents). It is
// created by payment intake, moved between pools by the escrow ledger, and
// only ever changes value through Split and Merge, so no amount appears or
// disappears outside those operations.
type Funds struct {
	cents uint64
}

// NewFunds creates a fund unit holding the given amount of cents.
func NewFunds(cents uint64) Funds {
	return Funds{cents: cents}
}

// Value reports the amount carried, in cents.
func (f Funds) Value() uint64 {
	return f.cents
}

// Split carves amount off f, returning (carved, remainder).
func (f Funds) Split(amount uint64) (Funds, Funds, error) {
	if amount > f.cents {
		return Funds{}, Funds{}, ErrSplitExceedsValue
	}
	return Funds{cents: amount}, Funds{cents: f.cents - amount}, nil
}

// Merge combines two fund units into one.
func Merge(a, b Funds) (Funds, error) {
	if a.cents > math.MaxUint64-b.cents {
		return Funds{}, ErrFundsOverflow
	}
	return Funds{cents: a.cents + b.cents}, nil
}
