package escrow

import (
	"fmt"
	"math"

	"carhive-backend/internal/domain"
)

// Ledger owns the two fund pools of one marketplace: the revenue balance
// (rental fees, withdrawable by the authority) and the deposit pool
// (escrowed deposits for active rentals). Revenue + deposits always equals
// everything ever deposited minus everything ever withdrawn; funds enter
// through DepositFee/DepositEscrow and leave only through WithdrawFee and
// ReleaseDeposit.
//
// The ledger is not goroutine-safe on its own. The marketplace aggregate
// serializes access with its own mutex.
type Ledger struct {
	revenueCents uint64
	depositCents uint64
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// DepositFee absorbs a rental fee into the revenue balance.
func (l *Ledger) DepositFee(f domain.Funds) error {
	if l.revenueCents > math.MaxUint64-f.Value() {
		return domain.ErrFundsOverflow
	}
	l.revenueCents += f.Value()
	return nil
}

// DepositEscrow absorbs a deposit into the deposit pool.
func (l *Ledger) DepositEscrow(f domain.Funds) error {
	if l.depositCents > math.MaxUint64-f.Value() {
		return domain.ErrFundsOverflow
	}
	l.depositCents += f.Value()
	return nil
}

// WithdrawFee removes exactly amount from the revenue balance and returns
// it as a fund unit. The balance check and the debit are one step; there
// is no observable state where the check passed but the debit has not
// happened.
func (l *Ledger) WithdrawFee(amount uint64) (domain.Funds, error) {
	if amount > l.revenueCents {
		return domain.Funds{}, domain.ErrInsufficientBalance
	}
	l.revenueCents -= amount
	return domain.NewFunds(amount), nil
}

// ForfeitDeposit moves exactly amount from the deposit pool into the
// revenue balance. An over-forfeit means the lifecycle engine's accounting
// is broken upstream, so it is a panic rather than an error value.
func (l *Ledger) ForfeitDeposit(amount uint64) {
	if amount > l.depositCents {
		panic(fmt.Sprintf("escrow: forfeit of %d exceeds deposit pool %d", amount, l.depositCents))
	}
	l.depositCents -= amount
	l.revenueCents += amount
}

// ReleaseDeposit removes exactly amount from the deposit pool and returns
// it as a fund unit, for refunding to a renter on a timely return. Like
// ForfeitDeposit, an over-release is an accounting fault, not user input.
func (l *Ledger) ReleaseDeposit(amount uint64) domain.Funds {
	if amount > l.depositCents {
		panic(fmt.Sprintf("escrow: release of %d exceeds deposit pool %d", amount, l.depositCents))
	}
	l.depositCents -= amount
	return domain.NewFunds(amount)
}

// Revenue reports the current revenue balance in cents.
func (l *Ledger) Revenue() uint64 {
	return l.revenueCents
}

// Deposits reports the current deposit pool in cents.
func (l *Ledger) Deposits() uint64 {
	return l.depositCents
}
