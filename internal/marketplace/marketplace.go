package marketplace

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/google/uuid"

	"carhive-backend/internal/catalog"
	"carhive-backend/internal/domain"
	"carhive-backend/internal/escrow"
	"carhive-backend/internal/events"
	"carhive-backend/internal/security"
)

const (
	// DepositCents is the fixed protocol deposit escrowed per rental. It
	// is a flat constant, not proportional to price or duration.
	DepositCents uint64 = 5000

	// PeriodMillis is the length of one rental period: a calendar day.
	PeriodMillis int64 = 24 * 60 * 60 * 1000
)

// Marketplace is the aggregate root for one car-rental marketplace: a
// catalog of rentable cars, the escrow ledger holding rental fees and
// deposits, and the identity of the single authority capability that may
// administer it.
//
// Every operation runs under one mutex, so each transition is
// all-or-nothing: any failed precondition aborts before the first
// mutation. Different instances are independent and may run in parallel.
type Marketplace struct {
	mu          sync.Mutex
	id          uuid.UUID
	authorityID uuid.UUID
	ledger      *escrow.Ledger
	catalog     *catalog.Store
	sink        events.Sink

	// rentals maps a listing index to the RentalID of its outstanding
	// rental. An entry exists exactly while the car is checked out; it is
	// written by Rent and removed by Return and Expire. Presented bearer
	// records are checked against it before any funds move.
	rentals map[uint64]uuid.UUID
}

// New creates a marketplace and mints its authority capability. This is
// the only place a capability for the instance is ever issued.
func New(sink events.Sink) (*Marketplace, security.Capability) {
	id := uuid.New()
	m := &Marketplace{
		id:          id,
		authorityID: id,
		ledger:      escrow.NewLedger(),
		catalog:     catalog.NewStore(),
		sink:        sink,
		rentals:     make(map[uint64]uuid.UUID),
	}
	return m, security.NewCapability(id)
}

// ID reports the marketplace identity.
func (m *Marketplace) ID() uuid.UUID {
	return m.id
}

// AddListing inserts a new catalog entry. Privileged; requires the
// authority capability and a positive price. No funds move.
func (m *Marketplace) AddListing(ctx context.Context, cap security.Capability, title, description string, priceCents uint64, category string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := security.Authorize(cap, m.authorityID); err != nil {
		return 0, err
	}
	if priceCents == 0 {
		return 0, domain.ErrInvalidPrice
	}

	index := m.catalog.Insert(title, description, priceCents, category)
	m.sink.Emit(ctx, events.ListingAdded{
		MarketplaceID:    m.id,
		ListingIndex:     index,
		Title:            title,
		PricePerDayCents: priceCents,
		Category:         category,
	})
	return index, nil
}

// Unlist withdraws a listing from future rentals. Privileged. It does not
// check for an outstanding rental: a currently rented car is already
// unlisted by the rent step, so an unlist attempt on it surfaces as
// ErrAlreadyInState and changes nothing.
func (m *Marketplace) Unlist(ctx context.Context, cap security.Capability, index uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := security.Authorize(cap, m.authorityID); err != nil {
		return err
	}
	if err := m.catalog.SetListed(index, false); err != nil {
		return err
	}

	m.sink.Emit(ctx, events.ListingUnlisted{MarketplaceID: m.id, ListingIndex: index})
	return nil
}

// Rent checks a car out to a renter. The payment must equal
// price*periods + DepositCents exactly; anything above or below fails, so
// there is never change to refund. On success the fee goes to the revenue
// balance, the deposit to the escrow pool, the entry is delisted, and the
// renter receives a snapshot bearer record.
func (m *Marketplace) Rent(ctx context.Context, index, periods uint64, renterID uuid.UUID, payment domain.Funds, nowMillis int64) (*domain.ActiveRental, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.catalog.Get(index)
	if err != nil {
		return nil, err
	}
	if !entry.Listed {
		return nil, domain.ErrNotListed
	}

	fee, err := rentalFee(entry.PricePerDayCents, periods)
	if err != nil {
		return nil, err
	}
	if fee > math.MaxUint64-DepositCents {
		return nil, domain.ErrFundsOverflow
	}
	totalDue := fee + DepositCents
	if payment.Value() != totalDue {
		return nil, domain.ErrInsufficientPayment
	}

	feeFunds, depositFunds, err := payment.Split(fee)
	if err != nil {
		return nil, err
	}
	if err := m.ledger.DepositFee(feeFunds); err != nil {
		return nil, err
	}
	if err := m.ledger.DepositEscrow(depositFunds); err != nil {
		// Undo the fee deposit so a failed rent leaves both pools
		// untouched.
		_, _ = m.ledger.WithdrawFee(fee)
		return nil, err
	}
	if err := m.catalog.SetListed(index, false); err != nil {
		panic("marketplace: listed entry vanished mid-rent")
	}

	rentalID := uuid.New()
	m.rentals[index] = rentalID

	rental := &domain.ActiveRental{
		RentalID:         rentalID,
		ListingIndex:     index,
		Title:            entry.Title,
		Description:      entry.Description,
		PricePerDayCents: entry.PricePerDayCents,
		Category:         entry.Category,
		RentedAtMillis:   nowMillis,
		ExpiresAtMillis:  nowMillis + int64(periods)*PeriodMillis,
		RenterID:         renterID,
	}

	m.sink.Emit(ctx, events.ListingRented{
		MarketplaceID:   m.id,
		RentalID:        rentalID,
		ListingIndex:    index,
		RenterID:        renterID,
		Periods:         periods,
		FeeCents:        fee,
		DepositCents:    DepositCents,
		ExpiresAtMillis: rental.ExpiresAtMillis,
	})
	return rental, nil
}

// Return consumes a bearer record before its expiry, relists the car, and
// refunds the full deposit to the renter. Returns after expiry must go
// through Expire instead; the two are mutually exclusive terminal routes.
func (m *Marketplace) Return(ctx context.Context, rental *domain.ActiveRental, nowMillis int64) (domain.Funds, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.catalog.Get(rental.ListingIndex); err != nil {
		return domain.Funds{}, err
	}
	if err := m.verifyOutstanding(rental); err != nil {
		return domain.Funds{}, err
	}
	if nowMillis >= rental.ExpiresAtMillis {
		return domain.Funds{}, domain.ErrAlreadyExpired
	}

	if err := m.catalog.SetListed(rental.ListingIndex, true); err != nil {
		return domain.Funds{}, err
	}
	delete(m.rentals, rental.ListingIndex)
	refund := m.ledger.ReleaseDeposit(DepositCents)

	m.sink.Emit(ctx, events.RentalReturned{
		MarketplaceID: m.id,
		ListingIndex:  rental.ListingIndex,
		RenterID:      rental.RenterID,
		RefundCents:   refund.Value(),
	})
	return refund, nil
}

// Extend pushes a rental's expiry out by extraPeriods, against a payment
// of exactly price*extraPeriods. No second deposit is taken. This is the
// one sanctioned in-place mutation of a bearer record.
func (m *Marketplace) Extend(ctx context.Context, rental *domain.ActiveRental, extraPeriods uint64, payment domain.Funds, nowMillis int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.catalog.Get(rental.ListingIndex); err != nil {
		return err
	}
	if err := m.verifyOutstanding(rental); err != nil {
		return err
	}
	if nowMillis >= rental.ExpiresAtMillis {
		return domain.ErrAlreadyExpired
	}

	fee, err := rentalFee(rental.PricePerDayCents, extraPeriods)
	if err != nil {
		return err
	}
	if payment.Value() != fee {
		return domain.ErrInsufficientPayment
	}
	if err := m.ledger.DepositFee(payment); err != nil {
		return err
	}
	rental.ExpiresAtMillis += int64(extraPeriods) * PeriodMillis

	m.sink.Emit(ctx, events.RentalExtended{
		MarketplaceID:   m.id,
		ListingIndex:    rental.ListingIndex,
		RenterID:        rental.RenterID,
		ExtraPeriods:    extraPeriods,
		FeeCents:        fee,
		ExpiresAtMillis: rental.ExpiresAtMillis,
	})
	return nil
}

// Expire handles a rental whose expiry has passed: the deposit is
// forfeited into the revenue balance and the catalog entry is removed for
// good. This is the only path that destroys a catalog entry outright, so
// a second expire attempt on the same rental fails with
// ErrInvalidListingIndex.
func (m *Marketplace) Expire(ctx context.Context, rental *domain.ActiveRental, nowMillis int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if nowMillis <= rental.ExpiresAtMillis {
		return domain.ErrNotYetExpired
	}
	if _, err := m.catalog.Get(rental.ListingIndex); err != nil {
		return err
	}
	if err := m.verifyOutstanding(rental); err != nil {
		return err
	}

	delete(m.rentals, rental.ListingIndex)
	m.ledger.ForfeitDeposit(DepositCents)
	if err := m.catalog.Remove(rental.ListingIndex); err != nil {
		panic("marketplace: entry vanished mid-expire")
	}

	m.sink.Emit(ctx, events.RentalExpired{
		MarketplaceID: m.id,
		ListingIndex:  rental.ListingIndex,
		RenterID:      rental.RenterID,
		ForfeitCents:  DepositCents,
	})
	return nil
}

// Withdraw moves funds out of the revenue balance to the authority.
// Privileged; cannot touch the deposit pool.
func (m *Marketplace) Withdraw(ctx context.Context, cap security.Capability, amount uint64, recipient string) (domain.Funds, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := security.Authorize(cap, m.authorityID); err != nil {
		return domain.Funds{}, err
	}
	funds, err := m.ledger.WithdrawFee(amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return domain.Funds{}, domain.ErrInvalidWithdrawalAmount
		}
		return domain.Funds{}, err
	}

	m.sink.Emit(ctx, events.FundsWithdrawn{
		MarketplaceID: m.id,
		AmountCents:   amount,
		Recipient:     recipient,
	})
	return funds, nil
}

// Listing returns a copy of the catalog entry at index.
func (m *Marketplace) Listing(index uint64) (domain.ListingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.catalog.Get(index)
	if err != nil {
		return domain.ListingEntry{}, err
	}
	return *entry, nil
}

// Listings returns a copy of every current catalog entry.
func (m *Marketplace) Listings() []domain.ListingEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog.List()
}

// Balances reports the revenue balance and deposit pool, in cents.
func (m *Marketplace) Balances() (revenue, deposits uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Revenue(), m.ledger.Deposits()
}

// ActiveListingCount reports how many entries are currently listed.
func (m *Marketplace) ActiveListingCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog.ActiveCount()
}

// TotalListingsCreated reports how many entries have ever been created.
func (m *Marketplace) TotalListingsCreated() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog.TotalCreated()
}

// verifyOutstanding accepts a bearer record only while the listing has an
// outstanding rental whose RentalID matches. A record that was already
// consumed, references a never-rented listing, or carries a fabricated ID
// fails here, before any state or funds are touched. Call with the mutex
// held.
func (m *Marketplace) verifyOutstanding(rental *domain.ActiveRental) error {
	id, ok := m.rentals[rental.ListingIndex]
	if !ok || id != rental.RentalID {
		return domain.ErrNotRented
	}
	return nil
}

// rentalFee computes price*periods with an overflow guard.
func rentalFee(priceCents, periods uint64) (uint64, error) {
	if periods == 0 {
		return 0, nil
	}
	if priceCents > math.MaxUint64/periods {
		return 0, domain.ErrFundsOverflow
	}
	return priceCents * periods, nil
}
