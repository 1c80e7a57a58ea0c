package domain

import "github.com/google/uuid"

// ActiveRental is the bearer record a renter holds while a car is checked
// out. It snapshots the catalog entry at rental time, so later catalog
// edits or removals never affect what the renter agreed to. The record is
// created only by a successful rent and consumed by return or expiry; the
// only in-place mutation is an extension pushing ExpiresAtMillis out.
//
// RentalID is minted fresh on every rent. The engine keeps its own copy
// per outstanding rental and accepts a record only while the two match,
// so a consumed, replayed, or fabricated record cannot touch escrow.
type ActiveRental struct {
	RentalID     uuid.UUID `json:"rental_id"`
	ListingIndex uint64    `json:"listing_index"`

	// Snapshot of the catalog entry at rental time.
	Title            string `json:"title"`
	Description      string `json:"description"`
	PricePerDayCents uint64 `json:"price_per_day_cents"`
	Category         string `json:"category"`

	RentedAtMillis  int64     `json:"rented_at_millis"`
	ExpiresAtMillis int64     `json:"expires_at_millis"`
	RenterID        uuid.UUID `json:"renter_id"`
}

// RentalStatus tracks the durable mirror row for a rental, not the live
// aggregate state (the bearer record above is authoritative while active).
type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "ACTIVE"
	RentalStatusReturned RentalStatus = "RETURNED"
	RentalStatusExpired  RentalStatus = "EXPIRED"
)

// RentalRecord is the persisted history row written alongside every rent
// and closed on return or expiry. The expiry sweeper scans these rows to
// find rentals that are past due.
type RentalRecord struct {
	ID               int64        `json:"id"`
	MarketplaceID    uuid.UUID    `json:"marketplace_id"`
	RentalID         uuid.UUID    `json:"rental_id"`
	ListingIndex     uint64       `json:"listing_index"`
	RenterID         uuid.UUID    `json:"renter_id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	PricePerDayCents uint64       `json:"price_per_day_cents"`
	Category         string       `json:"category"`
	Periods          uint64       `json:"periods"`
	RentedAtMillis   int64        `json:"rented_at_millis"`
	ExpiresAtMillis  int64        `json:"expires_at_millis"`
	Status           RentalStatus `json:"status"`
	CreatedOn        string       `json:"created_on"`
	ClosedOn         *string      `json:"closed_on,omitempty"`
}

// Bearer reconstructs the renter-held record from a mirror row. Used by
// the sweeper to drive the expiry path for rentals whose renters never
// came back.
func (r *RentalRecord) Bearer() *ActiveRental {
	return &ActiveRental{
		RentalID:         r.RentalID,
		ListingIndex:     r.ListingIndex,
		Title:            r.Title,
		Description:      r.Description,
		PricePerDayCents: r.PricePerDayCents,
		Category:         r.Category,
		RentedAtMillis:   r.RentedAtMillis,
		ExpiresAtMillis:  r.ExpiresAtMillis,
		RenterID:         r.RenterID,
	}
}
