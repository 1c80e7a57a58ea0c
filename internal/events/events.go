package events

import (
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Event is one structured record emitted per mutating marketplace
// operation. Delivery and ordering are the sink's problem; the lifecycle
// engine fires and forgets.
type Event interface {
	EventType() string
	PayloadToJSON() ([]byte, error)
}

const (
	ListingAddedEventType    = "ListingAdded"
	ListingUnlistedEventType = "ListingUnlisted"
	ListingRentedEventType   = "ListingRented"
	RentalReturnedEventType  = "RentalReturned"
	RentalExtendedEventType  = "RentalExtended"
	RentalExpiredEventType   = "RentalExpired"
	FundsWithdrawnEventType  = "FundsWithdrawn"
)

type ListingAdded struct {
	MarketplaceID    uuid.UUID `json:"marketplace_id"`
	ListingIndex     uint64    `json:"listing_index"`
	Title            string    `json:"title"`
	PricePerDayCents uint64    `json:"price_per_day_cents"`
	Category         string    `json:"category"`
}

func (e ListingAdded) EventType() string { return ListingAddedEventType }
func (e ListingAdded) PayloadToJSON() ([]byte, error) { return json.Marshal(e) }

type ListingUnlisted struct {
	MarketplaceID uuid.UUID `json:"marketplace_id"`
	ListingIndex  uint64    `json:"listing_index"`
}

func (e ListingUnlisted) EventType() string { return ListingUnlistedEventType }
func (e ListingUnlisted) PayloadToJSON() ([]byte, error) { return json.Marshal(e) }

type ListingRented struct {
	MarketplaceID   uuid.UUID `json:"marketplace_id"`
	RentalID        uuid.UUID `json:"rental_id"`
	ListingIndex    uint64    `json:"listing_index"`
	RenterID        uuid.UUID `json:"renter_id"`
	Periods         uint64    `json:"periods"`
	FeeCents        uint64    `json:"fee_cents"`
	DepositCents    uint64    `json:"deposit_cents"`
	ExpiresAtMillis int64     `json:"expires_at_millis"`
}

func (e ListingRented) EventType() string { return ListingRentedEventType }
func (e ListingRented) PayloadToJSON() ([]byte, error) { return json.Marshal(e) }

type RentalReturned struct {
	MarketplaceID uuid.UUID `json:"marketplace_id"`
	ListingIndex  uint64    `json:"listing_index"`
	RenterID      uuid.UUID `json:"renter_id"`
	RefundCents   uint64    `json:"refund_cents"`
}

func (e RentalReturned) EventType() string { return RentalReturnedEventType }
func (e RentalReturned) PayloadToJSON() ([]byte, error) { return json.Marshal(e) }

type RentalExtended struct {
	MarketplaceID   uuid.UUID `json:"marketplace_id"`
	ListingIndex    uint64    `json:"listing_index"`
	RenterID        uuid.UUID `json:"renter_id"`
	ExtraPeriods    uint64    `json:"extra_periods"`
	FeeCents        uint64    `json:"fee_cents"`
	ExpiresAtMillis int64     `json:"expires_at_millis"`
}

func (e RentalExtended) EventType() string { return RentalExtendedEventType }
func (e RentalExtended) PayloadToJSON() ([]byte, error) { return json.Marshal(e) }

type RentalExpired struct {
	MarketplaceID uuid.UUID `json:"marketplace_id"`
	ListingIndex  uint64    `json:"listing_index"`
	RenterID      uuid.UUID `json:"renter_id"`
	ForfeitCents  uint64    `json:"forfeit_cents"`
}

func (e RentalExpired) EventType() string { return RentalExpiredEventType }
func (e RentalExpired) PayloadToJSON() ([]byte, error) { return json.Marshal(e) }

type FundsWithdrawn struct {
	MarketplaceID uuid.UUID `json:"marketplace_id"`
	AmountCents   uint64    `json:"amount_cents"`
	Recipient     string    `json:"recipient"`
}

func (e FundsWithdrawn) EventType() string { return FundsWithdrawnEventType }
func (e FundsWithdrawn) PayloadToJSON() ([]byte, error) { return json.Marshal(e) }
