package domain

// ListingEntry is one rentable car in a marketplace catalog. Indexes are
// assigned from a monotonic counter and never reused, so the catalog is a
// sparse map once entries have been removed.
type ListingEntry struct {
	Index       uint64 `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// PricePerDayCents is the rental fee for one 24h period.
	PricePerDayCents uint64 `json:"price_per_day_cents"`
	Category         string `json:"category"`
	// Listed is true iff no active rental currently references this entry
	// and the authority has not unlisted it.
	Listed bool `json:"listed"`
}
