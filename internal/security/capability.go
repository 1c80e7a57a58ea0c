package security

import (
	"carhive-backend/internal/domain"

	"github.com/google/uuid"
)

// Capability is the authority token for one marketplace instance. Its only
// payload is the identity of the marketplace it administers; it is minted
// exactly once, when the marketplace is created, and privileged operations
// compare it against the target instance before touching anything.
type Capability struct {
	marketplaceID uuid.UUID
}

// NewCapability binds a capability to a marketplace identity. Call sites
// outside marketplace creation and token validation have no business
// minting these.
func NewCapability(marketplaceID uuid.UUID) Capability {
	return Capability{marketplaceID: marketplaceID}
}

// MarketplaceID reports which instance the capability administers.
func (c Capability) MarketplaceID() uuid.UUID {
	return c.marketplaceID
}

// Authorize checks that the capability was issued for the target
// marketplace. Pure comparison, no side effects; a failure here must
// happen before any state is mutated.
func Authorize(c Capability, target uuid.UUID) error {
	if c.marketplaceID != target {
		return domain.ErrUnauthorized
	}
	return nil
}
