package catalog

import (
	"fmt"

	"carhive-backend/internal/domain"
)

// Store holds one marketplace's catalog: a sparse map from listing index
// to entry. Indexes come from a monotonic counter and are never reused,
// even after removal, so a removed index stays invalid forever.
//
// Not goroutine-safe; the marketplace aggregate serializes access.
type Store struct {
	entries      map[uint64]*domain.ListingEntry
	totalCreated uint64
	activeCount  uint64
}

func NewStore() *Store {
	return &Store{
		entries: make(map[uint64]*domain.ListingEntry),
	}
}

// Insert assigns the next index, stores the entry as listed, and returns
// the index. A collision with an existing index would mean the counter
// went backwards, so it panics instead of returning an error.
func (s *Store) Insert(title, description string, priceCents uint64, category string) uint64 {
	index := s.totalCreated
	if _, exists := s.entries[index]; exists {
		panic(fmt.Sprintf("catalog: index %d already occupied", index))
	}
	s.entries[index] = &domain.ListingEntry{
		Index:            index,
		Title:            title,
		Description:      description,
		PricePerDayCents: priceCents,
		Category:         category,
		Listed:           true,
	}
	s.totalCreated++
	s.activeCount++
	return index
}

// SetListed flips the availability flag and keeps the active count in
// step. Callers decide whether the transition is legal; the store only
// rejects unknown indexes and no-op flips.
func (s *Store) SetListed(index uint64, listed bool) error {
	entry, ok := s.entries[index]
	if !ok {
		return domain.ErrInvalidListingIndex
	}
	if entry.Listed == listed {
		return domain.ErrAlreadyInState
	}
	entry.Listed = listed
	if listed {
		s.activeCount++
	} else {
		s.activeCount--
	}
	return nil
}

// Remove permanently deletes the entry. Only the expiry path does this;
// the index is never handed out again.
func (s *Store) Remove(index uint64) error {
	entry, ok := s.entries[index]
	if !ok {
		return domain.ErrInvalidListingIndex
	}
	if entry.Listed {
		s.activeCount--
	}
	delete(s.entries, index)
	return nil
}

// Get returns the entry for index.
func (s *Store) Get(index uint64) (*domain.ListingEntry, error) {
	entry, ok := s.entries[index]
	if !ok {
		return nil, domain.ErrInvalidListingIndex
	}
	return entry, nil
}

// List returns a copy of all current entries. Order is unspecified;
// callers sort if they need to.
func (s *Store) List() []domain.ListingEntry {
	out := make([]domain.ListingEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out
}

// ActiveCount reports how many entries are currently listed.
func (s *Store) ActiveCount() uint64 {
	return s.activeCount
}

// TotalCreated reports how many entries have ever been inserted. The next
// insert uses this value as its index.
func (s *Store) TotalCreated() uint64 {
	return s.totalCreated
}
