package listings

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryListingRepository is an in-memory implementation for scaffolding and tests.
type MemoryListingRepository struct {
	mu        sync.RWMutex
	listings  map[uuid.UUID]*Listing
	slugIndex map[string]uuid.UUID
}

// NewMemoryListingRepository creates an empty in-memory listing repository.
func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{
		listings:  make(map[uuid.UUID]*Listing),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied listing.
func (m *MemoryListingRepository) Create(_ context.Context, record *Listing) (*Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneListing(record)
	m.listings[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneListing(copied), nil
}

// GetByID retrieves a listing by identifier.
func (m *MemoryListingRepository) GetByID(_ context.Context, id uuid.UUID) (*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.listings[id]
	if !ok {
		return nil, &NotFoundError{Resource: "listing", Key: id.String()}
	}
	return cloneListing(rec), nil
}

// GetBySlug retrieves a listing by slug, returning NotFoundError when absent.
func (m *MemoryListingRepository) GetBySlug(_ context.Context, slug string) (*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "listing", Key: slug}
	}
	return cloneListing(m.listings[id]), nil
}

// List returns listings ordered newest first.
func (m *MemoryListingRepository) List(_ context.Context, limit, offset int) ([]*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Listing, 0, len(m.listings))
	for _, rec := range m.listings {
		out = append(out, cloneListing(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(out) {
			return []*Listing{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Update replaces a stored listing.
func (m *MemoryListingRepository) Update(_ context.Context, record *Listing) (*Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.listings[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "listing", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := cloneListing(record)
	m.listings[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneListing(copied), nil
}

// Delete removes a listing.
func (m *MemoryListingRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.listings[id]
	if !ok {
		return &NotFoundError{Resource: "listing", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.listings, id)
	return nil
}

func cloneListing(src *Listing) *Listing {
	if src == nil {
		return nil
	}

	copied := *src
	if src.DevelopmentID != nil {
		devID := *src.DevelopmentID
		copied.DevelopmentID = &devID
	}
	if src.ImageURL != nil {
		img := *src.ImageURL
		copied.ImageURL = &img
	}
	if len(src.Translations) > 0 {
		copied.Translations = make([]*ListingTranslation, len(src.Translations))
		for i, tr := range src.Translations {
			if tr == nil {
				continue
			}
			local := *tr
			copied.Translations[i] = &local
		}
	}
	if len(src.Units) > 0 {
		copied.Units = make([]*Unit, len(src.Units))
		for i, unit := range src.Units {
			copied.Units[i] = cloneUnit(unit)
		}
	}
	return &copied
}

// MemoryUnitRepository stores units in-memory.
type MemoryUnitRepository struct {
	mu    sync.RWMutex
	units map[uuid.UUID]*Unit
}

// NewMemoryUnitRepository creates an empty in-memory unit repository.
func NewMemoryUnitRepository() *MemoryUnitRepository {
	return &MemoryUnitRepository{
		units: make(map[uuid.UUID]*Unit),
	}
}

// Create inserts the supplied unit.
func (m *MemoryUnitRepository) Create(_ context.Context, record *Unit) (*Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneUnit(record)
	m.units[copied.ID] = copied
	return cloneUnit(copied), nil
}

// GetByID retrieves a unit by identifier.
func (m *MemoryUnitRepository) GetByID(_ context.Context, id uuid.UUID) (*Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.units[id]
	if !ok {
		return nil, &NotFoundError{Resource: "listing_unit", Key: id.String()}
	}
	return cloneUnit(rec), nil
}

// ListByListing returns the listing's units ordered by floor.
func (m *MemoryUnitRepository) ListByListing(_ context.Context, listingID uuid.UUID) ([]*Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Unit, 0)
	for _, rec := range m.units {
		if rec.ListingID == listingID {
			out = append(out, cloneUnit(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Floor != out[j].Floor {
			return out[i].Floor < out[j].Floor
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored unit.
func (m *MemoryUnitRepository) Update(_ context.Context, record *Unit) (*Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.units[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "listing_unit", Key: record.ID.String()}
	}
	copied := cloneUnit(record)
	m.units[copied.ID] = copied
	return cloneUnit(copied), nil
}

// Delete removes a unit.
func (m *MemoryUnitRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.units[id]; !ok {
		return &NotFoundError{Resource: "listing_unit", Key: id.String()}
	}
	delete(m.units, id)
	return nil
}

func cloneUnit(src *Unit) *Unit {
	if src == nil {
		return nil
	}

	copied := *src
	if len(src.Translations) > 0 {
		copied.Translations = make([]*UnitTranslation, len(src.Translations))
		for i, tr := range src.Translations {
			if tr == nil {
				continue
			}
			local := *tr
			copied.Translations[i] = &local
		}
	}
	return &copied
}
