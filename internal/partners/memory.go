package partners

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	partners map[uuid.UUID]*Partner
}

// NewMemoryRepository creates an empty in-memory partner repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		partners: make(map[uuid.UUID]*Partner),
	}
}

// Create inserts the supplied partner.
func (m *MemoryRepository) Create(_ context.Context, record *Partner) (*Partner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePartner(record)
	m.partners[copied.ID] = copied
	return clonePartner(copied), nil
}

// GetByID retrieves a partner by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.partners[id]
	if !ok {
		return nil, &NotFoundError{Resource: "partner", Key: id.String()}
	}
	return clonePartner(rec), nil
}

// List returns partners in creation order.
func (m *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Partner, 0, len(m.partners))
	for _, rec := range m.partners {
		out = append(out, clonePartner(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(out) {
			return []*Partner{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Update replaces a stored partner.
func (m *MemoryRepository) Update(_ context.Context, record *Partner) (*Partner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.partners[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "partner", Key: record.ID.String()}
	}
	copied := clonePartner(record)
	m.partners[copied.ID] = copied
	return clonePartner(copied), nil
}

// Delete removes a partner.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.partners[id]; !ok {
		return &NotFoundError{Resource: "partner", Key: id.String()}
	}
	delete(m.partners, id)
	return nil
}

func clonePartner(src *Partner) *Partner {
	if src == nil {
		return nil
	}

	copied := *src
	if src.Website != nil {
		website := *src.Website
		copied.Website = &website
	}
	if src.LogoURL != nil {
		logo := *src.LogoURL
		copied.LogoURL = &logo
	}
	if len(src.Translations) > 0 {
		copied.Translations = make([]*PartnerTranslation, len(src.Translations))
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
