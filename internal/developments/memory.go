package developments

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	developments map[uuid.UUID]*Development
	slugIndex    map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory development repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		developments: make(map[uuid.UUID]*Development),
		slugIndex:    make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied development.
func (m *MemoryRepository) Create(_ context.Context, record *Development) (*Development, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneDevelopment(record)
	m.developments[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneDevelopment(copied), nil
}

// GetByID retrieves a development by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Development, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.developments[id]
	if !ok {
		return nil, &NotFoundError{Resource: "development", Key: id.String()}
	}
	return cloneDevelopment(rec), nil
}

// GetBySlug retrieves a development by slug, returning NotFoundError when absent.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Development, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "development", Key: slug}
	}
	return cloneDevelopment(m.developments[id]), nil
}

// List returns developments ordered newest first.
func (m *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Development, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Development, 0, len(m.developments))
	for _, rec := range m.developments {
		out = append(out, cloneDevelopment(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(out) {
			return []*Development{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Update replaces a stored development.
func (m *MemoryRepository) Update(_ context.Context, record *Development) (*Development, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.developments[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "development", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := cloneDevelopment(record)
	m.developments[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneDevelopment(copied), nil
}

// Delete removes a development.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.developments[id]
	if !ok {
		return &NotFoundError{Resource: "development", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.developments, id)
	return nil
}

func cloneDevelopment(src *Development) *Development {
	if src == nil {
		return nil
	}

	copied := *src
	if src.PartnerID != nil {
		partnerID := *src.PartnerID
		copied.PartnerID = &partnerID
	}
	if src.StartedAt != nil {
		started := *src.StartedAt
		copied.StartedAt = &started
	}
	if src.CompleteAt != nil {
		complete := *src.CompleteAt
		copied.CompleteAt = &complete
	}
	if src.ImageURL != nil {
		img := *src.ImageURL
		copied.ImageURL = &img
	}
	if len(src.Translations) > 0 {
		copied.Translations = make([]*DevelopmentTranslation, len(src.Translations))
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
