package slides

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	slides map[uuid.UUID]*Slide
}

// NewMemoryRepository creates an empty in-memory slide repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slides: make(map[uuid.UUID]*Slide),
	}
}

// Create inserts the supplied slide.
func (m *MemoryRepository) Create(_ context.Context, record *Slide) (*Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneSlide(record)
	m.slides[copied.ID] = copied
	return cloneSlide(copied), nil
}

// GetByID retrieves a slide by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Slide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.slides[id]
	if !ok {
		return nil, &NotFoundError{Resource: "slide", Key: id.String()}
	}
	return cloneSlide(rec), nil
}

// List returns slides ordered by position.
func (m *MemoryRepository) List(_ context.Context, activeOnly bool) ([]*Slide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Slide, 0, len(m.slides))
	for _, rec := range m.slides {
		if activeOnly && !rec.IsActive {
			continue
		}
		out = append(out, cloneSlide(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored slide.
func (m *MemoryRepository) Update(_ context.Context, record *Slide) (*Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.slides[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "slide", Key: record.ID.String()}
	}
	copied := cloneSlide(record)
	m.slides[copied.ID] = copied
	return cloneSlide(copied), nil
}

// UpdatePositions writes the given position per slide id.
func (m *MemoryRepository) UpdatePositions(_ context.Context, positions map[uuid.UUID]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range positions {
		if _, ok := m.slides[id]; !ok {
			return &NotFoundError{Resource: "slide", Key: id.String()}
		}
	}
	for id, position := range positions {
		m.slides[id].Position = position
	}
	return nil
}

// Delete removes a slide.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.slides[id]; !ok {
		return &NotFoundError{Resource: "slide", Key: id.String()}
	}
	delete(m.slides, id)
	return nil
}

func cloneSlide(src *Slide) *Slide {
	if src == nil {
		return nil
	}

	copied := *src
	if src.ImageURL != nil {
		img := *src.ImageURL
		copied.ImageURL = &img
	}
	if src.LinkURL != nil {
		link := *src.LinkURL
		copied.LinkURL = &link
	}
	if src.ListingID != nil {
		listingID := *src.ListingID
		copied.ListingID = &listingID
	}
	if len(src.Translations) > 0 {
		copied.Translations = make([]*SlideTranslation, len(src.Translations))
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
