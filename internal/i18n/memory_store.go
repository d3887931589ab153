package i18n

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for scaffolding and tests.
// It mirrors the persistence contract including the duplicate-safe insert.
type MemoryStore[T Row] struct {
	mu      sync.RWMutex
	rows    map[uuid.UUID]map[string]T
	parents map[uuid.UUID]struct{}
	order   []uuid.UUID
}

// NewMemoryStore creates an empty in-memory translation store.
func NewMemoryStore[T Row]() *MemoryStore[T] {
	return &MemoryStore[T]{
		rows:    make(map[uuid.UUID]map[string]T),
		parents: make(map[uuid.UUID]struct{}),
	}
}

// RegisterParent records a parent entity so sweeps visit it even when it has
// no translation rows yet. Inserts and upserts register parents implicitly.
func (m *MemoryStore[T]) RegisterParent(parentID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registerParentLocked(parentID)
}

// DeleteByParent drops the parent's rows and its sweep registration, leaving
// the same state a relational cascade delete would.
func (m *MemoryStore[T]) DeleteByParent(_ context.Context, parentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.parents, parentID)
	delete(m.rows, parentID)
	for i, id := range m.order {
		if id == parentID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListByParent returns the parent's rows sorted by language code.
func (m *MemoryStore[T]) ListByParent(_ context.Context, parentID uuid.UUID) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byLanguage := m.rows[parentID]
	languages := make([]string, 0, len(byLanguage))
	for language := range byLanguage {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	out := make([]T, 0, len(languages))
	for _, language := range languages {
		out = append(out, byLanguage[language])
	}
	return out, nil
}

// ListParentIDs returns every registered parent in registration order.
func (m *MemoryStore[T]) ListParentIDs(_ context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]uuid.UUID, len(m.order))
	copy(out, m.order)
	return out, nil
}

// InsertIgnoreDuplicates inserts rows, silently skipping (parent, language)
// pairs that already exist.
func (m *MemoryStore[T]) InsertIgnoreDuplicates(_ context.Context, rows []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range rows {
		parentID := row.ParentID()
		language := NormalizeLanguage(row.LanguageCode())
		m.registerParentLocked(parentID)
		if _, exists := m.rows[parentID][language]; exists {
			continue
		}
		m.rows[parentID][language] = row
	}
	return nil
}

// Upsert replaces or creates the row for (parent, language).
func (m *MemoryStore[T]) Upsert(_ context.Context, row T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	parentID := row.ParentID()
	language := NormalizeLanguage(row.LanguageCode())
	m.registerParentLocked(parentID)
	m.rows[parentID][language] = row
	return row, nil
}

// DeleteByParentAndLanguage removes a single row, reporting whether it existed.
func (m *MemoryStore[T]) DeleteByParentAndLanguage(_ context.Context, parentID uuid.UUID, language string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byLanguage, ok := m.rows[parentID]
	if !ok {
		return false, nil
	}
	code := NormalizeLanguage(language)
	if _, exists := byLanguage[code]; !exists {
		return false, nil
	}
	delete(byLanguage, code)
	return true, nil
}

func (m *MemoryStore[T]) registerParentLocked(parentID uuid.UUID) {
	if _, ok := m.parents[parentID]; ok {
		return
	}
	m.parents[parentID] = struct{}{}
	m.order = append(m.order, parentID)
	if _, ok := m.rows[parentID]; !ok {
		m.rows[parentID] = make(map[string]T)
	}
}

var _ Store[Row] = (*MemoryStore[Row])(nil)
