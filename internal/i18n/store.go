package i18n

import (
	"context"

	"github.com/google/uuid"
)

// Row is the minimal contract a translation model must satisfy to flow through
// the engine. Each row belongs to exactly one parent entity and one language.
type Row interface {
	ParentID() uuid.UUID
	LanguageCode() string
}

// Store abstracts per-entity translation persistence. Implementations must
// back InsertIgnoreDuplicates with the store-level uniqueness constraint on
// (parent id, language): a duplicate row is dropped silently, never surfaced.
// That duplicate-safe insert is the engine's only concurrency-control
// mechanism, so it is a first-class operation here rather than a flag.
type Store[T Row] interface {
	// ListByParent returns every translation row for the parent, in language order.
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]T, error)

	// ListParentIDs returns the id of every parent entity in the backing
	// table, including parents that currently have zero translation rows.
	ListParentIDs(ctx context.Context) ([]uuid.UUID, error)

	// InsertIgnoreDuplicates bulk-inserts rows, silently skipping any row that
	// would violate the (parent id, language) uniqueness constraint.
	InsertIgnoreDuplicates(ctx context.Context, rows []T) error

	// Upsert creates or replaces the row for (parent id, language) and returns
	// the stored row. Last write wins; no optimistic concurrency is applied.
	Upsert(ctx context.Context, row T) (T, error)

	// DeleteByParentAndLanguage removes the row for (parent id, language) and
	// reports whether a row existed.
	DeleteByParentAndLanguage(ctx context.Context, parentID uuid.UUID, language string) (bool, error)

	// DeleteByParent removes every row belonging to the parent. It runs when
	// the parent entity itself is deleted; stores whose schema already
	// cascades on parent delete may treat it as a second, empty pass.
	DeleteByParent(ctx context.Context, parentID uuid.UUID) error
}

// Descriptor parameterizes the engine per entity type. One engine
// implementation serves every translatable entity shape through this value.
type Descriptor[T Row] struct {
	// Entity names the parent entity for errors and log fields, e.g. "listing".
	Entity string

	// NewRow builds the entity's empty content shape for (parentID, language)
	// with identity fields stamped. It must be pure and total over all
	// registry languages; the engine substitutes caller content only for the
	// default language during Seed, never during repair.
	NewRow func(parentID uuid.UUID, language string) T
}
