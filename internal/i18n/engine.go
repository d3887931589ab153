package i18n

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/unitedcompany2026/estate-catalog/internal/logging"
	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

// Engine enforces structural completeness of translation rows for one entity
// type: exactly one row per (parent, registry language), repaired lazily,
// seeded on create, with the default language protected from deletion.
//
// The engine holds no locks and no cache. Concurrent seeds and repairs for the
// same parent converge through the store's duplicate-safe insert; concurrent
// upserts are last-write-wins.
type Engine[T Row] struct {
	registry   *Registry
	store      Store[T]
	descriptor Descriptor[T]
	logger     interfaces.Logger
}

// EngineOption configures an engine at construction time.
type EngineOption[T Row] func(*Engine[T])

// WithLogger overrides the engine logger.
func WithLogger[T Row](logger interfaces.Logger) EngineOption[T] {
	return func(e *Engine[T]) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine constructs a translation engine for one entity type.
func NewEngine[T Row](registry *Registry, store Store[T], descriptor Descriptor[T], opts ...EngineOption[T]) (*Engine[T], error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if descriptor.NewRow == nil {
		return nil, ErrRowFactoryRequired
	}
	if descriptor.Entity == "" {
		descriptor.Entity = "entity"
	}

	engine := &Engine[T]{
		registry:   registry,
		store:      store,
		descriptor: descriptor,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// Registry exposes the language registry the engine was built with.
func (e *Engine[T]) Registry() *Registry {
	return e.registry
}

// Seed creates one translation row per registry language for a freshly
// created parent, substituting defaultRow for the default language. The bulk
// insert skips rows that already exist, so Seed is safe to re-run after a
// partial failure; only storage errors unrelated to duplicates propagate.
func (e *Engine[T]) Seed(ctx context.Context, parentID uuid.UUID, defaultRow T) error {
	if parentID == uuid.Nil {
		return ErrParentIDRequired
	}
	if defaultRow.ParentID() != parentID || NormalizeLanguage(defaultRow.LanguageCode()) != e.registry.Default() {
		return ErrRowMismatch
	}

	rows := make([]T, 0, len(e.registry.languages))
	for _, language := range e.registry.Languages() {
		if language == e.registry.Default() {
			rows = append(rows, defaultRow)
			continue
		}
		rows = append(rows, e.descriptor.NewRow(parentID, language))
	}

	if err := e.store.InsertIgnoreDuplicates(ctx, rows); err != nil {
		return fmt.Errorf("%s translations: seed: %w", e.descriptor.Entity, err)
	}

	e.logger.Debug("i18n.seed", "entity", e.descriptor.Entity, "parent_id", parentID.String(), "languages", len(rows))
	return nil
}

// Resolve returns the row matching the requested language from an already
// loaded set. It performs an exact lookup only: when the language is absent
// it reports false rather than falling back to the default language, since
// callers rely on completeness (a row always exists, possibly empty) instead
// of content fallback.
func (e *Engine[T]) Resolve(rows []T, language string) (T, bool) {
	var zero T
	code := NormalizeLanguage(language)
	if code == "" {
		return zero, false
	}
	for _, row := range rows {
		if NormalizeLanguage(row.LanguageCode()) == code {
			return row, true
		}
	}
	return zero, false
}

// Upsert creates or replaces the translation row for (parent, language) and
// returns the stored row. Languages outside the registry are accepted and
// stored untouched; that keeps the operation usable during registry
// migrations. No other row is affected.
func (e *Engine[T]) Upsert(ctx context.Context, row T) (T, error) {
	var zero T
	if row.ParentID() == uuid.Nil {
		return zero, ErrParentIDRequired
	}
	if NormalizeLanguage(row.LanguageCode()) == "" {
		return zero, ErrLanguageRequired
	}

	stored, err := e.store.Upsert(ctx, row)
	if err != nil {
		return zero, fmt.Errorf("%s translations: upsert: %w", e.descriptor.Entity, err)
	}
	return stored, nil
}

// Delete removes the translation row for (parent, language). The default
// language's row is protected and the call fails with
// ErrDefaultLanguageProtected before any mutation; a missing row yields a
// NotFoundError. Deletion does not trigger repair.
func (e *Engine[T]) Delete(ctx context.Context, parentID uuid.UUID, language string) error {
	if parentID == uuid.Nil {
		return ErrParentIDRequired
	}
	code := NormalizeLanguage(language)
	if code == "" {
		return ErrLanguageRequired
	}
	if code == e.registry.Default() {
		return ErrDefaultLanguageProtected
	}

	deleted, err := e.store.DeleteByParentAndLanguage(ctx, parentID, code)
	if err != nil {
		return fmt.Errorf("%s translations: delete: %w", e.descriptor.Entity, err)
	}
	if !deleted {
		return &NotFoundError{
			Resource: e.descriptor.Entity + " translation",
			Key:      fmt.Sprintf("%s:%s", parentID, code),
		}
	}
	return nil
}

// Purge removes every translation row for a parent as part of the parent's
// deletion, so later sweeps no longer visit it. The default-language
// protection does not apply here: the parent is gone, its rows go with it.
// Stores whose parent delete already cascades treat this as an empty pass.
func (e *Engine[T]) Purge(ctx context.Context, parentID uuid.UUID) error {
	if parentID == uuid.Nil {
		return ErrParentIDRequired
	}
	if err := e.store.DeleteByParent(ctx, parentID); err != nil {
		return fmt.Errorf("%s translations: purge: %w", e.descriptor.Entity, err)
	}
	e.logger.Debug("i18n.purge", "entity", e.descriptor.Entity, "parent_id", parentID.String())
	return nil
}

// EnsureComplete repairs the parent's row set against the registry: missing
// languages get empty rows via the descriptor's factory, inserted with the
// same duplicate-safe bulk insert as Seed. The full set is then re-read from
// the store, because a concurrent repair may have inserted overlapping rows
// and the fresh read is the only way to observe the true post-insert state.
func (e *Engine[T]) EnsureComplete(ctx context.Context, parentID uuid.UUID, rows []T) ([]T, error) {
	if parentID == uuid.Nil {
		return nil, ErrParentIDRequired
	}

	missing := e.missingLanguages(rows)
	if len(missing) > 0 {
		if err := e.insertMissing(ctx, parentID, missing); err != nil {
			return nil, err
		}
		e.logger.Info("i18n.repair", "entity", e.descriptor.Entity, "parent_id", parentID.String(), "missing", len(missing))
	}

	complete, err := e.store.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("%s translations: reload: %w", e.descriptor.Entity, err)
	}
	return complete, nil
}

// Rows returns the parent's persisted rows without repairing gaps. This is
// the plain read path used before Resolve; list and detail reads rely on
// completeness rather than on repair-on-read.
func (e *Engine[T]) Rows(ctx context.Context, parentID uuid.UUID) ([]T, error) {
	if parentID == uuid.Nil {
		return nil, ErrParentIDRequired
	}
	rows, err := e.store.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("%s translations: load: %w", e.descriptor.Entity, err)
	}
	return rows, nil
}

// AllComplete loads the parent's rows and ensures completeness before
// returning them. This is the read path behind "list translations for X".
func (e *Engine[T]) AllComplete(ctx context.Context, parentID uuid.UUID) ([]T, error) {
	if parentID == uuid.Nil {
		return nil, ErrParentIDRequired
	}
	rows, err := e.store.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("%s translations: load: %w", e.descriptor.Entity, err)
	}
	return e.EnsureComplete(ctx, parentID, rows)
}

func (e *Engine[T]) missingLanguages(rows []T) []string {
	have := make([]string, 0, len(rows))
	for _, row := range rows {
		have = append(have, row.LanguageCode())
	}
	return e.registry.Missing(have)
}

func (e *Engine[T]) insertMissing(ctx context.Context, parentID uuid.UUID, missing []string) error {
	rows := make([]T, 0, len(missing))
	for _, language := range missing {
		rows = append(rows, e.descriptor.NewRow(parentID, language))
	}
	if err := e.store.InsertIgnoreDuplicates(ctx, rows); err != nil {
		return fmt.Errorf("%s translations: repair: %w", e.descriptor.Entity, err)
	}
	return nil
}
