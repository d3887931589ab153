package i18n

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStoreConfig binds the generic store to one translation table.
type BunStoreConfig struct {
	// ParentColumn is the foreign key column referencing the parent entity,
	// e.g. "listing_id".
	ParentColumn string

	// LanguageColumn defaults to "language".
	LanguageColumn string

	// ContentColumns are the columns replaced when an upsert hits an existing
	// row. Identity columns (id, parent, language, created_at) are kept.
	ContentColumns []string

	// ParentModel is a typed nil pointer for the parent table, e.g.
	// (*Listing)(nil). It backs ListParentIDs so sweeps also visit parents
	// with zero translation rows.
	ParentModel any
}

// BunStore is the Bun-backed Store implementation shared by every entity
// type. Duplicate-safe inserts rely on the UNIQUE (parent, language) index
// declared in the migrations together with ON CONFLICT DO NOTHING.
type BunStore[T Row] struct {
	db  *bun.DB
	cfg BunStoreConfig
}

// NewBunStore constructs a store over db for the table described by cfg.
func NewBunStore[T Row](db *bun.DB, cfg BunStoreConfig) (*BunStore[T], error) {
	if db == nil {
		return nil, fmt.Errorf("i18n: bun store requires a database")
	}
	if cfg.ParentColumn == "" {
		return nil, fmt.Errorf("i18n: bun store requires a parent column")
	}
	if cfg.ParentModel == nil {
		return nil, fmt.Errorf("i18n: bun store requires a parent model")
	}
	if cfg.LanguageColumn == "" {
		cfg.LanguageColumn = "language"
	}
	return &BunStore[T]{db: db, cfg: cfg}, nil
}

// ListByParent returns the parent's rows ordered by language code.
func (s *BunStore[T]) ListByParent(ctx context.Context, parentID uuid.UUID) ([]T, error) {
	var rows []T
	err := s.db.NewSelect().
		Model(&rows).
		Where(fmt.Sprintf("?TableAlias.%s = ?", s.cfg.ParentColumn), parentID).
		OrderExpr(fmt.Sprintf("?TableAlias.%s ASC", s.cfg.LanguageColumn)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListParentIDs returns every parent entity id from the parent table.
func (s *BunStore[T]) ListParentIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.NewSelect().
		Model(s.cfg.ParentModel).
		Column("id").
		OrderExpr("id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// InsertIgnoreDuplicates bulk-inserts rows; uniqueness violations on
// (parent, language) are dropped by the store instead of surfacing, which is
// the intended outcome of concurrent seed and repair calls.
func (s *BunStore[T]) InsertIgnoreDuplicates(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	return err
}

// Upsert writes the row for (parent, language), replacing content columns when
// the row already exists, and returns the stored row. The original row id and
// created_at survive an overwrite.
func (s *BunStore[T]) Upsert(ctx context.Context, row T) (T, error) {
	var zero T

	query := s.db.NewInsert().
		Model(row).
		On(fmt.Sprintf("CONFLICT (%s, %s) DO UPDATE", s.cfg.ParentColumn, s.cfg.LanguageColumn))
	for _, column := range s.cfg.ContentColumns {
		query = query.Set(fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	if _, err := query.Exec(ctx); err != nil {
		return zero, err
	}

	var stored []T
	err := s.db.NewSelect().
		Model(&stored).
		Where(fmt.Sprintf("?TableAlias.%s = ?", s.cfg.ParentColumn), row.ParentID()).
		Where(fmt.Sprintf("?TableAlias.%s = ?", s.cfg.LanguageColumn), NormalizeLanguage(row.LanguageCode())).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return zero, err
	}
	if len(stored) == 0 {
		return row, nil
	}
	return stored[0], nil
}

// DeleteByParentAndLanguage removes a single row, reporting whether it existed.
func (s *BunStore[T]) DeleteByParentAndLanguage(ctx context.Context, parentID uuid.UUID, language string) (bool, error) {
	var model T
	res, err := s.db.NewDelete().
		Model(model).
		Where(fmt.Sprintf("?TableAlias.%s = ?", s.cfg.ParentColumn), parentID).
		Where(fmt.Sprintf("?TableAlias.%s = ?", s.cfg.LanguageColumn), NormalizeLanguage(language)).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// DeleteByParent removes every row for the parent. The Bun repositories
// already delete translation rows inside the parent-delete transaction, so on
// that path this affects zero rows; it exists for stores wired without a
// repository-owned cascade.
func (s *BunStore[T]) DeleteByParent(ctx context.Context, parentID uuid.UUID) error {
	var model T
	_, err := s.db.NewDelete().
		Model(model).
		Where(fmt.Sprintf("?TableAlias.%s = ?", s.cfg.ParentColumn), parentID).
		Exec(ctx)
	return err
}
