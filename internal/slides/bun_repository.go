package slides

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Slide]
}

// NewBunRepository creates a slide repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a slide repository with caching services.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{db: db, repo: base}
}

func (r *BunRepository) Create(ctx context.Context, record *Slide) (*Slide, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Slide, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

// List returns slides ordered by position. With activeOnly set, hidden slides
// are filtered out, matching the public carousel read path.
func (r *BunRepository) List(ctx context.Context, activeOnly bool) ([]*Slide, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.OrderExpr("?TableAlias.position ASC, ?TableAlias.created_at ASC")
			if activeOnly {
				q = q.Where("?TableAlias.is_active = ?", true)
			}
			return q
		}),
	)
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, record *Slide) (*Slide, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

// UpdatePositions writes the given position per slide id in one transaction.
func (r *BunRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if r.db == nil {
		return fmt.Errorf("slide repository: database not configured")
	}
	if len(positions) == 0 {
		return nil
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for id, position := range positions {
			res, err := tx.NewUpdate().
				Model((*Slide)(nil)).
				Set("position = ?", position).
				Where("?TableAlias.id = ?", id).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update slide position: %w", err)
			}
			if affected, _ := res.RowsAffected(); affected == 0 {
				return &NotFoundError{Resource: "slide", Key: id.String()}
			}
		}
		return nil
	})
}

// Delete removes the slide together with its translation rows.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("slide repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*SlideTranslation)(nil)).
			Where("?TableAlias.slide_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete slide translations: %w", err)
		}

		res, err := tx.NewDelete().
			Model((*Slide)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete slide: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return &NotFoundError{Resource: "slide", Key: id.String()}
		}
		return nil
	})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "slide", Key: key}
	}
	return fmt.Errorf("slide repository error: %w", err)
}
