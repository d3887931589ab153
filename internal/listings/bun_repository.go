package listings

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

// BunListingRepository implements ListingRepository with optional caching.
type BunListingRepository struct {
	db   *bun.DB
	repo repository.Repository[*Listing]
}

// NewBunListingRepository creates a listing repository without caching.
func NewBunListingRepository(db *bun.DB) *BunListingRepository {
	return NewBunListingRepositoryWithCache(db, nil, nil)
}

// NewBunListingRepositoryWithCache creates a listing repository with caching services.
func NewBunListingRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunListingRepository {
	base := NewListingRepository(db)
	return &BunListingRepository{db: db, repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunListingRepository) Create(ctx context.Context, record *Listing) (*Listing, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "listing", id.String())
	}
	return record, nil
}

func (r *BunListingRepository) GetBySlug(ctx context.Context, slug string) (*Listing, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "listing", slug)
	}
	return record, nil
}

func (r *BunListingRepository) List(ctx context.Context, limit, offset int) ([]*Listing, error) {
	opts := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	}
	if limit > 0 {
		opts = append(opts, repository.SelectPaginate(limit, offset))
	}
	records, _, err := r.repo.List(ctx, opts...)
	return records, err
}

func (r *BunListingRepository) Update(ctx context.Context, record *Listing) (*Listing, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "listing", record.ID.String())
	}
	return updated, nil
}

// Delete removes the listing, its translation rows, its units, and the unit
// translation rows in one transaction.
func (r *BunListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("listing repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var unitIDs []uuid.UUID
		if err := tx.NewSelect().
			Model((*Unit)(nil)).
			Column("id").
			Where("?TableAlias.listing_id = ?", id).
			Scan(ctx, &unitIDs); err != nil {
			return fmt.Errorf("list unit ids: %w", err)
		}

		if len(unitIDs) > 0 {
			if _, err := tx.NewDelete().
				Model((*UnitTranslation)(nil)).
				Where("?TableAlias.unit_id IN (?)", bun.In(unitIDs)).
				Exec(ctx); err != nil {
				return fmt.Errorf("delete unit translations: %w", err)
			}
			if _, err := tx.NewDelete().
				Model((*Unit)(nil)).
				Where("?TableAlias.listing_id = ?", id).
				Exec(ctx); err != nil {
				return fmt.Errorf("delete units: %w", err)
			}
		}

		if _, err := tx.NewDelete().
			Model((*ListingTranslation)(nil)).
			Where("?TableAlias.listing_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete listing translations: %w", err)
		}

		res, err := tx.NewDelete().
			Model((*Listing)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return &NotFoundError{Resource: "listing", Key: id.String()}
		}
		return nil
	})
}

// BunUnitRepository implements UnitRepository with optional caching.
type BunUnitRepository struct {
	db   *bun.DB
	repo repository.Repository[*Unit]
}

// NewBunUnitRepository creates a unit repository without caching.
func NewBunUnitRepository(db *bun.DB) *BunUnitRepository {
	return NewBunUnitRepositoryWithCache(db, nil, nil)
}

// NewBunUnitRepositoryWithCache creates a unit repository with caching services.
func NewBunUnitRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunUnitRepository {
	base := NewUnitRepository(db)
	return &BunUnitRepository{db: db, repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunUnitRepository) Create(ctx context.Context, record *Unit) (*Unit, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunUnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*Unit, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "listing_unit", id.String())
	}
	return record, nil
}

func (r *BunUnitRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*Unit, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.listing_id = ?", listingID).
				OrderExpr("?TableAlias.floor ASC, ?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunUnitRepository) Update(ctx context.Context, record *Unit) (*Unit, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "listing_unit", record.ID.String())
	}
	return updated, nil
}

// Delete removes the unit together with its translation rows.
func (r *BunUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("unit repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*UnitTranslation)(nil)).
			Where("?TableAlias.unit_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete unit translations: %w", err)
		}

		res, err := tx.NewDelete().
			Model((*Unit)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete unit: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return &NotFoundError{Resource: "listing_unit", Key: id.String()}
		}
		return nil
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
