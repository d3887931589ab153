package listings

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ListingRepository abstracts storage operations for listing entities.
// Deleting a listing cascades to its translations and units; that cascade is
// owned here, not by the translation engine.
type ListingRepository interface {
	Create(ctx context.Context, record *Listing) (*Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	GetBySlug(ctx context.Context, slug string) (*Listing, error)
	List(ctx context.Context, limit, offset int) ([]*Listing, error)
	Update(ctx context.Context, record *Listing) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository abstracts storage operations for listing units.
type UnitRepository interface {
	Create(ctx context.Context, record *Unit) (*Unit, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]*Unit, error)
	Update(ctx context.Context, record *Unit) (*Unit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewListingRepository(db *bun.DB) repository.Repository[*Listing] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Listing]{
		NewRecord: func() *Listing { return &Listing{} },
		GetID: func(l *Listing) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Listing, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(l *Listing) string {
			return l.Slug
		},
	})
}

func NewUnitRepository(db *bun.DB) repository.Repository[*Unit] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Unit]{
		NewRecord: func() *Unit { return &Unit{} },
		GetID: func(u *Unit) uuid.UUID {
			return u.ID
		},
		SetID: func(u *Unit, id uuid.UUID) {
			u.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(u *Unit) string {
			if u == nil {
				return ""
			}
			return u.ID.String()
		},
	})
}
