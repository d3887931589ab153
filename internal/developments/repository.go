package developments

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts storage operations for developments. Deleting a
// development cascades to its translation rows.
type Repository interface {
	Create(ctx context.Context, record *Development) (*Development, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Development, error)
	GetBySlug(ctx context.Context, slug string) (*Development, error)
	List(ctx context.Context, limit, offset int) ([]*Development, error)
	Update(ctx context.Context, record *Development) (*Development, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewRepository(db *bun.DB) repository.Repository[*Development] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Development]{
		NewRecord: func() *Development { return &Development{} },
		GetID: func(d *Development) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Development, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(d *Development) string {
			return d.Slug
		},
	})
}
