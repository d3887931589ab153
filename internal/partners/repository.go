package partners

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts storage operations for partners. Deleting a partner
// cascades to its translation rows.
type Repository interface {
	Create(ctx context.Context, record *Partner) (*Partner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	List(ctx context.Context, limit, offset int) ([]*Partner, error)
	Update(ctx context.Context, record *Partner) (*Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewRepository(db *bun.DB) repository.Repository[*Partner] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Partner]{
		NewRecord: func() *Partner { return &Partner{} },
		GetID: func(p *Partner) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Partner, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(p *Partner) string {
			if p == nil {
				return ""
			}
			return p.ID.String()
		},
	})
}
