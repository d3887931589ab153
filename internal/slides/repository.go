package slides

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts storage operations for slides. Deleting a slide
// cascades to its translation rows.
type Repository interface {
	Create(ctx context.Context, record *Slide) (*Slide, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Slide, error)
	List(ctx context.Context, activeOnly bool) ([]*Slide, error)
	Update(ctx context.Context, record *Slide) (*Slide, error)
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewRepository(db *bun.DB) repository.Repository[*Slide] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Slide]{
		NewRecord: func() *Slide { return &Slide{} },
		GetID: func(s *Slide) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Slide, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *Slide) string {
			if s == nil {
				return ""
			}
			return s.ID.String()
		},
	})
}
