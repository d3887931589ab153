package developments

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Development is a construction project grouping listings. Name and location
// are localized; dates and status are structural.
type Development struct {
	bun.BaseModel `bun:"table:developments,alias:dev"`

	ID         uuid.UUID  `bun:",pk,type:uuid"                    json:"id"`
	Slug       string     `bun:"slug,notnull"                     json:"slug"`
	Status     string     `bun:"status,notnull,default:'planned'" json:"status"`
	PartnerID  *uuid.UUID `bun:"partner_id,type:uuid,nullzero"    json:"partner_id,omitempty"`
	StartedAt  *time.Time `bun:"started_at,nullzero"              json:"started_at,omitempty"`
	CompleteAt *time.Time `bun:"complete_at,nullzero"             json:"complete_at,omitempty"`
	ImageURL   *string    `bun:"image_url"                        json:"image_url,omitempty"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*DevelopmentTranslation `bun:"rel:has-many,join:id=development_id" json:"translations,omitempty"`
}

// DevelopmentTranslation stores the localized name and location of a project.
type DevelopmentTranslation struct {
	bun.BaseModel `bun:"table:development_translations,alias:devt"`

	ID            uuid.UUID `bun:",pk,type:uuid"                    json:"id"`
	DevelopmentID uuid.UUID `bun:"development_id,notnull,type:uuid" json:"development_id"`
	Language      string    `bun:"language,notnull"                 json:"language"`
	Name          string    `bun:"name,notnull,default:''"          json:"name"`
	Location      string    `bun:"location,notnull,default:''"      json:"location"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (t *DevelopmentTranslation) ParentID() uuid.UUID {
	return t.DevelopmentID
}

func (t *DevelopmentTranslation) LanguageCode() string {
	return t.Language
}
