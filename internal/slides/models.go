package slides

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Slide is a promotional banner shown on the catalog landing page. Position
// controls display order; the headline text is localized.
type Slide struct {
	bun.BaseModel `bun:"table:slides,alias:sld"`

	ID        uuid.UUID  `bun:",pk,type:uuid"                  json:"id"`
	Position  int        `bun:"position,notnull,default:0"     json:"position"`
	ImageURL  *string    `bun:"image_url"                      json:"image_url,omitempty"`
	LinkURL   *string    `bun:"link_url"                       json:"link_url,omitempty"`
	IsActive  bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	ListingID *uuid.UUID `bun:"listing_id,type:uuid,nullzero"  json:"listing_id,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*SlideTranslation `bun:"rel:has-many,join:id=slide_id" json:"translations,omitempty"`
}

// SlideTranslation stores the localized headline of a slide.
type SlideTranslation struct {
	bun.BaseModel `bun:"table:slide_translations,alias:sldt"`

	ID        uuid.UUID `bun:",pk,type:uuid"               json:"id"`
	SlideID   uuid.UUID `bun:"slide_id,notnull,type:uuid"  json:"slide_id"`
	Language  string    `bun:"language,notnull"            json:"language"`
	Title     string    `bun:"title,notnull,default:''"    json:"title"`
	Subtitle  string    `bun:"subtitle,notnull,default:''" json:"subtitle"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (t *SlideTranslation) ParentID() uuid.UUID {
	return t.SlideID
}

func (t *SlideTranslation) LanguageCode() string {
	return t.Language
}
