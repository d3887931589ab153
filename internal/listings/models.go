package listings

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Listing is a published property offer. Structural fields (price, layout,
// media references) live here; human-readable content lives in the
// per-language translation rows.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:lst"`

	ID            uuid.UUID  `bun:",pk,type:uuid"                     json:"id"`
	Slug          string     `bun:"slug,notnull"                      json:"slug"`
	Status        string     `bun:"status,notnull,default:'active'"   json:"status"`
	DevelopmentID *uuid.UUID `bun:"development_id,type:uuid,nullzero" json:"development_id,omitempty"`
	Price         int64      `bun:"price,notnull"                     json:"price"`
	Currency      string     `bun:"currency,notnull,default:'USD'"    json:"currency"`
	Bedrooms      int        `bun:"bedrooms,notnull,default:0"        json:"bedrooms"`
	Bathrooms     int        `bun:"bathrooms,notnull,default:0"       json:"bathrooms"`
	AreaSqm       float64    `bun:"area_sqm,notnull,default:0"        json:"area_sqm"`
	ImageURL      *string    `bun:"image_url"                         json:"image_url,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*ListingTranslation `bun:"rel:has-many,join:id=listing_id" json:"translations,omitempty"`
	Units        []*Unit               `bun:"rel:has-many,join:id=listing_id" json:"units,omitempty"`
}

// ListingTranslation stores the localized content of a listing. At most one
// row exists per (listing_id, language); the unique index in the migrations
// enforces that, not application logic.
type ListingTranslation struct {
	bun.BaseModel `bun:"table:listing_translations,alias:lstt"`

	ID          uuid.UUID `bun:",pk,type:uuid"                  json:"id"`
	ListingID   uuid.UUID `bun:"listing_id,notnull,type:uuid"   json:"listing_id"`
	Language    string    `bun:"language,notnull"               json:"language"`
	Title       string    `bun:"title,notnull,default:''"       json:"title"`
	Description string    `bun:"description,notnull,default:''" json:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (t *ListingTranslation) ParentID() uuid.UUID {
	return t.ListingID
}

func (t *ListingTranslation) LanguageCode() string {
	return t.Language
}

// Unit is a sellable sub-unit of a listing (an apartment inside a building
// listing, a plot inside a land listing).
type Unit struct {
	bun.BaseModel `bun:"table:listing_units,alias:lu"`

	ID        uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	ListingID uuid.UUID `bun:"listing_id,notnull,type:uuid" json:"listing_id"`
	Floor     int       `bun:"floor,notnull,default:0"      json:"floor"`
	Rooms     int       `bun:"rooms,notnull,default:0"      json:"rooms"`
	AreaSqm   float64   `bun:"area_sqm,notnull,default:0"   json:"area_sqm"`
	Price     int64     `bun:"price,notnull"                json:"price"`
	Available bool      `bun:"available,notnull,default:true" json:"available"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*UnitTranslation `bun:"rel:has-many,join:id=unit_id" json:"translations,omitempty"`
}

// UnitTranslation stores the localized content of a listing unit.
type UnitTranslation struct {
	bun.BaseModel `bun:"table:listing_unit_translations,alias:lut"`

	ID          uuid.UUID `bun:",pk,type:uuid"                  json:"id"`
	UnitID      uuid.UUID `bun:"unit_id,notnull,type:uuid"      json:"unit_id"`
	Language    string    `bun:"language,notnull"               json:"language"`
	Title       string    `bun:"title,notnull,default:''"       json:"title"`
	Description string    `bun:"description,notnull,default:''" json:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (t *UnitTranslation) ParentID() uuid.UUID {
	return t.UnitID
}

func (t *UnitTranslation) LanguageCode() string {
	return t.Language
}
