package partners

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Partner is a developer or agency the catalog works with. The displayable
// name and description are localized; contact references are structural.
type Partner struct {
	bun.BaseModel `bun:"table:partners,alias:prt"`

	ID        uuid.UUID `bun:",pk,type:uuid"                 json:"id"`
	Website   *string   `bun:"website"                       json:"website,omitempty"`
	LogoURL   *string   `bun:"logo_url"                      json:"logo_url,omitempty"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*PartnerTranslation `bun:"rel:has-many,join:id=partner_id" json:"translations,omitempty"`
}

// PartnerTranslation stores the localized name and description of a partner.
type PartnerTranslation struct {
	bun.BaseModel `bun:"table:partner_translations,alias:prtt"`

	ID        uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	PartnerID uuid.UUID `bun:"partner_id,notnull,type:uuid" json:"partner_id"`
	Language  string    `bun:"language,notnull"             json:"language"`
	Name      string    `bun:"name,notnull,default:''"      json:"name"`
	About     string    `bun:"about,notnull,default:''"     json:"about"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (t *PartnerTranslation) ParentID() uuid.UUID {
	return t.PartnerID
}

func (t *PartnerTranslation) LanguageCode() string {
	return t.Language
}
