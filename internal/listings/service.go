package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/internal/logging"
	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

// Service exposes listing management use-cases. Every read that returns
// localized content goes through the translation engine, so callers always see
// one row per registered language.
type Service interface {
	Create(ctx context.Context, req CreateListingRequest) (*Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*Listing, error)
	GetBySlug(ctx context.Context, slugValue string) (*Listing, error)
	List(ctx context.Context, limit, offset int) ([]*Listing, error)
	Update(ctx context.Context, req UpdateListingRequest) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Translations(ctx context.Context, listingID uuid.UUID) ([]*ListingTranslation, error)
	Translation(ctx context.Context, listingID uuid.UUID, language string) (*ListingTranslation, error)
	UpsertTranslation(ctx context.Context, req UpsertListingTranslationRequest) (*ListingTranslation, error)
	DeleteTranslation(ctx context.Context, listingID uuid.UUID, language string) error
	ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error)
}

// UnitService exposes unit management use-cases for sub-units of a listing.
type UnitService interface {
	Create(ctx context.Context, req CreateUnitRequest) (*Unit, error)
	Get(ctx context.Context, id uuid.UUID) (*Unit, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]*Unit, error)
	Update(ctx context.Context, req UpdateUnitRequest) (*Unit, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Translations(ctx context.Context, unitID uuid.UUID) ([]*UnitTranslation, error)
	Translation(ctx context.Context, unitID uuid.UUID, language string) (*UnitTranslation, error)
	UpsertTranslation(ctx context.Context, req UpsertUnitTranslationRequest) (*UnitTranslation, error)
	DeleteTranslation(ctx context.Context, unitID uuid.UUID, language string) error
	ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error)
}

// CreateListingRequest captures the information required to create a listing.
// Title and Description populate the default-language translation row; rows
// for the remaining registered languages are seeded empty.
type CreateListingRequest struct {
	Slug          string
	Status        string
	DevelopmentID *uuid.UUID
	Price         int64
	Currency      string
	Bedrooms      int
	Bathrooms     int
	AreaSqm       float64
	ImageURL      *string
	Title         string
	Description   string
}

// UpdateListingRequest carries structural field updates. Nil pointers leave
// the stored value untouched; localized content is updated through
// UpsertTranslation instead.
type UpdateListingRequest struct {
	ID            uuid.UUID
	Status        *string
	DevelopmentID *uuid.UUID
	Price         *int64
	Currency      *string
	Bedrooms      *int
	Bathrooms     *int
	AreaSqm       *float64
	ImageURL      *string
}

// UpsertListingTranslationRequest creates or replaces one translation row.
type UpsertListingTranslationRequest struct {
	ListingID   uuid.UUID
	Language    string
	Title       string
	Description string
}

// CreateUnitRequest captures the information required to create a unit.
type CreateUnitRequest struct {
	ListingID   uuid.UUID
	Floor       int
	Rooms       int
	AreaSqm     float64
	Price       int64
	Available   *bool
	Title       string
	Description string
}

// UpdateUnitRequest carries structural field updates for a unit.
type UpdateUnitRequest struct {
	ID        uuid.UUID
	Floor     *int
	Rooms     *int
	AreaSqm   *float64
	Price     *int64
	Available *bool
}

// UpsertUnitTranslationRequest creates or replaces one unit translation row.
type UpsertUnitTranslationRequest struct {
	UnitID      uuid.UUID
	Language    string
	Title       string
	Description string
}

var (
	ErrSlugRequired      = errors.New("listings: slug is required")
	ErrSlugInvalid       = errors.New("listings: slug contains invalid characters")
	ErrSlugExists        = errors.New("listings: slug already exists")
	ErrListingIDRequired = errors.New("listings: listing id required")
	ErrUnitIDRequired    = errors.New("listings: unit id required")
	ErrPriceInvalid      = errors.New("listings: price must not be negative")
	ErrStatusInvalid     = errors.New("listings: unknown status")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

var listingStatuses = map[string]struct{}{
	"active":   {},
	"reserved": {},
	"sold":     {},
	"hidden":   {},
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces record identifiers.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the id generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithUnitCascade installs a hook that removes a listing's units during
// Delete. Repositories that own the cascade inside their own delete (the Bun
// implementation does) leave this unset.
func WithUnitCascade(cascade func(ctx context.Context, listingID uuid.UUID) error) ServiceOption {
	return func(s *service) {
		s.unitCascade = cascade
	}
}

// service implements Service.
type service struct {
	listings    ListingRepository
	engine      *i18n.Engine[*ListingTranslation]
	unitCascade func(ctx context.Context, listingID uuid.UUID) error
	now         func() time.Time
	id          IDGenerator
	logger      interfaces.Logger
}

// NewService constructs a listing service with the required dependencies.
func NewService(listings ListingRepository, engine *i18n.Engine[*ListingTranslation], opts ...ServiceOption) (Service, error) {
	if listings == nil {
		return nil, errors.New("listings: repository is required")
	}
	if engine == nil {
		return nil, errors.New("listings: translation engine is required")
	}

	s := &service{
		listings: listings,
		engine:   engine,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create persists a listing and seeds one translation row per registered
// language, with the request's title and description landing on the default
// language row.
func (s *service) Create(ctx context.Context, req CreateListingRequest) (*Listing, error) {
	slugValue, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, ErrPriceInvalid
	}
	status, err := chooseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if existing, err := s.listings.GetBySlug(ctx, slugValue); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Listing{
		ID:            s.id(),
		Slug:          slugValue,
		Status:        status,
		DevelopmentID: req.DevelopmentID,
		Price:         req.Price,
		Currency:      chooseCurrency(req.Currency),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		AreaSqm:       req.AreaSqm,
		ImageURL:      req.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.listings.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	defaultRow := &ListingTranslation{
		ID:          s.id(),
		ListingID:   created.ID,
		Language:    s.engine.Registry().Default(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.engine.Seed(ctx, created.ID, defaultRow); err != nil {
		return nil, err
	}

	s.logger.Info("listing created", "listing_id", created.ID.String(), "slug", created.Slug)
	return s.withTranslations(ctx, created)
}

// Get fetches a listing by identifier together with its translation rows.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Listing, error) {
	if id == uuid.Nil {
		return nil, ErrListingIDRequired
	}
	record, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, record)
}

// GetBySlug fetches a listing by slug together with its translation rows.
func (s *service) GetBySlug(ctx context.Context, slugValue string) (*Listing, error) {
	slugValue = strings.TrimSpace(slugValue)
	if slugValue == "" {
		return nil, ErrSlugRequired
	}
	record, err := s.listings.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, record)
}

// List returns listings ordered newest first. Translation rows are not
// attached on the list path; callers fetch them per listing when needed.
func (s *service) List(ctx context.Context, limit, offset int) ([]*Listing, error) {
	return s.listings.List(ctx, limit, offset)
}

// Update applies structural field changes and bumps the updated timestamp.
func (s *service) Update(ctx context.Context, req UpdateListingRequest) (*Listing, error) {
	if req.ID == uuid.Nil {
		return nil, ErrListingIDRequired
	}

	record, err := s.listings.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status, err := chooseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		record.Status = status
	}
	if req.DevelopmentID != nil {
		record.DevelopmentID = req.DevelopmentID
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrPriceInvalid
		}
		record.Price = *req.Price
	}
	if req.Currency != nil {
		record.Currency = chooseCurrency(*req.Currency)
	}
	if req.Bedrooms != nil {
		record.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		record.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqm != nil {
		record.AreaSqm = *req.AreaSqm
	}
	if req.ImageURL != nil {
		record.ImageURL = req.ImageURL
	}
	record.UpdatedAt = s.now()

	updated, err := s.listings.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, updated)
}

// Delete removes the listing and everything hanging off it: units via the
// cascade (repository-owned or the configured hook) and translation rows via
// the engine purge, so sweeps stop visiting the listing.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrListingIDRequired
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	if s.unitCascade != nil {
		if err := s.unitCascade(ctx, id); err != nil {
			return err
		}
	}
	return s.engine.Purge(ctx, id)
}

// Translations returns the complete translation set for a listing, repairing
// missing languages on the way out.
func (s *service) Translations(ctx context.Context, listingID uuid.UUID) ([]*ListingTranslation, error) {
	if listingID == uuid.Nil {
		return nil, ErrListingIDRequired
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.engine.AllComplete(ctx, listingID)
}

// Translation resolves a single language. The lookup is exact; an absent row
// yields a NotFoundError rather than default-language content.
func (s *service) Translation(ctx context.Context, listingID uuid.UUID, language string) (*ListingTranslation, error) {
	if listingID == uuid.Nil {
		return nil, ErrListingIDRequired
	}
	rows, err := s.engine.Rows(ctx, listingID)
	if err != nil {
		return nil, err
	}
	row, ok := s.engine.Resolve(rows, language)
	if !ok {
		return nil, &NotFoundError{Resource: "listing translation", Key: listingID.String() + ":" + i18n.NormalizeLanguage(language)}
	}
	return row, nil
}

// UpsertTranslation creates or replaces the row for (listing, language).
func (s *service) UpsertTranslation(ctx context.Context, req UpsertListingTranslationRequest) (*ListingTranslation, error) {
	if req.ListingID == uuid.Nil {
		return nil, ErrListingIDRequired
	}
	if _, err := s.listings.GetByID(ctx, req.ListingID); err != nil {
		return nil, err
	}

	now := s.now()
	row := &ListingTranslation{
		ID:          s.id(),
		ListingID:   req.ListingID,
		Language:    i18n.NormalizeLanguage(req.Language),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.engine.Upsert(ctx, row)
}

// DeleteTranslation removes the row for (listing, language). The default
// language row cannot be removed.
func (s *service) DeleteTranslation(ctx context.Context, listingID uuid.UUID, language string) error {
	if listingID == uuid.Nil {
		return ErrListingIDRequired
	}
	return s.engine.Delete(ctx, listingID, language)
}

// ReconcileTranslations sweeps every listing and repairs incomplete sets.
func (s *service) ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error) {
	report, err := s.engine.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) withTranslations(ctx context.Context, record *Listing) (*Listing, error) {
	rows, err := s.engine.Rows(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Translations = rows
	return record, nil
}

func normalizeSlug(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}

func chooseStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return "active", nil
	}
	if _, ok := listingStatuses[status]; !ok {
		return "", ErrStatusInvalid
	}
	return status, nil
}

func chooseCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "USD"
	}
	return currency
}
