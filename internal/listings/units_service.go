package listings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/internal/logging"
	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

// UnitServiceOption configures the unit service at construction time.
type UnitServiceOption func(*unitService)

// WithUnitClock overrides the clock used to stamp unit records.
func WithUnitClock(clock func() time.Time) UnitServiceOption {
	return func(s *unitService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithUnitIDGenerator overrides the id generator.
func WithUnitIDGenerator(generator IDGenerator) UnitServiceOption {
	return func(s *unitService) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithUnitLogger overrides the unit service logger.
func WithUnitLogger(logger interfaces.Logger) UnitServiceOption {
	return func(s *unitService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// unitService implements UnitService.
type unitService struct {
	units    UnitRepository
	listings ListingRepository
	engine   *i18n.Engine[*UnitTranslation]
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

// NewUnitService constructs a unit service with the required dependencies.
// The listing repository validates parent listings on create.
func NewUnitService(units UnitRepository, listings ListingRepository, engine *i18n.Engine[*UnitTranslation], opts ...UnitServiceOption) (UnitService, error) {
	if units == nil {
		return nil, errors.New("listings: unit repository is required")
	}
	if listings == nil {
		return nil, errors.New("listings: listing repository is required")
	}
	if engine == nil {
		return nil, errors.New("listings: unit translation engine is required")
	}

	s := &unitService{
		units:    units,
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

// Create persists a unit under an existing listing and seeds its translation
// rows the same way listing creation does.
func (s *unitService) Create(ctx context.Context, req CreateUnitRequest) (*Unit, error) {
	if req.ListingID == uuid.Nil {
		return nil, ErrListingIDRequired
	}
	if req.Price < 0 {
		return nil, ErrPriceInvalid
	}
	if _, err := s.listings.GetByID(ctx, req.ListingID); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	now := s.now()
	record := &Unit{
		ID:        s.id(),
		ListingID: req.ListingID,
		Floor:     req.Floor,
		Rooms:     req.Rooms,
		AreaSqm:   req.AreaSqm,
		Price:     req.Price,
		Available: available,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.units.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	defaultRow := &UnitTranslation{
		ID:          s.id(),
		UnitID:      created.ID,
		Language:    s.engine.Registry().Default(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.engine.Seed(ctx, created.ID, defaultRow); err != nil {
		return nil, err
	}

	s.logger.Info("unit created", "unit_id", created.ID.String(), "listing_id", created.ListingID.String())
	return s.withTranslations(ctx, created)
}

// Get fetches a unit by identifier together with its translation rows.
func (s *unitService) Get(ctx context.Context, id uuid.UUID) (*Unit, error) {
	if id == uuid.Nil {
		return nil, ErrUnitIDRequired
	}
	record, err := s.units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, record)
}

// ListByListing returns the listing's units ordered by floor.
func (s *unitService) ListByListing(ctx context.Context, listingID uuid.UUID) ([]*Unit, error) {
	if listingID == uuid.Nil {
		return nil, ErrListingIDRequired
	}
	return s.units.ListByListing(ctx, listingID)
}

// Update applies structural field changes and bumps the updated timestamp.
func (s *unitService) Update(ctx context.Context, req UpdateUnitRequest) (*Unit, error) {
	if req.ID == uuid.Nil {
		return nil, ErrUnitIDRequired
	}

	record, err := s.units.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Floor != nil {
		record.Floor = *req.Floor
	}
	if req.Rooms != nil {
		record.Rooms = *req.Rooms
	}
	if req.AreaSqm != nil {
		record.AreaSqm = *req.AreaSqm
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrPriceInvalid
		}
		record.Price = *req.Price
	}
	if req.Available != nil {
		record.Available = *req.Available
	}
	record.UpdatedAt = s.now()

	updated, err := s.units.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, updated)
}

// Delete removes the unit and its translation rows.
func (s *unitService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrUnitIDRequired
	}
	if err := s.units.Delete(ctx, id); err != nil {
		return err
	}
	return s.engine.Purge(ctx, id)
}

// Translations returns the complete translation set for a unit.
func (s *unitService) Translations(ctx context.Context, unitID uuid.UUID) ([]*UnitTranslation, error) {
	if unitID == uuid.Nil {
		return nil, ErrUnitIDRequired
	}
	if _, err := s.units.GetByID(ctx, unitID); err != nil {
		return nil, err
	}
	return s.engine.AllComplete(ctx, unitID)
}

// Translation resolves a single language with an exact lookup.
func (s *unitService) Translation(ctx context.Context, unitID uuid.UUID, language string) (*UnitTranslation, error) {
	if unitID == uuid.Nil {
		return nil, ErrUnitIDRequired
	}
	rows, err := s.engine.Rows(ctx, unitID)
	if err != nil {
		return nil, err
	}
	row, ok := s.engine.Resolve(rows, language)
	if !ok {
		return nil, &NotFoundError{Resource: "unit translation", Key: unitID.String() + ":" + i18n.NormalizeLanguage(language)}
	}
	return row, nil
}

// UpsertTranslation creates or replaces the row for (unit, language).
func (s *unitService) UpsertTranslation(ctx context.Context, req UpsertUnitTranslationRequest) (*UnitTranslation, error) {
	if req.UnitID == uuid.Nil {
		return nil, ErrUnitIDRequired
	}
	if _, err := s.units.GetByID(ctx, req.UnitID); err != nil {
		return nil, err
	}

	now := s.now()
	row := &UnitTranslation{
		ID:          s.id(),
		UnitID:      req.UnitID,
		Language:    i18n.NormalizeLanguage(req.Language),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.engine.Upsert(ctx, row)
}

// DeleteTranslation removes the row for (unit, language).
func (s *unitService) DeleteTranslation(ctx context.Context, unitID uuid.UUID, language string) error {
	if unitID == uuid.Nil {
		return ErrUnitIDRequired
	}
	return s.engine.Delete(ctx, unitID, language)
}

// ReconcileTranslations sweeps every unit and repairs incomplete sets.
func (s *unitService) ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error) {
	report, err := s.engine.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *unitService) withTranslations(ctx context.Context, record *Unit) (*Unit, error) {
	rows, err := s.engine.Rows(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Translations = rows
	return record, nil
}
