package slides

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/internal/logging"
	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

// Service exposes slide management use-cases.
type Service interface {
	Create(ctx context.Context, req CreateSlideRequest) (*Slide, error)
	Get(ctx context.Context, id uuid.UUID) (*Slide, error)
	List(ctx context.Context, activeOnly bool) ([]*Slide, error)
	Update(ctx context.Context, req UpdateSlideRequest) (*Slide, error)
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	Translations(ctx context.Context, slideID uuid.UUID) ([]*SlideTranslation, error)
	Translation(ctx context.Context, slideID uuid.UUID, language string) (*SlideTranslation, error)
	UpsertTranslation(ctx context.Context, req UpsertSlideTranslationRequest) (*SlideTranslation, error)
	DeleteTranslation(ctx context.Context, slideID uuid.UUID, language string) error
	ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error)
}

// CreateSlideRequest captures the information required to create a slide.
// Title and Subtitle populate the default-language translation row. New
// slides append at the end of the carousel unless Position is set.
type CreateSlideRequest struct {
	Position  *int
	ImageURL  *string
	LinkURL   *string
	ListingID *uuid.UUID
	Title     string
	Subtitle  string
}

// UpdateSlideRequest carries structural field updates.
type UpdateSlideRequest struct {
	ID        uuid.UUID
	Position  *int
	ImageURL  *string
	LinkURL   *string
	IsActive  *bool
	ListingID *uuid.UUID
}

// UpsertSlideTranslationRequest creates or replaces one translation row.
type UpsertSlideTranslationRequest struct {
	SlideID  uuid.UUID
	Language string
	Title    string
	Subtitle string
}

var (
	ErrSlideIDRequired   = errors.New("slides: slide id required")
	ErrReorderIncomplete = errors.New("slides: reorder must name every slide exactly once")
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

type service struct {
	slides Repository
	engine *i18n.Engine[*SlideTranslation]
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs a slide service with the required dependencies.
func NewService(slides Repository, engine *i18n.Engine[*SlideTranslation], opts ...ServiceOption) (Service, error) {
	if slides == nil {
		return nil, errors.New("slides: repository is required")
	}
	if engine == nil {
		return nil, errors.New("slides: translation engine is required")
	}

	s := &service{
		slides: slides,
		engine: engine,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create persists a slide and seeds its translation rows. Without an explicit
// position the slide lands after the current last one.
func (s *service) Create(ctx context.Context, req CreateSlideRequest) (*Slide, error) {
	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		existing, err := s.slides.List(ctx, false)
		if err != nil {
			return nil, err
		}
		for _, slide := range existing {
			if slide.Position >= position {
				position = slide.Position + 1
			}
		}
	}

	now := s.now()
	record := &Slide{
		ID:        s.id(),
		Position:  position,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		IsActive:  true,
		ListingID: req.ListingID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.slides.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	defaultRow := &SlideTranslation{
		ID:        s.id(),
		SlideID:   created.ID,
		Language:  s.engine.Registry().Default(),
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.engine.Seed(ctx, created.ID, defaultRow); err != nil {
		return nil, err
	}

	s.logger.Info("slide created", "slide_id", created.ID.String(), "position", created.Position)
	return s.withTranslations(ctx, created)
}

// Get fetches a slide by identifier together with its translation rows.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Slide, error) {
	if id == uuid.Nil {
		return nil, ErrSlideIDRequired
	}
	record, err := s.slides.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, record)
}

// List returns slides ordered by position.
func (s *service) List(ctx context.Context, activeOnly bool) ([]*Slide, error) {
	return s.slides.List(ctx, activeOnly)
}

// Update applies structural field changes and bumps the updated timestamp.
func (s *service) Update(ctx context.Context, req UpdateSlideRequest) (*Slide, error) {
	if req.ID == uuid.Nil {
		return nil, ErrSlideIDRequired
	}

	record, err := s.slides.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Position != nil {
		record.Position = *req.Position
	}
	if req.ImageURL != nil {
		record.ImageURL = req.ImageURL
	}
	if req.LinkURL != nil {
		record.LinkURL = req.LinkURL
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	if req.ListingID != nil {
		record.ListingID = req.ListingID
	}
	record.UpdatedAt = s.now()

	updated, err := s.slides.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, updated)
}

// Reorder assigns positions 0..n-1 following the given id order. Every
// existing slide must appear exactly once.
func (s *service) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	existing, err := s.slides.List(ctx, false)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(existing) {
		return ErrReorderIncomplete
	}

	known := make(map[uuid.UUID]struct{}, len(existing))
	for _, slide := range existing {
		known[slide.ID] = struct{}{}
	}

	positions := make(map[uuid.UUID]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return ErrReorderIncomplete
		}
		if _, seen := positions[id]; seen {
			return ErrReorderIncomplete
		}
		positions[id] = i
	}

	return s.slides.UpdatePositions(ctx, positions)
}

// Delete removes the slide and its translation rows.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrSlideIDRequired
	}
	if err := s.slides.Delete(ctx, id); err != nil {
		return err
	}
	return s.engine.Purge(ctx, id)
}

// Translations returns the complete translation set, repairing gaps.
func (s *service) Translations(ctx context.Context, slideID uuid.UUID) ([]*SlideTranslation, error) {
	if slideID == uuid.Nil {
		return nil, ErrSlideIDRequired
	}
	if _, err := s.slides.GetByID(ctx, slideID); err != nil {
		return nil, err
	}
	return s.engine.AllComplete(ctx, slideID)
}

// Translation resolves a single language with an exact lookup.
func (s *service) Translation(ctx context.Context, slideID uuid.UUID, language string) (*SlideTranslation, error) {
	if slideID == uuid.Nil {
		return nil, ErrSlideIDRequired
	}
	rows, err := s.engine.Rows(ctx, slideID)
	if err != nil {
		return nil, err
	}
	row, ok := s.engine.Resolve(rows, language)
	if !ok {
		return nil, &NotFoundError{Resource: "slide translation", Key: slideID.String() + ":" + i18n.NormalizeLanguage(language)}
	}
	return row, nil
}

// UpsertTranslation creates or replaces the row for (slide, language).
func (s *service) UpsertTranslation(ctx context.Context, req UpsertSlideTranslationRequest) (*SlideTranslation, error) {
	if req.SlideID == uuid.Nil {
		return nil, ErrSlideIDRequired
	}
	if _, err := s.slides.GetByID(ctx, req.SlideID); err != nil {
		return nil, err
	}

	now := s.now()
	row := &SlideTranslation{
		ID:        s.id(),
		SlideID:   req.SlideID,
		Language:  i18n.NormalizeLanguage(req.Language),
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.engine.Upsert(ctx, row)
}

// DeleteTranslation removes the row for (slide, language).
func (s *service) DeleteTranslation(ctx context.Context, slideID uuid.UUID, language string) error {
	if slideID == uuid.Nil {
		return ErrSlideIDRequired
	}
	return s.engine.Delete(ctx, slideID, language)
}

// ReconcileTranslations sweeps every slide and repairs incomplete sets.
func (s *service) ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error) {
	report, err := s.engine.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) withTranslations(ctx context.Context, record *Slide) (*Slide, error) {
	rows, err := s.engine.Rows(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Translations = rows
	return record, nil
}
