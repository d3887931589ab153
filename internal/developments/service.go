package developments

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

// Service exposes development management use-cases.
type Service interface {
	Create(ctx context.Context, req CreateDevelopmentRequest) (*Development, error)
	Get(ctx context.Context, id uuid.UUID) (*Development, error)
	GetBySlug(ctx context.Context, slugValue string) (*Development, error)
	List(ctx context.Context, limit, offset int) ([]*Development, error)
	Update(ctx context.Context, req UpdateDevelopmentRequest) (*Development, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Translations(ctx context.Context, developmentID uuid.UUID) ([]*DevelopmentTranslation, error)
	Translation(ctx context.Context, developmentID uuid.UUID, language string) (*DevelopmentTranslation, error)
	UpsertTranslation(ctx context.Context, req UpsertDevelopmentTranslationRequest) (*DevelopmentTranslation, error)
	DeleteTranslation(ctx context.Context, developmentID uuid.UUID, language string) error
	ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error)
}

// CreateDevelopmentRequest captures the information required to create a
// development. The slug is derived from Name when left empty. Name and
// Location populate the default-language translation row.
type CreateDevelopmentRequest struct {
	Slug       string
	Status     string
	PartnerID  *uuid.UUID
	StartedAt  *time.Time
	CompleteAt *time.Time
	ImageURL   *string
	Name       string
	Location   string
}

// UpdateDevelopmentRequest carries structural field updates.
type UpdateDevelopmentRequest struct {
	ID         uuid.UUID
	Status     *string
	PartnerID  *uuid.UUID
	StartedAt  *time.Time
	CompleteAt *time.Time
	ImageURL   *string
}

// UpsertDevelopmentTranslationRequest creates or replaces one translation row.
type UpsertDevelopmentTranslationRequest struct {
	DevelopmentID uuid.UUID
	Language      string
	Name          string
	Location      string
}

var (
	ErrNameRequired          = errors.New("developments: name is required")
	ErrSlugInvalid           = errors.New("developments: slug contains invalid characters")
	ErrSlugExists            = errors.New("developments: slug already exists")
	ErrDevelopmentIDRequired = errors.New("developments: development id required")
	ErrStatusInvalid         = errors.New("developments: unknown status")
	ErrCompletionBeforeStart = errors.New("developments: complete_at must not precede started_at")
)

var developmentStatuses = map[string]struct{}{
	"planned":   {},
	"building":  {},
	"completed": {},
	"frozen":    {},
}

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
	developments Repository
	engine       *i18n.Engine[*DevelopmentTranslation]
	now          func() time.Time
	id           IDGenerator
	logger       interfaces.Logger
}

// NewService constructs a development service with the required dependencies.
func NewService(developments Repository, engine *i18n.Engine[*DevelopmentTranslation], opts ...ServiceOption) (Service, error) {
	if developments == nil {
		return nil, errors.New("developments: repository is required")
	}
	if engine == nil {
		return nil, errors.New("developments: translation engine is required")
	}

	s := &service{
		developments: developments,
		engine:       engine,
		now:          time.Now,
		id:           uuid.New,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create persists a development and seeds its translation rows. When the
// request carries no slug, one is derived from the default-language name.
func (s *service) Create(ctx context.Context, req CreateDevelopmentRequest) (*Development, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	status, err := chooseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if req.StartedAt != nil && req.CompleteAt != nil && req.CompleteAt.Before(*req.StartedAt) {
		return nil, ErrCompletionBeforeStart
	}

	source := req.Slug
	if strings.TrimSpace(source) == "" {
		source = name
	}
	slugValue, err := slug.Normalize(source)
	if err != nil || slugValue == "" {
		return nil, ErrSlugInvalid
	}

	if existing, err := s.developments.GetBySlug(ctx, slugValue); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Development{
		ID:         s.id(),
		Slug:       slugValue,
		Status:     status,
		PartnerID:  req.PartnerID,
		StartedAt:  req.StartedAt,
		CompleteAt: req.CompleteAt,
		ImageURL:   req.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.developments.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	defaultRow := &DevelopmentTranslation{
		ID:            s.id(),
		DevelopmentID: created.ID,
		Language:      s.engine.Registry().Default(),
		Name:          name,
		Location:      req.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.engine.Seed(ctx, created.ID, defaultRow); err != nil {
		return nil, err
	}

	s.logger.Info("development created", "development_id", created.ID.String(), "slug", created.Slug)
	return s.withTranslations(ctx, created)
}

// Get fetches a development by identifier together with its translation rows.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Development, error) {
	if id == uuid.Nil {
		return nil, ErrDevelopmentIDRequired
	}
	record, err := s.developments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, record)
}

// GetBySlug fetches a development by slug together with its translation rows.
func (s *service) GetBySlug(ctx context.Context, slugValue string) (*Development, error) {
	slugValue = strings.TrimSpace(slugValue)
	if slugValue == "" {
		return nil, ErrSlugInvalid
	}
	record, err := s.developments.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, record)
}

// List returns developments ordered newest first.
func (s *service) List(ctx context.Context, limit, offset int) ([]*Development, error) {
	return s.developments.List(ctx, limit, offset)
}

// Update applies structural field changes and bumps the updated timestamp.
func (s *service) Update(ctx context.Context, req UpdateDevelopmentRequest) (*Development, error) {
	if req.ID == uuid.Nil {
		return nil, ErrDevelopmentIDRequired
	}

	record, err := s.developments.GetByID(ctx, req.ID)
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
	if req.PartnerID != nil {
		record.PartnerID = req.PartnerID
	}
	if req.StartedAt != nil {
		record.StartedAt = req.StartedAt
	}
	if req.CompleteAt != nil {
		record.CompleteAt = req.CompleteAt
	}
	if record.StartedAt != nil && record.CompleteAt != nil && record.CompleteAt.Before(*record.StartedAt) {
		return nil, ErrCompletionBeforeStart
	}
	if req.ImageURL != nil {
		record.ImageURL = req.ImageURL
	}
	record.UpdatedAt = s.now()

	updated, err := s.developments.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, updated)
}

// Delete removes the development and its translation rows.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrDevelopmentIDRequired
	}
	if err := s.developments.Delete(ctx, id); err != nil {
		return err
	}
	return s.engine.Purge(ctx, id)
}

// Translations returns the complete translation set, repairing gaps.
func (s *service) Translations(ctx context.Context, developmentID uuid.UUID) ([]*DevelopmentTranslation, error) {
	if developmentID == uuid.Nil {
		return nil, ErrDevelopmentIDRequired
	}
	if _, err := s.developments.GetByID(ctx, developmentID); err != nil {
		return nil, err
	}
	return s.engine.AllComplete(ctx, developmentID)
}

// Translation resolves a single language with an exact lookup.
func (s *service) Translation(ctx context.Context, developmentID uuid.UUID, language string) (*DevelopmentTranslation, error) {
	if developmentID == uuid.Nil {
		return nil, ErrDevelopmentIDRequired
	}
	rows, err := s.engine.Rows(ctx, developmentID)
	if err != nil {
		return nil, err
	}
	row, ok := s.engine.Resolve(rows, language)
	if !ok {
		return nil, &NotFoundError{Resource: "development translation", Key: developmentID.String() + ":" + i18n.NormalizeLanguage(language)}
	}
	return row, nil
}

// UpsertTranslation creates or replaces the row for (development, language).
func (s *service) UpsertTranslation(ctx context.Context, req UpsertDevelopmentTranslationRequest) (*DevelopmentTranslation, error) {
	if req.DevelopmentID == uuid.Nil {
		return nil, ErrDevelopmentIDRequired
	}
	if _, err := s.developments.GetByID(ctx, req.DevelopmentID); err != nil {
		return nil, err
	}

	now := s.now()
	row := &DevelopmentTranslation{
		ID:            s.id(),
		DevelopmentID: req.DevelopmentID,
		Language:      i18n.NormalizeLanguage(req.Language),
		Name:          req.Name,
		Location:      req.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.engine.Upsert(ctx, row)
}

// DeleteTranslation removes the row for (development, language).
func (s *service) DeleteTranslation(ctx context.Context, developmentID uuid.UUID, language string) error {
	if developmentID == uuid.Nil {
		return ErrDevelopmentIDRequired
	}
	return s.engine.Delete(ctx, developmentID, language)
}

// ReconcileTranslations sweeps every development and repairs incomplete sets.
func (s *service) ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error) {
	report, err := s.engine.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) withTranslations(ctx context.Context, record *Development) (*Development, error) {
	rows, err := s.engine.Rows(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Translations = rows
	return record, nil
}

func chooseStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return "planned", nil
	}
	if _, ok := developmentStatuses[status]; !ok {
		return "", ErrStatusInvalid
	}
	return status, nil
}
