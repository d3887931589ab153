package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/internal/logging"
	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

// Service exposes partner management use-cases.
type Service interface {
	Create(ctx context.Context, req CreatePartnerRequest) (*Partner, error)
	Get(ctx context.Context, id uuid.UUID) (*Partner, error)
	List(ctx context.Context, limit, offset int) ([]*Partner, error)
	Update(ctx context.Context, req UpdatePartnerRequest) (*Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Translations(ctx context.Context, partnerID uuid.UUID) ([]*PartnerTranslation, error)
	Translation(ctx context.Context, partnerID uuid.UUID, language string) (*PartnerTranslation, error)
	UpsertTranslation(ctx context.Context, req UpsertPartnerTranslationRequest) (*PartnerTranslation, error)
	DeleteTranslation(ctx context.Context, partnerID uuid.UUID, language string) error
	ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error)
}

// CreatePartnerRequest captures the information required to create a partner.
// Name and About populate the default-language translation row.
type CreatePartnerRequest struct {
	Website *string
	LogoURL *string
	Name    string
	About   string
}

// UpdatePartnerRequest carries structural field updates.
type UpdatePartnerRequest struct {
	ID       uuid.UUID
	Website  *string
	LogoURL  *string
	IsActive *bool
}

// UpsertPartnerTranslationRequest creates or replaces one translation row.
type UpsertPartnerTranslationRequest struct {
	PartnerID uuid.UUID
	Language  string
	Name      string
	About     string
}

var (
	ErrNameRequired      = errors.New("partners: name is required")
	ErrPartnerIDRequired = errors.New("partners: partner id required")
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
	partners Repository
	engine   *i18n.Engine[*PartnerTranslation]
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

// NewService constructs a partner service with the required dependencies.
func NewService(partners Repository, engine *i18n.Engine[*PartnerTranslation], opts ...ServiceOption) (Service, error) {
	if partners == nil {
		return nil, errors.New("partners: repository is required")
	}
	if engine == nil {
		return nil, errors.New("partners: translation engine is required")
	}

	s := &service{
		partners: partners,
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

// Create persists a partner and seeds its translation rows.
func (s *service) Create(ctx context.Context, req CreatePartnerRequest) (*Partner, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := s.now()
	record := &Partner{
		ID:        s.id(),
		Website:   req.Website,
		LogoURL:   req.LogoURL,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.partners.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	defaultRow := &PartnerTranslation{
		ID:        s.id(),
		PartnerID: created.ID,
		Language:  s.engine.Registry().Default(),
		Name:      name,
		About:     req.About,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.engine.Seed(ctx, created.ID, defaultRow); err != nil {
		return nil, err
	}

	s.logger.Info("partner created", "partner_id", created.ID.String())
	return s.withTranslations(ctx, created)
}

// Get fetches a partner by identifier together with its translation rows.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Partner, error) {
	if id == uuid.Nil {
		return nil, ErrPartnerIDRequired
	}
	record, err := s.partners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, record)
}

// List returns partners in creation order.
func (s *service) List(ctx context.Context, limit, offset int) ([]*Partner, error) {
	return s.partners.List(ctx, limit, offset)
}

// Update applies structural field changes and bumps the updated timestamp.
func (s *service) Update(ctx context.Context, req UpdatePartnerRequest) (*Partner, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPartnerIDRequired
	}

	record, err := s.partners.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Website != nil {
		record.Website = req.Website
	}
	if req.LogoURL != nil {
		record.LogoURL = req.LogoURL
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	record.UpdatedAt = s.now()

	updated, err := s.partners.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.withTranslations(ctx, updated)
}

// Delete removes the partner and its translation rows.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPartnerIDRequired
	}
	if err := s.partners.Delete(ctx, id); err != nil {
		return err
	}
	return s.engine.Purge(ctx, id)
}

// Translations returns the complete translation set, repairing gaps.
func (s *service) Translations(ctx context.Context, partnerID uuid.UUID) ([]*PartnerTranslation, error) {
	if partnerID == uuid.Nil {
		return nil, ErrPartnerIDRequired
	}
	if _, err := s.partners.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	return s.engine.AllComplete(ctx, partnerID)
}

// Translation resolves a single language with an exact lookup.
func (s *service) Translation(ctx context.Context, partnerID uuid.UUID, language string) (*PartnerTranslation, error) {
	if partnerID == uuid.Nil {
		return nil, ErrPartnerIDRequired
	}
	rows, err := s.engine.Rows(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	row, ok := s.engine.Resolve(rows, language)
	if !ok {
		return nil, &NotFoundError{Resource: "partner translation", Key: partnerID.String() + ":" + i18n.NormalizeLanguage(language)}
	}
	return row, nil
}

// UpsertTranslation creates or replaces the row for (partner, language).
func (s *service) UpsertTranslation(ctx context.Context, req UpsertPartnerTranslationRequest) (*PartnerTranslation, error) {
	if req.PartnerID == uuid.Nil {
		return nil, ErrPartnerIDRequired
	}
	if _, err := s.partners.GetByID(ctx, req.PartnerID); err != nil {
		return nil, err
	}

	now := s.now()
	row := &PartnerTranslation{
		ID:        s.id(),
		PartnerID: req.PartnerID,
		Language:  i18n.NormalizeLanguage(req.Language),
		Name:      req.Name,
		About:     req.About,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.engine.Upsert(ctx, row)
}

// DeleteTranslation removes the row for (partner, language).
func (s *service) DeleteTranslation(ctx context.Context, partnerID uuid.UUID, language string) error {
	if partnerID == uuid.Nil {
		return ErrPartnerIDRequired
	}
	return s.engine.Delete(ctx, partnerID, language)
}

// ReconcileTranslations sweeps every partner and repairs incomplete sets.
func (s *service) ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error) {
	report, err := s.engine.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) withTranslations(ctx context.Context, record *Partner) (*Partner, error) {
	rows, err := s.engine.Rows(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Translations = rows
	return record, nil
}
