package catalog

import (
	"github.com/unitedcompany2026/estate-catalog/internal/commands/reconcile"
	"github.com/unitedcompany2026/estate-catalog/internal/developments"
	"github.com/unitedcompany2026/estate-catalog/internal/di"
	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/internal/listings"
	"github.com/unitedcompany2026/estate-catalog/internal/partners"
	"github.com/unitedcompany2026/estate-catalog/internal/slides"
)

// ListingService exports the listing service contract for consumers of the catalog package.
type ListingService = listings.Service

// UnitService exports the listing unit service contract.
type UnitService = listings.UnitService

// DevelopmentService exports the development service contract.
type DevelopmentService = developments.Service

// PartnerService exports the partner service contract.
type PartnerService = partners.Service

// SlideService exports the promotional slide service contract.
type SlideService = slides.Service

// LanguageRegistry exports the process-wide language registry.
type LanguageRegistry = i18n.Registry

// SweepReport exports the translation reconciliation report DTO.
type SweepReport = i18n.SweepReport

// ReconcileTranslationsCommand exports the maintenance command message.
type ReconcileTranslationsCommand = reconcile.ReconcileTranslationsCommand

// Module represents the top level catalog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a catalog module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Listings returns the configured listing service.
func (m *Module) Listings() ListingService {
	return m.container.Listings()
}

// Units returns the configured listing unit service.
func (m *Module) Units() UnitService {
	return m.container.Units()
}

// Developments returns the configured development service.
func (m *Module) Developments() DevelopmentService {
	return m.container.Developments()
}

// Partners returns the configured partner service.
func (m *Module) Partners() PartnerService {
	return m.container.Partners()
}

// Slides returns the configured slide service.
func (m *Module) Slides() SlideService {
	return m.container.Slides()
}

// ReconcileTranslations returns the translation maintenance command handler.
func (m *Module) ReconcileTranslations() *reconcile.Handler {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ReconcileTranslations()
}

// Registry returns the language registry the module was configured with.
func (m *Module) Registry() *LanguageRegistry {
	return m.container.Registry()
}

// Close releases resources the module opened itself, such as a database
// connection created from config.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
