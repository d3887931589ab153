package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/unitedcompany2026/estate-catalog/internal/commands/reconcile"
	"github.com/unitedcompany2026/estate-catalog/internal/developments"
	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/internal/listings"
	"github.com/unitedcompany2026/estate-catalog/internal/logging"
	"github.com/unitedcompany2026/estate-catalog/internal/logging/gologger"
	"github.com/unitedcompany2026/estate-catalog/internal/partners"
	"github.com/unitedcompany2026/estate-catalog/internal/runtimeconfig"
	"github.com/unitedcompany2026/estate-catalog/internal/slides"
	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

// Container wires module dependencies. Without a database it binds the
// in-memory repositories and stores, which is enough for embedded use and
// tests; with a database (opened from config or injected) it binds the Bun
// implementations, optionally wrapped with the repository cache.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	sqlDB          *sql.DB
	cacheTTL       time.Duration
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	loggerProvider interfaces.LoggerProvider

	registry *i18n.Registry

	listingRepo     listings.ListingRepository
	unitRepo        listings.UnitRepository
	developmentRepo developments.Repository
	partnerRepo     partners.Repository
	slideRepo       slides.Repository

	listingSvc     listings.Service
	unitSvc        listings.UnitService
	developmentSvc developments.Service
	partnerSvc     partners.Service
	slideSvc       slides.Service

	reconcileHandler *reconcile.Handler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB injects an already-configured Bun database. The caller keeps
// ownership; Close will not touch it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithPostgresDB wraps a raw Postgres connection with the Bun pgdialect.
// The caller keeps ownership of the connection.
func WithPostgresDB(sqldb *sql.DB) Option {
	return func(c *Container) {
		if sqldb != nil {
			c.bunDB = bun.NewDB(sqldb, pgdialect.New())
		}
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithListingService overrides the default listing service binding.
func WithListingService(svc listings.Service) Option {
	return func(c *Container) {
		c.listingSvc = svc
	}
}

// WithUnitService overrides the default unit service binding.
func WithUnitService(svc listings.UnitService) Option {
	return func(c *Container) {
		c.unitSvc = svc
	}
}

// WithDevelopmentService overrides the default development service binding.
func WithDevelopmentService(svc developments.Service) Option {
	return func(c *Container) {
		c.developmentSvc = svc
	}
}

// WithPartnerService overrides the default partner service binding.
func WithPartnerService(svc partners.Service) Option {
	return func(c *Container) {
		c.partnerSvc = svc
	}
}

// WithSlideService overrides the default slide service binding.
func WithSlideService(svc slides.Service) Option {
	return func(c *Container) {
		c.slideSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()

	registry, err := i18n.NewRegistry(cfg.I18N.Languages, cfg.I18N.Default)
	if err != nil {
		return nil, err
	}
	c.registry = registry

	c.configureRepositories()
	if err := c.configureServices(); err != nil {
		return nil, err
	}
	c.configureCommands()

	return c, nil
}

// Listings returns the listing service.
func (c *Container) Listings() listings.Service {
	return c.listingSvc
}

// Units returns the listing unit service.
func (c *Container) Units() listings.UnitService {
	return c.unitSvc
}

// Developments returns the development service.
func (c *Container) Developments() developments.Service {
	return c.developmentSvc
}

// Partners returns the partner service.
func (c *Container) Partners() partners.Service {
	return c.partnerSvc
}

// Slides returns the promotional slide service.
func (c *Container) Slides() slides.Service {
	return c.slideSvc
}

// ReconcileTranslations returns the maintenance command handler.
func (c *Container) ReconcileTranslations() *reconcile.Handler {
	return c.reconcileHandler
}

// Registry returns the process-wide language registry.
func (c *Container) Registry() *i18n.Registry {
	return c.registry
}

// DB returns the Bun database, or nil when running against memory repositories.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider exposes the configured provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Close releases the database connection when the container opened it itself.
// Injected databases stay open.
func (c *Container) Close() error {
	if c.sqlDB == nil {
		return nil
	}
	err := c.sqlDB.Close()
	c.sqlDB = nil
	return err
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "", runtimeconfig.LoggingProviderNoop:
		return nil
	case runtimeconfig.LoggingProviderGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
		return nil
	default:
		return runtimeconfig.ErrLoggingProviderUnknown
	}
}

func (c *Container) configureDatabase() error {
	if c.bunDB != nil {
		return c.migrate()
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Storage.Driver)) {
	case "":
		// Memory mode: repositories and stores run without a database.
		return nil
	case runtimeconfig.StorageDriverSQLite:
		dsn := strings.TrimSpace(c.Config.Storage.DSN)
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return fmt.Errorf("di: open sqlite: %w", err)
		}
		if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
			sqldb.SetMaxOpenConns(1)
		}
		c.sqlDB = sqldb
		c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
		return c.migrate()
	case runtimeconfig.StorageDriverPostgres:
		return fmt.Errorf("di: postgres storage requires an injected connection, use WithPostgresDB")
	default:
		return runtimeconfig.ErrStorageDriverUnknown
	}
}

func (c *Container) migrate() error {
	if !c.Config.Storage.AutoMigrate || c.bunDB == nil {
		return nil
	}

	ctx := context.Background()

	models := []any{
		(*listings.Listing)(nil),
		(*listings.ListingTranslation)(nil),
		(*listings.Unit)(nil),
		(*listings.UnitTranslation)(nil),
		(*developments.Development)(nil),
		(*developments.DevelopmentTranslation)(nil),
		(*partners.Partner)(nil),
		(*partners.PartnerTranslation)(nil),
		(*slides.Slide)(nil),
		(*slides.SlideTranslation)(nil),
	}
	for _, model := range models {
		if _, err := c.bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("di: create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_listings_slug_unique ON listings (slug)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_developments_slug_unique ON developments (slug)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_listing_translations_listing_language_unique ON listing_translations (listing_id, language)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_listing_unit_translations_unit_language_unique ON listing_unit_translations (unit_id, language)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_development_translations_development_language_unique ON development_translations (development_id, language)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_partner_translations_partner_language_unique ON partner_translations (partner_id, language)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_slide_translations_slide_language_unique ON slide_translations (slide_id, language)",
	}
	for _, ddl := range indexes {
		if _, err := c.bunDB.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("di: create index: %w", err)
		}
	}

	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled && !c.Config.Features.Cache {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		c.listingRepo = listings.NewBunListingRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.unitRepo = listings.NewBunUnitRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.developmentRepo = developments.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.partnerRepo = partners.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.slideRepo = slides.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}

	c.listingRepo = listings.NewMemoryListingRepository()
	c.unitRepo = listings.NewMemoryUnitRepository()
	c.developmentRepo = developments.NewMemoryRepository()
	c.partnerRepo = partners.NewMemoryRepository()
	c.slideRepo = slides.NewMemoryRepository()
}

func (c *Container) configureServices() error {
	engineLogger := logging.I18NLogger(c.loggerProvider)

	listingStore, err := newTranslationStore[*listings.ListingTranslation](c.bunDB, i18n.BunStoreConfig{
		ParentColumn:   "listing_id",
		ContentColumns: []string{"title", "description", "updated_at"},
		ParentModel:    (*listings.Listing)(nil),
	})
	if err != nil {
		return err
	}
	listingEngine, err := i18n.NewEngine(c.registry, listingStore, i18n.Descriptor[*listings.ListingTranslation]{
		Entity: "listing",
		NewRow: func(parentID uuid.UUID, language string) *listings.ListingTranslation {
			return &listings.ListingTranslation{ID: uuid.New(), ListingID: parentID, Language: language}
		},
	}, i18n.WithLogger[*listings.ListingTranslation](engineLogger))
	if err != nil {
		return err
	}

	unitStore, err := newTranslationStore[*listings.UnitTranslation](c.bunDB, i18n.BunStoreConfig{
		ParentColumn:   "unit_id",
		ContentColumns: []string{"title", "description", "updated_at"},
		ParentModel:    (*listings.Unit)(nil),
	})
	if err != nil {
		return err
	}
	unitEngine, err := i18n.NewEngine(c.registry, unitStore, i18n.Descriptor[*listings.UnitTranslation]{
		Entity: "listing_unit",
		NewRow: func(parentID uuid.UUID, language string) *listings.UnitTranslation {
			return &listings.UnitTranslation{ID: uuid.New(), UnitID: parentID, Language: language}
		},
	}, i18n.WithLogger[*listings.UnitTranslation](engineLogger))
	if err != nil {
		return err
	}

	developmentStore, err := newTranslationStore[*developments.DevelopmentTranslation](c.bunDB, i18n.BunStoreConfig{
		ParentColumn:   "development_id",
		ContentColumns: []string{"name", "location", "updated_at"},
		ParentModel:    (*developments.Development)(nil),
	})
	if err != nil {
		return err
	}
	developmentEngine, err := i18n.NewEngine(c.registry, developmentStore, i18n.Descriptor[*developments.DevelopmentTranslation]{
		Entity: "development",
		NewRow: func(parentID uuid.UUID, language string) *developments.DevelopmentTranslation {
			return &developments.DevelopmentTranslation{ID: uuid.New(), DevelopmentID: parentID, Language: language}
		},
	}, i18n.WithLogger[*developments.DevelopmentTranslation](engineLogger))
	if err != nil {
		return err
	}

	partnerStore, err := newTranslationStore[*partners.PartnerTranslation](c.bunDB, i18n.BunStoreConfig{
		ParentColumn:   "partner_id",
		ContentColumns: []string{"name", "about", "updated_at"},
		ParentModel:    (*partners.Partner)(nil),
	})
	if err != nil {
		return err
	}
	partnerEngine, err := i18n.NewEngine(c.registry, partnerStore, i18n.Descriptor[*partners.PartnerTranslation]{
		Entity: "partner",
		NewRow: func(parentID uuid.UUID, language string) *partners.PartnerTranslation {
			return &partners.PartnerTranslation{ID: uuid.New(), PartnerID: parentID, Language: language}
		},
	}, i18n.WithLogger[*partners.PartnerTranslation](engineLogger))
	if err != nil {
		return err
	}

	slideStore, err := newTranslationStore[*slides.SlideTranslation](c.bunDB, i18n.BunStoreConfig{
		ParentColumn:   "slide_id",
		ContentColumns: []string{"title", "subtitle", "updated_at"},
		ParentModel:    (*slides.Slide)(nil),
	})
	if err != nil {
		return err
	}
	slideEngine, err := i18n.NewEngine(c.registry, slideStore, i18n.Descriptor[*slides.SlideTranslation]{
		Entity: "slide",
		NewRow: func(parentID uuid.UUID, language string) *slides.SlideTranslation {
			return &slides.SlideTranslation{ID: uuid.New(), SlideID: parentID, Language: language}
		},
	}, i18n.WithLogger[*slides.SlideTranslation](engineLogger))
	if err != nil {
		return err
	}

	if c.unitSvc == nil {
		svc, err := listings.NewUnitService(c.unitRepo, c.listingRepo, unitEngine,
			listings.WithUnitLogger(logging.ListingsLogger(c.loggerProvider)))
		if err != nil {
			return err
		}
		c.unitSvc = svc
	}

	if c.listingSvc == nil {
		listingOpts := []listings.ServiceOption{
			listings.WithLogger(logging.ListingsLogger(c.loggerProvider)),
		}
		if c.bunDB == nil {
			// The memory repositories do not cascade listing deletes, so the
			// service removes the units (and their translations) itself.
			listingOpts = append(listingOpts, listings.WithUnitCascade(func(ctx context.Context, listingID uuid.UUID) error {
				units, err := c.unitRepo.ListByListing(ctx, listingID)
				if err != nil {
					return err
				}
				for _, unit := range units {
					if err := c.unitSvc.Delete(ctx, unit.ID); err != nil {
						return err
					}
				}
				return nil
			}))
		}
		svc, err := listings.NewService(c.listingRepo, listingEngine, listingOpts...)
		if err != nil {
			return err
		}
		c.listingSvc = svc
	}

	if c.developmentSvc == nil {
		svc, err := developments.NewService(c.developmentRepo, developmentEngine,
			developments.WithLogger(logging.DevelopmentsLogger(c.loggerProvider)))
		if err != nil {
			return err
		}
		c.developmentSvc = svc
	}

	if c.partnerSvc == nil {
		svc, err := partners.NewService(c.partnerRepo, partnerEngine,
			partners.WithLogger(logging.PartnersLogger(c.loggerProvider)))
		if err != nil {
			return err
		}
		c.partnerSvc = svc
	}

	if c.slideSvc == nil {
		svc, err := slides.NewService(c.slideRepo, slideEngine,
			slides.WithLogger(logging.SlidesLogger(c.loggerProvider)))
		if err != nil {
			return err
		}
		c.slideSvc = svc
	}

	return nil
}

func (c *Container) configureCommands() {
	sweepers := map[string]reconcile.Sweeper{
		reconcile.EntityListings:     c.listingSvc,
		reconcile.EntityUnits:        c.unitSvc,
		reconcile.EntityDevelopments: c.developmentSvc,
		reconcile.EntityPartners:     c.partnerSvc,
		reconcile.EntitySlides:       c.slideSvc,
	}
	c.reconcileHandler = reconcile.NewHandler(sweepers, logging.ModuleLogger(c.loggerProvider, "catalog.commands"))
}

func newTranslationStore[T i18n.Row](db *bun.DB, cfg i18n.BunStoreConfig) (i18n.Store[T], error) {
	if db == nil {
		return i18n.NewMemoryStore[T](), nil
	}
	return i18n.NewBunStore[T](db, cfg)
}
