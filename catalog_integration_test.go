package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	catalog "github.com/unitedcompany2026/estate-catalog"
	"github.com/unitedcompany2026/estate-catalog/internal/developments"
	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/internal/listings"
	"github.com/unitedcompany2026/estate-catalog/internal/partners"
	"github.com/unitedcompany2026/estate-catalog/internal/slides"

	"github.com/google/uuid"
)

func newModule(t *testing.T, name string) *catalog.Module {
	t.Helper()

	cfg := catalog.DefaultConfig()
	cfg.Storage.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	module, err := catalog.New(cfg)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	t.Cleanup(func() {
		if err := module.Close(); err != nil {
			t.Errorf("close module: %v", err)
		}
	})
	return module
}

func TestListingLifecycleEndToEnd(t *testing.T) {
	module := newModule(t, "catalog_listing_lifecycle")
	ctx := context.Background()
	svc := module.Listings()

	created, err := svc.Create(ctx, listings.CreateListingRequest{
		Slug:        "seaside-tower",
		Price:       250000,
		Bedrooms:    2,
		Title:       "Seaside Tower",
		Description: "Two bedroom apartment with sea view",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.Translations) != 3 {
		t.Fatalf("expected a row per registered language, got %d", len(created.Translations))
	}

	if _, err := svc.UpsertTranslation(ctx, listings.UpsertListingTranslationRequest{
		ListingID:   created.ID,
		Language:    "ka",
		Title:       "ზღვისპირა კოშკი",
		Description: "ორსაძინებლიანი ბინა ზღვის ხედით",
	}); err != nil {
		t.Fatalf("UpsertTranslation: %v", err)
	}

	translated, err := svc.Translation(ctx, created.ID, "ka")
	if err != nil {
		t.Fatalf("Translation ka: %v", err)
	}
	if translated.Title != "ზღვისპირა კოშკი" {
		t.Fatalf("unexpected georgian title %q", translated.Title)
	}

	if _, err := svc.Translation(ctx, created.ID, "de"); err == nil {
		t.Fatal("expected an error for an unregistered language, lookups never fall back")
	}

	if err := svc.DeleteTranslation(ctx, created.ID, "en"); !errors.Is(err, i18n.ErrDefaultLanguageProtected) {
		t.Fatalf("expected ErrDefaultLanguageProtected, got %v", err)
	}

	fetched, err := svc.GetBySlug(ctx, "seaside-tower")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("GetBySlug returned %s, want %s", fetched.ID, created.ID)
	}
}

func TestListingDeleteCascadesToUnits(t *testing.T) {
	module := newModule(t, "catalog_listing_cascade")
	ctx := context.Background()

	listing, err := module.Listings().Create(ctx, listings.CreateListingRequest{
		Slug:  "harbour-block",
		Price: 900000,
		Title: "Harbour Block",
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}

	unit, err := module.Units().Create(ctx, listings.CreateUnitRequest{
		ListingID: listing.ID,
		Floor:     3,
		Rooms:     2,
		Price:     120000,
		Title:     "Apartment 3B",
	})
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}
	if len(unit.Translations) != 3 {
		t.Fatalf("expected seeded unit rows, got %d", len(unit.Translations))
	}

	if err := module.Listings().Delete(ctx, listing.ID); err != nil {
		t.Fatalf("delete listing: %v", err)
	}

	if _, err := module.Units().Get(ctx, unit.ID); err == nil {
		t.Fatal("expected the unit to be removed with its listing")
	}

	var notFound *listings.NotFoundError
	if _, err := module.Listings().Get(ctx, listing.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDevelopmentAndPartnerLinking(t *testing.T) {
	module := newModule(t, "catalog_development_partner")
	ctx := context.Background()

	partner, err := module.Partners().Create(ctx, partners.CreatePartnerRequest{
		Name:  "United Builders",
		About: "Large residential developer",
	})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}

	development, err := module.Developments().Create(ctx, developments.CreateDevelopmentRequest{
		Name:      "Green Cape Residences",
		Location:  "Batumi",
		PartnerID: &partner.ID,
	})
	if err != nil {
		t.Fatalf("create development: %v", err)
	}
	if development.Slug != "green-cape-residences" {
		t.Fatalf("expected slug derived from name, got %q", development.Slug)
	}
	if development.PartnerID == nil || *development.PartnerID != partner.ID {
		t.Fatal("expected the development to reference its partner")
	}

	fetched, err := module.Developments().GetBySlug(ctx, "green-cape-residences")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if len(fetched.Translations) != 3 {
		t.Fatalf("expected 3 translation rows, got %d", len(fetched.Translations))
	}
}

func TestSlideCarouselOrdering(t *testing.T) {
	module := newModule(t, "catalog_slide_carousel")
	ctx := context.Background()
	svc := module.Slides()

	var ids []uuid.UUID
	for _, title := range []string{"Summer Sale", "New Tower", "Final Units"} {
		slide, err := svc.Create(ctx, slides.CreateSlideRequest{Title: title})
		if err != nil {
			t.Fatalf("create slide %q: %v", title, err)
		}
		ids = append(ids, slide.ID)
	}

	if err := svc.Reorder(ctx, []uuid.UUID{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	listed, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []uuid.UUID{ids[2], ids[0], ids[1]}
	for i, id := range want {
		if listed[i].ID != id {
			t.Fatalf("expected slide %s at position %d, got %s", id, i, listed[i].ID)
		}
	}
}

func TestReconcileCommandRepairsDrift(t *testing.T) {
	module := newModule(t, "catalog_reconcile_drift")
	ctx := context.Background()

	first, err := module.Listings().Create(ctx, listings.CreateListingRequest{
		Slug:  "drift-one",
		Price: 100,
		Title: "Drift One",
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if _, err := module.Listings().Create(ctx, listings.CreateListingRequest{
		Slug:  "drift-two",
		Price: 200,
		Title: "Drift Two",
	}); err != nil {
		t.Fatalf("create listing: %v", err)
	}

	// Simulate historical drift by removing rows behind the engine's back.
	if _, err := module.Container().DB().ExecContext(ctx,
		"DELETE FROM listing_translations WHERE language = ?", "ru"); err != nil {
		t.Fatalf("delete rows: %v", err)
	}

	handler := module.ReconcileTranslations()
	if err := handler.Execute(ctx, catalog.ReconcileTranslationsCommand{Entity: "listings"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	rows, err := module.Listings().Translations(ctx, first.ID)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected repaired rows for every language, got %d", len(rows))
	}
}

func TestMemoryModeWithoutDatabase(t *testing.T) {
	cfg := catalog.DefaultConfig()
	cfg.Storage.Driver = ""

	module, err := catalog.New(cfg)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	if module.Container().DB() != nil {
		t.Fatal("expected no database in memory mode")
	}

	created, err := module.Listings().Create(context.Background(), listings.CreateListingRequest{
		Slug:  "memory-only",
		Price: 1,
		Title: "Memory Only",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.Translations) != 3 {
		t.Fatalf("expected seeded rows, got %d", len(created.Translations))
	}
}

func TestMemoryModeDeleteCascades(t *testing.T) {
	cfg := catalog.DefaultConfig()
	cfg.Storage.Driver = ""

	module, err := catalog.New(cfg)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	ctx := context.Background()

	listing, err := module.Listings().Create(ctx, listings.CreateListingRequest{
		Slug:  "memory-cascade",
		Price: 500,
		Title: "Memory Cascade",
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	unit, err := module.Units().Create(ctx, listings.CreateUnitRequest{
		ListingID: listing.ID,
		Floor:     1,
		Price:     100,
		Title:     "Apartment 1A",
	})
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}

	if err := module.Listings().Delete(ctx, listing.ID); err != nil {
		t.Fatalf("delete listing: %v", err)
	}

	if _, err := module.Units().Get(ctx, unit.ID); err == nil {
		t.Fatal("expected the unit to be removed with its listing")
	}

	report, err := module.Listings().ReconcileTranslations(ctx)
	if err != nil {
		t.Fatalf("reconcile listings: %v", err)
	}
	if report.Processed != 0 {
		t.Fatalf("deleted listings must not be swept, processed %d", report.Processed)
	}

	unitReport, err := module.Units().ReconcileTranslations(ctx)
	if err != nil {
		t.Fatalf("reconcile units: %v", err)
	}
	if unitReport.Processed != 0 {
		t.Fatalf("deleted units must not be swept, processed %d", unitReport.Processed)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := catalog.DefaultConfig()
	cfg.I18N.Default = "de"

	if _, err := catalog.New(cfg); !errors.Is(err, catalog.ErrDefaultLanguageUnsupported) {
		t.Fatalf("expected ErrDefaultLanguageUnsupported, got %v", err)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := catalog.GetMigrationsFS().ReadDir("data/sql/migrations")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected embedded migration files")
	}
}
