package developments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
)

func newTestService(t *testing.T) (Service, *i18n.MemoryStore[*DevelopmentTranslation]) {
	t.Helper()

	registry := i18n.MustNewRegistry([]string{"en", "ka", "ru"}, "en")
	store := i18n.NewMemoryStore[*DevelopmentTranslation]()
	engine, err := i18n.NewEngine(registry, store, i18n.Descriptor[*DevelopmentTranslation]{
		Entity: "development",
		NewRow: func(parentID uuid.UUID, language string) *DevelopmentTranslation {
			return &DevelopmentTranslation{ID: uuid.New(), DevelopmentID: parentID, Language: language}
		},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	svc, err := NewService(NewMemoryRepository(), engine)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestCreateDerivesSlugFromName(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateDevelopmentRequest{
		Name:     "Green Cape Residences",
		Location: "Batumi",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "green-cape-residences" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}
	if created.Status != "planned" {
		t.Fatalf("expected default status, got %q", created.Status)
	}
	if len(created.Translations) != 3 {
		t.Fatalf("expected 3 seeded rows, got %d", len(created.Translations))
	}

	row, err := svc.Translation(ctx, created.ID, "en")
	if err != nil {
		t.Fatalf("Translation: %v", err)
	}
	if row.Name != "Green Cape Residences" || row.Location != "Batumi" {
		t.Fatalf("default row should carry request content, got %+v", row)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateDevelopmentRequest{Name: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateDevelopmentRequest{Name: "ok", Status: "abandoned"}); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	if _, err := svc.Create(ctx, CreateDevelopmentRequest{Name: "ok", StartedAt: &start, CompleteAt: &end}); !errors.Is(err, ErrCompletionBeforeStart) {
		t.Fatalf("expected ErrCompletionBeforeStart, got %v", err)
	}

	if _, err := svc.Create(ctx, CreateDevelopmentRequest{Name: "Twin Towers"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateDevelopmentRequest{Name: "Twin Towers"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestTranslationLifecycle(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateDevelopmentRequest{Name: "River Park"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.UpsertTranslation(ctx, UpsertDevelopmentTranslationRequest{
		DevelopmentID: created.ID,
		Language:      "ka",
		Name:          "რივერ პარკი",
		Location:      "თბილისი",
	})
	if err != nil {
		t.Fatalf("UpsertTranslation: %v", err)
	}
	if updated.Name != "რივერ პარკი" {
		t.Fatalf("unexpected upserted row: %+v", updated)
	}

	if err := svc.DeleteTranslation(ctx, created.ID, "en"); !errors.Is(err, i18n.ErrDefaultLanguageProtected) {
		t.Fatalf("expected ErrDefaultLanguageProtected, got %v", err)
	}
	if err := svc.DeleteTranslation(ctx, created.ID, "ka"); err != nil {
		t.Fatalf("DeleteTranslation: %v", err)
	}

	rows, err := svc.Translations(ctx, created.ID)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected repaired set of 3 rows, got %d", len(rows))
	}
	repaired, ok := findLanguage(rows, "ka")
	if !ok || repaired.Name != "" {
		t.Fatalf("deleted ka row should be recreated empty, got %+v", repaired)
	}

	if _, err := store.DeleteByParentAndLanguage(ctx, created.ID, "ru"); err != nil {
		t.Fatalf("strip ru row: %v", err)
	}
	report, err := svc.ReconcileTranslations(ctx)
	if err != nil {
		t.Fatalf("ReconcileTranslations: %v", err)
	}
	if report.Processed != 1 || report.Repaired != 1 {
		t.Fatalf("unexpected sweep report: %+v", report)
	}
}

func TestTranslationsRejectsUnknownDevelopment(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Translations(context.Background(), uuid.New())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func findLanguage(rows []*DevelopmentTranslation, language string) (*DevelopmentTranslation, bool) {
	for _, row := range rows {
		if row.Language == language {
			return row, true
		}
	}
	return nil, false
}
