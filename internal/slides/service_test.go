package slides

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	registry := i18n.MustNewRegistry([]string{"en", "ka", "ru"}, "en")
	store := i18n.NewMemoryStore[*SlideTranslation]()
	engine, err := i18n.NewEngine(registry, store, i18n.Descriptor[*SlideTranslation]{
		Entity: "slide",
		NewRow: func(parentID uuid.UUID, language string) *SlideTranslation {
			return &SlideTranslation{ID: uuid.New(), SlideID: parentID, Language: language}
		},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	svc, err := NewService(NewMemoryRepository(), engine)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSlideCreateAppendsAtEnd(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateSlideRequest{Title: "Summer Sale"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, CreateSlideRequest{Title: "New Development"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if first.Position != 0 || second.Position != 1 {
		t.Fatalf("expected appended positions 0 and 1, got %d and %d", first.Position, second.Position)
	}
	if len(first.Translations) != 3 {
		t.Fatalf("expected 3 seeded rows, got %d", len(first.Translations))
	}
}

func TestSlideReorder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, title := range []string{"a", "b", "c"} {
		slide, err := svc.Create(ctx, CreateSlideRequest{Title: title})
		if err != nil {
			t.Fatalf("Create %q: %v", title, err)
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
			t.Fatalf("expected %s at position %d, got %s", id, i, listed[i].ID)
		}
	}

	if err := svc.Reorder(ctx, ids[:2]); !errors.Is(err, ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete for partial list, got %v", err)
	}
	if err := svc.Reorder(ctx, []uuid.UUID{ids[0], ids[0], ids[1]}); !errors.Is(err, ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete for duplicate id, got %v", err)
	}
}

func TestSlideListActiveOnly(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	visible, err := svc.Create(ctx, CreateSlideRequest{Title: "visible"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	hidden, err := svc.Create(ctx, CreateSlideRequest{Title: "hidden"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inactive := false
	if _, err := svc.Update(ctx, UpdateSlideRequest{ID: hidden.ID, IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	listed, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != visible.ID {
		t.Fatalf("expected only the visible slide, got %d entries", len(listed))
	}
}

func TestSlideTranslationManagement(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSlideRequest{Title: "Opening Soon"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpsertTranslation(ctx, UpsertSlideTranslationRequest{
		SlideID:  created.ID,
		Language: "ka",
		Title:    "მალე გაიხსნება",
	}); err != nil {
		t.Fatalf("UpsertTranslation: %v", err)
	}

	if err := svc.DeleteTranslation(ctx, created.ID, "en"); !errors.Is(err, i18n.ErrDefaultLanguageProtected) {
		t.Fatalf("expected ErrDefaultLanguageProtected, got %v", err)
	}

	rows, err := svc.Translations(ctx, created.ID)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}
