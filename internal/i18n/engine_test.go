package i18n

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
)

type testRow struct {
	ID       uuid.UUID
	Parent   uuid.UUID
	Language string
	Body     string
}

func (r *testRow) ParentID() uuid.UUID {
	return r.Parent
}

func (r *testRow) LanguageCode() string {
	return r.Language
}

func newTestEngine(t *testing.T, languages []string, def string) (*Engine[*testRow], *MemoryStore[*testRow]) {
	t.Helper()

	registry, err := NewRegistry(languages, def)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	store := NewMemoryStore[*testRow]()
	engine, err := NewEngine(registry, store, Descriptor[*testRow]{
		Entity: "widget",
		NewRow: func(parentID uuid.UUID, language string) *testRow {
			return &testRow{ID: uuid.New(), Parent: parentID, Language: language}
		},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine, store
}

func languagesOf(rows []*testRow) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Language)
	}
	sort.Strings(out)
	return out
}

func TestNewEngineValidatesDependencies(t *testing.T) {
	t.Parallel()

	registry := MustNewRegistry([]string{"en"}, "en")
	store := NewMemoryStore[*testRow]()
	descriptor := Descriptor[*testRow]{
		Entity: "widget",
		NewRow: func(parentID uuid.UUID, language string) *testRow {
			return &testRow{Parent: parentID, Language: language}
		},
	}

	if _, err := NewEngine(nil, store, descriptor); !errors.Is(err, ErrRegistryRequired) {
		t.Fatalf("expected ErrRegistryRequired, got %v", err)
	}
	if _, err := NewEngine[*testRow](registry, nil, descriptor); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
	if _, err := NewEngine(registry, store, Descriptor[*testRow]{}); !errors.Is(err, ErrRowFactoryRequired) {
		t.Fatalf("expected ErrRowFactoryRequired, got %v", err)
	}
}

func TestSeedCreatesOneRowPerLanguage(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka", "ru"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	defaultRow := &testRow{ID: uuid.New(), Parent: parentID, Language: "en", Body: "hello"}
	if err := engine.Seed(ctx, parentID, defaultRow); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	rows, err := store.ListByParent(ctx, parentID)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}
	if got := languagesOf(rows); len(got) != 3 {
		t.Fatalf("expected 3 rows, got %v", got)
	}

	resolved, ok := engine.Resolve(rows, "en")
	if !ok || resolved.Body != "hello" {
		t.Fatalf("default row should carry seed content, got %+v", resolved)
	}
	if resolved, ok := engine.Resolve(rows, "ka"); !ok || resolved.Body != "" {
		t.Fatalf("non-default seeded rows should be empty, got %+v", resolved)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	first := &testRow{ID: uuid.New(), Parent: parentID, Language: "en", Body: "original"}
	if err := engine.Seed(ctx, parentID, first); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	second := &testRow{ID: uuid.New(), Parent: parentID, Language: "en", Body: "replacement"}
	if err := engine.Seed(ctx, parentID, second); err != nil {
		t.Fatalf("Seed rerun: %v", err)
	}

	rows, err := store.ListByParent(ctx, parentID)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rerun must not create extra rows, got %d", len(rows))
	}
	resolved, _ := engine.Resolve(rows, "en")
	if resolved.Body != "original" {
		t.Fatalf("rerun must not overwrite existing content, got %q", resolved.Body)
	}
}

func TestSeedRejectsMismatchedDefaultRow(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t, []string{"en", "ka"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	if err := engine.Seed(ctx, uuid.Nil, &testRow{Parent: parentID, Language: "en"}); !errors.Is(err, ErrParentIDRequired) {
		t.Fatalf("expected ErrParentIDRequired, got %v", err)
	}
	if err := engine.Seed(ctx, parentID, &testRow{Parent: uuid.New(), Language: "en"}); !errors.Is(err, ErrRowMismatch) {
		t.Fatalf("expected ErrRowMismatch for wrong parent, got %v", err)
	}
	if err := engine.Seed(ctx, parentID, &testRow{Parent: parentID, Language: "ka"}); !errors.Is(err, ErrRowMismatch) {
		t.Fatalf("expected ErrRowMismatch for non-default language, got %v", err)
	}
}

func TestResolveIsExactWithoutFallback(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t, []string{"en", "ka"}, "en")
	rows := []*testRow{
		{Parent: uuid.New(), Language: "en", Body: "hello"},
		{Parent: uuid.New(), Language: "ka", Body: ""},
	}

	if row, ok := engine.Resolve(rows, " KA "); !ok || row.Language != "ka" {
		t.Fatalf("expected normalized exact match, got %v %+v", ok, row)
	}
	if _, ok := engine.Resolve(rows, "ru"); ok {
		t.Fatal("missing language must not fall back to the default")
	}
	if _, ok := engine.Resolve(rows, ""); ok {
		t.Fatal("empty language must not match")
	}
}

func TestUpsertLastWriteWins(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	if _, err := engine.Upsert(ctx, &testRow{ID: uuid.New(), Parent: parentID, Language: "ka", Body: "one"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	stored, err := engine.Upsert(ctx, &testRow{ID: uuid.New(), Parent: parentID, Language: "ka", Body: "two"})
	if err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	if stored.Body != "two" {
		t.Fatalf("expected last write to win, got %q", stored.Body)
	}

	rows, err := store.ListByParent(ctx, parentID)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("upsert must not duplicate rows, got %d", len(rows))
	}
}

func TestUpsertValidatesInput(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t, []string{"en"}, "en")
	ctx := context.Background()

	if _, err := engine.Upsert(ctx, &testRow{Language: "en"}); !errors.Is(err, ErrParentIDRequired) {
		t.Fatalf("expected ErrParentIDRequired, got %v", err)
	}
	if _, err := engine.Upsert(ctx, &testRow{Parent: uuid.New(), Language: "  "}); !errors.Is(err, ErrLanguageRequired) {
		t.Fatalf("expected ErrLanguageRequired, got %v", err)
	}
}

func TestDeleteProtectsDefaultAndReportsMissing(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t, []string{"en", "ka"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	if err := engine.Seed(ctx, parentID, &testRow{ID: uuid.New(), Parent: parentID, Language: "en"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := engine.Delete(ctx, parentID, "EN"); !errors.Is(err, ErrDefaultLanguageProtected) {
		t.Fatalf("expected ErrDefaultLanguageProtected, got %v", err)
	}
	if err := engine.Delete(ctx, parentID, "ka"); err != nil {
		t.Fatalf("Delete ka: %v", err)
	}

	err := engine.Delete(ctx, parentID, "ka")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
	if !IsNotFound(err) {
		t.Fatal("IsNotFound should recognize the error")
	}
}

func TestPurgeDropsParentAndStopsSweeps(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka", "ru"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	if err := engine.Seed(ctx, parentID, &testRow{ID: uuid.New(), Parent: parentID, Language: "en"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := engine.Purge(ctx, parentID); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	rows, err := store.ListByParent(ctx, parentID)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("purge must remove every row, got %d", len(rows))
	}

	report, err := engine.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if report.Processed != 0 {
		t.Fatalf("sweep must not visit a purged parent, processed %d", report.Processed)
	}

	if err := engine.Purge(ctx, uuid.Nil); !errors.Is(err, ErrParentIDRequired) {
		t.Fatalf("expected ErrParentIDRequired, got %v", err)
	}
}

func TestEnsureCompleteRepairsAndRereads(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka", "ru"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	existing := &testRow{ID: uuid.New(), Parent: parentID, Language: "en", Body: "kept"}
	if _, err := store.Upsert(ctx, existing); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	complete, err := engine.EnsureComplete(ctx, parentID, []*testRow{existing})
	if err != nil {
		t.Fatalf("EnsureComplete: %v", err)
	}
	if got := languagesOf(complete); len(got) != 3 {
		t.Fatalf("expected full set after repair, got %v", got)
	}
	resolved, _ := engine.Resolve(complete, "en")
	if resolved.Body != "kept" {
		t.Fatalf("repair must not touch existing rows, got %q", resolved.Body)
	}
}

func TestEnsureCompleteNoWriteWhenComplete(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	if err := engine.Seed(ctx, parentID, &testRow{ID: uuid.New(), Parent: parentID, Language: "en"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	rows, err := store.ListByParent(ctx, parentID)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}

	complete, err := engine.EnsureComplete(ctx, parentID, rows)
	if err != nil {
		t.Fatalf("EnsureComplete: %v", err)
	}
	if len(complete) != 2 {
		t.Fatalf("complete set must stay at 2 rows, got %d", len(complete))
	}
}

func TestEnsureCompletePreservesExtraLanguages(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka"}, "en")
	ctx := context.Background()
	parentID := uuid.New()

	if _, err := store.Upsert(ctx, &testRow{ID: uuid.New(), Parent: parentID, Language: "de", Body: "extra"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	complete, err := engine.AllComplete(ctx, parentID)
	if err != nil {
		t.Fatalf("AllComplete: %v", err)
	}
	if got := languagesOf(complete); len(got) != 3 {
		t.Fatalf("expected de row plus repaired registry rows, got %v", got)
	}
	if row, ok := engine.Resolve(complete, "de"); !ok || row.Body != "extra" {
		t.Fatalf("rows outside the registry must survive repair, got %v %+v", ok, row)
	}
}
