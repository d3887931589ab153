package i18n

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSweepRepairsEveryParent(t *testing.T) {
	t.Parallel()

	engine, store := newTestEngine(t, []string{"en", "ka", "ru"}, "en")
	ctx := context.Background()

	complete := uuid.New()
	if err := engine.Seed(ctx, complete, &testRow{ID: uuid.New(), Parent: complete, Language: "en"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	partial := uuid.New()
	if _, err := store.Upsert(ctx, &testRow{ID: uuid.New(), Parent: partial, Language: "en"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	empty := uuid.New()
	store.RegisterParent(empty)

	report, err := engine.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if report.Entity != "widget" {
		t.Fatalf("unexpected entity name %q", report.Entity)
	}
	if report.Processed != 3 {
		t.Fatalf("expected 3 processed parents, got %d", report.Processed)
	}
	if report.Repaired != 2 {
		t.Fatalf("expected 2 repaired parents, got %d", report.Repaired)
	}
	if len(report.Failures) != 0 {
		t.Fatalf("expected no failures, got %+v", report.Failures)
	}

	for _, parentID := range []uuid.UUID{complete, partial, empty} {
		rows, err := store.ListByParent(ctx, parentID)
		if err != nil {
			t.Fatalf("ListByParent: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("parent %s should have 3 rows after sweep, got %d", parentID, len(rows))
		}
	}
}

func TestSweepIsolatesPerParentFailures(t *testing.T) {
	t.Parallel()

	registry := MustNewRegistry([]string{"en", "ka"}, "en")
	inner := NewMemoryStore[*testRow]()
	store := &flakyStore{MemoryStore: inner}
	engine, err := NewEngine[*testRow](registry, store, Descriptor[*testRow]{
		Entity: "widget",
		NewRow: func(parentID uuid.UUID, language string) *testRow {
			return &testRow{ID: uuid.New(), Parent: parentID, Language: language}
		},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	ctx := context.Background()

	broken := uuid.New()
	inner.RegisterParent(broken)
	store.failFor = broken

	healthy := uuid.New()
	if _, err := inner.Upsert(ctx, &testRow{ID: uuid.New(), Parent: healthy, Language: "en"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	report, err := engine.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if report.Processed != 2 {
		t.Fatalf("expected 2 processed parents, got %d", report.Processed)
	}
	if report.Repaired != 1 {
		t.Fatalf("the healthy parent should still be repaired, got %d", report.Repaired)
	}
	if len(report.Failures) != 1 || report.Failures[0].ParentID != broken {
		t.Fatalf("expected one failure for the broken parent, got %+v", report.Failures)
	}

	rows, err := inner.ListByParent(ctx, healthy)
	if err != nil {
		t.Fatalf("ListByParent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("healthy parent should be complete, got %d rows", len(rows))
	}
}

// flakyStore fails ListByParent for a single parent to exercise sweep isolation.
type flakyStore struct {
	*MemoryStore[*testRow]
	failFor uuid.UUID
}

func (s *flakyStore) ListByParent(ctx context.Context, parentID uuid.UUID) ([]*testRow, error) {
	if parentID == s.failFor {
		return nil, context.DeadlineExceeded
	}
	return s.MemoryStore.ListByParent(ctx, parentID)
}
