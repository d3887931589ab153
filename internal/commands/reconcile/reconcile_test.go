package reconcile

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
)

type stubSweeper struct {
	report *i18n.SweepReport
	err    error
	calls  int
}

func (s *stubSweeper) ReconcileTranslations(context.Context) (*i18n.SweepReport, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func TestReconcileCommandValidation(t *testing.T) {
	t.Parallel()

	if err := (ReconcileTranslationsCommand{}).Validate(); err != nil {
		t.Fatalf("empty entity should be valid: %v", err)
	}
	if err := (ReconcileTranslationsCommand{Entity: EntityListings}).Validate(); err != nil {
		t.Fatalf("known entity should be valid: %v", err)
	}
	if err := (ReconcileTranslationsCommand{Entity: "buildings"}).Validate(); err == nil {
		t.Fatal("unknown entity should fail validation")
	}
}

func TestReconcileSingleEntity(t *testing.T) {
	t.Parallel()

	listings := &stubSweeper{report: &i18n.SweepReport{Entity: "listing", Processed: 4, Repaired: 1}}
	slides := &stubSweeper{report: &i18n.SweepReport{Entity: "slide"}}
	handler := NewHandler(map[string]Sweeper{
		EntityListings: listings,
		EntitySlides:   slides,
	}, nil)

	if err := handler.Execute(context.Background(), ReconcileTranslationsCommand{Entity: EntityListings}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if listings.calls != 1 || slides.calls != 0 {
		t.Fatalf("expected only the named entity to be swept, got listings=%d slides=%d", listings.calls, slides.calls)
	}
}

func TestReconcileAllEntities(t *testing.T) {
	t.Parallel()

	listings := &stubSweeper{report: &i18n.SweepReport{Entity: "listing"}}
	partners := &stubSweeper{report: &i18n.SweepReport{Entity: "partner"}}
	handler := NewHandler(map[string]Sweeper{
		EntityListings: listings,
		EntityPartners: partners,
	}, nil)

	if err := handler.Execute(context.Background(), ReconcileTranslationsCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if listings.calls != 1 || partners.calls != 1 {
		t.Fatalf("expected every entity to be swept, got listings=%d partners=%d", listings.calls, partners.calls)
	}
}

func TestReconcileContinuesPastFailingEntity(t *testing.T) {
	t.Parallel()

	broken := &stubSweeper{err: errors.New("storage down")}
	healthy := &stubSweeper{report: &i18n.SweepReport{Entity: "slide"}}
	handler := NewHandler(map[string]Sweeper{
		EntityDevelopments: broken,
		EntitySlides:       healthy,
	}, nil)

	err := handler.Execute(context.Background(), ReconcileTranslationsCommand{})
	if err == nil {
		t.Fatal("expected the first sweep error to surface")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command-category error, got %v", err)
	}
	if healthy.calls != 1 {
		t.Fatal("a failing entity must not stop the remaining sweeps")
	}
}

func TestReconcileRejectsUnknownEntity(t *testing.T) {
	t.Parallel()

	handler := NewHandler(map[string]Sweeper{}, nil)

	err := handler.Execute(context.Background(), ReconcileTranslationsCommand{Entity: "buildings"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation-category error, got %v", err)
	}
}
