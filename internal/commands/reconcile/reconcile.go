package reconcile

import (
	"context"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/unitedcompany2026/estate-catalog/internal/commands"
	"github.com/unitedcompany2026/estate-catalog/internal/i18n"
	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

const reconcileMessageType = "catalog.translations.reconcile"

// Entity names accepted by the reconcile command.
const (
	EntityListings     = "listings"
	EntityUnits        = "units"
	EntityDevelopments = "developments"
	EntityPartners     = "partners"
	EntitySlides       = "slides"
)

// Sweeper runs a bulk translation reconciliation for one entity type.
type Sweeper interface {
	ReconcileTranslations(ctx context.Context) (*i18n.SweepReport, error)
}

// ReconcileTranslationsCommand requests a translation sweep across one entity
// type, or across every registered type when Entity is empty. This is the
// maintenance entry point; it is dispatched out-of-band, not per request.
type ReconcileTranslationsCommand struct {
	Entity string `json:"entity,omitempty"`
}

// Type implements command.Message.
func (ReconcileTranslationsCommand) Type() string { return reconcileMessageType }

// Validate ensures the message names a known entity type, if any.
func (m ReconcileTranslationsCommand) Validate() error {
	errs := validation.Errors{}
	if m.Entity != "" {
		switch m.Entity {
		case EntityListings, EntityUnits, EntityDevelopments, EntityPartners, EntitySlides:
		default:
			errs["entity"] = validation.NewError("catalog.translations.reconcile.entity_unknown", "entity is not a registered translatable type")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Handler executes translation sweeps via the shared command handler foundation.
type Handler struct {
	inner *commands.Handler[ReconcileTranslationsCommand]
}

// NewHandler constructs a reconcile handler over the given sweepers, keyed by
// entity name. A sweep failure on one entity type does not stop the others;
// per-parent failures inside a sweep are already isolated by the engine.
func NewHandler(sweepers map[string]Sweeper, logger interfaces.Logger, opts ...commands.HandlerOption[ReconcileTranslationsCommand]) *Handler {
	exec := func(ctx context.Context, msg ReconcileTranslationsCommand) error {
		targets := make([]string, 0, len(sweepers))
		if msg.Entity != "" {
			targets = append(targets, msg.Entity)
		} else {
			for entity := range sweepers {
				targets = append(targets, entity)
			}
			sort.Strings(targets)
		}

		var firstErr error
		for _, entity := range targets {
			sweeper, ok := sweepers[entity]
			if !ok {
				if firstErr == nil {
					firstErr = fmt.Errorf("reconcile: no sweeper registered for %q", entity)
				}
				continue
			}
			report, err := sweeper.ReconcileTranslations(ctx)
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("reconcile %s: %w", entity, err)
				}
				continue
			}
			if logger != nil {
				logger.Info("translations reconciled",
					"entity", entity,
					"processed", report.Processed,
					"repaired", report.Repaired,
					"failures", len(report.Failures),
				)
			}
		}
		return firstErr
	}

	handlerOpts := []commands.HandlerOption[ReconcileTranslationsCommand]{
		commands.WithLogger[ReconcileTranslationsCommand](logger),
		commands.WithOperation[ReconcileTranslationsCommand]("translations.reconcile"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &Handler{
		inner: commands.NewHandler[ReconcileTranslationsCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReconcileTranslationsCommand].Execute.
func (h *Handler) Execute(ctx context.Context, msg ReconcileTranslationsCommand) error {
	return h.inner.Execute(ctx, msg)
}
