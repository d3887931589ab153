package i18n

import (
	"context"

	"github.com/google/uuid"
)

// SweepReport summarizes a bulk reconciliation pass over one entity type.
type SweepReport struct {
	Entity    string
	Processed int
	Repaired  int
	Failures  []SweepFailure
}

// SweepFailure records a per-parent repair error captured during a sweep.
type SweepFailure struct {
	ParentID uuid.UUID
	Err      error
}

// Sweep runs the repair steps across every parent entity in the backing
// table. Each parent is handled independently: a storage failure is recorded
// and the sweep continues with the remaining parents. The per-parent re-read
// performed by EnsureComplete is skipped here; a sweep only needs the summary.
func (e *Engine[T]) Sweep(ctx context.Context) (SweepReport, error) {
	report := SweepReport{Entity: e.descriptor.Entity}

	parents, err := e.store.ListParentIDs(ctx)
	if err != nil {
		return report, err
	}

	for _, parentID := range parents {
		report.Processed++

		rows, err := e.store.ListByParent(ctx, parentID)
		if err != nil {
			report.Failures = append(report.Failures, SweepFailure{ParentID: parentID, Err: err})
			continue
		}

		missing := e.missingLanguages(rows)
		if len(missing) == 0 {
			continue
		}

		if err := e.insertMissing(ctx, parentID, missing); err != nil {
			report.Failures = append(report.Failures, SweepFailure{ParentID: parentID, Err: err})
			continue
		}
		report.Repaired++
	}

	e.logger.Info("i18n.sweep",
		"entity", e.descriptor.Entity,
		"processed", report.Processed,
		"repaired", report.Repaired,
		"failures", len(report.Failures),
	)
	return report, nil
}
