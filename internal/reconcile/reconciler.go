package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// Gateway performs single relation changes against the API.
type Gateway interface {
	Assign(ctx context.Context, a domain.Assignment) error
	Remove(ctx context.Context, a domain.Assignment) error
}

// Loader reads the ids currently linked to an owner.
type Loader interface {
	LinkedIDs(ctx context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]int64, error)
}

// Owner identifies the project or training being edited.
type Owner struct {
	Kind domain.OwnerKind
	ID   int64
}

func (o Owner) String() string { return fmt.Sprintf("%s:%d", o.Kind, o.ID) }

// ErrScalarUpdate wraps the failure of the scalar update that precedes the
// relation calls. No relation call is made after it.
var ErrScalarUpdate = errors.New("scalar update failed")

// Load builds a snapshot from the relations currently stored for owner.
func Load(ctx context.Context, l Loader, owner Owner) (*Snapshot, error) {
	original := make(map[domain.RelationKind][]int64, len(domain.RelationKinds))
	for _, kind := range domain.RelationKinds {
		ids, err := l.LinkedIDs(ctx, owner.Kind, owner.ID, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s %s: %w", owner, kind, err)
		}
		original[kind] = ids
	}
	return NewSnapshot(original), nil
}

// Reconciler applies snapshot deltas one call at a time.
type Reconciler struct {
	gw  Gateway
	log zerolog.Logger
}

func New(gw Gateway, log zerolog.Logger) *Reconciler {
	return &Reconciler{gw: gw, log: log}
}

// Save runs updateScalars (when not nil) and then, per relation kind, every
// assign followed by every remove, sequentially. A failing call is recorded
// and the remaining calls still run. Nothing is rolled back. Applied ids move
// into the snapshot's original set, so saving again sends only what failed.
//
// The returned error is ErrScalarUpdate (with no relation calls made) or the
// report's first failure.
func (r *Reconciler) Save(ctx context.Context, owner Owner, snap *Snapshot, updateScalars func(context.Context) error) (*Report, error) {
	report := newReport(owner)

	if updateScalars != nil {
		if err := updateScalars(ctx); err != nil {
			return report, fmt.Errorf("%w: %s: %w", ErrScalarUpdate, owner, err)
		}
	}

	for _, kind := range domain.RelationKinds {
		delta := snap.Delta(kind)
		kr := report.kind(kind)
		for _, id := range delta.Added {
			a := domain.Assignment{Owner: owner.Kind, OwnerID: owner.ID, Relation: kind, RelatedID: id}
			if err := r.gw.Assign(ctx, a); err != nil {
				r.log.Warn().Err(err).Str("assignment", a.String()).Msg("assign failed")
				kr.Failures = append(kr.Failures, Failure{Kind: kind, Action: ActionAssign, ID: id, Err: err})
				continue
			}
			snap.commit(kind, ActionAssign, id)
			kr.Assigned = append(kr.Assigned, id)
		}
		for _, id := range delta.Removed {
			a := domain.Assignment{Owner: owner.Kind, OwnerID: owner.ID, Relation: kind, RelatedID: id}
			if err := r.gw.Remove(ctx, a); err != nil {
				r.log.Warn().Err(err).Str("assignment", a.String()).Msg("remove failed")
				kr.Failures = append(kr.Failures, Failure{Kind: kind, Action: ActionRemove, ID: id, Err: err})
				continue
			}
			snap.commit(kind, ActionRemove, id)
			kr.Removed = append(kr.Removed, id)
		}
	}

	r.log.Info().
		Str("owner", owner.String()).
		Int("calls", report.Calls()).
		Int("failures", len(report.Failures())).
		Msg("relations reconciled")
	return report, report.Err()
}
