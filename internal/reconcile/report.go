package reconcile

import (
	"fmt"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type Action string

const (
	ActionAssign Action = "assign"
	ActionRemove Action = "remove"
)

// Failure is one relation call that did not succeed.
type Failure struct {
	Kind   domain.RelationKind
	Action Action
	ID     int64
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s %d: %v", f.Action, f.Kind, f.ID, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// KindReport lists what happened for one relation kind.
type KindReport struct {
	Assigned []int64
	Removed  []int64
	Failures []Failure
}

// Report is the outcome of one Save.
type Report struct {
	Owner Owner
	Kinds map[domain.RelationKind]*KindReport
}

func newReport(owner Owner) *Report {
	return &Report{Owner: owner, Kinds: make(map[domain.RelationKind]*KindReport, len(domain.RelationKinds))}
}

func (r *Report) kind(k domain.RelationKind) *KindReport {
	kr, ok := r.Kinds[k]
	if !ok {
		kr = &KindReport{}
		r.Kinds[k] = kr
	}
	return kr
}

// Calls is the number of relation calls attempted.
func (r *Report) Calls() int {
	n := 0
	for _, kr := range r.Kinds {
		n += len(kr.Assigned) + len(kr.Removed) + len(kr.Failures)
	}
	return n
}

// Failures returns every failure in relation-kind order.
func (r *Report) Failures() []Failure {
	var out []Failure
	for _, k := range domain.RelationKinds {
		kr, ok := r.Kinds[k]
		if !ok {
			continue
		}
		out = append(out, kr.Failures...)
	}
	return out
}

// Err names the first failing id, or returns nil.
func (r *Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}
	if len(failures) == 1 {
		return fmt.Errorf("%s: %w", r.Owner, failures[0])
	}
	return fmt.Errorf("%s: %w (and %d more)", r.Owner, failures[0], len(failures)-1)
}
