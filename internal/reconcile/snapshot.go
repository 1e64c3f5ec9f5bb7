// Package reconcile computes and applies the minimal set of assign and
// remove calls that turn an owner's stored relations into an edited set.
package reconcile

import (
	"slices"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// Snapshot holds, per relation kind, the ids loaded when editing started and
// the ids after local edits. Both are ordered and free of duplicates.
type Snapshot struct {
	original map[domain.RelationKind][]int64
	current  map[domain.RelationKind][]int64
}

// NewSnapshot copies original. Kinds missing from original start empty.
func NewSnapshot(original map[domain.RelationKind][]int64) *Snapshot {
	s := &Snapshot{
		original: make(map[domain.RelationKind][]int64, len(domain.RelationKinds)),
		current:  make(map[domain.RelationKind][]int64, len(domain.RelationKinds)),
	}
	for _, kind := range domain.RelationKinds {
		s.original[kind] = dedupe(original[kind])
	}
	s.Reset()
	return s
}

// Add links id locally. Adding a present id is a no-op.
func (s *Snapshot) Add(kind domain.RelationKind, id int64) {
	if !slices.Contains(s.current[kind], id) {
		s.current[kind] = append(s.current[kind], id)
	}
}

// Remove unlinks id locally. Removing an absent id is a no-op.
func (s *Snapshot) Remove(kind domain.RelationKind, id int64) {
	s.current[kind] = slices.DeleteFunc(s.current[kind], func(v int64) bool { return v == id })
}

// Set replaces the current ids of kind.
func (s *Snapshot) Set(kind domain.RelationKind, ids []int64) {
	s.current[kind] = dedupe(ids)
}

func (s *Snapshot) Current(kind domain.RelationKind) []int64 {
	return slices.Clone(s.current[kind])
}

func (s *Snapshot) Original(kind domain.RelationKind) []int64 {
	return slices.Clone(s.original[kind])
}

// Reset discards local edits.
func (s *Snapshot) Reset() {
	for _, kind := range domain.RelationKinds {
		s.current[kind] = slices.Clone(s.original[kind])
	}
}

// commit records an applied call so that original follows the store.
func (s *Snapshot) commit(kind domain.RelationKind, action Action, id int64) {
	switch action {
	case ActionAssign:
		if !slices.Contains(s.original[kind], id) {
			s.original[kind] = append(s.original[kind], id)
		}
	case ActionRemove:
		s.original[kind] = slices.DeleteFunc(s.original[kind], func(v int64) bool { return v == id })
	}
}

// Delta returns the pending changes of kind.
func (s *Snapshot) Delta(kind domain.RelationKind) Delta {
	return Diff(s.original[kind], s.current[kind])
}

// Dirty reports whether any kind has pending changes.
func (s *Snapshot) Dirty() bool {
	for _, kind := range domain.RelationKinds {
		if !s.Delta(kind).Empty() {
			return true
		}
	}
	return false
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
