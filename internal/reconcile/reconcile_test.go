package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// memoryGateway stores pairs as a set and logs every call.
type memoryGateway struct {
	pairs map[domain.Assignment]bool
	calls []string
	fail  map[int64]error
}

func newMemoryGateway(pairs ...domain.Assignment) *memoryGateway {
	g := &memoryGateway{pairs: make(map[domain.Assignment]bool), fail: make(map[int64]error)}
	for _, p := range pairs {
		g.pairs[p] = true
	}
	return g
}

func (g *memoryGateway) Assign(_ context.Context, a domain.Assignment) error {
	g.calls = append(g.calls, fmt.Sprintf("assign %s %d", a.Relation, a.RelatedID))
	if err := g.fail[a.RelatedID]; err != nil {
		return err
	}
	g.pairs[a] = true
	return nil
}

func (g *memoryGateway) Remove(_ context.Context, a domain.Assignment) error {
	g.calls = append(g.calls, fmt.Sprintf("remove %s %d", a.Relation, a.RelatedID))
	if err := g.fail[a.RelatedID]; err != nil {
		return err
	}
	delete(g.pairs, a)
	return nil
}

func (g *memoryGateway) LinkedIDs(_ context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]int64, error) {
	var ids []int64
	for p := range g.pairs {
		if p.Owner == owner && p.OwnerID == ownerID && p.Relation == relation {
			ids = append(ids, p.RelatedID)
		}
	}
	return ids, nil
}

var proyecto7 = Owner{Kind: domain.OwnerProyecto, ID: 7}

func pair(kind domain.RelationKind, id int64) domain.Assignment {
	return domain.Assignment{Owner: proyecto7.Kind, OwnerID: proyecto7.ID, Relation: kind, RelatedID: id}
}

func TestDiff_Minimal(t *testing.T) {
	d := Diff([]int64{1, 2, 3}, []int64{2, 3, 4})
	require.Equal(t, []int64{4}, d.Added)
	require.Equal(t, []int64{1}, d.Removed)
}

func TestDiff_KeepsOrderAndIgnoresDuplicates(t *testing.T) {
	d := Diff([]int64{5, 1, 1, 9}, []int64{8, 6, 8, 5})
	require.Equal(t, []int64{8, 6}, d.Added)
	require.Equal(t, []int64{1, 9}, d.Removed)
}

func TestDiff_Unchanged(t *testing.T) {
	require.True(t, Diff([]int64{3, 1}, []int64{1, 3}).Empty())
	require.True(t, Diff(nil, nil).Empty())
}

func TestSnapshot_AddRemoveAddRoundTrip(t *testing.T) {
	s := NewSnapshot(map[domain.RelationKind][]int64{domain.RelationBeneficiarios: {1, 2}})

	s.Add(domain.RelationBeneficiarios, 3)
	s.Remove(domain.RelationBeneficiarios, 3)
	s.Add(domain.RelationBeneficiarios, 3)
	require.Equal(t, []int64{3}, s.Delta(domain.RelationBeneficiarios).Added)

	s.Remove(domain.RelationBeneficiarios, 1)
	s.Add(domain.RelationBeneficiarios, 1)
	d := s.Delta(domain.RelationBeneficiarios)
	require.Empty(t, d.Removed)
	require.Equal(t, []int64{3}, d.Added)

	s.Reset()
	require.False(t, s.Dirty())
	require.Equal(t, []int64{1, 2}, s.Current(domain.RelationBeneficiarios))
}

func TestSnapshot_OriginalIsIsolated(t *testing.T) {
	original := map[domain.RelationKind][]int64{domain.RelationSectores: {4, 4, 5}}
	s := NewSnapshot(original)
	original[domain.RelationSectores][0] = 99

	require.Equal(t, []int64{4, 5}, s.Original(domain.RelationSectores))
	cur := s.Current(domain.RelationSectores)
	cur[0] = 42
	require.Equal(t, []int64{4, 5}, s.Current(domain.RelationSectores))
}

func TestReconciler_Save_MinimalCalls(t *testing.T) {
	gw := newMemoryGateway(
		pair(domain.RelationBeneficiarios, 1), pair(domain.RelationBeneficiarios, 2), pair(domain.RelationBeneficiarios, 3),
		pair(domain.RelationSectores, 10),
	)
	ctx := context.Background()
	snap, err := Load(ctx, gw, proyecto7)
	require.NoError(t, err)

	snap.Set(domain.RelationBeneficiarios, []int64{2, 3, 4})
	snap.Add(domain.RelationSectores, 11)

	report, err := New(gw, zerolog.Nop()).Save(ctx, proyecto7, snap, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"assign beneficiarios 4",
		"remove beneficiarios 1",
		"assign sectores 11",
	}, gw.calls)
	require.Equal(t, 3, report.Calls())
	require.Equal(t, []int64{4}, report.Kinds[domain.RelationBeneficiarios].Assigned)
	require.Equal(t, []int64{1}, report.Kinds[domain.RelationBeneficiarios].Removed)
}

func TestReconciler_Save_Idempotent(t *testing.T) {
	gw := newMemoryGateway(pair(domain.RelationBeneficiarios, 1))
	ctx := context.Background()
	r := New(gw, zerolog.Nop())

	snap, err := Load(ctx, gw, proyecto7)
	require.NoError(t, err)
	snap.Add(domain.RelationBeneficiarios, 2)
	_, err = r.Save(ctx, proyecto7, snap, nil)
	require.NoError(t, err)
	require.Len(t, gw.calls, 1)

	// Reloading and saving again without edits issues nothing.
	gw.calls = nil
	snap, err = Load(ctx, gw, proyecto7)
	require.NoError(t, err)
	report, err := r.Save(ctx, proyecto7, snap, nil)
	require.NoError(t, err)
	require.Empty(t, gw.calls)
	require.Zero(t, report.Calls())
}

func TestReconciler_Save_ScalarFailureAborts(t *testing.T) {
	gw := newMemoryGateway()
	snap := NewSnapshot(nil)
	snap.Add(domain.RelationSectores, 3)

	boom := errors.New("actualizar_proyecto failed")
	_, err := New(gw, zerolog.Nop()).Save(context.Background(), proyecto7, snap, func(context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, ErrScalarUpdate)
	require.ErrorIs(t, err, boom)
	require.Empty(t, gw.calls)
}

func TestReconciler_Save_ContinuesAfterFailure(t *testing.T) {
	gw := newMemoryGateway(pair(domain.RelationBeneficiarios, 1), pair(domain.RelationBeneficiarios, 2))
	gw.fail[5] = domain.ErrForbidden
	snap, err := Load(context.Background(), gw, proyecto7)
	require.NoError(t, err)
	snap.Set(domain.RelationBeneficiarios, []int64{5, 6})

	report, err := New(gw, zerolog.Nop()).Save(context.Background(), proyecto7, snap, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.Contains(t, err.Error(), "assign beneficiarios 5")

	require.Len(t, gw.calls, 4)
	kr := report.Kinds[domain.RelationBeneficiarios]
	require.Equal(t, []int64{6}, kr.Assigned)
	require.ElementsMatch(t, []int64{1, 2}, kr.Removed)
	require.Len(t, kr.Failures, 1)
	require.Equal(t, int64(5), kr.Failures[0].ID)

	// Nothing is rolled back; a retry after reload only sends what is missing.
	delete(gw.fail, 5)
	gw.calls = nil
	retry := NewSnapshot(map[domain.RelationKind][]int64{domain.RelationBeneficiarios: {6}})
	retry.Set(domain.RelationBeneficiarios, []int64{5, 6})
	_, err = New(gw, zerolog.Nop()).Save(context.Background(), proyecto7, retry, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"assign beneficiarios 5"}, gw.calls)
}

func TestReconciler_Save_LostUpdate(t *testing.T) {
	gw := newMemoryGateway(pair(domain.RelationSectores, 1), pair(domain.RelationSectores, 2))
	ctx := context.Background()
	r := New(gw, zerolog.Nop())

	a, err := Load(ctx, gw, proyecto7)
	require.NoError(t, err)
	b, err := Load(ctx, gw, proyecto7)
	require.NoError(t, err)

	var nombre string
	a.Add(domain.RelationSectores, 3)
	_, err = r.Save(ctx, proyecto7, a, func(context.Context) error { nombre = "A"; return nil })
	require.NoError(t, err)

	// B never saw sector 3, so its diff neither adds nor removes it.
	b.Remove(domain.RelationSectores, 1)
	gw.calls = nil
	_, err = r.Save(ctx, proyecto7, b, func(context.Context) error { nombre = "B"; return nil })
	require.NoError(t, err)

	require.Equal(t, "B", nombre)
	require.Equal(t, []string{"remove sectores 1"}, gw.calls)
	ids, _ := gw.LinkedIDs(ctx, proyecto7.Kind, proyecto7.ID, domain.RelationSectores)
	require.ElementsMatch(t, []int64{2, 3}, ids)
}

func TestReconciler_Save_SameSnapshotTwice(t *testing.T) {
	gw := newMemoryGateway(pair(domain.RelationBeneficiarios, 1))
	ctx := context.Background()
	r := New(gw, zerolog.Nop())

	snap, err := Load(ctx, gw, proyecto7)
	require.NoError(t, err)
	snap.Add(domain.RelationBeneficiarios, 2)
	snap.Remove(domain.RelationBeneficiarios, 1)
	_, err = r.Save(ctx, proyecto7, snap, nil)
	require.NoError(t, err)

	require.False(t, snap.Dirty())
	require.Equal(t, []int64{2}, snap.Original(domain.RelationBeneficiarios))
	require.True(t, snap.Delta(domain.RelationBeneficiarios).Empty())

	gw.calls = nil
	report, err := r.Save(ctx, proyecto7, snap, nil)
	require.NoError(t, err)
	require.Empty(t, gw.calls)
	require.Zero(t, report.Calls())
}

func TestReconciler_Save_ResaveSendsOnlyFailures(t *testing.T) {
	gw := newMemoryGateway(pair(domain.RelationSectores, 1))
	gw.fail[4] = domain.ErrUpstream
	ctx := context.Background()
	r := New(gw, zerolog.Nop())

	snap, err := Load(ctx, gw, proyecto7)
	require.NoError(t, err)
	snap.Set(domain.RelationSectores, []int64{3, 4})
	_, err = r.Save(ctx, proyecto7, snap, nil)
	require.ErrorIs(t, err, domain.ErrUpstream)

	d := snap.Delta(domain.RelationSectores)
	require.Equal(t, []int64{4}, d.Added)
	require.Empty(t, d.Removed)

	delete(gw.fail, 4)
	gw.calls = nil
	_, err = r.Save(ctx, proyecto7, snap, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"assign sectores 4"}, gw.calls)
	require.False(t, snap.Dirty())
}
