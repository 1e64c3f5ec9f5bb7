package reconcile

// Delta is the difference between two id sets. Added keeps the order of the
// edited set and Removed the order of the original one.
type Delta struct {
	Added   []int64
	Removed []int64
}

func (d Delta) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Diff returns current minus original as Added and original minus current as
// Removed. Ids present in both never appear.
func Diff(original, current []int64) Delta {
	inOriginal := make(map[int64]struct{}, len(original))
	for _, id := range original {
		inOriginal[id] = struct{}{}
	}
	inCurrent := make(map[int64]struct{}, len(current))
	for _, id := range current {
		inCurrent[id] = struct{}{}
	}

	var d Delta
	for _, id := range dedupe(current) {
		if _, ok := inOriginal[id]; !ok {
			d.Added = append(d.Added, id)
		}
	}
	for _, id := range dedupe(original) {
		if _, ok := inCurrent[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	return d
}
