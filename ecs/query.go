package ecs

// intersect returns a snapshot of the entities present in every set.
func intersect(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	// iterate smallest set
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
outer:
	for _, e := range smallest.denseEntities {
		for _, s := range sets {
			if s != smallest && !s.Has(e.id()) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
