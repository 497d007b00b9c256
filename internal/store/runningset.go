package store

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/redvlock/agenta/internal/evaluation"
)

// RunningIDs derives the set of ids still in flight from a snapshot. It is a
// pure function of the statuses present: no side effects, no memory of prior
// calls. Callers compare the result by value, so recomputing an equal set is
// indistinguishable from not recomputing at all.
func RunningIDs(evals []evaluation.Evaluation) mapset.Set[string] {
	ids := mapset.NewSet[string]()
	for i := range evals {
		if evals[i].Status.Running() {
			ids.Add(evals[i].ID)
		}
	}
	return ids
}

// RunningIDs derives the running set from the current store contents in one
// atomic read.
func (s *Store) RunningIDs() mapset.Set[string] {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := mapset.NewSet[string]()
	for _, id := range s.order {
		if s.byID[id].Status.Running() {
			ids.Add(id)
		}
	}
	return ids
}
