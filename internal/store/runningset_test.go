package store

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/redvlock/agenta/internal/evaluation"
	ltime "github.com/redvlock/agenta/pkg/time"
)

var statusGen = rapid.SampledFrom([]evaluation.Status{
	evaluation.StatusInitialized,
	evaluation.StatusStarted,
	evaluation.StatusFinished,
	evaluation.StatusFinishedWithErrors,
	evaluation.StatusAggregationFailed,
})

func snapshotGen() *rapid.Generator[[]evaluation.Evaluation] {
	return rapid.Custom(func(t *rapid.T) []evaluation.Evaluation {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		evals := make([]evaluation.Evaluation, 0, n)
		for i := 0; i < n; i++ {
			evals = append(evals, evaluation.Evaluation{
				ID:        fmt.Sprintf("ev-%d", i),
				Status:    statusGen.Draw(t, "status"),
				CreatedAt: ltime.TestingTimeGenerator().Draw(t, "created"),
			})
		}
		return evals
	})
}

// The running set depends only on the statuses present; mutating any other
// field leaves it untouched.
func TestRunningSetDependsOnlyOnStatuses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		evals := snapshotGen().Draw(t, "evals")
		before := RunningIDs(evals)

		for i := range evals {
			evals[i].Testset.Name = rapid.String().Draw(t, "testset")
			evals[i].Duration = ltime.TestingDurationGenerator().Draw(t, "duration")
			evals[i].Variants = append(evals[i].Variants, evaluation.VariantRef{
				Name: rapid.String().Draw(t, "variant"),
			})
		}

		if !before.Equal(RunningIDs(evals)) {
			t.Fatalf("running set changed after unrelated field mutations")
		}
	})
}

// Recomputing over the same statuses yields a set equal by value.
func TestRunningSetIsValueComparable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		evals := snapshotGen().Draw(t, "evals")

		first := RunningIDs(evals)
		second := RunningIDs(evals)

		if !first.Equal(second) {
			t.Fatalf("recomputed running set differs: %v vs %v", first, second)
		}
		for _, e := range evals {
			if e.Status.Running() != first.Contains(e.ID) {
				t.Fatalf("membership disagrees with status for %s", e.ID)
			}
		}
	})
}

func TestStoreRunningIDsMatchesSnapshotDerivation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		evals := snapshotGen().Draw(t, "evals")

		s := New()
		s.Replace(evals)

		if !s.RunningIDs().Equal(RunningIDs(s.Snapshot())) {
			t.Fatalf("store derivation disagrees with pure derivation")
		}
	})
}
