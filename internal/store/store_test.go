package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redvlock/agenta/internal/evaluation"
)

func seed(t *testing.T, s *Store) (created time.Time) {
	t.Helper()
	created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Replace([]evaluation.Evaluation{
		{
			ID:        "ev-1",
			Status:    evaluation.StatusStarted,
			Variants:  []evaluation.VariantRef{{ID: "v-1", Name: "app.default"}},
			Testset:   evaluation.TestsetRef{ID: "ts-1", Name: "smoke"},
			CreatedAt: created,
		},
		{
			ID:        "ev-2",
			Status:    evaluation.StatusFinished,
			CreatedAt: created,
		},
	})
	return created
}

func TestStatusMergeKeepsUnfetchedFields(t *testing.T) {
	s := New()
	created := seed(t, s)

	report := s.ApplyStatuses([]StatusUpdate{{ID: "ev-1", Status: evaluation.StatusFinished}}, created.Add(time.Minute))

	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, []string{"ev-1"}, report.CompletedIDs)

	got, ok := s.Get("ev-1")
	require.True(t, ok)
	assert.Equal(t, evaluation.StatusFinished, got.Status)
	assert.Equal(t, time.Minute, got.Duration)
	// Fields the status fetch did not carry survive the merge.
	assert.Equal(t, "app.default", got.Variants[0].Name)
	assert.Equal(t, "smoke", got.Testset.Name)
}

func TestApplyStatusesUnknownIDIsIgnored(t *testing.T) {
	s := New()
	seed(t, s)

	report := s.ApplyStatuses([]StatusUpdate{{ID: "ev-9", Status: evaluation.StatusFinished}}, time.Now())

	assert.Equal(t, 0, report.Changed)
	assert.Equal(t, []string{"ev-9"}, report.Unknown)
	assert.Equal(t, 2, s.Len())
}

func TestApplyStatusesCountsEachCompletionOnce(t *testing.T) {
	s := New()
	created := seed(t, s)

	// ev-2 is already terminal; only ev-1 transitions out of the running set.
	report := s.ApplyStatuses([]StatusUpdate{
		{ID: "ev-1", Status: evaluation.StatusFinishedWithErrors},
		{ID: "ev-2", Status: evaluation.StatusFinished},
	}, created.Add(time.Minute))

	assert.Equal(t, []string{"ev-1"}, report.CompletedIDs)
}

func TestStaleReplaceDoesNotResurrectTerminalStatus(t *testing.T) {
	s := New()
	created := seed(t, s)
	s.ApplyStatuses([]StatusUpdate{{ID: "ev-1", Status: evaluation.StatusFinished}}, created.Add(time.Minute))

	// A full fetch issued before the transition lands afterwards.
	s.Replace([]evaluation.Evaluation{
		{ID: "ev-1", Status: evaluation.StatusStarted, CreatedAt: created},
	})

	got, ok := s.Get("ev-1")
	require.True(t, ok)
	assert.Equal(t, evaluation.StatusFinished, got.Status)
	assert.Equal(t, time.Minute, got.Duration)
}

func TestReplaceIsAuthoritativeForDroppedEntities(t *testing.T) {
	s := New()
	created := seed(t, s)

	s.Replace([]evaluation.Evaluation{
		{ID: "ev-2", Status: evaluation.StatusFinished, CreatedAt: created},
	})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("ev-1")
	assert.False(t, ok)
}

func TestDeleteRemovesAndRecomputesRunningSet(t *testing.T) {
	s := New()
	seed(t, s)
	assert.True(t, s.RunningIDs().Contains("ev-1"))

	s.Delete([]string{"ev-1", "ev-9"})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.RunningIDs().Cardinality())
}

func TestSubscribeCoalescesNotifications(t *testing.T) {
	s := New()
	ch := s.Subscribe()

	seed(t, s)
	s.ApplyStatuses([]StatusUpdate{{ID: "ev-1", Status: evaluation.StatusFinished}}, time.Now())

	// Two mutations, at least one pending notification.
	select {
	case <-ch:
	default:
		t.Fatal("expected a change notification")
	}
	// Coalesced: draining once empties the channel.
	select {
	case <-ch:
		t.Fatal("expected notifications to be coalesced")
	default:
	}
}

func TestNoopStatusBatchDoesNotNotify(t *testing.T) {
	s := New()
	seed(t, s)
	ch := s.Subscribe()

	s.ApplyStatuses([]StatusUpdate{{ID: "ev-1", Status: evaluation.StatusStarted}}, time.Now())

	select {
	case <-ch:
		t.Fatal("unchanged batch must not notify")
	default:
	}
}

func TestSnapshotIsIsolatedFromStore(t *testing.T) {
	s := New()
	seed(t, s)

	snapshot := s.Snapshot()
	snapshot[0].Variants[0].Name = "mutated"
	snapshot[0].Status = evaluation.StatusAggregationFailed

	got, _ := s.Get("ev-1")
	assert.Equal(t, "app.default", got.Variants[0].Name)
	assert.Equal(t, evaluation.StatusStarted, got.Status)
}
