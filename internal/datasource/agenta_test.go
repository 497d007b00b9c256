package datasource

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dimfeld/httptreemux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/redvlock/agenta/internal/evaluation"
	ltest "github.com/redvlock/agenta/pkg/test"
	ltime "github.com/redvlock/agenta/pkg/time"
)

func TestListEvaluationsDecodesBackendRows(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	mux := httptreemux.New()
	mux.GET("/api/evaluations", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		assert.Equal(t, "app-1", r.URL.Query().Get("app_id"))
		_ = json.NewEncoder(w).Encode([]evaluationResponse{
			{
				Id:           "eval-1",
				Status:       result{Type: "status", Value: "EVALUATION_STARTED"},
				VariantIds:   []string{"v1"},
				VariantNames: []string{"app.default"},
				TestsetId:    "t1",
				TestsetName:  "golden-set",
				AggregatedResults: []aggregatedResult{
					{
						EvaluatorConfig: evaluatorConfig{Id: "e1", Name: "Exact Match", EvaluatorKey: "exact_match"},
						Result:          result{Type: "number", Value: 0.75},
					},
				},
				AverageLatency:  &result{Type: "number", Value: 1.25},
				CreatedAtMillis: ltime.ToMillis(created),
			},
		})
	})

	ds := NewTestingAgenta(t, nil, mux)

	evals, err := ds.ListEvaluations(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, evals, 1)

	eval := evals[0]
	assert.Equal(t, "eval-1", eval.ID)
	assert.Equal(t, evaluation.StatusStarted, eval.Status)
	assert.Equal(t, []evaluation.VariantRef{{ID: "v1", Name: "app.default"}}, eval.Variants)
	assert.Equal(t, evaluation.TestsetRef{ID: "t1", Name: "golden-set"}, eval.Testset)
	require.Len(t, eval.AggregatedResults, 1)
	assert.Equal(t, 0.75, eval.AggregatedResults[0].Result.Value)
	require.NotNil(t, eval.AverageLatency)
	assert.Equal(t, 1.25, eval.AverageLatency.Value)
	assert.True(t, eval.CreatedAt.Equal(created))
}

func TestListEvaluationsFillsEvaluatorNamesFromRegistry(t *testing.T) {
	mux := httptreemux.New()
	mux.GET("/api/evaluations", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		_ = json.NewEncoder(w).Encode([]evaluationResponse{
			{
				Id:     "eval-1",
				Status: result{Type: "status", Value: "EVALUATION_STARTED"},
				AggregatedResults: []aggregatedResult{
					// Name missing, only the key is present.
					{
						EvaluatorConfig: evaluatorConfig{Id: "e1", EvaluatorKey: "exact_match"},
						Result:          result{Type: "number", Value: 1.0},
					},
					// Backend name wins over the registry entry.
					{
						EvaluatorConfig: evaluatorConfig{Id: "e2", Name: "Custom Similarity", EvaluatorKey: "similarity"},
						Result:          result{Type: "number", Value: 0.5},
					},
					// Unknown key stays unnamed.
					{
						EvaluatorConfig: evaluatorConfig{Id: "e3", EvaluatorKey: "levenshtein"},
						Result:          result{Type: "number", Value: 0.25},
					},
				},
			},
		})
	})

	registry := &evaluation.Registry{
		Evaluators: []evaluation.EvaluatorConfig{
			{Name: "Exact Match", EvaluatorKey: "exact_match"},
			{Name: "Similarity", EvaluatorKey: "similarity"},
		},
	}
	ds := NewTestingAgenta(t, registry, mux)

	evals, err := ds.ListEvaluations(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, evals, 1)
	require.Len(t, evals[0].AggregatedResults, 3)
	assert.Equal(t, "Exact Match", evals[0].AggregatedResults[0].EvaluatorConfig.Name)
	assert.Equal(t, "Custom Similarity", evals[0].AggregatedResults[1].EvaluatorConfig.Name)
	assert.Equal(t, "", evals[0].AggregatedResults[2].EvaluatorConfig.Name)
}

func TestFetchStatusUnwrapsTypedValue(t *testing.T) {
	mux := httptreemux.New()
	mux.GET("/api/evaluations/:id/status", func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		assert.Equal(t, "eval-1", params["id"])
		_ = json.NewEncoder(w).Encode(statusResponse{
			Status: result{Type: "status", Value: "EVALUATION_FINISHED"},
		})
	})

	ds := NewTestingAgenta(t, nil, mux)

	status, err := ds.FetchStatus(context.Background(), "eval-1")
	require.NoError(t, err)
	assert.Equal(t, evaluation.StatusFinished, status)
}

func TestFetchStatusPropagatesBackendErrors(t *testing.T) {
	mux := httptreemux.New()
	mux.GET("/api/evaluations/:id/status", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ds := NewTestingAgenta(t, nil, mux)

	_, err := ds.FetchStatus(context.Background(), "eval-1")
	assert.Error(t, err)
}

func TestFetchStatusRoundTripsBackendValues(t *testing.T) {
	statuses := []string{
		string(evaluation.StatusInitialized),
		string(evaluation.StatusStarted),
		string(evaluation.StatusFinished),
		string(evaluation.StatusFinishedWithErrors),
		string(evaluation.StatusAggregationFailed),
		"EVALUATION_CANCELLED",
	}

	rapid.Check(t, func(rt *rapid.T) {
		lt := ltest.NewRapidT(rt)
		defer lt.RunCleanup()

		value := rapid.SampledFrom(statuses).Draw(rt, "status")

		mux := httptreemux.New()
		mux.GET("/api/evaluations/:id/status", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
			_ = json.NewEncoder(w).Encode(statusResponse{
				Status: result{Type: "status", Value: value},
			})
		})

		ds := NewTestingAgenta(lt, nil, mux)

		status, err := ds.FetchStatus(context.Background(), "eval-1")
		assert.NoError(lt, err)
		assert.Equal(lt, evaluation.Status(value), status)
	})
}

func TestDeleteEvaluationsSendsIDBody(t *testing.T) {
	var lock sync.Mutex
	var received deleteRequest

	mux := httptreemux.New()
	mux.DELETE("/api/evaluations", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		lock.Lock()
		defer lock.Unlock()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	})

	ds := NewTestingAgenta(t, nil, mux)

	require.NoError(t, ds.DeleteEvaluations(context.Background(), []string{"eval-1", "eval-2"}))

	lock.Lock()
	defer lock.Unlock()
	assert.Equal(t, []string{"eval-1", "eval-2"}, received.EvaluationsIds)
}
