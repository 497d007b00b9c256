package datasource

import (
	"github.com/redvlock/agenta/internal/evaluation"
	ltime "github.com/redvlock/agenta/pkg/time"
)

type resultError struct {
	Message    string `json:"message"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

type result struct {
	Type  string       `json:"type"`
	Value interface{}  `json:"value"`
	Error *resultError `json:"error,omitempty"`
}

type aggregatedResult struct {
	EvaluatorConfig evaluatorConfig `json:"evaluator_config"`
	Result          result          `json:"result"`
}

type evaluatorConfig struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	EvaluatorKey string `json:"evaluator_key"`
}

type evaluationResponse struct {
	Id                string             `json:"id"`
	Status            result             `json:"status"`
	VariantIds        []string           `json:"variant_ids"`
	VariantNames      []string           `json:"variant_names"`
	TestsetId         string             `json:"testset_id"`
	TestsetName       string             `json:"testset_name"`
	AggregatedResults []aggregatedResult `json:"aggregated_results"`
	AverageLatency    *result            `json:"average_latency"`
	TotalCost         *result            `json:"total_cost"`
	CreatedAtMillis   int64              `json:"created_at"`
}

type statusResponse struct {
	Status result `json:"status"`
}

type deleteRequest struct {
	EvaluationsIds []string `json:"evaluations_ids"`
}

func statusValue(r result) evaluation.Status {
	s, _ := r.Value.(string)
	return evaluation.Status(s)
}

// evaluatorName prefers the backend-supplied name and falls back to the
// registry entry for the evaluator key. Some backend rows carry only the key.
func evaluatorName(cfg evaluatorConfig, registry *evaluation.Registry) string {
	if cfg.Name != "" || registry == nil {
		return cfg.Name
	}
	if known, ok := registry.ByKey(cfg.EvaluatorKey); ok {
		return known.Name
	}
	return cfg.Name
}

func toEvaluation(resp evaluationResponse, registry *evaluation.Registry) evaluation.Evaluation {
	variants := make([]evaluation.VariantRef, 0, len(resp.VariantIds))
	for i, id := range resp.VariantIds {
		name := ""
		if i < len(resp.VariantNames) {
			name = resp.VariantNames[i]
		}
		variants = append(variants, evaluation.VariantRef{ID: id, Name: name})
	}

	aggregated := make([]evaluation.AggregatedResult, 0, len(resp.AggregatedResults))
	for _, ar := range resp.AggregatedResults {
		aggregated = append(aggregated, evaluation.AggregatedResult{
			EvaluatorConfig: evaluation.EvaluatorConfig{
				ID:           ar.EvaluatorConfig.Id,
				Name:         evaluatorName(ar.EvaluatorConfig, registry),
				EvaluatorKey: ar.EvaluatorConfig.EvaluatorKey,
			},
			Result: toResult(ar.Result),
		})
	}

	e := evaluation.Evaluation{
		ID:                resp.Id,
		Status:            statusValue(resp.Status),
		Variants:          variants,
		Testset:           evaluation.TestsetRef{ID: resp.TestsetId, Name: resp.TestsetName},
		AggregatedResults: aggregated,
		CreatedAt:         ltime.FromMillis(resp.CreatedAtMillis),
	}
	if resp.AverageLatency != nil {
		latency := toResult(*resp.AverageLatency)
		e.AverageLatency = &latency
	}
	if resp.TotalCost != nil {
		cost := toResult(*resp.TotalCost)
		e.TotalCost = &cost
	}
	return e
}

func toResult(r result) evaluation.Result {
	ret := evaluation.Result{Type: r.Type, Value: r.Value}
	if r.Error != nil {
		ret.Error = &evaluation.ResultError{
			Message:    r.Error.Message,
			Stacktrace: r.Error.Stacktrace,
		}
	}
	return ret
}
