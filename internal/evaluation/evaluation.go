package evaluation

import "time"

type VariantRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TestsetRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Result is a typed value produced by an evaluator or a metric aggregation.
type Result struct {
	Type  string       `json:"type"`
	Value interface{}  `json:"value"`
	Error *ResultError `json:"error,omitempty"`
}

type ResultError struct {
	Message    string `json:"message"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

type EvaluatorConfig struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EvaluatorKey string `json:"evaluator_key"`
}

type AggregatedResult struct {
	EvaluatorConfig EvaluatorConfig `json:"evaluator_config"`
	Result          Result          `json:"result"`
}

type Evaluation struct {
	ID                string             `json:"id"`
	Status            Status             `json:"status"`
	StatusChangedAt   time.Time          `json:"status_changed_at"`
	Variants          []VariantRef       `json:"variants"`
	Testset           TestsetRef         `json:"testset"`
	AggregatedResults []AggregatedResult `json:"aggregated_results"`
	AverageLatency    *Result            `json:"average_latency,omitempty"`
	TotalCost         *Result            `json:"total_cost,omitempty"`
	Duration          time.Duration      `json:"duration"`
	CreatedAt         time.Time          `json:"created_at"`
}

// ApplyStatus merges a status-only update into the evaluation. Once a
// terminal status is reached it is never overwritten by a running one, and
// fields the update did not carry are left untouched. Duration is recomputed
// from the creation time and the transition time. Reports whether the status
// changed.
func (e *Evaluation) ApplyStatus(status Status, now time.Time) bool {
	if status == e.Status {
		return false
	}
	if e.Status.Terminal() && status.Running() {
		return false
	}

	e.Status = status
	e.StatusChangedAt = now
	e.Duration = now.Sub(e.CreatedAt)
	return true
}

// Navigable reports whether consumers may open the evaluation's detail view.
// Rows in a non-terminal state are not navigable.
func (e *Evaluation) Navigable() bool {
	return e.Status.Terminal()
}

// Clone returns a copy that shares no mutable state with the receiver.
func (e *Evaluation) Clone() Evaluation {
	clone := *e

	clone.Variants = append([]VariantRef(nil), e.Variants...)
	clone.AggregatedResults = append([]AggregatedResult(nil), e.AggregatedResults...)
	if e.AverageLatency != nil {
		latency := *e.AverageLatency
		clone.AverageLatency = &latency
	}
	if e.TotalCost != nil {
		cost := *e.TotalCost
		clone.TotalCost = &cost
	}

	return clone
}
