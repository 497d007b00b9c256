package datasource

import (
	"context"

	"github.com/redvlock/agenta/internal/evaluation"
)

// StatusResult is one element of a fan-out status batch. Err marks a
// transient per-id failure; the id keeps its current status until the next
// cycle.
type StatusResult struct {
	ID     string
	Status evaluation.Status
	Err    error
}

type EvaluationLister interface {
	// ListEvaluations returns the complete, authoritative dataset for an app.
	ListEvaluations(ctx context.Context, appID string) ([]evaluation.Evaluation, error)
}

type StatusFetcher interface {
	// FetchStatus returns the current status of a single evaluation.
	FetchStatus(ctx context.Context, evaluationID string) (evaluation.Status, error)
}

type EvaluationDeleter interface {
	DeleteEvaluations(ctx context.Context, ids []string) error
}

type EvaluationStore interface {
	EvaluationLister
	StatusFetcher
	EvaluationDeleter
}
