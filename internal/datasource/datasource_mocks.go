package datasource

import (
	"context"
	"fmt"
	"sync"

	"github.com/redvlock/agenta/internal/evaluation"
)

// EvaluationStoreMock backs tests that need a scriptable backend.
type EvaluationStoreMock struct {
	lock sync.Mutex

	Evaluations []evaluation.Evaluation
	Statuses    map[string]evaluation.Status

	ListErr   error
	StatusErr map[string]error
	DeleteErr error

	ListCalls   int
	StatusCalls map[string]int
	Deleted     [][]string
}

var _ EvaluationStore = &EvaluationStoreMock{}

func NewEvaluationStoreMock() *EvaluationStoreMock {
	return &EvaluationStoreMock{
		Statuses:    make(map[string]evaluation.Status),
		StatusErr:   make(map[string]error),
		StatusCalls: make(map[string]int),
	}
}

func (m *EvaluationStoreMock) ListEvaluations(_ context.Context, _ string) ([]evaluation.Evaluation, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	ret := make([]evaluation.Evaluation, len(m.Evaluations))
	for i := range m.Evaluations {
		ret[i] = m.Evaluations[i].Clone()
	}
	return ret, nil
}

func (m *EvaluationStoreMock) FetchStatus(_ context.Context, evaluationID string) (evaluation.Status, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.StatusCalls[evaluationID]++
	if err, ok := m.StatusErr[evaluationID]; ok {
		return "", err
	}
	status, ok := m.Statuses[evaluationID]
	if !ok {
		return "", fmt.Errorf("no status scripted for evaluation %s", evaluationID)
	}
	return status, nil
}

func (m *EvaluationStoreMock) DeleteEvaluations(_ context.Context, ids []string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.Deleted = append(m.Deleted, append([]string(nil), ids...))
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return nil
}

// SetEvaluations scripts the full-fetch response.
func (m *EvaluationStoreMock) SetEvaluations(evals []evaluation.Evaluation) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Evaluations = evals
}

// SetStatus scripts the per-id status poll response.
func (m *EvaluationStoreMock) SetStatus(id string, status evaluation.Status) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Statuses[id] = status
}

func (m *EvaluationStoreMock) ListCallCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.ListCalls
}

func (m *EvaluationStoreMock) StatusCallCount(id string) int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.StatusCalls[id]
}
