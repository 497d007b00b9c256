package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/redvlock/agenta/internal/evaluation"
	cbhttp "github.com/redvlock/agenta/pkg/clientbase/http"
)

// Agenta talks to the evaluation backend's REST API.
type Agenta struct {
	baseUrl  string
	cfg      *Config
	client   *cbhttp.Instance
	registry *evaluation.Registry
}

var _ EvaluationStore = &Agenta{}

func NewAgenta(cfg *Config, client *cbhttp.Instance, registry *evaluation.Registry) EvaluationStore {
	return &Agenta{
		baseUrl:  cfg.AgentaBaseUrl,
		cfg:      cfg,
		client:   client,
		registry: registry,
	}
}

type listEvaluationsQuery struct {
	AppID string `json:"app_id"`
}

func (a *Agenta) ListEvaluations(ctx context.Context, appID string) ([]evaluation.Evaluation, error) {
	uri := fmt.Sprintf("%s/api/evaluations", a.baseUrl)
	req := cbhttp.NewRequest(ctx, "GET", uri,
		cbhttp.QueryObj(listEvaluationsQuery{AppID: appID}),
		cbhttp.RetryAttempts(3),
		cbhttp.RetryFixedDelay(200*time.Millisecond),
		cbhttp.RetryIf(cbhttp.RetryIfBaseError),
	)
	resp, herr := a.client.Do(req)
	if herr != nil {
		log.Debugf("failed to fetch evaluations for app %s: %s", appID, herr)
		return nil, herr
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return nil, err
	}

	var responses []evaluationResponse
	if err := json.Unmarshal(body, &responses); err != nil {
		log.Debugf("failed to unmarshal evaluations body: %s", err)
		return nil, err
	}

	evals := make([]evaluation.Evaluation, 0, len(responses))
	for _, resp := range responses {
		evals = append(evals, toEvaluation(resp, a.registry))
	}
	return evals, nil
}

func (a *Agenta) FetchStatus(ctx context.Context, evaluationID string) (evaluation.Status, error) {
	uri := fmt.Sprintf("%s/api/evaluations/%s/status", a.baseUrl, evaluationID)
	req := cbhttp.NewRequest(ctx, "GET", uri)
	resp, herr := a.client.Do(req)
	if herr != nil {
		log.Debugf("failed to fetch status for evaluation %s: %s", evaluationID, herr)
		return "", herr
	}
	defer resp.Close()

	body, err := io.ReadAll(resp)
	if err != nil {
		return "", err
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		log.Debugf("failed to unmarshal status body for evaluation %s: %s", evaluationID, err)
		return "", err
	}
	return statusValue(status.Status), nil
}

func (a *Agenta) DeleteEvaluations(ctx context.Context, ids []string) error {
	uri := fmt.Sprintf("%s/api/evaluations", a.baseUrl)
	req := cbhttp.NewRequest(ctx, "DELETE", uri,
		cbhttp.BodyObj(deleteRequest{EvaluationsIds: ids}),
	)
	if herr := a.client.DoNoResponse(req); herr != nil {
		log.Debugf("failed to delete %d evaluations: %s", len(ids), herr)
		return herr
	}
	return nil
}
