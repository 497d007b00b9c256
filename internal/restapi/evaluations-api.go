package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/redvlock/agenta/internal/evaluation"
	"github.com/redvlock/agenta/internal/export"
	"github.com/redvlock/agenta/internal/reconciler"
	"github.com/redvlock/agenta/internal/store"
	lhttp "github.com/redvlock/agenta/pkg/http"
	sbhttpbase "github.com/redvlock/agenta/pkg/serverbase/http/base"
	sbhttpserver "github.com/redvlock/agenta/pkg/serverbase/http/server"
)

var _ sbhttpserver.Server = &EvaluationsAPI{}

// EvaluationsAPI serves the reconciled dataset. It only ever reads store
// snapshots; the sync engine remains the single writer.
type EvaluationsAPI struct {
	store      *store.Store
	reconciler *reconciler.Reconciler
	exporter   *export.CSVExporter
}

func NewEvaluationsAPI(st *store.Store, rec *reconciler.Reconciler, exporter *export.CSVExporter) *EvaluationsAPI {
	return &EvaluationsAPI{
		store:      st,
		reconciler: rec,
		exporter:   exporter,
	}
}

type DeleteEvaluationsRequest struct {
	EvaluationsIds []string `json:"evaluations_ids"`
}

func (a *EvaluationsAPI) GetEvaluations(_ context.Context) ([]evaluation.Evaluation, *lhttp.HttpError) {
	return a.store.Snapshot(), nil
}

// GetEvaluation returns a single row for navigation. Rows still running are
// not navigable and answer with a conflict.
func (a *EvaluationsAPI) GetEvaluation(_ context.Context, id string) (*evaluation.Evaluation, *lhttp.HttpError) {
	eval, ok := a.store.Get(id)
	if !ok {
		return nil, lhttp.NewNotFound(fmt.Sprintf("evaluation %s not found", id))
	}
	if !eval.Navigable() {
		return nil, lhttp.NewConflict(fmt.Sprintf("evaluation %s is still %s", id, eval.Status))
	}
	return &eval, nil
}

func (a *EvaluationsAPI) DeleteEvaluations(ctx context.Context, request *DeleteEvaluationsRequest) *lhttp.HttpError {
	if len(request.EvaluationsIds) == 0 {
		return lhttp.NewBadRequest("evaluations_ids must not be empty")
	}
	if err := a.reconciler.Delete(ctx, request.EvaluationsIds); err != nil {
		return lhttp.NewBadGateway(err.Error())
	}
	return nil
}

func (a *EvaluationsAPI) GetHandlers() []sbhttpserver.HandleDescription {
	return []sbhttpserver.HandleDescription{
		{
			Path:    "/evaluations",
			Method:  http.MethodGet,
			Handler: a.handleGetEvaluations,
		},
		{
			Path:    "/evaluations/export",
			Method:  http.MethodGet,
			Handler: a.handleExportEvaluations,
		},
		{
			Path:    "/evaluations/:id",
			Method:  http.MethodGet,
			Handler: a.handleGetEvaluation,
		},
		{
			Path:    "/evaluations",
			Method:  http.MethodDelete,
			Handler: a.handleDeleteEvaluations,
		},
	}
}

func (a *EvaluationsAPI) handleGetEvaluations(request *sbhttpbase.Request) {
	evals, herr := a.GetEvaluations(request.Request.Context())
	if herr != nil {
		herr.WriteResponse(request.Writer)
		return
	}
	writeJSON(request.Writer, evals)
}

func (a *EvaluationsAPI) handleGetEvaluation(request *sbhttpbase.Request) {
	eval, herr := a.GetEvaluation(request.Request.Context(), request.Params["id"])
	if herr != nil {
		herr.WriteResponse(request.Writer)
		return
	}
	writeJSON(request.Writer, eval)
}

func (a *EvaluationsAPI) handleExportEvaluations(request *sbhttpbase.Request) {
	request.Writer.Header().Set("Content-Type", "text/csv")
	request.Writer.Header().Set("Content-Disposition", `attachment; filename="evaluations.csv"`)

	if err := a.exporter.Write(request.Writer, a.store.Snapshot()); err != nil {
		// Headers are out; all we can do is log the broken stream.
		log.Printf("csv export failed: %s", err)
	}
}

func (a *EvaluationsAPI) handleDeleteEvaluations(request *sbhttpbase.Request) {
	var body DeleteEvaluationsRequest
	if err := json.NewDecoder(request.Request.Body).Decode(&body); err != nil {
		lhttp.NewBadRequest("malformed request body").WriteResponse(request.Writer)
		return
	}

	if herr := a.DeleteEvaluations(request.Request.Context(), &body); herr != nil {
		herr.WriteResponse(request.Writer)
		return
	}
	request.Writer.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("writing response failed: %s", err)
	}
}

func (a *EvaluationsAPI) Ready(_ context.Context) error {
	return nil
}

func (a *EvaluationsAPI) Live(_ context.Context) error {
	return nil
}

func (a *EvaluationsAPI) Shutdown() error {
	return nil
}
