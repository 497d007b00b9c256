package server

import (
	"github.com/spf13/afero"

	"github.com/redvlock/agenta/internal/config"
	"github.com/redvlock/agenta/internal/datasource"
	"github.com/redvlock/agenta/internal/evaluation"
	"github.com/redvlock/agenta/internal/export"
	"github.com/redvlock/agenta/internal/poller"
	"github.com/redvlock/agenta/internal/reconciler"
	"github.com/redvlock/agenta/internal/restapi"
	"github.com/redvlock/agenta/internal/store"
	sbhttpserver "github.com/redvlock/agenta/pkg/serverbase/http/server"
)

func NewRegistry(cfg *config.Config) (*evaluation.Registry, error) {
	return evaluation.LoadRegistry(cfg.EvaluatorRegistryFile, afero.NewOsFs())
}

func NewExporter(registry *evaluation.Registry) *export.CSVExporter {
	return export.NewCSVExporter(registry)
}

func NewReconciler(cfg *config.Config, st *store.Store, ds datasource.EvaluationStore) *reconciler.Reconciler {
	return reconciler.New(st, ds, cfg.AppID, nil)
}

func NewStatusPoller(ds datasource.EvaluationStore, rec *reconciler.Reconciler) *poller.StatusPoller {
	return poller.NewStatusPoller(ds, rec)
}

func NewHttpServers(api *restapi.EvaluationsAPI) []sbhttpserver.Server {
	return []sbhttpserver.Server{api}
}
