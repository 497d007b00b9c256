package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/redvlock/agenta/internal/config"
	"github.com/redvlock/agenta/internal/datasource"
	"github.com/redvlock/agenta/internal/reconciler"
	"github.com/redvlock/agenta/internal/store"
	"github.com/redvlock/agenta/pkg/app"
	sbhttpserver "github.com/redvlock/agenta/pkg/serverbase/http/server"
)

type dependencies struct {
	cfg        *config.Config
	app        *app.Instance
	svc        *sbhttpserver.Instance
	servers    []sbhttpserver.Server
	store      *store.Store
	dataStore  datasource.EvaluationStore
	reconciler *reconciler.Reconciler
	supervisor *reconciler.Supervisor
}

func newDependencies(app *app.Instance, cfg *config.Config, svc *sbhttpserver.Instance,
	servers []sbhttpserver.Server, st *store.Store, dataStore datasource.EvaluationStore,
	rec *reconciler.Reconciler, supervisor *reconciler.Supervisor) *dependencies {
	return &dependencies{
		cfg:        cfg,
		app:        app,
		svc:        svc,
		servers:    servers,
		store:      st,
		dataStore:  dataStore,
		reconciler: rec,
		supervisor: supervisor,
	}
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetReportCaller(true)
	deps, err := InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := deps.svc.Register(sbhttpserver.NewMultiServer(deps.servers)); err != nil {
		panic(err)
	}
	if err := deps.svc.Serve(); err != nil {
		panic(err)
	}

	// Seed the store before the supervisor derives its first running set.
	if err := deps.reconciler.Bootstrap(deps.app.Context()); err != nil {
		log.Printf("initial dataset fetch failed, starting empty: %s", err)
	}

	deps.supervisor.Start()
	defer deps.supervisor.Finish()

	// Wait for the server to finish
	deps.app.WaitForFinish()
}
