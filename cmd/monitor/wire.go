//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/redvlock/agenta/internal/config"
	"github.com/redvlock/agenta/internal/datasource"
	"github.com/redvlock/agenta/internal/poller"
	"github.com/redvlock/agenta/internal/reconciler"
	"github.com/redvlock/agenta/internal/restapi"
	"github.com/redvlock/agenta/internal/server"
	"github.com/redvlock/agenta/internal/store"
	"github.com/redvlock/agenta/pkg/app"
	cbhttp "github.com/redvlock/agenta/pkg/clientbase/http"
	sbhttpserver "github.com/redvlock/agenta/pkg/serverbase/http/server"
)

// wire up the dependencies.
func InitializeDependencies() (*dependencies, error) {
	wire.Build(config.NewConfigFromEnv, app.NewInstance,
		cbhttp.NewConfigFromEnv, cbhttp.NewInstance,
		sbhttpserver.NewConfigFromEnv, sbhttpserver.NewInstance,
		datasource.NewConfigFromEnv, datasource.NewAgenta,
		store.New,
		server.NewRegistry, server.NewExporter, server.NewReconciler, server.NewStatusPoller,
		poller.NewConfigFromEnv, poller.NewController,
		reconciler.NewSupervisor,
		restapi.NewEvaluationsAPI, server.NewHttpServers,
		newDependencies)
	return &dependencies{}, nil
}
