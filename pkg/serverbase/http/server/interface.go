package sbhttpserver

import (
	"context"

	sbhttpbase "github.com/redvlock/agenta/pkg/serverbase/http/base"
)

// HandleDescription is the set of requirements to describe a handle
type HandleDescription struct {
	Path       string
	Method     string
	Handler    sbhttpbase.HandleFunc
	Middleware []sbhttpbase.MiddlewareFunc
}

type ReadinessProvider interface {
	// Method to verify the ready status of the service
	Ready(ctx context.Context) error
}

type LivenessProvider interface {
	// Method to verify the live status of the service
	Live(ctx context.Context) error
}

type ShutdownProvider interface {
	// Method to shutdown the service
	Shutdown() error
}

// Server is an interface that every implementation of the server has to provide
type Server interface {
	ReadinessProvider
	LivenessProvider
	ShutdownProvider
	// Mapping of handling paths
	GetHandlers() []HandleDescription
}
