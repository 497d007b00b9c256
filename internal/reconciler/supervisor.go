package reconciler

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/redvlock/agenta/internal/store"
	"github.com/redvlock/agenta/pkg/app"
	"github.com/redvlock/agenta/pkg/poll"
)

// Supervisor closes the loop between the store and the poll controller: on
// every store change it recomputes the running set and hands it to the
// controller, which restarts its session only when the set changed by value.
// This replaces any implicit restart-on-render coupling with one explicit
// store-diff event.
type Supervisor struct {
	store      *store.Store
	controller *poll.Controller[string]

	context context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewSupervisor(app *app.Instance, st *store.Store, controller *poll.Controller[string]) *Supervisor {
	ctx, cancel := context.WithCancel(app.Context())
	return &Supervisor{
		store:      st,
		controller: controller,
		context:    ctx,
		cancel:     cancel,
	}
}

func (s *Supervisor) Start() {
	changes := s.store.Subscribe()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.sync()
		for {
			select {
			case <-s.context.Done():
				log.Println("evaluation supervisor shutting down")
				s.controller.Stop()
				return
			case <-changes:
				s.sync()
			}
		}
	}()
}

func (s *Supervisor) sync() {
	running := s.store.RunningIDs()
	s.controller.Apply(running)
}

func (s *Supervisor) Finish() {
	s.cancel()
	s.wg.Wait()
}
