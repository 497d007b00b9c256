package poll

import (
	"context"
	"slices"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	ltime "github.com/redvlock/agenta/pkg/time"
)

// Controller owns at most one live polling session. Each session is bound to
// the target-id set captured at its start; changing the desired set by value
// replaces the session, recomputing an equal set is a no-op.
type Controller[T Key] struct {
	poller  Poller[T]
	config  *Config
	context context.Context
	tickers ltime.TickerFactory
	tracer  trace.Tracer

	lock    sync.Mutex
	session *session[T]
}

func NewController[T Key](ctx context.Context, cfg *Config, poller Poller[T], tickers ltime.TickerFactory) *Controller[T] {
	if poller == nil {
		return nil
	}
	if tickers == nil {
		tickers = ltime.WallTickerFactory
	}

	return &Controller[T]{
		poller:  poller,
		config:  cfg,
		context: ctx,
		tickers: tickers,
		tracer:  otel.Tracer("poller_" + poller.Name()),
	}
}

type session[T Key] struct {
	targets mapset.Set[T]
	cancel  context.CancelFunc
	done    chan struct{}
}

// Apply reconciles the live session with the desired target set. The old
// session is always cancelled and drained before a new one starts, so two
// sessions never issue fetches for overlapping ids concurrently.
func (c *Controller[T]) Apply(targets mapset.Set[T]) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.session != nil && c.session.targets.Equal(targets) {
		return
	}

	c.stopLocked()

	if targets == nil || targets.Cardinality() == 0 {
		return
	}

	ctx, cancel := context.WithCancel(c.context)
	s := &session[T]{
		targets: targets.Clone(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	c.session = s

	log.Printf("%s: starting session over %d ids", c.poller.Name(), targets.Cardinality())
	go c.run(ctx, s, c.tickers(c.config.Interval))
}

// Stop cancels the live session, if any. Calling it with no session, or
// calling it twice, is a no-op.
func (c *Controller[T]) Stop() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.stopLocked()
}

func (c *Controller[T]) stopLocked() {
	if c.session == nil {
		return
	}
	c.session.cancel()
	<-c.session.done
	c.session = nil
	log.Printf("%s: session stopped", c.poller.Name())
}

// Targets returns the target set of the live session, or nil when no session
// is running.
func (c *Controller[T]) Targets() mapset.Set[T] {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.session == nil {
		return nil
	}
	return c.session.targets.Clone()
}

func (c *Controller[T]) run(ctx context.Context, s *session[T], ticker ltime.Ticker) {
	defer close(s.done)
	defer ticker.Close()

	ids := s.targets.ToSlice()
	slices.Sort(ids)

	// The fetch runs synchronously in this loop: batches are applied in
	// issue order and a tick that fires while a batch is in flight is
	// coalesced by the ticker rather than overlapping it.
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Channel():
			func() {
				ctx, span := startSpan(ctx, c.tracer, c.poller.Name()+".Poll")
				defer span.End()

				c.poller.Poll(ctx, ids)
			}()
		}
	}
}

func startSpan(ctx context.Context, tracer trace.Tracer, spanName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
	)
}
