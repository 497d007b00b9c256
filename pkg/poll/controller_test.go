package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ltime "github.com/redvlock/agenta/pkg/time"
)

type recordingPoller struct {
	lock    sync.Mutex
	batches [][]string
	polled  chan []string
}

func newRecordingPoller() *recordingPoller {
	return &recordingPoller{polled: make(chan []string, 16)}
}

func (p *recordingPoller) Name() string {
	return "test"
}

func (p *recordingPoller) Poll(_ context.Context, ids []string) {
	p.lock.Lock()
	p.batches = append(p.batches, ids)
	p.lock.Unlock()
	p.polled <- ids
}

func (p *recordingPoller) batchCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.batches)
}

type tickerFactory struct {
	lock    sync.Mutex
	tickers []*ltime.ManualTicker
}

func (f *tickerFactory) new(time.Duration) ltime.Ticker {
	f.lock.Lock()
	defer f.lock.Unlock()
	t := ltime.NewManualTicker()
	f.tickers = append(f.tickers, t)
	return t
}

func (f *tickerFactory) count() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.tickers)
}

func (f *tickerFactory) last() *ltime.ManualTicker {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.tickers[len(f.tickers)-1]
}

func newTestController(t *testing.T) (*Controller[string], *recordingPoller, *tickerFactory) {
	t.Helper()
	cfg, err := NewConfig(2 * time.Second)
	require.NoError(t, err)

	poller := newRecordingPoller()
	factory := &tickerFactory{}
	controller := NewController[string](context.Background(), cfg, poller, factory.new)
	t.Cleanup(controller.Stop)
	return controller, poller, factory
}

func TestSessionPollsTargetSetPerTick(t *testing.T) {
	controller, poller, factory := newTestController(t)

	controller.Apply(mapset.NewSet("b", "a"))
	factory.last().Tick()

	batch := <-poller.polled
	assert.Equal(t, []string{"a", "b"}, batch)

	factory.last().Tick()
	batch = <-poller.polled
	assert.Equal(t, []string{"a", "b"}, batch)
}

func TestApplyEqualSetDoesNotRestart(t *testing.T) {
	controller, _, factory := newTestController(t)

	controller.Apply(mapset.NewSet("1", "2"))
	assert.Equal(t, 1, factory.count())

	// Same value, different instance: the session must survive.
	controller.Apply(mapset.NewSet("2", "1"))
	assert.Equal(t, 1, factory.count())
	assert.True(t, controller.Targets().Equal(mapset.NewSet("1", "2")))
}

func TestApplyChangedSetRestartsSession(t *testing.T) {
	controller, poller, factory := newTestController(t)

	controller.Apply(mapset.NewSet("1", "2"))
	factory.last().Tick()
	<-poller.polled

	controller.Apply(mapset.NewSet("1", "2", "3"))
	assert.Equal(t, 2, factory.count())

	factory.last().Tick()
	batch := <-poller.polled
	assert.Equal(t, []string{"1", "2", "3"}, batch)
}

func TestApplyEmptySetStopsSession(t *testing.T) {
	controller, poller, factory := newTestController(t)

	controller.Apply(mapset.NewSet("1"))
	factory.last().Tick()
	<-poller.polled

	controller.Apply(mapset.NewSet[string]())
	assert.Nil(t, controller.Targets())
	assert.Equal(t, 1, factory.count())
	assert.Equal(t, 1, poller.batchCount())
}

func TestStopIsIdempotent(t *testing.T) {
	controller, _, _ := newTestController(t)

	// No session yet
	controller.Stop()

	controller.Apply(mapset.NewSet("1"))
	controller.Stop()
	controller.Stop()

	assert.Nil(t, controller.Targets())
}

type countingPoller struct {
	n atomic.Int32
}

func (p *countingPoller) Name() string {
	return "test"
}

func (p *countingPoller) Poll(context.Context, []string) {
	p.n.Add(1)
}

func TestSessionFreeRunsOnTestingTicker(t *testing.T) {
	cfg, err := NewConfig(2 * time.Second)
	require.NoError(t, err)

	poller := &countingPoller{}
	controller := NewController[string](context.Background(), cfg, poller, func(time.Duration) ltime.Ticker {
		return ltime.NewTestingTicker()
	})
	t.Cleanup(controller.Stop)

	controller.Apply(mapset.NewSet("1"))

	require.Eventually(t, func() bool {
		return poller.n.Load() >= 2
	}, time.Second, time.Millisecond)
}

func TestStoppedSessionIssuesNoFurtherBatches(t *testing.T) {
	controller, poller, factory := newTestController(t)

	controller.Apply(mapset.NewSet("1"))
	factory.last().Tick()
	<-poller.polled

	controller.Stop()
	before := poller.batchCount()

	// The session goroutine has exited; nothing is listening on the ticker.
	assert.False(t, factory.last().TryTick())
	assert.Equal(t, before, poller.batchCount())
}
