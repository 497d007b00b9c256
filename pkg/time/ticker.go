package ltime

import "time"

type Ticker interface {
	Channel() <-chan time.Time
	Close()
}

type WallTicker struct {
	ticker *time.Ticker
}

func (w *WallTicker) Channel() <-chan time.Time {
	return w.ticker.C
}

func (w *WallTicker) Close() {
	w.ticker.Stop()
}

func NewWallTicker(duration time.Duration) *WallTicker {
	return &WallTicker{time.NewTicker(duration)}
}

var _ Ticker = &WallTicker{}

// TickerFactory lets a polling component create one ticker per session
// instead of sharing a ticker across restarts.
type TickerFactory func(duration time.Duration) Ticker

func WallTickerFactory(duration time.Duration) Ticker {
	return NewWallTicker(duration)
}

// TestingTicker ticks as fast as the consumer can receive.
type TestingTicker struct {
	c    chan time.Time
	stop chan struct{}
}

func NewTestingTicker() *TestingTicker {
	ret := &TestingTicker{
		c:    make(chan time.Time),
		stop: make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-ret.stop:
				return
			case ret.c <- time.Now():
			}
		}
	}()

	return ret
}

func (t *TestingTicker) Channel() <-chan time.Time {
	return t.c
}

func (t *TestingTicker) Close() {
	close(t.stop)
}

var _ Ticker = &TestingTicker{}

// ManualTicker only ticks when the test calls Tick. Unlike TestingTicker it
// never free-runs, so tests can count exactly how many batches were issued.
type ManualTicker struct {
	c chan time.Time
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{c: make(chan time.Time)}
}

func (t *ManualTicker) Channel() <-chan time.Time {
	return t.c
}

func (t *ManualTicker) Tick() {
	t.c <- time.Now()
}

// TryTick delivers a tick only if someone is listening. It reports whether
// the tick was consumed.
func (t *ManualTicker) TryTick() bool {
	select {
	case t.c <- time.Now():
		return true
	default:
		return false
	}
}

func (t *ManualTicker) Close() {}

var _ Ticker = &ManualTicker{}
