package poll

import (
	"context"
	"fmt"
	"time"
)

type Key interface {
	int64 | uint64 | string
}

// Poller is the domain side of a polling session: fetch the current state of
// the given ids and apply it. It is called once per tick from the session
// goroutine, never concurrently with itself, and must honor ctx cancellation
// by discarding results instead of applying them.
type Poller[T Key] interface {
	Name() string
	Poll(ctx context.Context, ids []T)
}

type Config struct {
	Interval time.Duration
}

var ErrInvalidInterval = fmt.Errorf("invalid poll interval")

func NewConfig(interval time.Duration) (*Config, error) {
	if interval < 1*time.Millisecond {
		return nil, ErrInvalidInterval
	}
	return &Config{
		Interval: interval,
	}, nil
}
