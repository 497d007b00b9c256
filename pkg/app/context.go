package app

import (
	"context"
	"time"
)

const BACKGROUND_TIMEOUT_DURATION = time.Minute

// BackgroundTimeoutContext is for work that must survive the request that
// triggered it, such as the full refresh after a delete.
func BackgroundTimeoutContext() (context.Context, context.CancelFunc) {
	return BackgroundTimeoutContextDuration(BACKGROUND_TIMEOUT_DURATION)
}

func BackgroundTimeoutContextDuration(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
