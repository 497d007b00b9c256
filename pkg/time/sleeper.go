package ltime

import (
	"math/rand"
	"time"
)

func JitteredDuration(duration time.Duration) time.Duration {
	// Add some jitter to make duration 20% smaller or longer
	return time.Duration(float64(duration) * (0.8 + 0.4*rand.Float64()))
}
