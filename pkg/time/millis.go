package ltime

import "time"

// The evaluation backend reports timestamps as unix milliseconds.

func FromMillis(millis int64) time.Time {
	seconds := millis / 1000
	nanoseconds := (millis % 1000) * 1e6
	return time.Unix(seconds, nanoseconds)
}

func ToMillis(t time.Time) int64 {
	return t.UnixNano() / 1e6
}
