package httpcache

import "time"

// Clock abstracts wall-clock access so tests can control "now" instead of
// relying on the real passage of time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
