package clock

import (
	"context"
	"time"
)

type SystemClock struct{}

func (SystemClock) Now(ctx context.Context) time.Time {
	return time.Now().UTC()
}

// Fixed is a test clock pinned to a single instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now(ctx context.Context) time.Time {
	return f.T
}
