package clock

import (
	"context"
	"time"
)

type frozenKey struct{}

// WithFrozen pins Now for the rest of the request, used by quote previews
// that accept an explicit as-of date and by tests.
func WithFrozen(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, frozenKey{}, t.UTC())
}

type SystemClock struct{}

func (SystemClock) Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(frozenKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}
