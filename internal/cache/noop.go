package cache

import (
	"context"
	"time"
)

// Noop is the cache used when REDIS_URL is not configured: every read
// misses, every write succeeds silently, and counters stay at zero so rate
// limiting fails open.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }
func (Noop) Get(_ context.Context, _ string) ([]byte, bool, error)            { return nil, false, nil }
func (Noop) Delete(_ context.Context, _ string) error                         { return nil }
func (Noop) Ping(_ context.Context) error                                     { return nil }
func (Noop) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, nil
}

// Compile-time check that Noop implements Cache.
var _ Cache = Noop{}
