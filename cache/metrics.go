package cache

import "time"

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                            {}
func (NoopMetrics) Miss()                           {}
func (NoopMetrics) Evict()                          {}
func (NoopMetrics) Size(int)                        {}
func (NoopMetrics) Load(LoadOutcome, time.Duration) {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
