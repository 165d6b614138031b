package metrics

import "time"

// Noop is a Recorder that discards every event. Useful in tests.
type Noop struct{}

// NewNoop creates a no-op Recorder.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) IncLeadCaptured()      {}
func (n *Noop) IncOfferCreated()      {}
func (n *Noop) IncClickRecorded()     {}
func (n *Noop) IncRedirectCacheHit()  {}
func (n *Noop) IncRedirectCacheMiss() {}

func (n *Noop) ObserveRedirectDuration(duration time.Duration) {}
