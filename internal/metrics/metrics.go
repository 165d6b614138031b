// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// Funnel metrics
	IncLeadCaptured()
	IncOfferCreated()
	IncClickRecorded()

	// Redirect hot path
	IncRedirectCacheHit()
	IncRedirectCacheMiss()
	ObserveRedirectDuration(duration time.Duration)
}
