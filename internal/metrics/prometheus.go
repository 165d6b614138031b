package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus is a Recorder backed by prometheus collectors registered on the
// default registry and exposed via GET /metrics.
type Prometheus struct {
	leadsCaptured    prometheus.Counter
	offersCreated    prometheus.Counter
	clicksRecorded   prometheus.Counter
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	redirectDuration prometheus.Histogram
}

// NewPrometheus creates and registers the funnel collectors.
// Call at most once per process.
func NewPrometheus() *Prometheus {
	return &Prometheus{
		leadsCaptured: promauto.NewCounter(prometheus.CounterOpts{
			Name: "funnel_leads_captured_total",
			Help: "Total number of leads captured via the opt-in endpoint",
		}),
		offersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "funnel_offers_created_total",
			Help: "Total number of offers created via the admin endpoint",
		}),
		clicksRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "funnel_clicks_recorded_total",
			Help: "Total number of click records written by the redirect endpoint",
		}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "funnel_redirect_cache_hits_total",
			Help: "Total number of redirect resolutions served from cache",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "funnel_redirect_cache_misses_total",
			Help: "Total number of redirect resolutions that went to the store",
		}),
		redirectDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "funnel_redirect_duration_seconds",
			Help:    "Duration of redirect resolution including the click write",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}
}

func (p *Prometheus) IncLeadCaptured()      { p.leadsCaptured.Inc() }
func (p *Prometheus) IncOfferCreated()      { p.offersCreated.Inc() }
func (p *Prometheus) IncClickRecorded()     { p.clicksRecorded.Inc() }
func (p *Prometheus) IncRedirectCacheHit()  { p.cacheHits.Inc() }
func (p *Prometheus) IncRedirectCacheMiss() { p.cacheMisses.Inc() }

func (p *Prometheus) ObserveRedirectDuration(duration time.Duration) {
	p.redirectDuration.Observe(duration.Seconds())
}
