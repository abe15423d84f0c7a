package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "opensubtitles"

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	LibraryCache    *prometheus.CounterVec
	LibraryCalls    *prometheus.CounterVec
	Resolutions     *prometheus.CounterVec
	ProviderCalls   *prometheus.CounterVec
	RankedListSizes prometheus.Histogram
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LibraryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "library_cache_lookups_total",
			Help:      "Library gateway cache lookups by result (hit, miss, expired).",
		}, []string{"result"}),
		LibraryCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "library_calls_total",
			Help:      "Remote library calls by method and outcome.",
		}, []string{"method", "outcome"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_resolutions_total",
			Help:      "Resolved media queries by identifier strategy.",
		}, []string{"strategy"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Subtitle provider requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		RankedListSizes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranked_candidates",
			Help:      "Number of subtitle candidates ranked per search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}

	reg.MustRegister(m.LibraryCache, m.LibraryCalls, m.Resolutions, m.ProviderCalls, m.RankedListSizes)
	return m
}

// CacheLookup records a cache lookup result
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.LibraryCache.WithLabelValues(result).Inc()
}

// LibraryCall records a remote library call
func (m *Metrics) LibraryCall(method, outcome string) {
	if m == nil {
		return
	}
	m.LibraryCalls.WithLabelValues(method, outcome).Inc()
}

// Resolution records the strategy of a resolved query
func (m *Metrics) Resolution(strategy string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(strategy).Inc()
}

// ProviderCall records a provider request outcome
func (m *Metrics) ProviderCall(operation, outcome string) {
	if m == nil {
		return
	}
	m.ProviderCalls.WithLabelValues(operation, outcome).Inc()
}

// Ranked records the size of a ranked candidate list
func (m *Metrics) Ranked(n int) {
	if m == nil {
		return
	}
	m.RankedListSizes.Observe(float64(n))
}
