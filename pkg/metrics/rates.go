package metrics

import "github.com/prometheus/client_golang/prometheus"

// RatesMetrics tracks exchange-rate cache refreshes. A rising fallback
// counter means the external rate source is degraded and conversions are
// running on the static table.
type RatesMetrics struct {
	fetchSuccess prometheus.Counter
	fetchFailure prometheus.Counter
	fallbackUsed prometheus.Counter
}

// NewRatesMetrics registers the exchange-rate metrics on the provided registerer.
func NewRatesMetrics(reg prometheus.Registerer) *RatesMetrics {
	if reg == nil {
		return &RatesMetrics{}
	}
	fetchSuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "girotrack",
		Name:      "rates_fetch_success_total",
		Help:      "Successful exchange-rate fetches.",
	})
	fetchFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "girotrack",
		Name:      "rates_fetch_failure_total",
		Help:      "Failed exchange-rate fetches.",
	})
	fallbackUsed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "girotrack",
		Name:      "rates_fallback_total",
		Help:      "Conversions served from the static fallback table.",
	})
	reg.MustRegister(fetchSuccess, fetchFailure, fallbackUsed)
	return &RatesMetrics{
		fetchSuccess: fetchSuccess,
		fetchFailure: fetchFailure,
		fallbackUsed: fallbackUsed,
	}
}

// IncFetchSuccess counts one successful refresh.
func (r *RatesMetrics) IncFetchSuccess() {
	if r == nil || r.fetchSuccess == nil {
		return
	}
	r.fetchSuccess.Inc()
}

// IncFetchFailure counts one failed refresh.
func (r *RatesMetrics) IncFetchFailure() {
	if r == nil || r.fetchFailure == nil {
		return
	}
	r.fetchFailure.Inc()
}

// IncFallbackUsed counts one conversion answered from the fallback table.
func (r *RatesMetrics) IncFallbackUsed() {
	if r == nil || r.fallbackUsed == nil {
		return
	}
	r.fallbackUsed.Inc()
}
