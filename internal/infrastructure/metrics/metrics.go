package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "simulation_preview"

// UnknownNetwork labels previews whose chain id did not resolve to a network.
const UnknownNetwork = "unknown"

// PreviewMetrics holds the collectors recorded while building previews.
type PreviewMetrics struct {
	previews      *prometheus.CounterVec
	rows          *prometheus.CounterVec
	buildDuration prometheus.Histogram
}

// NewPreviewMetrics registers the preview collectors on reg.
// A nil reg leaves the collectors unregistered.
func NewPreviewMetrics(reg prometheus.Registerer) *PreviewMetrics {
	m := &PreviewMetrics{
		previews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "previews_total",
			Help:      "Previews built, by network and outcome.",
		}, []string{"network", "outcome"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_rows_total",
			Help:      "Rendered balance change rows, by token standard and fiat availability.",
		}, []string{"standard", "fiat"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "preview_build_duration_seconds",
			Help:      "Time spent building a preview, valuation included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.previews, m.rows, m.buildDuration)
	}
	return m
}

// ObservePreview records one BuildPreview call. network must come from the
// known network table or be UnknownNetwork, never from raw request input.
func (m *PreviewMetrics) ObservePreview(network, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if network == "" {
		network = UnknownNetwork
	}
	m.previews.WithLabelValues(network, outcome).Inc()
	m.buildDuration.Observe(elapsed.Seconds())
}

// ObserveRow records one rendered row.
func (m *PreviewMetrics) ObserveRow(standard string, fiatAvailable bool) {
	if m == nil {
		return
	}
	fiat := "available"
	if !fiatAvailable {
		fiat = "unavailable"
	}
	m.rows.WithLabelValues(standard, fiat).Inc()
}
