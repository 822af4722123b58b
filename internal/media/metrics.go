package media

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts image side effects. A nil *Metrics records nothing.
type Metrics struct {
	uploads  *prometheus.CounterVec
	cleanups *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_image_uploads_total",
				Help: "Product image uploads by backend and result",
			},
			[]string{"backend", "result"},
		),
		cleanups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_image_cleanups_total",
				Help: "Best-effort product image deletions by target and outcome",
			},
			[]string{"target", "outcome"},
		),
	}
	reg.MustRegister(m.uploads, m.cleanups)
	return m
}

func (m *Metrics) upload(backend string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.uploads.WithLabelValues(backend, result).Inc()
}

func (m *Metrics) cleanup(target string, outcome Outcome) {
	if m == nil {
		return
	}
	m.cleanups.WithLabelValues(target, outcome.String()).Inc()
}
