package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionLoadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auracore",
		Subsystem: "session",
		Name:      "loads_total",
		Help:      "Successful model session constructions",
	})

	sessionLoadFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auracore",
		Subsystem: "session",
		Name:      "load_failures_total",
		Help:      "Failed model session constructions",
	})

	generateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auracore",
			Name:      "generate_total",
			Help:      "Generate calls by outcome",
		},
		[]string{"outcome"},
	)

	generateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "auracore",
		Name:      "generate_duration_seconds",
		Help:      "Generate call latency including queueing",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
	})

	affinityPinned = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "auracore",
		Name:      "affinity_pinned",
		Help:      "1 when the inference worker is pinned to its core mask",
	})
)

func init() {
	prometheus.MustRegister(sessionLoadsTotal, sessionLoadFailuresTotal, generateTotal, generateDuration, affinityPinned)
}
