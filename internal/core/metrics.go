package core

import "github.com/prometheus/client_golang/prometheus"

var routerRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "auracore",
		Subsystem: "router",
		Name:      "requests_total",
		Help:      "Routed requests by handling path",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(routerRequestsTotal)
}
