package probe

import (
	"github.com/prometheus/client_golang/prometheus"
)

var attemptCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "readiness_probe_attempts_total",
		Help: "Total reachability attempts per endpoint",
	},
	[]string{"endpoint"},
)

func init() {
	prometheus.MustRegister(attemptCount)
}
