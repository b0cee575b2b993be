package retrier

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	attemptCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connection_attempts_total",
			Help: "Total connection attempts per target",
		},
		[]string{"target"},
	)

	connectedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "connection_up",
			Help: "Whether an authenticated session to the target is established",
		},
		[]string{"target"},
	)
)

func init() {
	prometheus.MustRegister(attemptCount)
	prometheus.MustRegister(connectedGauge)
}
