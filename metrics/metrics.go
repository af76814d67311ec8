package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AlertsFired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sensordemos",
		Subsystem: "proximity",
		Name:      "alerts_fired_total",
		Help:      "Proximity alerts raised",
	})

	Arrivals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sensordemos",
		Subsystem: "tilt",
		Name:      "arrivals_total",
		Help:      "Tilt games finished by reaching the target",
	})

	// outcome is "committed" or "skipped"
	GesturesEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sensordemos",
		Subsystem: "gesture",
		Name:      "pinch_ended_total",
		Help:      "Pinch gestures ended, by outcome",
	}, []string{"outcome"})

	SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sensordemos",
		Subsystem: "source",
		Name:      "errors_total",
		Help:      "Input source failures reported to sessions",
	}, []string{"source"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sensordemos",
		Subsystem: "session",
		Name:      "active",
		Help:      "Sessions currently running",
	})
)

// Handler serves the default registry for a /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
