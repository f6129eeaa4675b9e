package quantum

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microcirq_gates_applied_total",
		Help: "Gates applied to a state vector, by gate",
	}, []string{"gate"})

	measurementOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microcirq_measurements_total",
		Help: "Single-qubit measurements, by outcome",
	}, []string{"outcome"})

	rejectedCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microcirq_rejected_calls_total",
		Help: "Program calls rejected before touching state, by reason",
	}, []string{"reason"})

	measureDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "microcirq_measure_duration_seconds",
		Help:    "Time to sample and collapse one measure call",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	})
)
