package whitelist

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	opAdd    = "add"
	opRemove = "remove"
)

var (
	operationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mygate",
			Subsystem: "whitelist",
			Name:      "operations_total",
			Help:      "Counter of whitelist mutations by category, operation and result.",
		}, []string{"category", "operation", "result"})

	reloadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mygate",
			Subsystem: "whitelist",
			Name:      "reloads_total",
			Help:      "Counter of whitelist reloads by category and result.",
		}, []string{"category", "result"})

	entryGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "mygate",
			Subsystem: "whitelist",
			Name:      "entries",
			Help:      "Number of whitelisted entries by category.",
		}, []string{"category"})
)

func init() {
	prometheus.MustRegister(operationCounter)
	prometheus.MustRegister(reloadCounter)
	prometheus.MustRegister(entryGauge)
}

func recordOperation(category Category, operation string, result Result) {
	operationCounter.WithLabelValues(category.String(), operation, result.String()).Inc()
}

func recordReload(category Category, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	reloadCounter.WithLabelValues(category.String(), result).Inc()
}

func recordSize(category Category, size int) {
	entryGauge.WithLabelValues(category.String()).Set(float64(size))
}
