package operation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finledger",
			Name:      "operations_posted_total",
			Help:      "Operations posted to an account, by type and result",
		},
		[]string{"type", "result"},
	)
	operationsCancelled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finledger",
			Name:      "operations_cancelled_total",
			Help:      "Operations cancelled by a compensating reversal, by result",
		},
		[]string{"result"},
	)
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
