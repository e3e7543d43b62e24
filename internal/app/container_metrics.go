package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/romain-38530/rdv-planning/internal/metrics"
)

// register tolerates rebuilding the container inside one process (tests
// build it repeatedly against the default registry).
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
	}
	return c
}

func registerCounterVec(c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return c
}

func newRoutingDecisionsCounter() *prometheus.CounterVec {
	return registerCounterVec(metrics.NewRoutingDecisionsTotal())
}

func newSlotClaimConflictsCounter() prometheus.Counter {
	return registerCounter(metrics.NewSlotClaimConflictsTotal())
}

func newRateLimitExceededCounter() prometheus.Counter {
	return registerCounter(metrics.NewRateLimitExceededTotal())
}
