package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRoutingDecisionsTotal returns a Prometheus counter vector for RDV routing
// decisions, labelled by target organization type and how it was determined
func NewRoutingDecisionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rdv_routing_decisions_total",
		Help: "Total number of RDV routing decisions",
	}, []string{"target_type", "determined_by"})
}

// NewSlotClaimConflictsTotal returns a Prometheus counter for slot claims lost
// to a concurrent reservation
func NewSlotClaimConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "slot_claim_conflicts_total",
		Help: "Total number of slot claims skipped because the slot was already taken",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
