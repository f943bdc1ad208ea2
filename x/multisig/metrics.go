package multisig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proposalEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "multisig",
		Name:      "proposal_events_total",
		Help:      "Number of delivered proposal state changes by kind.",
	}, []string{"event"})

	membershipChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "multisig",
		Name:      "membership_changes_total",
		Help:      "Number of delivered group changes by kind.",
	}, []string{"change"})
)

const (
	changeOwners    = "owners"
	changeThreshold = "threshold"
)

const (
	eventProposed  = "proposed"
	eventApproved  = "approved"
	eventExecuted  = "executed"
	eventCancelled = "cancelled"
)
