package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MacrosQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macrod_macros_queued_total",
		Help: "Total number of macro start requests placed on the pending queue.",
	})

	MacrosDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macrod_macros_dispatched_total",
		Help: "Total number of macros handed to an execution goroutine.",
	})

	MacrosCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macrod_macros_completed_total",
		Help: "Total number of macro runs that exited, naturally or terminated.",
	})

	MacrosTerminated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macrod_macros_terminated_total",
		Help: "Total number of macro terminate requests received.",
	})

	ActiveMacros = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "macrod_active_macros",
		Help: "Number of macros currently executing.",
	})

	ActionsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macrod_actions_executed_total",
		Help: "Total number of actions executed, labelled by type and status.",
	}, []string{"action_type", "status"})

	MacroRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "macrod_macro_run_duration_seconds",
		Help:    "Wall time of a macro's full run, dispatch to loop exit.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	TriggersReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macrod_triggers_received_total",
		Help: "Total number of trigger events received, labelled by kind.",
	}, []string{"kind"})
)
