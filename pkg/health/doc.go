/*
Package health implements the health supervisor: a periodic control
loop that re-requests any declared system service whose task is not
currently live.

# Architecture

	┌──────────────────────────────────────────────────────────┐
	│  New(stateClient, interval, systemServices, nodes)         │
	│    Expand(systemServices, nodes) -> []types.Task (once)    │
	└───────────────────────────┬────────────────────────────────┘
	                            │
	                            ▼
	┌──────────────────────────────────────────────────────────┐
	│  Run(ctx)                                                  │
	│    loop:                                                    │
	│      sleep PollInterval                                     │
	│      for each expanded task:                                 │
	│        state.GetTaskState(name)                              │
	│          Running/Requested/Accepted -> left alone             │
	│          NotRunning -> StartTask(clone), HealthRestartsTotal++ │
	└──────────────────────────────────────────────────────────┘

At construction, the declared system-service list is expanded against
the then-current node set according to each task's SLA:

  - SLANone: one task, unchanged.
  - SLASingletonEachNode: one clone per node, name suffixed "-<node_name>".
  - SLASingletonEachSlave: the same, but only over nodes whose
    NodeType == "slave".

Expand is a pure function of its arguments and carries no reference to
the rest of the Supervisor, so SLA-expansion rules are unit-testable in
isolation from the polling loop.

# Startup Snapshot Limitation

This expansion is a one-time snapshot, taken in New before Run's loop
starts — nodes added to the cluster after the supervisor starts do not
receive singleton system-service tasks until the process restarts. This
is an acknowledged, deliberately preserved limitation: the cost of
recomputing the expansion on every tick (or reacting to node-set
changes) was judged not worth the added coordination with pkg/state for
a control loop whose node set rarely changes mid-process. Restarting
the controller process after adding nodes picks up new singleton
targets.

# Usage

	import "github.com/att-innovate/torc-controller/pkg/health"

	supervisor := health.New(stateClient, 30*time.Second, cfg.SystemServiceTasks(), cfg.Nodes())
	go supervisor.Run(ctx)

PollInterval has no built-in floor; Run passes it to time.NewTicker,
which panics on a zero or negative interval. cmd/torc-controller
substitutes a 30s default when the document's
healthcheck.poll_interval_in_seconds is missing or not positive.

# Observability

Every restart decision increments metrics.HealthRestartsTotal and logs
at Warn via a task-scoped logger (log.WithTaskName), so a supervisor
that is repeatedly restarting the same task is visible both on
/metrics and in the structured log stream without additional
instrumentation.

# See Also

  - pkg/state - GetTaskState and StartTask, the two calls this loop makes
  - pkg/config - produces the systemServices/nodes this package expands
  - pkg/metrics - HealthRestartsTotal
*/
package health
