/*
Package metrics defines the Prometheus instruments the control plane
exposes on /metrics: counters, gauges, and one histogram covering the
observable invariants of the offer-matching, registry-sync, and
health-restart loops.

# Instruments

	torc_scheduler_launches_total          counter   tasks launched via matched offers
	torc_scheduler_declines_total          counter   offers declined for lack of a match
	torc_tasks_by_state{state}             gauge vec current tasks per TaskState
	torc_registry_sync_failures_total      counter   failed pushes to the external registry
	torc_health_restarts_total             counter   system services restarted by health
	torc_resource_offers_duration_seconds  histogram latency of one ResourceOffers batch

All six register themselves in this package's init via
prometheus.MustRegister against the default registry, so importing
pkg/metrics anywhere in the binary is sufficient to make every
instrument scrapeable once pkg/api mounts Handler() — there is no
separate registration step callers must remember to invoke.

# Ownership

Each instrument is updated from exactly one place:

  - SchedulerLaunches / SchedulerDeclines / ResourceOffersDuration -
    pkg/scheduler's ResourceOffers.
  - TasksByState - pkg/state's actor goroutine, recomputed after every
    mutation that can change a task's lifecycle state (the only
    goroutine with an up-to-date view of the task table, so
    recomputing it anywhere else would race).
  - RegistrySyncFailures - pkg/registry's Client.Push.
  - HealthRestartsTotal - pkg/health's Supervisor.tick.

# Timer

Timer is a small stopwatch helper: NewTimer captures the start time,
and ObserveDuration records the elapsed duration (in seconds) to a
caller-supplied histogram. It exists so a call site that wants to time
a block of work doesn't need to repeat time.Now()/time.Since()
arithmetic inline:

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.ResourceOffersDuration)
	// ... work being timed ...

# Usage

	mux.Handle("/metrics", metrics.Handler())

# See Also

  - pkg/scheduler - records ResourceOffersDuration and the launch/decline counters
  - pkg/state - refreshes TasksByState
  - pkg/registry, pkg/health - RegistrySyncFailures, HealthRestartsTotal
*/
package metrics
