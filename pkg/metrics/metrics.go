package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SchedulerLaunches counts tasks included in a launch call, across
	// all ResourceOffers batches.
	SchedulerLaunches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "torc_scheduler_launches_total",
		Help: "Total number of tasks launched via matched offers",
	})

	// SchedulerDeclines counts offers declined for lack of a match.
	SchedulerDeclines = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "torc_scheduler_declines_total",
		Help: "Total number of offers declined",
	})

	// TasksByState is a gauge vec the state actor refreshes after every
	// mutation that can change a task's lifecycle state, keyed by the
	// task's TaskState.String().
	TasksByState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "torc_tasks_by_state",
		Help: "Current number of tasks in each lifecycle state",
	}, []string{"state"})

	// RegistrySyncFailures counts failed pushes to the external
	// registry, whether triggered synchronously on a Running transition
	// or by the periodic sync loop.
	RegistrySyncFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "torc_registry_sync_failures_total",
		Help: "Total number of failed pushes to the external registry",
	})

	// HealthRestartsTotal counts system services the health supervisor
	// found NotRunning and re-issued a StartTask for.
	HealthRestartsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "torc_health_restarts_total",
		Help: "Total number of system services restarted by the health supervisor",
	})

	// ResourceOffersDuration times a single ResourceOffers callback
	// invocation — matching every offer in the batch against the
	// requested-task table, start to finish.
	ResourceOffersDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "torc_resource_offers_duration_seconds",
		Help:    "Time spent matching one ResourceOffers batch against requested tasks",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		SchedulerLaunches,
		SchedulerDeclines,
		TasksByState,
		RegistrySyncFailures,
		HealthRestartsTotal,
		ResourceOffersDuration,
	)
}

// Handler returns the Prometheus scrape handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer times an operation and records its duration to a histogram on
// ObserveDuration.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer running.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time since NewTimer to histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}
