package health

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/att-innovate/torc-controller/pkg/log"
	"github.com/att-innovate/torc-controller/pkg/metrics"
	"github.com/att-innovate/torc-controller/pkg/state"
	"github.com/att-innovate/torc-controller/pkg/types"
)

// Supervisor periodically re-requests any system service whose task
// has fallen out of a live state.
type Supervisor struct {
	State        *state.Client
	PollInterval time.Duration

	// expanded is the one-time SLA expansion snapshot, computed in New.
	expanded []types.Task
}

// New expands systemServices against nodes per each task's declared SLA
// and returns a Supervisor ready to Run. The expansion happens once,
// here, not inside the poll loop — see the package doc comment.
func New(stateClient *state.Client, pollInterval time.Duration, systemServices []types.Task, nodes []types.Node) *Supervisor {
	return &Supervisor{
		State:        stateClient,
		PollInterval: pollInterval,
		expanded:     Expand(systemServices, nodes),
	}
}

// Expand applies each task's SLA against the given node set, producing
// the flat list of concrete tasks the supervisor will poll. It is a
// pure function so the expansion rules can be unit tested directly.
func Expand(systemServices []types.Task, nodes []types.Node) []types.Task {
	var out []types.Task
	for _, task := range systemServices {
		switch task.SLA {
		case types.SLANone:
			out = append(out, task.Clone())

		case types.SLASingletonEachNode:
			for _, node := range nodes {
				out = append(out, singleton(task, node))
			}

		case types.SLASingletonEachSlave:
			for _, node := range nodes {
				if node.NodeType != "slave" {
					continue
				}
				out = append(out, singleton(task, node))
			}
		}
	}
	return out
}

func singleton(task types.Task, node types.Node) types.Task {
	clone := task.Clone()
	clone.NodeName = node.Name
	clone.Name = fmt.Sprintf("%s-%s", task.Name, node.Name)
	return clone
}

// Run sleeps PollInterval, then checks every expanded task's state and
// re-issues StartTask for any that are NotRunning, until ctx is
// cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	logger := log.WithComponent("health")
	logger.Info().Int("task_count", len(s.expanded)).Msg("health supervisor starting")

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("health supervisor stopping")
			return
		case <-ticker.C:
			s.tick(logger)
		}
	}
}

func (s *Supervisor) tick(logger zerolog.Logger) {
	logger.Debug().Msg("checking health")

	for _, task := range s.expanded {
		switch s.State.GetTaskState(task.Name) {
		case types.Running, types.Requested, types.Accepted:
			// left alone
		case types.NotRunning:
			log.WithTaskName(logger, task.Name).Warn().Msg("restarting system service")
			restart := task.Clone()
			restart.IsSystemService = true
			s.State.StartTask(restart)
			metrics.HealthRestartsTotal.Inc()
		}
	}
}
