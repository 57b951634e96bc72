package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/att-innovate/torc-controller/pkg/log"
	"github.com/att-innovate/torc-controller/pkg/metrics"
	"github.com/att-innovate/torc-controller/pkg/state"
	"github.com/att-innovate/torc-controller/pkg/types"
)

// Client pushes task records to an external controller over HTTP. It
// implements state.Registry, so the state actor can call Push
// synchronously on a task's transition to Running, and it also drives
// its own periodic sync loop over the full running-task set.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New constructs a Client that POSTs to controllerURL/services. A
// bounded per-request timeout keeps a slow or unreachable controller
// from ever blocking the state actor's synchronous Push call for long.
func New(controllerURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		endpoint:   fmt.Sprintf("%s/services", controllerURL),
	}
}

// Push POSTs task's JSON encoding to the controller. Failure is logged
// and swallowed: the next sync tick, or the next transition to Running,
// retries.
func (c *Client) Push(task types.Task) {
	logger := log.WithTaskName(log.WithComponent("registry"), task.Name)

	body, err := json.Marshal(task)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode task for registry push")
		metrics.RegistrySyncFailures.Inc()
		return
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		logger.Error().Err(err).Msg("failed to build registry request")
		metrics.RegistrySyncFailures.Inc()
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("registry push failed")
		metrics.RegistrySyncFailures.Inc()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Warn().Int("status", resp.StatusCode).Msg("registry rejected push")
		metrics.RegistrySyncFailures.Inc()
	}
}

// Syncer periodically fetches the running task set from the state actor
// and pushes each one to the registry, on top of the synchronous push
// the state actor already performs on a Running transition — so a sync
// tick is normally an idempotent refresh; it is the first notice the
// controller gets of a task only when that synchronous push failed.
type Syncer struct {
	State        *state.Client
	Registry     *Client
	PollInterval time.Duration
}

// NewSyncer constructs a Syncer bound to a state client and registry.
func NewSyncer(stateClient *state.Client, registryClient *Client, pollInterval time.Duration) *Syncer {
	return &Syncer{State: stateClient, Registry: registryClient, PollInterval: pollInterval}
}

// Run ticks every PollInterval, pushing every currently running task,
// until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	logger := log.WithComponent("registry")
	logger.Info().Dur("poll_interval", s.PollInterval).Msg("registry sync starting")

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("registry sync stopping")
			return
		case <-ticker.C:
			s.tick(logger)
		}
	}
}

func (s *Syncer) tick(logger zerolog.Logger) {
	tasks := s.State.GetRunningTasks()
	logger.Debug().Int("task_count", len(tasks)).Msg("syncing running tasks")
	for _, task := range tasks {
		s.Registry.Push(task)
	}
}
