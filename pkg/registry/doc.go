/*
Package registry implements the external registry sync loop: a
periodic push of every running task to an external controller, and the
synchronous push the state actor triggers the instant a task reaches
Running. Client satisfies pkg/state's Registry interface so both
triggers share one code path.

# Architecture

	┌──────────────────────────────────────────────────────────┐
	│   state actor: task transitions to Running                │
	│       │                                                     │
	│       ▼ synchronous, in-actor-goroutine call                │
	│   registry.Client.Push(task)  ───────────► external controller │
	│                                                              │
	│   registry.Syncer.Run(ctx)                                   │
	│     ticker every PollInterval:                               │
	│       tasks := state.Client.GetRunningTasks()                │
	│       for each task: registry.Client.Push(task)              │
	└──────────────────────────────────────────────────────────┘

The synchronous push (state actor -> Client.Push on a Running
transition) and the periodic sync (Syncer.Run's ticker) both funnel
through the same Client.Push, so a sync tick is normally an idempotent
refresh of a record the controller has already seen; it is the first
notice of a task only when the synchronous push for it failed.

# Client

Client POSTs a task's JSON encoding to <controllerURL>/services with a
bounded per-request timeout (5s), so a slow or unreachable external
controller can never block the state actor's synchronous Push call
indefinitely — the actor is single-threaded, so a stuck Push would
stall every other operation in the system. A failed push (marshal
error, request-build error, transport error, or >=300 status) is
logged at Warn/Error, counted on metrics.RegistrySyncFailures, and then
swallowed: there is no retry-with-backoff inside Push itself, because
the next sync tick or the next Running transition is itself a retry.

# Syncer

Syncer is the periodic driver: every PollInterval it reads the full
running-task set from pkg/state and calls Push once per task. Syncer
holds no task data of its own between ticks — each tick re-reads the
current set fresh, so a task that stops running between ticks is
simply absent from the next push round rather than requiring explicit
removal logic here.

# Usage

	registryClient := registry.New("http://" + controllerHost)
	syncer := registry.NewSyncer(stateClient, registryClient, 60*time.Second)
	go syncer.Run(ctx)

	// wired into the state actor so Running transitions push immediately:
	actor := state.New(registryClient)

# See Also

  - pkg/state - Registry interface and the synchronous push call site
  - pkg/metrics - RegistrySyncFailures
*/
package registry
