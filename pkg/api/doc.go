/*
Package api exposes the framework's read-mostly HTTP admin surface
over the state actor's client: node/service introspection, task lookup
by container-id prefix, kill-by-name, and service-group start.

# Routes

	GET  /admin/ping              liveness check, returns "pong"
	GET  /nodes                   active nodes (offer-advertised, not just configured)
	GET  /services/metered        running tasks with IsMetered set
	GET  /services/running        running tasks with IsJob unset
	GET  /service?id=<prefix>      task name lookup by container-id prefix
	DELETE /service?name=<name>    kill a task by name
	GET  /start/group?name=<name>  start every task in a named service group
	GET  /metrics                 Prometheus scrape endpoint (pkg/metrics.Handler)

Routing is a plain http.ServeMux with hand-rolled dispatch by path and
method rather than a web framework — there are too few routes here to
justify one.

# Architecture

Server holds no state of its own beyond its two collaborators:

	┌────────────────────────────────────────────────────────┐
	│                      Server                              │
	│   State  *state.Client        (task/node reads + writes)  │
	│   Groups ServiceGroupLister   (named service-group lookup) │
	└───────────────────────┬──────────────────────────────────┘
	                        │
	           ┌────────────┴─────────────┐
	           ▼                           ▼
	   pkg/state.Client           pkg/config.Config
	   (via the actor)            (via ServiceGroupLister)

ServiceGroupLister exists purely to avoid an import of pkg/config from
pkg/api: *config.Config already satisfies the one-method interface,
so Server depends on the narrow capability it needs rather than the
whole config package.

# Usage

	server := api.New(stateClient, cfg)
	if err := server.ListenAndServe("0.0.0.0:3005"); err != nil {
		log.Fatal().Err(err).Msg("admin surface stopped")
	}

ListenAndServe sets conservative timeouts (5s read, 10s write, 60s
idle) appropriate for a small, trusted-network admin surface rather
than a public-facing API.

# Error Handling

Every mutating handler (kill-by-name, start-group) treats a malformed
request or an unknown target as a condition to log and swallow, not
surface as a distinct HTTP status: the response body is always the
same {"result":"done"} marker. This mirrors the framework's broader
preference for "log and continue" over "fail the request" in admin
paths that have no caller depending on a specific error code.

# See Also

  - pkg/state - the client every handler reads/writes through
  - pkg/mesosclient - KillByName, used by the DELETE /service handler
  - pkg/metrics - the /metrics handler this package mounts
*/
package api
