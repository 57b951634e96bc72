/*
Package log provides structured logging for the framework, built on
zerolog.

# Architecture

A single package-level Logger is configured once, at process startup,
by Init. Every subsystem then derives a child logger tagged with its
own name via WithComponent:

	log.WithComponent("state")
	log.WithComponent("scheduler")
	log.WithComponent("health")
	log.WithComponent("registry")
	log.WithComponent("api")

and logs structured fields through the zerolog chained API rather than
formatted strings — "task_name", "node_name", "offer_id", and
"slave_id" are the recurring field names across the codebase, matching
the identifiers pkg/types.Task and pkg/types.Node carry.

# Deriving Request-Scoped Loggers

WithTaskName, WithNodeName, WithOfferID, and WithSlaveID each take a
base logger (normally one already tagged by WithComponent) and return a
further-derived logger carrying one extra structured field:

	logger := log.WithTaskName(log.WithComponent("scheduler"), taskName)
	logger.Info().Msg("task running")
	logger.Warn().Err(err).Msg("malformed inspect payload")

Composing this way — deriving from whatever logger the caller already
has, rather than from the bare global — means a logger can accumulate
more than one field before anything is ever printed, and a caller that
logs several lines about the same task builds the tagged logger once
rather than repeating the same .Str(...) call on every line.

# Configuration

Init switches between a JSON writer (for production, machine-parsed
log aggregation) and a zerolog.ConsoleWriter (for local development,
human-readable with ANSI coloring) based on Config.JSONOutput, and sets
the global zerolog level from Config.Level (one of DebugLevel,
InfoLevel, WarnLevel, ErrorLevel; anything else falls back to
InfoLevel). Config.Output defaults to os.Stdout when nil, which is what
every cmd/ entrypoint relies on in production; tests that want to
assert on log output instead pass a bytes.Buffer.

# See Also

  - pkg/scheduler, pkg/state, pkg/health, pkg/registry, pkg/api - the
    five components that tag their loggers via WithComponent
*/
package log
