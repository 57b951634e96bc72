/*
Package scheduler implements the offer-matching scheduler core: the
callback contract of an offer-driven, Mesos-style cluster framework.

Unlike a periodic bin-packing scheduler that walks the whole cluster on
a fixed tick, this one is purely reactive — it does nothing until the
cluster master hands it a batch of resource offers. There is no
internal ticker, no background goroutine, and no cached view of
cluster capacity; all scheduling state lives in pkg/state and is read
fresh on every callback.

# Architecture

	┌──────────────────────────────────────────────────────────┐
	│                  mesos-go driver                          │
	│        (Registered / ResourceOffers / StatusUpdate / …)   │
	└───────────────────────────┬────────────────────────────────┘
	                            │ callback
	                            ▼
	┌──────────────────────────────────────────────────────────┐
	│                     Scheduler                              │
	│  ResourceOffers:                                           │
	│    1. snapshot Requested tasks from state.Client            │
	│    2. for each offer: extract attributes, find first match  │
	│    3. match  -> Accepted, build launch descriptor            │
	│    4. no match -> queue for DeclineOffer                    │
	│  StatusUpdate:                                              │
	│    RUNNING  -> parse docker-inspect payload, record ip/id    │
	│    KILLED   -> remove task from table                       │
	│    FINISHED -> ignored (see Design Notes)                    │
	└───────────────────────────┬────────────────────────────────┘
	                            │ request/reply
	                            ▼
	                    pkg/state.Client

Each offer batch is assumed to originate from a single slave — a
property the cluster master's batching already guarantees, not one
this package re-verifies. For every offer in the batch, the matcher
walks the snapshot of currently Requested tasks taken once at the start
of the batch (not re-read per offer) and takes the first task whose
placement constraints (node_name/node_type/node_function), dependency
gate (dependent_service must be Running), and resource fit (cpus/mem)
are satisfied. A match transitions the task to Accepted and builds a
launch descriptor; offers with no match are declined. At most one
LaunchTasks call and one logical batch of DeclineOffer calls are issued
per ResourceOffers invocation.

See core.go for the pure matching/tokenizing functions (MatchTask,
ExtractOfferAttributes, SplitArguments, TokenizeParameters,
ParameterPairs, ApplyNetworkMode), launch.go for container launch
descriptor construction (BuildLaunchDescriptor, buildVolumes),
and scheduler.go for the mesos-go driver callback adapter itself.

# Matching Algorithm

Given a batch of offers and the current Requested-task snapshot:

 1. For each offer, ExtractOfferAttributes pulls host, node name, node
    type/function, slave id, and available cpus/mem out of the
    offer's resource and attribute lists.
 2. MatchTask scans the task snapshot in order and returns the index
    of the first task whose NodeName (if set) equals the offer's node
    name, whose NodeType/NodeFunction (if set) equal the offer's, whose
    DependentService (if set) is Running per the depState callback,
    and whose CPUs/Memory fit within the offer's available resources.
 3. The first satisfying task wins; there is no scoring or
    best-fit search across the remaining snapshot.

This is deliberately simple: a single cluster master is expected to
offer far more capacity than there are simultaneously Requested tasks,
so first-fit rarely leaves a better match on the table, and the
resulting code has no tunable weights to get wrong.

# Usage

	import (
		"github.com/att-innovate/torc-controller/pkg/scheduler"
		"github.com/att-innovate/torc-controller/pkg/state"
	)

	stateClient := actor.Client(masterIP)
	sched := scheduler.New(stateClient)

	driverConfig := mesosscheduler.DriverConfig{
		Scheduler: sched,
		Framework: frameworkInfo,
		Master:    masterAddr,
	}
	driver, err := mesosscheduler.NewMesosSchedulerDriver(driverConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("driver init failed")
	}
	driver.Run()

Scheduler holds no mutable task/node data of its own; every callback
that needs to read or write shared state goes through stateClient, so
Scheduler itself requires no locking and is safe to construct once per
process.

# Design Notes

FINISHED status updates are ignored unconditionally, including for
tasks with IsJob set — a job reaching FINISHED is expected to signal
completion, but that signal is not wired to any table transition here.
This is a known, intentionally preserved gap rather than an oversight;
see the scheduler.go StatusUpdate comment and DESIGN.md for the
tracked decision.

declineOffers issues one DeclineOffer call per unmatched offer id: the
mesos-go classic driver has no batched decline verb, unlike some HTTP
scheduler APIs that accept a decline list in one call.

# See Also

  - pkg/state - the single-writer actor this package reads and mutates through
  - pkg/mesosclient - publishes the driver handle the admin kill path uses
  - pkg/types - Task/Node field definitions referenced throughout matching
*/
package scheduler
