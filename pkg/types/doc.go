/*
Package types defines the data model shared by the state actor, the
scheduler, the health supervisor, the registry client, and the admin
surface. Those packages, and pkg/config, import types; types
imports nothing from the rest of the module, keeping it the dependency
sink rather than a dependency of anything domain-specific.

# Core Types

Task is the unit of work and identity, keyed by Name — Name doubles as
the task id handed to the cluster master, so task names must be
globally unique across the cluster, not just within one service group.
Node is a worker machine advertised by the cluster master, keyed by
Name.

TaskState, SLA, and NetworkMode are small tagged variants standing in
for fields a looser configuration format would otherwise carry as
plain strings:

  - TaskState: NotRunning, Requested, Accepted, Running — monotonic
    within one launch attempt. A task "dies" by being removed from the
    state actor's table, not by transitioning to a fourth state.
  - SLA: None, SingletonEachNode, SingletonEachSlave — consumed by
    pkg/health's Expand to turn one declared system service into N
    concrete per-node tasks.
  - NetworkMode: one of the three container network modes the launch
    descriptor builder maps directly onto a runtime enum value (host,
    bridge, none), or a Custom string the scheduler instead folds into
    the container's parameters as --net=<value>.

# Parsing Helpers

ParseSLA and ParseNetworkMode classify the raw strings read off the
configuration document; both default safely on unrecognized input
(SLANone, NetworkCustom respectively) rather than returning an error,
since an unrecognized sla or network_type value in the document is
expected to surface as unexpected scheduling behavior rather than an
immediate startup failure. pkg/config calls ParseSLA while reading the
document; pkg/scheduler calls ParseNetworkMode when it builds a launch.

# Task Fields at a Glance

	Name, Image              identity + what to run
	NodeName/NodeType/
	NodeFunction             placement constraints (pkg/scheduler.MatchTask)
	DependentService         dependency gate: must be Running to match
	Arguments, Parameters    raw strings; pkg/scheduler/core.go tokenizes these
	Memory, CPU              resource requirements matched against offers
	Volumes                  host bind mounts
	Privileged, IsMetered,
	IsSystemService, IsJob   behavioral flags consumed in different packages
	SLA, NetworkType         see Core Types above
	IP, SlaveID, ID, State,
	LastUpdate               runtime fields the state actor owns and mutates

# Mutability and Copies

Task and Node are plain structs with no synchronization of their own;
pkg/state is the only package that mutates the canonical copies, and it
does so from a single actor goroutine (see that package's docs for why).
Every accessor on pkg/state.Client returns a copy, so callers elsewhere
can read and pass around Task/Node values freely without taking a lock
or risking a data race with the actor.

Task.Clone copies the Volumes slice so a cloned task never aliases the
original task's slice; pkg/health's per-node singleton expansion and
pkg/config's instance expansion both build their tasks from clones.

# See Also

  - pkg/state - owns and mutates the canonical Task/Node tables
  - pkg/scheduler - reads Task fields to match offers and build launches
  - pkg/health - expands SLA-bearing Task values across the Node set
  - pkg/config - produces the initial Task/Node values from YAML
*/
package types
