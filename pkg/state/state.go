// Package state implements the single-writer state actor: one goroutine
// owns the task table and the node table, and every other subsystem
// reaches them only through Client's request/reply methods. A single
// actor thread serializing every mutation over a channel replaces the
// double synchronization of a mutex layered on top of a message queue.
package state

import (
	"context"
	"strings"
	"time"

	"github.com/att-innovate/torc-controller/pkg/log"
	"github.com/att-innovate/torc-controller/pkg/metrics"
	"github.com/att-innovate/torc-controller/pkg/types"
)

// Registry is the external-registry push hook invoked synchronously,
// from inside the actor goroutine, whenever a task transitions to
// Running. Implementations must not block indefinitely; pkg/registry's
// implementation enforces its own timeout.
type Registry interface {
	Push(task types.Task)
}

type opKind int

const (
	opPing opKind = iota
	opGetTaskState
	opGetTaskNameByID
	opGetTaskIPByName
	opUpdateTaskState
	opUpdateTaskNodeName
	opUpdateTaskInfo
	opStartTask
	opRemoveTask
	opGetRequestedTasks
	opGetRunningTasks
	opAddNode
	opGetIsNodeActive
	opUpdateNode
	opGetNode
	opGetNodes
)

type request struct {
	kind opKind

	name     string
	idPrefix string

	state types.TaskState

	nodeName     string
	id, ip       string
	slaveID      string
	nodeType     string
	nodeFunction string

	task types.Task
	node types.Node

	reply chan response
}

type response struct {
	ok    bool
	found bool

	taskState types.TaskState
	name      string
	ip        string

	tasks []types.Task
	node  types.Node
	nodes []types.Node
}

// Actor owns the task and node tables. Construct with New, then run it
// on its own goroutine with Run; obtain a Client with its Client method
// to talk to it from any other goroutine.
type Actor struct {
	requests chan request
	registry Registry

	tasks map[string]types.Task
	nodes map[string]types.Node
}

// New constructs an Actor. registry may be nil (registry pushes become
// no-ops), which is useful in tests.
func New(registry Registry) *Actor {
	return &Actor{
		requests: make(chan request, 64),
		registry: registry,
		tasks:    make(map[string]types.Task),
		nodes:    make(map[string]types.Node),
	}
}

// Client returns a handle other goroutines use to talk to the actor.
// masterIP feeds StartTask's $MASTER_IP argument substitution.
func (a *Actor) Client(masterIP string) *Client {
	return NewClient(a.requests, masterIP)
}

// Run processes requests in FIFO order until ctx is cancelled. It is the
// only goroutine that ever touches a.tasks or a.nodes.
func (a *Actor) Run(ctx context.Context) {
	logger := log.WithComponent("state")
	logger.Info().Msg("state actor starting")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("state actor stopping")
			return
		case req := <-a.requests:
			a.handle(req)
		}
	}
}

func (a *Actor) handle(req request) {
	switch req.kind {
	case opPing:
		req.reply <- response{ok: true}

	case opGetTaskState:
		t, ok := a.tasks[req.name]
		if !ok {
			req.reply <- response{taskState: types.NotRunning}
			return
		}
		req.reply <- response{taskState: t.State}

	case opGetTaskNameByID:
		// Iteration order over a Go map is unspecified; ties are
		// resolved by whichever the iterator yields first.
		for _, t := range a.tasks {
			if t.ID == "" {
				continue
			}
			if strings.HasPrefix(t.ID, req.idPrefix) {
				req.reply <- response{name: t.Name}
				return
			}
		}
		req.reply <- response{name: ""}

	case opGetTaskIPByName:
		t, ok := a.tasks[req.name]
		if !ok {
			req.reply <- response{ip: ""}
			return
		}
		req.reply <- response{ip: t.IP}

	case opUpdateTaskState:
		t, ok := a.tasks[req.name]
		if ok {
			t.State = req.state
			t.LastUpdate = now()
			a.tasks[req.name] = t
			if req.state == types.Running && a.registry != nil {
				a.registry.Push(t)
			}
			a.refreshTaskStateMetrics()
		}
		req.reply <- response{ok: true}

	case opUpdateTaskNodeName:
		t, ok := a.tasks[req.name]
		if ok {
			t.NodeName = req.nodeName
			t.LastUpdate = now()
			a.tasks[req.name] = t
		}
		req.reply <- response{ok: true}

	case opUpdateTaskInfo:
		t, ok := a.tasks[req.name]
		if ok {
			if req.id != "" {
				t.ID = req.id
			}
			if req.ip != "" {
				t.IP = req.ip
			}
			if req.slaveID != "" {
				t.SlaveID = req.slaveID
			}
			t.LastUpdate = now()
			a.tasks[req.name] = t
		}
		req.reply <- response{ok: true}

	case opStartTask:
		t := req.task
		t.State = types.Requested
		t.LastUpdate = now()
		a.tasks[t.Name] = t
		a.refreshTaskStateMetrics()
		req.reply <- response{ok: true}

	case opRemoveTask:
		delete(a.tasks, req.name)
		a.refreshTaskStateMetrics()
		req.reply <- response{ok: true}

	case opGetRequestedTasks:
		req.reply <- response{tasks: a.tasksInState(types.Requested)}

	case opGetRunningTasks:
		req.reply <- response{tasks: a.tasksInState(types.Running)}

	case opAddNode:
		// Re-adding a known node refreshes none of its fields: the
		// existing record (IPs included) is kept as it is, so a node
		// whose IPs change keeps its stale ones.
		if _, exists := a.nodes[req.node.Name]; exists {
			req.reply <- response{ok: true}
			return
		}
		n := req.node
		n.Active = false
		a.nodes[n.Name] = n
		req.reply <- response{ok: true}

	case opGetIsNodeActive:
		n, ok := a.nodes[req.nodeName]
		req.reply <- response{ok: ok && n.Active}

	case opUpdateNode:
		n, ok := a.nodes[req.nodeName]
		if !ok {
			// No-op for an unknown node; a node record is expected to
			// have been seeded from config first. Client.UpdateNode
			// discards the ok=false reply.
			req.reply <- response{ok: false}
			return
		}
		n.NodeType = req.nodeType
		n.NodeFunction = req.nodeFunction
		n.SlaveID = req.slaveID
		n.Active = true
		a.nodes[req.nodeName] = n
		req.reply <- response{ok: true}

	case opGetNode:
		n, ok := a.nodes[req.nodeName]
		req.reply <- response{node: n, found: ok}

	case opGetNodes:
		nodes := make([]types.Node, 0, len(a.nodes))
		for _, n := range a.nodes {
			nodes = append(nodes, n)
		}
		req.reply <- response{nodes: nodes}
	}
}

// refreshTaskStateMetrics recomputes the torc_tasks_by_state gauge vec
// from the current table contents. Called after every op that can add,
// remove, or change a task's State field.
func (a *Actor) refreshTaskStateMetrics() {
	counts := map[types.TaskState]int{
		types.NotRunning: 0,
		types.Requested:  0,
		types.Accepted:   0,
		types.Running:    0,
	}
	for _, t := range a.tasks {
		counts[t.State]++
	}
	for state, count := range counts {
		metrics.TasksByState.WithLabelValues(state.String()).Set(float64(count))
	}
}

func (a *Actor) tasksInState(state types.TaskState) []types.Task {
	var out []types.Task
	for _, t := range a.tasks {
		if t.State == state {
			out = append(out, t)
		}
	}
	return out
}

// now is a var so tests can freeze it; production uses wall-clock time.
var now = time.Now
