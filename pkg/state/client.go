package state

import (
	"strings"

	"github.com/att-innovate/torc-controller/pkg/types"
)

// Client is a handle to a running Actor. Every method sends one request
// on the actor's inbox and blocks for exactly one reply. Each call
// allocates its own reply channel, so concurrent calls never share one
// and a single Client may be used from several goroutines.
type Client struct {
	requests chan request

	// MasterIP and DNSSL1Name are the substitution parameters consumed
	// by StartTask's argument rewrite. MasterIP is set once at
	// construction (see pkg/state.NewClient); DNSSL1Name defaults to the
	// literal name the rewrite looks up.
	MasterIP   string
	DNSSL1Name string
}

// NewClient wraps requests with the substitution parameters StartTask
// needs. masterIP is the cluster master's address as given on the
// command line.
func NewClient(requests chan request, masterIP string) *Client {
	return &Client{requests: requests, MasterIP: masterIP, DNSSL1Name: "dns-sl1"}
}

func (c *Client) call(req request) response {
	req.reply = make(chan response, 1)
	c.requests <- req
	return <-req.reply
}

func (c *Client) Ping() {
	c.call(request{kind: opPing})
}

func (c *Client) GetTaskState(name string) types.TaskState {
	return c.call(request{kind: opGetTaskState, name: name}).taskState
}

// GetTaskNameByID returns the name of the first task (in unspecified
// iteration order) whose id has idPrefix, skipping tasks with no id yet.
func (c *Client) GetTaskNameByID(idPrefix string) string {
	return c.call(request{kind: opGetTaskNameByID, idPrefix: idPrefix}).name
}

func (c *Client) GetTaskIPByName(name string) string {
	return c.call(request{kind: opGetTaskIPByName, name: name}).ip
}

func (c *Client) UpdateTaskState(name string, state types.TaskState) {
	c.call(request{kind: opUpdateTaskState, name: name, state: state})
}

func (c *Client) UpdateTaskNodeName(name, nodeName string) {
	c.call(request{kind: opUpdateTaskNodeName, name: name, nodeName: nodeName})
}

// UpdateTaskInfo sets id/ip/slaveID on a task; an empty string leaves
// the corresponding field unchanged.
func (c *Client) UpdateTaskInfo(name, id, ip, slaveID string) {
	c.call(request{kind: opUpdateTaskInfo, name: name, id: id, ip: ip, slaveID: slaveID})
}

// StartTask rewrites the task's Arguments — replacing $MASTER_IP with
// the cluster master's address and $IP_DNS_SL1 with the stored IP of
// the dns-sl1 task — in the caller's goroutine, then inserts the task
// into the table in state Requested. Substitution happens here, not
// inside the actor's dispatch loop, because GetTaskIPByName re-enters
// the actor; this is safe because the actor's inbox is FIFO and this
// call owns its own reply channel.
func (c *Client) StartTask(task types.Task) {
	task.Arguments = c.resolveArguments(task.Arguments)
	c.call(request{kind: opStartTask, task: task})
}

func (c *Client) resolveArguments(arguments string) string {
	if arguments == "" {
		return arguments
	}
	if strings.Contains(arguments, "$MASTER_IP") {
		arguments = strings.ReplaceAll(arguments, "$MASTER_IP", c.MasterIP)
	}
	if strings.Contains(arguments, "$IP_DNS_SL1") {
		arguments = strings.ReplaceAll(arguments, "$IP_DNS_SL1", c.GetTaskIPByName(c.DNSSL1Name))
	}
	return arguments
}

func (c *Client) RemoveTask(name string) {
	c.call(request{kind: opRemoveTask, name: name})
}

func (c *Client) GetRequestedTasks() []types.Task {
	return c.call(request{kind: opGetRequestedTasks}).tasks
}

func (c *Client) GetRunningTasks() []types.Task {
	return c.call(request{kind: opGetRunningTasks}).tasks
}

func (c *Client) AddNode(node types.Node) {
	c.call(request{kind: opAddNode, node: node})
}

func (c *Client) GetIsNodeActive(name string) bool {
	return c.call(request{kind: opGetIsNodeActive, nodeName: name}).ok
}

func (c *Client) UpdateNode(name, nodeType, nodeFunction, slaveID string) {
	c.call(request{kind: opUpdateNode, nodeName: name, nodeType: nodeType, nodeFunction: nodeFunction, slaveID: slaveID})
}

// GetNode returns the node and whether it exists.
func (c *Client) GetNode(name string) (types.Node, bool) {
	resp := c.call(request{kind: opGetNode, nodeName: name})
	return resp.node, resp.found
}

func (c *Client) GetNodes() []types.Node {
	return c.call(request{kind: opGetNodes}).nodes
}
