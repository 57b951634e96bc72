package state

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att-innovate/torc-controller/pkg/types"
)

type fakeRegistry struct {
	mu     sync.Mutex
	pushed []types.Task
}

func (f *fakeRegistry) Push(t types.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, t)
}

func startActor(t *testing.T, registry Registry) (*Client, func()) {
	t.Helper()
	actor := New(registry)
	ctx, cancel := context.WithCancel(context.Background())
	go actor.Run(ctx)
	return actor.Client("10.0.0.1"), cancel
}

func TestStartTaskRoundTrip(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.StartTask(types.Task{Name: "dns-a", Image: "dns:1"})
	assert.Equal(t, types.Requested, client.GetTaskState("dns-a"))

	client.UpdateTaskState("dns-a", types.Accepted)
	client.UpdateTaskState("dns-a", types.Running)
	assert.Equal(t, types.Running, client.GetTaskState("dns-a"))

	client.RemoveTask("dns-a")
	assert.Equal(t, types.NotRunning, client.GetTaskState("dns-a"))
}

func TestGetTaskStateUnknownIsNotRunning(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	assert.Equal(t, types.NotRunning, client.GetTaskState("ghost"))
}

func TestStartTaskOverwritesExisting(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.StartTask(types.Task{Name: "dns-a", Image: "dns:1"})
	client.UpdateTaskState("dns-a", types.Running)
	require.Equal(t, types.Running, client.GetTaskState("dns-a"))

	client.StartTask(types.Task{Name: "dns-a", Image: "dns:2"})
	assert.Equal(t, types.Requested, client.GetTaskState("dns-a"))
}

func TestUpdateTaskInfoEmptyFieldsLeaveUnchanged(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.StartTask(types.Task{Name: "dns-a"})
	client.UpdateTaskInfo("dns-a", "abc123", "10.1.1.1", "slave-1")
	client.UpdateTaskInfo("dns-a", "", "", "")

	assert.Equal(t, "10.1.1.1", client.GetTaskIPByName("dns-a"))
}

func TestGetTaskNameByIDPrefixMatchSkipsEmptyIDs(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.StartTask(types.Task{Name: "no-id"})
	client.StartTask(types.Task{Name: "dns-a"})
	client.UpdateTaskInfo("dns-a", "c0ffee1234", "", "")

	assert.Equal(t, "dns-a", client.GetTaskNameByID("c0ff"))
	assert.Equal(t, "", client.GetTaskNameByID("nonexistent"))
}

func TestUpdateTaskStateRunningPushesRegistryExactlyOnce(t *testing.T) {
	registry := &fakeRegistry{}
	client, stop := startActor(t, registry)
	defer stop()

	client.StartTask(types.Task{Name: "dns-a"})
	client.UpdateTaskState("dns-a", types.Accepted)
	client.UpdateTaskState("dns-a", types.Running)

	registry.mu.Lock()
	defer registry.mu.Unlock()
	require.Len(t, registry.pushed, 1)
	assert.Equal(t, "dns-a", registry.pushed[0].Name)
}

func TestStartTaskSubstitutesMasterIP(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.StartTask(types.Task{Name: "dns-a", Arguments: "--master $MASTER_IP --port 53"})
	// Arguments aren't exposed by a getter; re-derive through GetRequestedTasks.
	tasks := client.GetRequestedTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "--master 10.0.0.1 --port 53", tasks[0].Arguments)
}

func TestStartTaskSubstitutesDNSSL1IP(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.StartTask(types.Task{Name: "dns-sl1"})
	client.UpdateTaskInfo("dns-sl1", "", "10.2.2.2", "")

	client.StartTask(types.Task{Name: "dns-sl2", Arguments: "--upstream $IP_DNS_SL1"})
	tasks := client.GetRequestedTasks()

	var sl2 *types.Task
	for i := range tasks {
		if tasks[i].Name == "dns-sl2" {
			sl2 = &tasks[i]
		}
	}
	require.NotNil(t, sl2)
	assert.Equal(t, "--upstream 10.2.2.2", sl2.Arguments)
}

func TestNodeLifecycle(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.AddNode(types.Node{Name: "node-1", NodeType: "slave"})
	assert.False(t, client.GetIsNodeActive("node-1"))

	client.UpdateNode("node-1", "slave", "dns", "slave-id-1")
	assert.True(t, client.GetIsNodeActive("node-1"))

	node, found := client.GetNode("node-1")
	require.True(t, found)
	assert.Equal(t, "dns", node.NodeFunction)
	assert.Equal(t, "slave-id-1", node.SlaveID)
}

func TestUpdateNodeOnUnknownNodeIsNoop(t *testing.T) {
	client, stop := startActor(t, nil)
	defer stop()

	client.UpdateNode("ghost", "slave", "", "slave-id-9")
	_, found := client.GetNode("ghost")
	assert.False(t, found)
}
