package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	mesos "github.com/mesos/mesos-go/mesosproto"

	"github.com/att-innovate/torc-controller/pkg/types"
)

func alwaysRunning(string) types.TaskState { return types.Running }
func alwaysNotRunning(string) types.TaskState { return types.NotRunning }

func TestMatchTaskExactResourceFit(t *testing.T) {
	tasks := []types.Task{{Name: "dns-a", CPU: 0.1, Memory: 64}}
	attrs := OfferAttributes{CPUs: 0.1, Mem: 64}

	idx, ok := MatchTask(tasks, attrs, alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatchTaskInsufficientResourcesSkipped(t *testing.T) {
	tasks := []types.Task{{Name: "dns-a", CPU: 1, Memory: 1024}}
	attrs := OfferAttributes{CPUs: 0.5, Mem: 512}

	_, ok := MatchTask(tasks, attrs, alwaysRunning)
	assert.False(t, ok)
}

func TestMatchTaskNoConstraintsMatchesAnyOffer(t *testing.T) {
	tasks := []types.Task{{Name: "dns-a", CPU: 0.1, Memory: 64}}
	attrs := OfferAttributes{NodeName: "n1", NodeType: "slave", NodeFunction: "dns", CPUs: 4, Mem: 4096}

	idx, ok := MatchTask(tasks, attrs, alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatchTaskNodeTypeMismatch(t *testing.T) {
	tasks := []types.Task{{Name: "dns-a", NodeType: "slave", CPU: 0.1, Memory: 64}}
	attrs := OfferAttributes{NodeType: "master", CPUs: 4, Mem: 4096}

	_, ok := MatchTask(tasks, attrs, alwaysRunning)
	assert.False(t, ok)
}

func TestMatchTaskDependencyNotRunningDeclines(t *testing.T) {
	tasks := []types.Task{{Name: "dns-sl2", DependentService: "dns-sl1", CPU: 0.1, Memory: 64}}
	attrs := OfferAttributes{CPUs: 4, Mem: 4096}

	_, ok := MatchTask(tasks, attrs, alwaysNotRunning)
	assert.False(t, ok)

	idx, ok := MatchTask(tasks, attrs, alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatchTaskFirstFitStopsAtFirstMatch(t *testing.T) {
	tasks := []types.Task{
		{Name: "dns-a", NodeType: "master", CPU: 0.1, Memory: 64},
		{Name: "dns-b", CPU: 0.1, Memory: 64},
		{Name: "dns-c", CPU: 0.1, Memory: 64},
	}
	attrs := OfferAttributes{NodeType: "slave", CPUs: 4, Mem: 4096}

	idx, ok := MatchTask(tasks, attrs, alwaysRunning)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestExtractOfferAttributesLastWriteWins(t *testing.T) {
	text := func(v string) *mesos.Value_Text { return &mesos.Value_Text{Value: &v} }
	name := func(v string) *string { return &v }

	offer := &mesos.Offer{
		SlaveId: &mesos.SlaveID{Value: name("slave-1")},
		Attributes: []*mesos.Attribute{
			{Name: name("machine-name"), Text: text("n1")},
			{Name: name("machine-name"), Text: text("n2")},
		},
		Resources: []*mesos.Resource{
			{Name: name("cpus"), Scalar: &mesos.Value_Scalar{Value: floatPtr(2)}},
			{Name: name("mem"), Scalar: &mesos.Value_Scalar{Value: floatPtr(2048)}},
		},
	}

	attrs := ExtractOfferAttributes(offer)
	assert.Equal(t, "n2", attrs.NodeName)
	assert.Equal(t, 2.0, attrs.CPUs)
	assert.Equal(t, 2048.0, attrs.Mem)
	assert.Equal(t, "slave-1", attrs.SlaveID)
}

func floatPtr(f float64) *float64 { return &f }

func TestSplitArgumentsDropsEmptyTokens(t *testing.T) {
	assert.Equal(t, []string{"--master", "10.0.0.1", "--port", "53"},
		SplitArguments("--master  10.0.0.1   --port 53"))
	assert.Empty(t, SplitArguments(""))
}

func TestTokenizeParametersSplitsOnDashEqualsSpace(t *testing.T) {
	tokens := TokenizeParameters("--net=custom --privileged=true")
	assert.Equal(t, []string{"net", "custom", "privileged", "true"}, tokens)
}

func TestParameterPairsConsumesEvenTokenCount(t *testing.T) {
	pairs := ParameterPairs([]string{"net", "custom", "privileged", "true"})
	assert.Len(t, pairs, 2)
	assert.Equal(t, "net", pairs[0].GetKey())
	assert.Equal(t, "custom", pairs[0].GetValue())
}

func TestApplyNetworkModeKnownModes(t *testing.T) {
	host, params := ApplyNetworkMode("host", "")
	assert.Equal(t, mesos.ContainerInfo_DockerInfo_HOST, *host)
	assert.Equal(t, "", params)

	bridge, _ := ApplyNetworkMode("bridge", "")
	assert.Equal(t, mesos.ContainerInfo_DockerInfo_BRIDGE, *bridge)

	none, _ := ApplyNetworkMode("none", "")
	assert.Equal(t, mesos.ContainerInfo_DockerInfo_NONE, *none)
}

func TestApplyNetworkModeCustomAppendsNetParameter(t *testing.T) {
	network, params := ApplyNetworkMode("custom-overlay", "--privileged=true")
	assert.Nil(t, network)
	assert.Equal(t, "--privileged=true --net=custom-overlay", params)
}
