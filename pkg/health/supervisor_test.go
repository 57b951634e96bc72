package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/att-innovate/torc-controller/pkg/types"
)

func TestExpandSLANoneUnchanged(t *testing.T) {
	tasks := []types.Task{{Name: "dns-a", SLA: types.SLANone}}
	nodes := []types.Node{{Name: "n1"}, {Name: "n2"}}

	expanded := Expand(tasks, nodes)
	assert.Len(t, expanded, 1)
	assert.Equal(t, "dns-a", expanded[0].Name)
}

func TestExpandSingletonEachNode(t *testing.T) {
	tasks := []types.Task{{Name: "coredns", SLA: types.SLASingletonEachNode}}
	nodes := []types.Node{{Name: "n1", NodeType: "master"}, {Name: "n2", NodeType: "slave"}}

	expanded := Expand(tasks, nodes)
	assert.Len(t, expanded, 2)

	names := []string{expanded[0].Name, expanded[1].Name}
	assert.ElementsMatch(t, []string{"coredns-n1", "coredns-n2"}, names)
}

func TestExpandSingletonEachSlaveOnlySlaveNodes(t *testing.T) {
	tasks := []types.Task{{Name: "coredns", SLA: types.SLASingletonEachSlave}}
	nodes := []types.Node{{Name: "n1", NodeType: "master"}, {Name: "n2", NodeType: "slave"}}

	expanded := Expand(tasks, nodes)
	assert.Len(t, expanded, 1)
	assert.Equal(t, "coredns-n2", expanded[0].Name)
	assert.Equal(t, "n2", expanded[0].NodeName)
}

func TestExpandSingletonEachSlaveZeroSlaveNodesExpandsToZero(t *testing.T) {
	tasks := []types.Task{{Name: "coredns", SLA: types.SLASingletonEachSlave}}
	nodes := []types.Node{{Name: "n1", NodeType: "master"}}

	expanded := Expand(tasks, nodes)
	assert.Empty(t, expanded)
}
