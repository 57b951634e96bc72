package scheduler

import (
	"strings"

	mesos "github.com/mesos/mesos-go/mesosproto"

	"github.com/att-innovate/torc-controller/pkg/types"
)

// OfferAttributes is the flattened subset of an offer's attribute and
// resource lists the matcher cares about.
type OfferAttributes struct {
	Host         string
	NodeName     string
	NodeType     string
	NodeFunction string
	CPUs         float64
	Mem          float64
	SlaveID      string
}

// ExtractOfferAttributes flattens a single offer. Matching a named
// attribute or resource more than once is last-write-wins; this is fine
// because one slave advertises one attribute identity per offer.
func ExtractOfferAttributes(offer *mesos.Offer) OfferAttributes {
	var attrs OfferAttributes
	attrs.SlaveID = offer.GetSlaveId().GetValue()

	for _, attribute := range offer.GetAttributes() {
		switch attribute.GetName() {
		case "host":
			attrs.Host = attribute.GetText().GetValue()
		case "machine-name":
			attrs.NodeName = attribute.GetText().GetValue()
		case "machine-type":
			attrs.NodeType = attribute.GetText().GetValue()
		case "machine-function":
			attrs.NodeFunction = attribute.GetText().GetValue()
		}
	}

	for _, resource := range offer.GetResources() {
		switch resource.GetName() {
		case "mem":
			attrs.Mem = resource.GetScalar().GetValue()
		case "cpus":
			attrs.CPUs = resource.GetScalar().GetValue()
		}
	}

	return attrs
}

// dependencyState abstracts the state lookup the matcher needs for
// dependent_service gating, so the matcher itself can be unit tested
// without a live state actor.
type dependencyState func(name string) types.TaskState

// MatchTask returns the index of the first task in tasks (in order) that
// satisfies attrs's placement constraints, dependency gate, and resource
// fit. It does NOT remove the match from tasks: the requested-task
// snapshot is loaded once per offer batch and is not mutated as earlier
// offers in the same batch find matches, so the same task may
// legitimately match more than one offer within a batch (it settles on
// the next scheduling tick once its state update to Accepted lands).
func MatchTask(tasks []types.Task, attrs OfferAttributes, depState dependencyState) (int, bool) {
	for i, task := range tasks {
		if task.NodeName != "" && task.NodeName != attrs.NodeName {
			continue
		}
		if task.NodeType != "" && task.NodeType != attrs.NodeType {
			continue
		}
		if task.NodeFunction != "" && task.NodeFunction != attrs.NodeFunction {
			continue
		}
		if task.DependentService != "" && depState(task.DependentService) != types.Running {
			continue
		}
		if attrs.CPUs < task.CPU || attrs.Mem < task.Memory {
			continue
		}
		return i, true
	}
	return 0, false
}

// SplitArguments splits a task's Arguments on ASCII space, dropping
// empty tokens and preserving order.
func SplitArguments(arguments string) []string {
	fields := strings.FieldsFunc(arguments, func(r rune) bool {
		return r == ' '
	})
	return fields
}

// TokenizeParameters splits a task's (possibly network-mode-augmented)
// Parameters string on '-', '=', and ' ', dropping empty tokens. It is
// a precondition of the caller, not validated here, that the resulting
// token count is even; pathological input desynchronizes key/value
// pairing.
func TokenizeParameters(parameters string) []string {
	return strings.FieldsFunc(parameters, func(r rune) bool {
		return r == '-' || r == '=' || r == ' '
	})
}

// ParameterPairs consumes TokenizeParameters' output two at a time into
// key/value pairs.
func ParameterPairs(tokens []string) []mesos.Parameter {
	pairs := make([]mesos.Parameter, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		key := tokens[i]
		value := tokens[i+1]
		pairs = append(pairs, mesos.Parameter{Key: &key, Value: &value})
	}
	return pairs
}

// ApplyNetworkMode resolves a task's declared network_type into either a
// known Docker network enum value, or a pass-through where the literal
// mode is folded into parameters as "--net=<value>". Returns the
// resolved docker network (nil when the mode is Custom) and the
// effective parameters string.
func ApplyNetworkMode(networkType, parameters string) (*mesos.ContainerInfo_DockerInfo_Network, string) {
	mode := types.ParseNetworkMode(networkType)

	switch mode.Known {
	case types.NetworkHost:
		n := mesos.ContainerInfo_DockerInfo_HOST
		return &n, parameters
	case types.NetworkBridge:
		n := mesos.ContainerInfo_DockerInfo_BRIDGE
		return &n, parameters
	case types.NetworkNone:
		n := mesos.ContainerInfo_DockerInfo_NONE
		return &n, parameters
	default:
		augmented := parameters + " --net=" + mode.Custom
		return nil, augmented
	}
}
