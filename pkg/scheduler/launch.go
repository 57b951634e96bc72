package scheduler

import (
	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/mesosproto"
	util "github.com/mesos/mesos-go/mesosutil"

	"github.com/att-innovate/torc-controller/pkg/types"
)

// BuildLaunchDescriptor constructs the TaskInfo sent to the cluster
// master for a matched task. The task id is the task name itself (see
// pkg/types' Task.Name doc comment and pkg/mesosclient's KillByName,
// which builds a TaskID the same way) — there is no generated suffix.
func BuildLaunchDescriptor(task types.Task, slaveID string) *mesos.TaskInfo {
	command := &mesos.CommandInfo{Shell: proto.Bool(false)}
	if args := SplitArguments(task.Arguments); len(args) > 0 {
		command.Arguments = args
	}

	network, parameters := ApplyNetworkMode(task.NetworkType, task.Parameters)

	docker := &mesos.ContainerInfo_DockerInfo{
		Image:      proto.String(task.Image),
		Privileged: proto.Bool(task.Privileged),
	}
	if network != nil {
		docker.Network = network
	}
	if tokens := TokenizeParameters(parameters); len(tokens) > 0 {
		docker.Parameters = ParameterPairs(tokens)
	}

	container := &mesos.ContainerInfo{
		Type:   mesos.ContainerInfo_DOCKER.Enum(),
		Docker: docker,
	}
	if len(task.Volumes) > 0 {
		container.Volumes = buildVolumes(task.Volumes)
	}

	resources := []*mesos.Resource{
		util.NewScalarResource("mem", task.Memory),
		util.NewScalarResource("cpus", task.CPU),
	}

	return &mesos.TaskInfo{
		Name:      proto.String(task.Name),
		TaskId:    &mesos.TaskID{Value: proto.String(task.Name)},
		SlaveId:   &mesos.SlaveID{Value: proto.String(slaveID)},
		Command:   command,
		Container: container,
		Resources: resources,
	}
}

func buildVolumes(volumes []types.Volume) []*mesos.Volume {
	out := make([]*mesos.Volume, 0, len(volumes))
	for _, v := range volumes {
		mode := mesos.Volume_RW
		if v.ReadOnly {
			mode = mesos.Volume_RO
		}
		out = append(out, &mesos.Volume{
			HostPath:      proto.String(v.HostPath),
			ContainerPath: proto.String(v.ContainerPath),
			Mode:          mode.Enum(),
		})
	}
	return out
}
