package scheduler

import (
	"encoding/json"

	mesos "github.com/mesos/mesos-go/mesosproto"
	"github.com/mesos/mesos-go/scheduler"

	"github.com/att-innovate/torc-controller/pkg/log"
	"github.com/att-innovate/torc-controller/pkg/mesosclient"
	"github.com/att-innovate/torc-controller/pkg/metrics"
	"github.com/att-innovate/torc-controller/pkg/state"
	"github.com/att-innovate/torc-controller/pkg/types"
)

// Scheduler implements scheduler.Scheduler (mesos-go's driver-callback
// interface). Every callback that mutates shared state does so only
// through the state actor client; Scheduler itself holds no mutable
// task/node data.
type Scheduler struct {
	State *state.Client
}

// New constructs a Scheduler bound to a state actor client.
func New(stateClient *state.Client) *Scheduler {
	return &Scheduler{State: stateClient}
}

// Registered handles the subscribe callback: it publishes the driver
// handle to the process-wide slot so the admin kill path can reach it,
// then asks the master to re-send known statuses.
func (s *Scheduler) Registered(driver scheduler.SchedulerDriver, frameworkID *mesos.FrameworkID, masterInfo *mesos.MasterInfo) {
	log.WithComponent("scheduler").Info().Str("framework_id", frameworkID.GetValue()).Msg("registered with cluster master")
	mesosclient.Set(driver)
	driver.ReconcileTasks([]*mesos.TaskStatus{})
}

// Reregistered re-publishes the driver handle; the master may hand out
// a new driver instance across a reconnect.
func (s *Scheduler) Reregistered(driver scheduler.SchedulerDriver, masterInfo *mesos.MasterInfo) {
	log.WithComponent("scheduler").Warn().Msg("reregistered with cluster master")
	mesosclient.Set(driver)
}

func (s *Scheduler) Disconnected(scheduler.SchedulerDriver) {
	log.WithComponent("scheduler").Warn().Msg("disconnected from cluster master")
}

// ResourceOffers is the matcher. All offers in a batch are assumed to
// originate from the same slave.
func (s *Scheduler) ResourceOffers(driver scheduler.SchedulerDriver, offers []*mesos.Offer) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.ResourceOffersDuration)

	logger := log.WithComponent("scheduler")

	requested := s.State.GetRequestedTasks()

	var tasksToStart []*mesos.TaskInfo
	var offersToAccept []*mesos.OfferID
	var offersToDecline []*mesos.OfferID

	depState := func(name string) types.TaskState { return s.State.GetTaskState(name) }

	for _, offer := range offers {
		attrs := ExtractOfferAttributes(offer)

		logger.Debug().
			Str("host", attrs.Host).
			Str("node_name", attrs.NodeName).
			Str("node_type", attrs.NodeType).
			Str("node_function", attrs.NodeFunction).
			Msg("received offer")

		if !s.State.GetIsNodeActive(attrs.NodeName) {
			log.WithNodeName(logger, attrs.NodeName).Info().Msg("node activated")
			s.State.UpdateNode(attrs.NodeName, attrs.NodeType, attrs.NodeFunction, attrs.SlaveID)
		}

		idx, matched := MatchTask(requested, attrs, depState)
		if !matched {
			offersToDecline = append(offersToDecline, offer.Id)
			continue
		}

		task := requested[idx]
		log.WithTaskName(logger, task.Name).Info().Msg("starting task")

		s.State.UpdateTaskState(task.Name, types.Accepted)
		if task.NodeType != "" || task.NodeFunction != "" {
			s.State.UpdateTaskNodeName(task.Name, attrs.NodeName)
		}

		tasksToStart = append(tasksToStart, BuildLaunchDescriptor(task, attrs.SlaveID))
		offersToAccept = append(offersToAccept, offer.Id)
	}

	if len(tasksToStart) > 0 {
		driver.LaunchTasks(offersToAccept, tasksToStart, &mesos.Filters{})
		metrics.SchedulerLaunches.Add(float64(len(tasksToStart)))
	}

	declineOffers(driver, offersToDecline)
}

// declineOffers issues one DeclineOffer call per unmatched offer id —
// the mesos-go driver API declines one offer at a time, unlike the
// batched accept/decline verbs of the v1 HTTP scheduler API. This loop
// is the single decline action taken per offer batch.
func declineOffers(driver scheduler.SchedulerDriver, offerIDs []*mesos.OfferID) {
	if len(offerIDs) == 0 {
		return
	}
	for _, id := range offerIDs {
		driver.DeclineOffer(id, &mesos.Filters{})
	}
	metrics.SchedulerDeclines.Add(float64(len(offerIDs)))
}

// dockerInspect is the subset of one element of `docker inspect`'s JSON
// array that the framework reads from a RUNNING status update's data
// payload; only the array's first element is read.
type dockerInspect struct {
	Id     string `json:"Id"`
	Config struct {
		Hostname string `json:"Hostname"`
	} `json:"Config"`
	NetworkSettings struct {
		Networks map[string]struct {
			IPAddress string `json:"IPAddress"`
		} `json:"Networks"`
	} `json:"NetworkSettings"`
}

// StatusUpdate reacts to a task's lifecycle transition: RUNNING parses
// the inspect JSON payload and records id/ip/slave_id before flipping
// state to Running; KILLED removes the task; FINISHED is a deliberate
// no-op, including for is_job tasks (flagged below, not fixed).
func (s *Scheduler) StatusUpdate(driver scheduler.SchedulerDriver, status *mesos.TaskStatus) {
	taskName := status.GetTaskId().GetValue()
	logger := log.WithTaskName(log.WithComponent("scheduler"), taskName)

	switch status.GetState() {
	case mesos.TaskState_TASK_RUNNING:
		s.handleRunning(taskName, status)
		s.State.UpdateTaskState(taskName, types.Running)
		logger.Info().Msg("task running")

	case mesos.TaskState_TASK_KILLED:
		s.State.RemoveTask(taskName)
		logger.Info().Msg("task killed")

	case mesos.TaskState_TASK_FINISHED:
		// Ignored by design: services are assumed long-running. Jobs
		// (is_job=true) reaching FINISHED is an unresolved open
		// question, left to product review rather than silently fixed.

	default:
	}
}

func (s *Scheduler) handleRunning(taskName string, status *mesos.TaskStatus) {
	var inspects []dockerInspect
	if err := json.Unmarshal(status.GetData(), &inspects); err != nil {
		log.WithTaskName(log.WithComponent("scheduler"), taskName).Warn().Err(err).Msg("malformed inspect payload")
		return
	}
	if len(inspects) == 0 {
		log.WithTaskName(log.WithComponent("scheduler"), taskName).Warn().Msg("empty inspect payload")
		return
	}
	inspect := inspects[0]

	ip := inspect.NetworkSettings.Networks["torc"].IPAddress
	if ip == "" {
		if node, ok := s.State.GetNode(inspect.Config.Hostname); ok {
			ip = node.IP
		}
	}

	s.State.UpdateTaskInfo(taskName, inspect.Id, ip, status.GetSlaveId().GetValue())
}

func (s *Scheduler) OfferRescinded(driver scheduler.SchedulerDriver, offerID *mesos.OfferID) {
	log.WithOfferID(log.WithComponent("scheduler"), offerID.GetValue()).Debug().Msg("offer rescinded")
}

func (s *Scheduler) FrameworkMessage(driver scheduler.SchedulerDriver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, data string) {
	log.WithComponent("scheduler").Debug().Msg("framework message received")
}

func (s *Scheduler) SlaveLost(driver scheduler.SchedulerDriver, slaveID *mesos.SlaveID) {
	log.WithSlaveID(log.WithComponent("scheduler"), slaveID.GetValue()).Warn().Msg("slave lost")
}

func (s *Scheduler) ExecutorLost(driver scheduler.SchedulerDriver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, status int) {
	log.WithComponent("scheduler").Warn().Msg("executor lost")
}

func (s *Scheduler) Error(driver scheduler.SchedulerDriver, message string) {
	log.WithComponent("scheduler").Error().Str("error", message).Msg("scheduler driver error")
}
