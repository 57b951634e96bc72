package mesosclient

import (
	"errors"
	"sync"

	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/mesosproto"
	"github.com/mesos/mesos-go/scheduler"
)

var (
	mu     sync.RWMutex
	driver scheduler.SchedulerDriver
)

// Set publishes the driver handle. Called from Scheduler.Registered at
// subscribe time, and again from Scheduler.Reregistered on reconnect.
func Set(d scheduler.SchedulerDriver) {
	mu.Lock()
	defer mu.Unlock()
	driver = d
}

// Get returns the current driver handle, or nil if the framework has
// not yet subscribed.
func Get() scheduler.SchedulerDriver {
	mu.RLock()
	defer mu.RUnlock()
	return driver
}

// ErrNotSubscribed is returned by KillByName before the framework has
// subscribed to the cluster master.
var ErrNotSubscribed = errors.New("mesosclient: driver not set")

// KillByName issues a kill for the task whose id is taskName — the
// task id is the task name itself, so no lookup is required.
func KillByName(taskName string) error {
	d := Get()
	if d == nil {
		return ErrNotSubscribed
	}
	taskID := &mesos.TaskID{Value: proto.String(taskName)}
	_, err := d.KillTask(taskID)
	return err
}
