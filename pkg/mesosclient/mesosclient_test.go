package mesosclient

import (
	"errors"
	"testing"

	mesos "github.com/mesos/mesos-go/mesosproto"
	"github.com/mesos/mesos-go/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	scheduler.SchedulerDriver
	killed  []*mesos.TaskID
	killErr error
}

func (f *fakeDriver) KillTask(taskID *mesos.TaskID) (mesos.Status, error) {
	f.killed = append(f.killed, taskID)
	return mesos.Status_DRIVER_RUNNING, f.killErr
}

func TestKillByNameBeforeSubscribeReturnsErrNotSubscribed(t *testing.T) {
	Set(nil)
	err := KillByName("dns-a")
	assert.ErrorIs(t, err, ErrNotSubscribed)
}

func TestKillByNameBuildsTaskIDFromName(t *testing.T) {
	driver := &fakeDriver{}
	Set(driver)
	defer Set(nil)

	require.NoError(t, KillByName("dns-a"))
	require.Len(t, driver.killed, 1)
	assert.Equal(t, "dns-a", driver.killed[0].GetValue())
}

func TestKillByNamePropagatesDriverError(t *testing.T) {
	driver := &fakeDriver{killErr: errors.New("boom")}
	Set(driver)
	defer Set(nil)

	err := KillByName("dns-a")
	assert.EqualError(t, err, "boom")
}
