/*
Package mesosclient holds the process-wide scheduler-driver handle: a
slot set once by pkg/scheduler at subscribe time and read thereafter by
the admin surface's kill-by-name path, which has no other way to reach
the driver.

# Why a Package-Level Slot

The mesos-go classic driver is handed to the scheduler's callbacks as
an argument (driver scheduler.SchedulerDriver on every Scheduler
method), not stored anywhere the rest of the process can reach. The
admin surface's DELETE /service handler needs to call KillTask outside
any callback, so something has to bridge the two — a mutex-guarded
package variable set from Scheduler.Registered the moment the
framework subscribes, and set again from Scheduler.Reregistered.

	Set(d)              called from Scheduler.Registered and Reregistered
	Get() -> driver      read by KillByName (and tests)
	KillByName(name)     Get() + driver.KillTask, or ErrNotSubscribed

Before the framework has subscribed, Get returns nil and KillByName
reports ErrNotSubscribed rather than panicking on a nil driver. A
disconnect does not clear the slot: Get keeps returning the last
driver set.

Because task Name doubles as the mesos task id (see pkg/types), killing
by name requires no lookup through pkg/state: KillByName wraps the name
directly in a *mesos.TaskID and issues the kill.

# Usage

	// from pkg/scheduler, at subscribe time:
	mesosclient.Set(driver)

	// from pkg/api, on a kill request:
	if err := mesosclient.KillByName(name); err != nil {
		logger.Warn().Err(err).Msg("kill request failed")
	}

# See Also

  - pkg/scheduler - the sole caller of Set
  - pkg/api - the sole caller of KillByName
*/
package mesosclient
