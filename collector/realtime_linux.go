// Copyright 2017 by Thorsten von Eicken, see LICENSE file

package collector

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// schedRR and schedPriority mirror the FIFO/round-robin scheduling policy
// and mid-range priority used by github.com/tve/devices/thread.Realtime.
const (
	schedRR       = 2
	schedPriority = 10
)

// setRealtime locks the calling goroutine to its own kernel thread and
// raises that thread's scheduling policy to round-robin realtime, so that
// Loop's consumer is not starved by the Go scheduler while draining the
// ring buffer. It is adapted from github.com/tve/devices/thread.Realtime,
// using golang.org/x/sys/unix's wrapped syscall instead of a hand-picked
// SYS_SCHED_SETSCHEDULER number, so it keeps working across the GOARCHes
// the x/sys package supports.
func setRealtime() error {
	runtime.LockOSThread()
	tid := unix.Gettid()
	return unix.SchedSetscheduler(tid, schedRR, &unix.SchedParam{Priority: schedPriority})
}
