package osutils

import (
	"time"

	"golang.org/x/sys/unix"
)

// Wait sleeps the calling thread with nanosleep, resuming with the remaining
// time when a signal interrupts it.
func Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	ts := unix.NsecToTimespec(d.Nanoseconds())
	for {
		var rem unix.Timespec
		if err := unix.Nanosleep(&ts, &rem); err != unix.EINTR {
			return
		}
		ts = rem
	}
}
