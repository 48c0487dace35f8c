//go:build !windows && !linux

package osutils

import "time"

// Wait sleeps for d.
func Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}
