//go:build windows

package osutils

import (
	"fmt"
	"log"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

// Run launches command through "cmd /C start" in a new process group, so it
// outlives the caller and does not receive its console signals.
func Run(command string) error {
	if err := checkCommand(command); err != nil {
		return err
	}
	cmd := exec.Command("cmd")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       "cmd /C start " + command,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
		HideWindow:    true,
	}
	log.Printf("Process: Starting %q", command)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to start %q: %w", command, err)
	}
	return nil
}

// Wait sleeps the calling thread. It cannot be interrupted.
func Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	windows.SleepEx(uint32(d/time.Millisecond), false)
}
