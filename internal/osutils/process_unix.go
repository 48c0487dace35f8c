//go:build !windows

package osutils

import (
	"fmt"
	"log"
	"os/exec"
)

// Run launches command in the background through /bin/sh. The shell exits as
// soon as the command is started.
func Run(command string) error {
	if err := checkCommand(command); err != nil {
		return err
	}
	log.Printf("Process: Starting %q", command)
	if err := exec.Command("/bin/sh", "-c", command+" &").Run(); err != nil {
		return fmt.Errorf("failed to start %q: %w", command, err)
	}
	return nil
}
