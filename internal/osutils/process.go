// Package osutils launches external commands and pauses the calling thread
// for input scripts, plus a few platform helpers for the server.
package osutils

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyCommand = errors.New("empty command")

// System runs commands and waits on behalf of an action runner.
type System struct{}

// Run starts command in the background and returns once it is launched.
func (System) Run(command string) error {
	return Run(command)
}

// Wait blocks for d.
func (System) Wait(d time.Duration) {
	Wait(d)
}

func checkCommand(command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}
	return nil
}
