//go:build !windows

package osutils

import (
	"log"
	"os"
)

// IsAdmin reports whether the process runs as root.
func IsAdmin() bool {
	return os.Geteuid() == 0
}

// EnsureFirewallRule is only implemented on Windows
func EnsureFirewallRule(port int) error {
	log.Println("Firewall: Automatic rule management is only supported on Windows")
	return nil
}

// WarnIfNotElevated is a no-op: X servers accept XTEST input from any client.
func WarnIfNotElevated() {}
