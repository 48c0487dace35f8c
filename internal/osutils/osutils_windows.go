//go:build windows

package osutils

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// IsAdmin reports whether the process token is in the Administrators group
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}

	return member
}

// EnsureFirewallRule makes sure inbound TCP connections reach the remote
// control server on port. It asks for elevation when the process is not
// running as administrator.
func EnsureFirewallRule(port int) error {
	ruleName := "FakeInput Remote Control"

	log.Printf("Firewall: Checking rule '%s' for port %d", ruleName, port)

	out, err := exec.Command("netsh", "advfirewall", "firewall", "show", "rule", "name="+ruleName).CombinedOutput()
	if err == nil && strings.Contains(string(out), ruleName) {
		if strings.Contains(string(out), fmt.Sprintf("%d", port)) && strings.Contains(string(out), "Allow") {
			log.Printf("Firewall: Rule '%s' already allows port %d", ruleName, port)
			return nil
		}
		log.Printf("Firewall: Rule '%s' does not match port %d, replacing it", ruleName, port)
	} else {
		log.Printf("Firewall: Rule '%s' not found, creating it", ruleName)
	}

	psCommand := fmt.Sprintf(
		"Remove-NetFirewallRule -DisplayName '%s' -ErrorAction SilentlyContinue; New-NetFirewallRule -DisplayName '%s' -Direction Inbound -LocalPort %d -Protocol TCP -Action Allow -Profile Any",
		ruleName, ruleName, port,
	)

	if IsAdmin() {
		cmd := exec.Command("powershell", "-NoProfile", "-Command", psCommand)
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to create firewall rule: %w (Output: %s)", err, string(output))
		}
		log.Printf("Firewall: Allowed port %d", port)
		return nil
	}

	log.Println("Firewall: Not elevated, requesting UAC elevation")
	verbPtr, _ := syscall.UTF16PtrFromString("runas")
	exePtr, _ := syscall.UTF16PtrFromString("powershell.exe")
	argPtr, _ := syscall.UTF16PtrFromString(fmt.Sprintf("-NoProfile -WindowStyle Hidden -Command \"%s\"", psCommand))

	// SW_HIDE
	if err := windows.ShellExecute(0, verbPtr, exePtr, argPtr, nil, 0); err != nil {
		return fmt.Errorf("failed to launch elevated powershell: %w", err)
	}
	return nil
}

// WarnIfNotElevated logs that input will not reach elevated windows. Windows
// drops synthesized input aimed at processes with a higher integrity level.
func WarnIfNotElevated() {
	if !IsAdmin() {
		log.Println("Input: Not running as administrator, input to elevated windows will be dropped")
	}
}
