//go:build darwin

package autostart

import (
	"os"
	"path/filepath"
)

func plistPath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", "com."+name+".agent.plist"), nil
}

// Enable installs a LaunchAgent for the entry
func Enable(e Entry) error {
	path, err := plistPath(e.Name)
	if err != nil {
		return err
	}
	data, err := render(plistTemplate, e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Disable removes the LaunchAgent
func Disable(name string) error {
	path, err := plistPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsEnabled checks if the LaunchAgent exists
func IsEnabled(name string) bool {
	path, err := plistPath(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
