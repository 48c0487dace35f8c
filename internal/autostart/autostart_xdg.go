//go:build !darwin && !windows

package autostart

import (
	"os"
	"path/filepath"
)

func desktopPath(name string) (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", name+".desktop"), nil
}

// Enable writes an XDG autostart desktop entry
func Enable(e Entry) error {
	path, err := desktopPath(e.Name)
	if err != nil {
		return err
	}
	data, err := render(desktopTemplate, e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Disable removes the desktop entry
func Disable(name string) error {
	path, err := desktopPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsEnabled checks if the desktop entry exists
func IsEnabled(name string) bool {
	path, err := desktopPath(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
