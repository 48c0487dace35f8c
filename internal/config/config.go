// Package config provides configuration management for the input server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Server contains remote control settings
	Server ServerConfig `json:"server"`

	// Input contains input backend settings
	Input InputConfig `json:"input"`

	// Scripts maps a name to a saved action script
	Scripts map[string]string `json:"scripts,omitempty"`
}

// ServerConfig contains the HTTP/WebSocket server settings
type ServerConfig struct {
	// Listen is the address to bind (default: 127.0.0.1)
	Listen string `json:"listen"`

	// Port is the port for the API server (default: 18080)
	Port int `json:"port"`

	// Token is an optional bearer token for API requests
	Token string `json:"token,omitempty"`

	// Tray shows a system tray icon while serving
	Tray bool `json:"tray"`

	// Firewall opens the port in the Windows firewall on start
	Firewall bool `json:"firewall,omitempty"`
}

// InputConfig contains input backend settings
type InputConfig struct {
	// Display is the X display to connect to. Empty means $DISPLAY.
	Display string `json:"display,omitempty"`

	// StepDelayMs is waited between consecutive actions
	StepDelayMs int `json:"step_delay_ms"`
}

// Addr returns the listen address as host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Listen, strconv.Itoa(s.Port))
}

// StepDelay returns StepDelayMs as a duration.
func (i InputConfig) StepDelay() time.Duration {
	return time.Duration(i.StepDelayMs) * time.Millisecond
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: "127.0.0.1",
			Port:   18080,
		},
		Input: InputConfig{
			StepDelayMs: 10,
		},
		Scripts: make(map[string]string),
	}
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a configuration manager for the per-user config file
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a configuration manager for an explicit file
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.configPath
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "fakeinput")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "fakeinput")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(configDir, "fakeinput")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration from disk. A missing file keeps the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to parse %s: %w", m.configPath, err)
	}
	if cfg.Scripts == nil {
		cfg.Scripts = make(map[string]string)
	}
	m.config = cfg
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	// The file holds the server token.
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return err
	}

	log.Printf("Config: Saving configuration to %s (%d bytes)", m.configPath, len(data))
	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(m.configPath, 0600)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg := *m.config
	cfg.Scripts = make(map[string]string, len(m.config.Scripts))
	for name, script := range m.config.Scripts {
		cfg.Scripts[name] = script
	}
	return cfg
}

// Set updates the configuration
func (m *Manager) Set(config Config) {
	if config.Scripts == nil {
		config.Scripts = make(map[string]string)
	}
	m.mu.Lock()
	m.config = &config
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged()
	}
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}

// GetScript returns a saved script by name
func (m *Manager) GetScript(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	script, ok := m.config.Scripts[name]
	return script, ok
}

// SetScript updates or adds a saved script
func (m *Manager) SetScript(name, script string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.Scripts[name] = script
}

// DeleteScript removes a saved script by name
func (m *Manager) DeleteScript(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.config.Scripts, name)
}

// ScriptNames returns the saved script names in order
func (m *Manager) ScriptNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.config.Scripts))
	for name := range m.config.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
