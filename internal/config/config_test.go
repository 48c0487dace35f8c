package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr() != "127.0.0.1:18080" {
		t.Errorf("Expected 127.0.0.1:18080, got %s", cfg.Server.Addr())
	}
	if cfg.Input.StepDelay().Milliseconds() != 10 {
		t.Errorf("Expected 10ms step delay, got %v", cfg.Input.StepDelay())
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "none.json"))
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Get().Server.Port != 18080 {
		t.Errorf("Expected default port, got %d", m.Get().Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	m := NewManagerAt(path)

	cfg := m.Get()
	cfg.Server.Port = 9000
	cfg.Server.Token = "secret"
	cfg.Input.Display = ":1"
	m.Set(cfg)
	m.SetScript("copy", "chord Ctrl+C")

	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := NewManagerAt(path)
	changed := 0
	loaded.RegisterChangeCallback(func() { changed++ })
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := loaded.Get()
	if got.Server.Port != 9000 || got.Server.Token != "secret" || got.Input.Display != ":1" {
		t.Errorf("Unexpected config %+v", got)
	}
	if got.Server.Listen != "127.0.0.1" {
		t.Errorf("Expected default listen address to survive, got %q", got.Server.Listen)
	}
	if script, ok := loaded.GetScript("copy"); !ok || script != "chord Ctrl+C" {
		t.Errorf("Expected saved script, got %q (ok=%v)", script, ok)
	}
	if changed != 1 {
		t.Errorf("Expected 1 change callback, got %d", changed)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := NewManagerAt(path).Load(); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestScripts(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	m.SetScript("b", "tap B")
	m.SetScript("a", "tap A")

	if names := m.ScriptNames(); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", names)
	}

	m.DeleteScript("a")
	if _, ok := m.GetScript("a"); ok {
		t.Error("Expected script a to be deleted")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	m.SetScript("a", "tap A")

	cfg := m.Get()
	cfg.Scripts["a"] = "tap B"
	cfg.Server.Port = 1

	if script, _ := m.GetScript("a"); script != "tap A" {
		t.Errorf("Expected stored script to be unchanged, got %q", script)
	}
	if m.Get().Server.Port != 18080 {
		t.Error("Expected stored port to be unchanged")
	}
}
