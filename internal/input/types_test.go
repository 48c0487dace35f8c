package input

import "testing"

func TestKeyNamesRoundTrip(t *testing.T) {
	for _, k := range AllKeys() {
		name := k.String()
		if name == "" || name == "KeyType(?)" {
			t.Errorf("Key %d has no name", int(k))
			continue
		}
		parsed, ok := ParseKey(name)
		if !ok {
			t.Errorf("Expected %q to parse", name)
			continue
		}
		if parsed != k {
			t.Errorf("Expected %q to parse to %d, got %d", name, int(k), int(parsed))
		}
	}
}

func TestParseKeyAliases(t *testing.T) {
	tests := map[string]KeyType{
		"enter":     KeyReturn,
		"Esc":       KeyEscape,
		"ctrl":      KeyControlL,
		"shift":     KeyShiftL,
		"alt":       KeyAltL,
		"win":       KeyWinL,
		" pageup ":  KeyPageUp,
		"nokey":     NoKey,
		"volumeup":  KeyVolumeUp,
		"control_r": KeyControlR,
	}
	for name, want := range tests {
		got, ok := ParseKey(name)
		if !ok || got != want {
			t.Errorf("ParseKey(%q): expected %s, got %s (ok=%v)", name, want, got, ok)
		}
	}

	if _, ok := ParseKey("Hyper"); ok {
		t.Error("Expected unknown key name to fail")
	}
}

func TestAllKeysExcludesNoKey(t *testing.T) {
	keys := AllKeys()
	if len(keys) != int(keyTypeCount) {
		t.Errorf("Expected %d keys, got %d", int(keyTypeCount), len(keys))
	}
	for _, k := range keys {
		if k == NoKey {
			t.Error("Expected AllKeys to exclude NoKey")
		}
	}
}

func TestParseButton(t *testing.T) {
	tests := map[string]MouseButton{
		"left":   MouseLeft,
		"Middle": MouseMiddle,
		"RIGHT":  MouseRight,
		"3":      MouseRight,
	}
	for name, want := range tests {
		got, ok := ParseButton(name)
		if !ok || got != want {
			t.Errorf("ParseButton(%q): expected %s, got %s (ok=%v)", name, want, got, ok)
		}
	}
	if _, ok := ParseButton("back"); ok {
		t.Error("Expected unknown button to fail")
	}
}
