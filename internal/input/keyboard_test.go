package input

import "testing"

func newTestKeyboard() (*Keyboard, *fakeBackend, *logRecorder) {
	fb := newFakeBackend()
	logs := &logRecorder{}
	kb := NewKeyboard(fb)
	kb.logf = logs.logf
	return kb, fb, logs
}

func TestSendNoKeyIsNoop(t *testing.T) {
	kb, fb, logs := newTestKeyboard()

	kb.Press(NoKeyValue())
	kb.Release(Key{})

	if len(fb.keys) != 0 {
		t.Errorf("Expected no key events, got %d", len(fb.keys))
	}
	if !logs.contains("Cannot send <no key> event") {
		t.Errorf("Expected a no-key diagnostic, got %v", logs.lines)
	}
}

func TestSendPrefersScanCode(t *testing.T) {
	kb, fb, _ := newTestKeyboard()
	key := Key{code: 0x4B, virtual: testVirtualLeft, extended: true, name: "Left"}

	kb.Press(key)
	kb.Release(key)

	if len(fb.keys) != 2 {
		t.Fatalf("Expected 2 key events, got %d", len(fb.keys))
	}
	for i, ev := range fb.keys {
		if ev.Encoding != EncodingScanCode {
			t.Errorf("Event %d: expected scancode encoding, got %s", i, ev.Encoding)
		}
		if ev.Code != 0x4B {
			t.Errorf("Event %d: expected code 0x4B, got 0x%X", i, ev.Code)
		}
		if !ev.Extended {
			t.Errorf("Event %d: expected extended flag", i)
		}
	}
	if !fb.keys[0].Press || fb.keys[1].Press {
		t.Errorf("Expected press then release, got %+v", fb.keys)
	}
}

func TestSendFallsBackToVirtual(t *testing.T) {
	kb, fb, _ := newTestKeyboard()
	key := Key{virtual: testVirtualVolume, name: NameVirtualKeyOnly}

	kb.Press(key)

	if len(fb.keys) != 1 {
		t.Fatalf("Expected 1 key event, got %d", len(fb.keys))
	}
	ev := fb.keys[0]
	if ev.Encoding != EncodingVirtual {
		t.Errorf("Expected virtual encoding, got %s", ev.Encoding)
	}
	if ev.Code != testVirtualVolume {
		t.Errorf("Expected code 0x%X, got 0x%X", testVirtualVolume, ev.Code)
	}
	if ev.Extended {
		t.Error("Expected virtual events to carry no extended flag")
	}
}
