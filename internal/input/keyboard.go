package input

import "log"

// Keyboard sends key events for resolved keys.
//
// Each call submits at most one native event. Whether the OS accepted the
// event is not checked; SendInput and XTest give no usable feedback.
type Keyboard struct {
	sender KeySender
	logf   func(format string, args ...interface{})
}

// NewKeyboard creates a keyboard over a key sender.
func NewKeyboard(sender KeySender) *Keyboard {
	return &Keyboard{sender: sender, logf: log.Printf}
}

// Press sends a key press.
func (kb *Keyboard) Press(key Key) {
	kb.send(key, true)
}

// Release sends a key release.
func (kb *Keyboard) Release(key Key) {
	kb.send(key, false)
}

func (kb *Keyboard) send(key Key, isPress bool) {
	if key.Virtual() == 0 {
		kb.logf("Keyboard: Cannot send %s event", NameNoKey)
		return
	}
	kb.sender.SendKey(keyEventFor(key, isPress))
}

// keyEventFor picks exactly one encoding: the scan code when there is one,
// the virtual code otherwise.
func keyEventFor(key Key, isPress bool) KeyEvent {
	if key.Code() != 0 {
		return KeyEvent{
			Encoding: EncodingScanCode,
			Code:     key.Code(),
			Extended: key.Extended(),
			Press:    isPress,
		}
	}
	return KeyEvent{
		Encoding: EncodingVirtual,
		Code:     key.Virtual(),
		Press:    isPress,
	}
}
