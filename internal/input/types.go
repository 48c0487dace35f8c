// Package input provides platform-independent keyboard and mouse input synthesis.
package input

import "strings"

// KeyType is a symbolic key of the common US keyboard layout
type KeyType int

// NoKey is the explicit "no key" value. It never produces an event.
const NoKey KeyType = -1

const (
	KeyA KeyType = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	KeyEscape
	KeySpace
	KeyReturn
	KeyBackspace
	KeyTab

	KeyShiftL
	KeyShiftR
	KeyControlL
	KeyControlR
	KeyAltL
	KeyAltR
	KeyWinL
	KeyWinR
	KeyApps

	KeyCapsLock
	KeyNumLock
	KeyScrollLock

	KeyPrintScreen
	KeyPause

	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9

	KeyNumpadAdd
	KeyNumpadSubtract
	KeyNumpadMultiply
	KeyNumpadDivide
	KeyNumpadDecimal
	KeyNumpadEnter

	KeyMediaPlayPause
	KeyMediaNext
	KeyMediaPrev
	KeyMediaStop
	KeyVolumeUp
	KeyVolumeDown
	KeyVolumeMute

	keyTypeCount
)

var keyNames = [...]string{
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F",
	KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R",
	KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W", KeyX: "X",
	KeyY: "Y", KeyZ: "Z",

	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
	KeyF13: "F13", KeyF14: "F14", KeyF15: "F15", KeyF16: "F16", KeyF17: "F17", KeyF18: "F18",
	KeyF19: "F19", KeyF20: "F20", KeyF21: "F21", KeyF22: "F22", KeyF23: "F23", KeyF24: "F24",

	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyReturn:    "Return",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",

	KeyShiftL:   "Shift_L",
	KeyShiftR:   "Shift_R",
	KeyControlL: "Control_L",
	KeyControlR: "Control_R",
	KeyAltL:     "Alt_L",
	KeyAltR:     "Alt_R",
	KeyWinL:     "Win_L",
	KeyWinR:     "Win_R",
	KeyApps:     "Apps",

	KeyCapsLock:   "CapsLock",
	KeyNumLock:    "NumLock",
	KeyScrollLock: "ScrollLock",

	KeyPrintScreen: "PrintScreen",
	KeyPause:       "Pause",

	KeyInsert:   "Insert",
	KeyDelete:   "Delete",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyHome:     "Home",
	KeyEnd:      "End",

	KeyLeft:  "Left",
	KeyRight: "Right",
	KeyUp:    "Up",
	KeyDown:  "Down",

	KeyNumpad0: "Numpad0", KeyNumpad1: "Numpad1", KeyNumpad2: "Numpad2",
	KeyNumpad3: "Numpad3", KeyNumpad4: "Numpad4", KeyNumpad5: "Numpad5",
	KeyNumpad6: "Numpad6", KeyNumpad7: "Numpad7", KeyNumpad8: "Numpad8",
	KeyNumpad9: "Numpad9",

	KeyNumpadAdd:      "NumpadAdd",
	KeyNumpadSubtract: "NumpadSubtract",
	KeyNumpadMultiply: "NumpadMultiply",
	KeyNumpadDivide:   "NumpadDivide",
	KeyNumpadDecimal:  "NumpadDecimal",
	KeyNumpadEnter:    "NumpadEnter",

	KeyMediaPlayPause: "MediaPlayPause",
	KeyMediaNext:      "MediaNext",
	KeyMediaPrev:      "MediaPrev",
	KeyMediaStop:      "MediaStop",
	KeyVolumeUp:       "VolumeUp",
	KeyVolumeDown:     "VolumeDown",
	KeyVolumeMute:     "VolumeMute",
}

// keyAliases are accepted by ParseKey in addition to the canonical names
var keyAliases = map[string]KeyType{
	"ENTER":   KeyReturn,
	"ESC":     KeyEscape,
	"CTRL":    KeyControlL,
	"CONTROL": KeyControlL,
	"SHIFT":   KeyShiftL,
	"ALT":     KeyAltL,
	"WIN":     KeyWinL,
	"SUPER":   KeyWinL,
	"MENU":    KeyApps,
	"PGUP":    KeyPageUp,
	"PGDN":    KeyPageDown,
	"DEL":     KeyDelete,
	"INS":     KeyInsert,
	"NOKEY":   NoKey,
}

var keysByName = func() map[string]KeyType {
	m := make(map[string]KeyType, len(keyNames)+len(keyAliases))
	for k, name := range keyNames {
		m[strings.ToUpper(name)] = KeyType(k)
	}
	for alias, k := range keyAliases {
		m[alias] = k
	}
	return m
}()

func (k KeyType) String() string {
	if k == NoKey {
		return "NoKey"
	}
	if k < 0 || k >= keyTypeCount {
		return "KeyType(?)"
	}
	return keyNames[k]
}

// ParseKey looks up a key by its name, case-insensitively.
func ParseKey(name string) (KeyType, bool) {
	k, ok := keysByName[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// AllKeys returns every symbolic key except NoKey, in declaration order.
func AllKeys() []KeyType {
	keys := make([]KeyType, 0, keyTypeCount)
	for k := KeyType(0); k < keyTypeCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// MouseButton is a mouse button which can be pressed or released
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	default:
		return "MouseButton(?)"
	}
}

// ParseButton looks up a mouse button by name ("left", "middle", "right").
func ParseButton(name string) (MouseButton, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "l", "1":
		return MouseLeft, true
	case "middle", "m", "2":
		return MouseMiddle, true
	case "right", "r", "3":
		return MouseRight, true
	default:
		return 0, false
	}
}
