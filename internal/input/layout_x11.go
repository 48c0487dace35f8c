//go:build !windows

package input

import "fmt"

// X11 keysyms
// Reference: X11/keysymdef.h, X11/XF86keysym.h
const (
	XK_space       = 0x0020
	XK_BackSpace   = 0xff08
	XK_Tab         = 0xff09
	XK_Return      = 0xff0d
	XK_Pause       = 0xff13
	XK_Scroll_Lock = 0xff14
	XK_Escape      = 0xff1b
	XK_Home        = 0xff50
	XK_Left        = 0xff51
	XK_Up          = 0xff52
	XK_Right       = 0xff53
	XK_Down        = 0xff54
	XK_Prior       = 0xff55
	XK_Next        = 0xff56
	XK_End         = 0xff57
	XK_Print       = 0xff61
	XK_Insert      = 0xff63
	XK_Menu        = 0xff67
	XK_Num_Lock    = 0xff7f
	XK_KP_Enter    = 0xff8d
	XK_KP_Multiply = 0xffaa
	XK_KP_Add      = 0xffab
	XK_KP_Subtract = 0xffad
	XK_KP_Decimal  = 0xffae
	XK_KP_Divide   = 0xffaf
	XK_KP_0        = 0xffb0
	XK_F1          = 0xffbe
	XK_Shift_L     = 0xffe1
	XK_Shift_R     = 0xffe2
	XK_Control_L   = 0xffe3
	XK_Control_R   = 0xffe4
	XK_Caps_Lock   = 0xffe5
	XK_Alt_L       = 0xffe9
	XK_Alt_R       = 0xffea
	XK_Super_L     = 0xffeb
	XK_Super_R     = 0xffec
	XK_Delete      = 0xffff

	XF86XK_AudioLowerVolume = 0x1008ff11
	XF86XK_AudioMute        = 0x1008ff12
	XF86XK_AudioRaiseVolume = 0x1008ff13
	XF86XK_AudioPlay        = 0x1008ff14
	XF86XK_AudioStop        = 0x1008ff15
	XF86XK_AudioPrev        = 0x1008ff16
	XF86XK_AudioNext        = 0x1008ff17
)

// X11 pointer buttons
const (
	x11ButtonLeft      = 1
	x11ButtonMiddle    = 2
	x11ButtonRight     = 3
	x11ButtonWheelUp   = 4
	x11ButtonWheelDown = 5
)

var x11Layout = NewLayout(LayoutSpec{
	Name: "x11",
	Keys: x11Keys(),
	Buttons: map[MouseButton]uint32{
		MouseLeft:   x11ButtonLeft,
		MouseMiddle: x11ButtonMiddle,
		MouseRight:  x11ButtonRight,
	},
	// Multimedia keysyms are often not bound to a keycode, or bound to
	// different ones per keyboard.
	VirtualOnly: []uint32{
		XF86XK_AudioRaiseVolume,
		XF86XK_AudioLowerVolume,
		XF86XK_AudioMute,
		XF86XK_AudioPlay,
		XF86XK_AudioNext,
		XF86XK_AudioPrev,
		XF86XK_AudioStop,
	},
	// X keycodes already distinguish the navigation cluster from the keypad.
	Extended:    nil,
	AbsoluteMax: 0,
})

// DefaultLayout returns the layout of the compiled backend.
func DefaultLayout() *Layout {
	return x11Layout
}

func x11Keys() map[KeyType]uint32 {
	keys := map[KeyType]uint32{
		KeyEscape:    XK_Escape,
		KeySpace:     XK_space,
		KeyReturn:    XK_Return,
		KeyBackspace: XK_BackSpace,
		KeyTab:       XK_Tab,

		KeyShiftL:   XK_Shift_L,
		KeyShiftR:   XK_Shift_R,
		KeyControlL: XK_Control_L,
		KeyControlR: XK_Control_R,
		KeyAltL:     XK_Alt_L,
		KeyAltR:     XK_Alt_R,
		KeyWinL:     XK_Super_L,
		KeyWinR:     XK_Super_R,
		KeyApps:     XK_Menu,

		KeyCapsLock:   XK_Caps_Lock,
		KeyNumLock:    XK_Num_Lock,
		KeyScrollLock: XK_Scroll_Lock,

		KeyPrintScreen: XK_Print,
		KeyPause:       XK_Pause,

		KeyInsert:   XK_Insert,
		KeyDelete:   XK_Delete,
		KeyPageUp:   XK_Prior,
		KeyPageDown: XK_Next,
		KeyHome:     XK_Home,
		KeyEnd:      XK_End,

		KeyLeft:  XK_Left,
		KeyRight: XK_Right,
		KeyUp:    XK_Up,
		KeyDown:  XK_Down,

		KeyNumpadAdd:      XK_KP_Add,
		KeyNumpadSubtract: XK_KP_Subtract,
		KeyNumpadMultiply: XK_KP_Multiply,
		KeyNumpadDivide:   XK_KP_Divide,
		KeyNumpadDecimal:  XK_KP_Decimal,
		KeyNumpadEnter:    XK_KP_Enter,

		KeyMediaPlayPause: XF86XK_AudioPlay,
		KeyMediaNext:      XF86XK_AudioNext,
		KeyMediaPrev:      XF86XK_AudioPrev,
		KeyMediaStop:      XF86XK_AudioStop,
		KeyVolumeUp:       XF86XK_AudioRaiseVolume,
		KeyVolumeDown:     XF86XK_AudioLowerVolume,
		KeyVolumeMute:     XF86XK_AudioMute,
	}
	for k := KeyA; k <= KeyZ; k++ {
		keys[k] = uint32('A' + (k - KeyA))
	}
	for k := Key0; k <= Key9; k++ {
		keys[k] = uint32('0' + (k - Key0))
	}
	for k := KeyF1; k <= KeyF24; k++ {
		keys[k] = uint32(XK_F1 + (k - KeyF1))
	}
	for k := KeyNumpad0; k <= KeyNumpad9; k++ {
		keys[k] = uint32(XK_KP_0 + (k - KeyNumpad0))
	}
	return keys
}

var keysymNames = map[uint32]string{
	XK_space:       "space",
	XK_BackSpace:   "BackSpace",
	XK_Tab:         "Tab",
	XK_Return:      "Return",
	XK_Pause:       "Pause",
	XK_Scroll_Lock: "Scroll_Lock",
	XK_Escape:      "Escape",
	XK_Home:        "Home",
	XK_Left:        "Left",
	XK_Up:          "Up",
	XK_Right:       "Right",
	XK_Down:        "Down",
	XK_Prior:       "Prior",
	XK_Next:        "Next",
	XK_End:         "End",
	XK_Print:       "Print",
	XK_Insert:      "Insert",
	XK_Menu:        "Menu",
	XK_Num_Lock:    "Num_Lock",
	XK_KP_Enter:    "KP_Enter",
	XK_KP_Multiply: "KP_Multiply",
	XK_KP_Add:      "KP_Add",
	XK_KP_Subtract: "KP_Subtract",
	XK_KP_Decimal:  "KP_Decimal",
	XK_KP_Divide:   "KP_Divide",
	XK_Shift_L:     "Shift_L",
	XK_Shift_R:     "Shift_R",
	XK_Control_L:   "Control_L",
	XK_Control_R:   "Control_R",
	XK_Caps_Lock:   "Caps_Lock",
	XK_Alt_L:       "Alt_L",
	XK_Alt_R:       "Alt_R",
	XK_Super_L:     "Super_L",
	XK_Super_R:     "Super_R",
	XK_Delete:      "Delete",

	XF86XK_AudioLowerVolume: "XF86AudioLowerVolume",
	XF86XK_AudioMute:        "XF86AudioMute",
	XF86XK_AudioRaiseVolume: "XF86AudioRaiseVolume",
	XF86XK_AudioPlay:        "XF86AudioPlay",
	XF86XK_AudioStop:        "XF86AudioStop",
	XF86XK_AudioPrev:        "XF86AudioPrev",
	XF86XK_AudioNext:        "XF86AudioNext",
}

// keysymName returns the X name of a keysym, like XKeysymToString.
func keysymName(sym uint32) (string, bool) {
	if name, ok := keysymNames[sym]; ok {
		return name, true
	}
	switch {
	case sym >= XK_F1 && sym <= XK_F1+34:
		return fmt.Sprintf("F%d", sym-XK_F1+1), true
	case sym >= XK_KP_0 && sym <= XK_KP_0+9:
		return fmt.Sprintf("KP_%d", sym-XK_KP_0), true
	case sym > 0x20 && sym < 0x7f:
		// Latin-1 printable keysyms equal their character
		return string(rune(sym)), true
	}
	return "", false
}
