//go:build windows

package input

// Windows virtual-key codes
// Reference: https://learn.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
const (
	VK_BACK     = 0x08
	VK_TAB      = 0x09
	VK_RETURN   = 0x0D
	VK_PAUSE    = 0x13
	VK_CAPITAL  = 0x14
	VK_ESCAPE   = 0x1B
	VK_SPACE    = 0x20
	VK_PRIOR    = 0x21
	VK_NEXT     = 0x22
	VK_END      = 0x23
	VK_HOME     = 0x24
	VK_LEFT     = 0x25
	VK_UP       = 0x26
	VK_RIGHT    = 0x27
	VK_DOWN     = 0x28
	VK_SNAPSHOT = 0x2C
	VK_INSERT   = 0x2D
	VK_DELETE   = 0x2E
	VK_LWIN     = 0x5B
	VK_RWIN     = 0x5C
	VK_APPS     = 0x5D
	VK_NUMPAD0  = 0x60
	VK_MULTIPLY = 0x6A
	VK_ADD      = 0x6B
	VK_SUBTRACT = 0x6D
	VK_DECIMAL  = 0x6E
	VK_DIVIDE   = 0x6F
	VK_F1       = 0x70
	VK_NUMLOCK  = 0x90
	VK_SCROLL   = 0x91
	VK_LSHIFT   = 0xA0
	VK_RSHIFT   = 0xA1
	VK_LCONTROL = 0xA2
	VK_RCONTROL = 0xA3
	VK_LMENU    = 0xA4
	VK_RMENU    = 0xA5

	VK_VOLUME_MUTE      = 0xAD
	VK_VOLUME_DOWN      = 0xAE
	VK_VOLUME_UP        = 0xAF
	VK_MEDIA_NEXT_TRACK = 0xB0
	VK_MEDIA_PREV_TRACK = 0xB1
	VK_MEDIA_STOP       = 0xB2
	VK_MEDIA_PLAY_PAUSE = 0xB3
)

// Mouse event flags
const (
	MOUSEEVENTF_MOVE       = 0x0001
	MOUSEEVENTF_LEFTDOWN   = 0x0002
	MOUSEEVENTF_LEFTUP     = 0x0004
	MOUSEEVENTF_RIGHTDOWN  = 0x0008
	MOUSEEVENTF_RIGHTUP    = 0x0010
	MOUSEEVENTF_MIDDLEDOWN = 0x0020
	MOUSEEVENTF_MIDDLEUP   = 0x0040
	MOUSEEVENTF_WHEEL      = 0x0800
	MOUSEEVENTF_ABSOLUTE   = 0x8000
)

var win32Layout = NewLayout(LayoutSpec{
	Name: "win32",
	Keys: win32Keys(),
	// Release flags are the press flags shifted left by one.
	Buttons: map[MouseButton]uint32{
		MouseLeft:   MOUSEEVENTF_LEFTDOWN,
		MouseRight:  MOUSEEVENTF_RIGHTDOWN,
		MouseMiddle: MOUSEEVENTF_MIDDLEDOWN,
	},
	// MapVirtualKey gives no stable scan code for these.
	VirtualOnly: []uint32{
		VK_VOLUME_UP,
		VK_VOLUME_DOWN,
		VK_VOLUME_MUTE,
		VK_MEDIA_PLAY_PAUSE,
		VK_MEDIA_NEXT_TRACK,
		VK_MEDIA_PREV_TRACK,
		VK_MEDIA_STOP,
	},
	Extended: []uint32{
		VK_LEFT, VK_UP, VK_RIGHT, VK_DOWN,
		VK_PRIOR, VK_NEXT,
		VK_END, VK_HOME,
		VK_INSERT, VK_DELETE,
		VK_DIVIDE, VK_NUMLOCK,
	},
	AbsoluteMax: 65535,
})

// DefaultLayout returns the layout of the compiled backend.
func DefaultLayout() *Layout {
	return win32Layout
}

func win32Keys() map[KeyType]uint32 {
	keys := map[KeyType]uint32{
		KeyEscape:    VK_ESCAPE,
		KeySpace:     VK_SPACE,
		KeyReturn:    VK_RETURN,
		KeyBackspace: VK_BACK,
		KeyTab:       VK_TAB,

		KeyShiftL:   VK_LSHIFT,
		KeyShiftR:   VK_RSHIFT,
		KeyControlL: VK_LCONTROL,
		KeyControlR: VK_RCONTROL,
		KeyAltL:     VK_LMENU,
		KeyAltR:     VK_RMENU,
		KeyWinL:     VK_LWIN,
		KeyWinR:     VK_RWIN,
		KeyApps:     VK_APPS,

		KeyCapsLock:   VK_CAPITAL,
		KeyNumLock:    VK_NUMLOCK,
		KeyScrollLock: VK_SCROLL,

		KeyPrintScreen: VK_SNAPSHOT,
		KeyPause:       VK_PAUSE,

		KeyInsert:   VK_INSERT,
		KeyDelete:   VK_DELETE,
		KeyPageUp:   VK_PRIOR,
		KeyPageDown: VK_NEXT,
		KeyHome:     VK_HOME,
		KeyEnd:      VK_END,

		KeyLeft:  VK_LEFT,
		KeyRight: VK_RIGHT,
		KeyUp:    VK_UP,
		KeyDown:  VK_DOWN,

		KeyNumpadAdd:      VK_ADD,
		KeyNumpadSubtract: VK_SUBTRACT,
		KeyNumpadMultiply: VK_MULTIPLY,
		KeyNumpadDivide:   VK_DIVIDE,
		KeyNumpadDecimal:  VK_DECIMAL,
		// KeyNumpadEnter has no virtual key of its own on Windows.

		KeyMediaPlayPause: VK_MEDIA_PLAY_PAUSE,
		KeyMediaNext:      VK_MEDIA_NEXT_TRACK,
		KeyMediaPrev:      VK_MEDIA_PREV_TRACK,
		KeyMediaStop:      VK_MEDIA_STOP,
		KeyVolumeUp:       VK_VOLUME_UP,
		KeyVolumeDown:     VK_VOLUME_DOWN,
		KeyVolumeMute:     VK_VOLUME_MUTE,
	}
	// Letters and digits use their ASCII codes.
	for k := KeyA; k <= KeyZ; k++ {
		keys[k] = uint32('A' + (k - KeyA))
	}
	for k := Key0; k <= Key9; k++ {
		keys[k] = uint32('0' + (k - Key0))
	}
	for k := KeyF1; k <= KeyF24; k++ {
		keys[k] = uint32(VK_F1 + (k - KeyF1))
	}
	for k := KeyNumpad0; k <= KeyNumpad9; k++ {
		keys[k] = uint32(VK_NUMPAD0 + (k - KeyNumpad0))
	}
	return keys
}
