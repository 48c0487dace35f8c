//go:build windows

package input

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows implementation of input synthesis using SendInput

const (
	INPUT_MOUSE    = 0
	INPUT_KEYBOARD = 1

	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002
	KEYEVENTF_SCANCODE    = 0x0008

	MAPVK_VK_TO_VSC_EX = 4
	MAPVK_VSC_TO_VK_EX = 3

	SM_CXSCREEN = 0
	SM_CYSCREEN = 1

	WHEEL_DELTA = 120

	WM_KEYDOWN    = 0x0100
	WM_KEYUP      = 0x0101
	WM_SYSKEYDOWN = 0x0104
	WM_SYSKEYUP   = 0x0105
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSendInput        = user32.NewProc("SendInput")
	procMapVirtualKeyW   = user32.NewProc("MapVirtualKeyW")
	procGetKeyNameTextW  = user32.NewProc("GetKeyNameTextW")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

type MOUSEINPUT struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type KEYBDINPUT struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// mouseINPUT and keyboardINPUT are the two arms of the INPUT union. The
// keyboard arm is padded to the size of the mouse arm.
type mouseINPUT struct {
	Type uint32
	Mi   MOUSEINPUT
}

type keyboardINPUT struct {
	Type uint32
	Ki   KEYBDINPUT
	_    [8]byte
}

// Message mirrors the Win32 MSG structure.
type Message struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// FromMessage resolves the key of a WM_KEYDOWN, WM_KEYUP, WM_SYSKEYDOWN or
// WM_SYSKEYUP message. Other messages fail with ErrInvalidEventKind.
func (r *Resolver) FromMessage(msg *Message) (Key, error) {
	switch msg.Message {
	case WM_KEYDOWN, WM_KEYUP, WM_SYSKEYDOWN, WM_SYSKEYUP:
		return r.FromCode(uint32(msg.WParam)), nil
	default:
		return Key{}, &EventKindError{Kind: msg.Message}
	}
}

type win32Backend struct{}

func openBackend(opts Options) (Backend, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, err
	}
	return win32Backend{}, nil
}

func (win32Backend) Close() error { return nil }

// ScanCode returns the scan code with its 0xE0 or 0xE1 prefix in the high
// byte, so right-hand modifiers and the Windows keys stay distinct.
func (win32Backend) ScanCode(virtual uint32) uint32 {
	r, _, _ := procMapVirtualKeyW.Call(uintptr(virtual), MAPVK_VK_TO_VSC_EX)
	return uint32(r)
}

func (win32Backend) VirtualCode(code uint32) uint32 {
	r, _, _ := procMapVirtualKeyW.Call(uintptr(code), MAPVK_VSC_TO_VK_EX)
	return uint32(r)
}

// splitScanCode separates a prefixed scan code into the low byte and
// whether the prefix marks an extended key.
func splitScanCode(code uint32) (uint16, bool) {
	prefix := code >> 8
	return uint16(code & 0xFF), prefix == 0xE0 || prefix == 0xE1
}

func (win32Backend) KeyName(code, virtual uint32, extended bool) (string, bool) {
	scan, prefixed := splitScanCode(code)
	lParam := uint32(scan) << 16
	if extended || prefixed {
		lParam |= 1 << 24
	}
	var buf [128]uint16
	n, _, _ := procGetKeyNameTextW.Call(
		uintptr(lParam),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if n == 0 {
		return "", false
	}
	return windows.UTF16ToString(buf[:n]), true
}

func (win32Backend) SendKey(ev KeyEvent) {
	in := keyboardInputFor(ev)
	// The return value is not inspected.
	procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
}

func keyboardInputFor(ev KeyEvent) keyboardINPUT {
	in := keyboardINPUT{Type: INPUT_KEYBOARD}
	if ev.Encoding == EncodingScanCode {
		scan, prefixed := splitScanCode(ev.Code)
		in.Ki.WScan = scan
		in.Ki.DwFlags = KEYEVENTF_SCANCODE
		if ev.Extended || prefixed {
			in.Ki.DwFlags |= KEYEVENTF_EXTENDEDKEY
		}
	} else {
		in.Ki.WVk = uint16(ev.Code)
	}
	if !ev.Press {
		in.Ki.DwFlags |= KEYEVENTF_KEYUP
	}
	return in
}

func (win32Backend) SendPointer(ev PointerEvent) {
	in := mouseINPUT{Type: INPUT_MOUSE}
	switch ev.Kind {
	case PointerButton:
		in.Mi.DwFlags = ev.Button
		if !ev.Press {
			in.Mi.DwFlags = ev.Button << 1
		}
	case PointerMotion:
		in.Mi.DwFlags = MOUSEEVENTF_MOVE
		in.Mi.Dx = ev.X
		in.Mi.Dy = ev.Y
	case PointerAbsolute:
		in.Mi.DwFlags = MOUSEEVENTF_MOVE | MOUSEEVENTF_ABSOLUTE
		in.Mi.Dx = ev.X
		in.Mi.Dy = ev.Y
	case PointerWheel:
		in.Mi.DwFlags = MOUSEEVENTF_WHEEL
		in.Mi.MouseData = uint32(int32(ev.Wheel * WHEEL_DELTA))
	}
	procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
}

func (win32Backend) ScreenSize() (int, int) {
	w, _, _ := procGetSystemMetrics.Call(SM_CXSCREEN)
	h, _, _ := procGetSystemMetrics.Call(SM_CYSCREEN)
	return int(w), int(h)
}
