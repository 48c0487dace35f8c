package input

// KeyQuerier is the OS query boundary used while resolving keys.
type KeyQuerier interface {
	// ScanCode returns the hardware code producing virtual, or 0 if none.
	ScanCode(virtual uint32) uint32

	// VirtualCode returns the virtual code produced by a hardware code, or 0.
	VirtualCode(code uint32) uint32

	// KeyName returns the OS display name of a key.
	KeyName(code, virtual uint32, extended bool) (string, bool)
}

// Encoding tells the OS which code a key event carries.
type Encoding int

const (
	// EncodingScanCode events carry the hardware code.
	EncodingScanCode Encoding = iota
	// EncodingVirtual events carry the virtual code.
	EncodingVirtual
)

func (e Encoding) String() string {
	if e == EncodingScanCode {
		return "scancode"
	}
	return "virtual"
}

// KeyEvent is a single native keyboard event.
type KeyEvent struct {
	Encoding Encoding
	Code     uint32
	Extended bool
	Press    bool
}

// KeySender submits keyboard events to the OS. Submission is fire-and-forget.
type KeySender interface {
	SendKey(ev KeyEvent)
}

// PointerKind is the kind of a native pointer event.
type PointerKind int

const (
	PointerButton PointerKind = iota
	PointerMotion
	PointerAbsolute
	PointerWheel
)

// PointerEvent is a single native pointer event.
type PointerEvent struct {
	Kind PointerKind

	// Button is the native button code (PointerButton)
	Button uint32
	Press  bool

	// X, Y are a relative delta (PointerMotion) or a position in the
	// backend's absolute range (PointerAbsolute)
	X, Y int32

	// Wheel is +1 for one notch up, -1 for one notch down (PointerWheel)
	Wheel int
}

// PointerSender submits pointer events to the OS. Submission is fire-and-forget.
type PointerSender interface {
	SendPointer(ev PointerEvent)

	// ScreenSize returns the size of the primary screen in pixels.
	ScreenSize() (width, height int)
}

// Backend is the complete OS boundary of one platform.
type Backend interface {
	KeyQuerier
	KeySender
	PointerSender
	Close() error
}
