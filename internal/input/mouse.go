package input

import "log"

// Mouse sends pointer events: buttons, relative and absolute motion, wheel.
type Mouse struct {
	catalog Catalog
	sender  PointerSender
	max     int32
	logf    func(format string, args ...interface{})
}

// NewMouse creates a mouse. absoluteMax is the native absolute range of the
// backend (0 for pixel coordinates).
func NewMouse(catalog Catalog, sender PointerSender, absoluteMax int32) *Mouse {
	return &Mouse{catalog: catalog, sender: sender, max: absoluteMax, logf: log.Printf}
}

// PressButton presses a mouse button.
func (m *Mouse) PressButton(b MouseButton) {
	m.button(b, true)
}

// ReleaseButton releases a mouse button.
func (m *Mouse) ReleaseButton(b MouseButton) {
	m.button(b, false)
}

func (m *Mouse) button(b MouseButton, press bool) {
	code := m.catalog.TranslateButton(b)
	if code == 0 {
		m.logf("Mouse: %s button is not supported on this platform", b)
		return
	}
	m.sender.SendPointer(PointerEvent{Kind: PointerButton, Button: code, Press: press})
}

// Move moves the pointer by (dx, dy) pixels.
func (m *Mouse) Move(dx, dy int) {
	m.sender.SendPointer(PointerEvent{Kind: PointerMotion, X: int32(dx), Y: int32(dy)})
}

// MoveTo moves the pointer to the screen pixel (x, y).
func (m *Mouse) MoveTo(x, y int) {
	w, h := m.sender.ScreenSize()
	m.sender.SendPointer(PointerEvent{
		Kind: PointerAbsolute,
		X:    normalizeAbsolute(x, w, m.max),
		Y:    normalizeAbsolute(y, h, m.max),
	})
}

// WheelUp scrolls one notch up.
func (m *Mouse) WheelUp() {
	m.sender.SendPointer(PointerEvent{Kind: PointerWheel, Wheel: 1})
}

// WheelDown scrolls one notch down.
func (m *Mouse) WheelDown() {
	m.sender.SendPointer(PointerEvent{Kind: PointerWheel, Wheel: -1})
}

// normalizeAbsolute maps a pixel in [0, extent-1] onto [0, max]. Pixels
// outside the screen are clamped. With max == 0 the pixel is only clamped.
func normalizeAbsolute(px, extent int, max int32) int32 {
	if extent <= 1 {
		return 0
	}
	if px < 0 {
		px = 0
	}
	if px > extent-1 {
		px = extent - 1
	}
	if max == 0 {
		return int32(px)
	}
	return int32(int64(px) * int64(max) / int64(extent-1))
}
