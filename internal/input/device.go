package input

import (
	"fmt"
	"log"
)

// Options configures Open.
type Options struct {
	// Display is the X display to use (X11 only). Empty means $DISPLAY.
	Display string
}

// Device ties the layout, the resolver and both synthesizers to one backend.
type Device struct {
	Layout   *Layout
	Keys     *Resolver
	Keyboard *Keyboard
	Mouse    *Mouse

	backend Backend
}

// Open opens the input backend compiled for this platform.
func Open(opts Options) (*Device, error) {
	b, err := openBackend(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s input backend: %w", DefaultLayout().Name, err)
	}
	log.Printf("Input: Opened %s backend", DefaultLayout().Name)
	return NewDevice(DefaultLayout(), b), nil
}

// NewDevice wires a device over an existing backend.
func NewDevice(layout *Layout, b Backend) *Device {
	return &Device{
		Layout:   layout,
		Keys:     NewResolver(layout, b),
		Keyboard: NewKeyboard(b),
		Mouse:    NewMouse(layout, b, layout.AbsoluteMax()),
		backend:  b,
	}
}

// Close releases the backend.
func (d *Device) Close() error {
	return d.backend.Close()
}

// PressKey resolves and presses a symbolic key.
func (d *Device) PressKey(k KeyType) {
	d.Keyboard.Press(d.Keys.FromType(k))
}

// ReleaseKey resolves and releases a symbolic key.
func (d *Device) ReleaseKey(k KeyType) {
	d.Keyboard.Release(d.Keys.FromType(k))
}

// TapKey presses and releases a symbolic key.
func (d *Device) TapKey(k KeyType) {
	key := d.Keys.FromType(k)
	d.Keyboard.Press(key)
	d.Keyboard.Release(key)
}

func (d *Device) PressButton(b MouseButton)   { d.Mouse.PressButton(b) }
func (d *Device) ReleaseButton(b MouseButton) { d.Mouse.ReleaseButton(b) }
func (d *Device) Move(dx, dy int)             { d.Mouse.Move(dx, dy) }
func (d *Device) MoveTo(x, y int)             { d.Mouse.MoveTo(x, y) }
func (d *Device) WheelUp()                    { d.Mouse.WheelUp() }
func (d *Device) WheelDown()                  { d.Mouse.WheelDown() }

// KeyInfo describes how a symbolic key resolves on this device.
type KeyInfo struct {
	Key       string `json:"key"`
	Supported bool   `json:"supported"`
	Native    uint32 `json:"native,omitempty"`
	Code      uint32 `json:"code,omitempty"`
	Virtual   uint32 `json:"virtual,omitempty"`
	Extended  bool   `json:"extended,omitempty"`
	Name      string `json:"name"`
}

// Describe resolves every symbolic key.
func (d *Device) Describe() []KeyInfo {
	keys := AllKeys()
	infos := make([]KeyInfo, 0, len(keys))
	for _, k := range keys {
		info := KeyInfo{Key: k.String(), Native: d.Layout.Translate(k), Name: NameNoKey}
		if info.Native != 0 {
			key := d.Keys.FromCode(info.Native)
			info.Supported = true
			info.Code = key.Code()
			info.Virtual = key.Virtual()
			info.Extended = key.Extended()
			info.Name = key.Name()
		}
		infos = append(infos, info)
	}
	return infos
}
