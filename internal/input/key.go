package input

import "fmt"

// Display names used when no real key name can be produced.
const (
	NameNoKey          = "<no key>"
	NameVirtualKeyOnly = "<virtual key only>"
	NameUnknown        = "<unknown>"
)

// Key is a resolved key: the hardware code, the virtual code and a
// human-readable name. Keys are immutable values; construct them with a
// Resolver.
type Key struct {
	code     uint32
	virtual  uint32
	extended bool
	name     string
}

// NoKeyValue returns the "no key" identity: both codes zero.
func NoKeyValue() Key {
	return Key{name: NameNoKey}
}

// Code returns the hardware scan code (X keycode on X11), 0 if not available.
func (k Key) Code() uint32 { return k.code }

// Virtual returns the virtual key code (keysym on X11), 0 for no key.
func (k Key) Virtual() uint32 { return k.virtual }

// Extended reports whether the key carries the extended-key flag.
func (k Key) Extended() bool { return k.extended }

// Name returns the display name of the key.
func (k Key) Name() string {
	if k.name == "" {
		return NameNoKey
	}
	return k.name
}

// IsNoKey reports whether k is the "no key" value.
func (k Key) IsNoKey() bool {
	return k.code == 0 && k.virtual == 0
}

func (k Key) String() string {
	return fmt.Sprintf("%s (code=0x%X, virtual=0x%X)", k.Name(), k.code, k.virtual)
}
