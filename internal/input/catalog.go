package input

// Catalog translates symbolic keys and buttons into native codes.
// Unsupported values translate to 0.
type Catalog interface {
	Translate(k KeyType) uint32
	TranslateButton(b MouseButton) uint32
}

// Layout is the fixed table of native codes for one backend. It also carries
// the two key sets the resolver needs: keys that must be sent by virtual code
// only, and keys that need the extended flag.
//
// A Layout is read-only after construction.
type Layout struct {
	// Name identifies the backend ("win32", "x11")
	Name string

	keys        map[KeyType]uint32
	buttons     map[MouseButton]uint32
	virtualOnly map[uint32]struct{}
	extended    map[uint32]struct{}

	// absoluteMax is the upper bound of the native absolute pointer range.
	// 0 means the backend takes pixel coordinates.
	absoluteMax int32
}

// LayoutSpec is used to build a Layout.
type LayoutSpec struct {
	Name        string
	Keys        map[KeyType]uint32
	Buttons     map[MouseButton]uint32
	VirtualOnly []uint32
	Extended    []uint32
	AbsoluteMax int32
}

// NewLayout builds a Layout from spec. The maps are copied.
func NewLayout(spec LayoutSpec) *Layout {
	l := &Layout{
		Name:        spec.Name,
		keys:        make(map[KeyType]uint32, len(spec.Keys)),
		buttons:     make(map[MouseButton]uint32, len(spec.Buttons)),
		virtualOnly: make(map[uint32]struct{}, len(spec.VirtualOnly)),
		extended:    make(map[uint32]struct{}, len(spec.Extended)),
		absoluteMax: spec.AbsoluteMax,
	}
	for k, v := range spec.Keys {
		l.keys[k] = v
	}
	for b, v := range spec.Buttons {
		l.buttons[b] = v
	}
	for _, v := range spec.VirtualOnly {
		l.virtualOnly[v] = struct{}{}
	}
	for _, v := range spec.Extended {
		l.extended[v] = struct{}{}
	}
	return l
}

// Translate returns the virtual code of k, or 0 if the backend has none.
func (l *Layout) Translate(k KeyType) uint32 {
	return l.keys[k]
}

// TranslateButton returns the native button code of b, or 0.
func (l *Layout) TranslateButton(b MouseButton) uint32 {
	return l.buttons[b]
}

// Supports reports whether k has a native mapping.
func (l *Layout) Supports(k KeyType) bool {
	return l.keys[k] != 0
}

// IsVirtualOnly reports whether the virtual code must never be sent by scan code.
func (l *Layout) IsVirtualOnly(virtual uint32) bool {
	_, ok := l.virtualOnly[virtual]
	return ok
}

// IsExtended reports whether the virtual code needs the extended-key flag.
func (l *Layout) IsExtended(virtual uint32) bool {
	_, ok := l.extended[virtual]
	return ok
}

// AbsoluteMax returns the upper bound of the native absolute pointer range.
func (l *Layout) AbsoluteMax() int32 {
	return l.absoluteMax
}

var _ Catalog = (*Layout)(nil)
