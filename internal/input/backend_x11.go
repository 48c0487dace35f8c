//go:build !windows

package input

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

// X11 implementation of input synthesis using the XTEST extension

// FromEvent resolves the key of an X KeyPress or KeyRelease event. Other
// events fail with ErrInvalidEventKind.
func (r *Resolver) FromEvent(ev xgb.Event) (Key, error) {
	var code xproto.Keycode
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		code = e.Detail
	case xproto.KeyReleaseEvent:
		code = e.Detail
	default:
		return Key{}, &EventKindError{Kind: fmt.Sprintf("%T", ev)}
	}
	virtual := r.os.VirtualCode(uint32(code))
	if virtual == 0 {
		return Key{code: uint32(code), name: NameUnknown}, nil
	}
	return r.resolve(virtual, uint32(code)), nil
}

type x11Backend struct {
	mu sync.Mutex

	conn   *xgb.Conn
	root   xproto.Window
	width  int
	height int

	minKeycode xproto.Keycode
	perKeycode int
	keysyms    []xproto.Keysym

	// scratch holds unused keycodes rebound to keysyms that have no keycode
	scratch *scratchPool
}

// maxScratchKeycodes bounds how many keycode-less keysyms can be held at once
const maxScratchKeycodes = 4

type scratchSlot struct {
	keycode  xproto.Keycode
	sym      xproto.Keysym
	held     int
	original []xproto.Keysym
}

// scratchPool assigns keysyms to scratch keycodes. A slot is only rebound
// while no key sent through it is held down.
type scratchPool struct {
	slots []scratchSlot
	next  int
}

func newScratchPool(keycodes []xproto.Keycode, row func(xproto.Keycode) []xproto.Keysym) *scratchPool {
	p := &scratchPool{}
	for _, kc := range keycodes {
		p.slots = append(p.slots, scratchSlot{
			keycode:  kc,
			original: append([]xproto.Keysym(nil), row(kc)...),
		})
	}
	return p
}

func (p *scratchPool) contains(kc xproto.Keycode) bool {
	for _, s := range p.slots {
		if s.keycode == kc {
			return true
		}
	}
	return false
}

// slotFor returns the slot to send sym through and whether it must be
// rebound first. A press counts as held until the matching release.
func (p *scratchPool) slotFor(sym xproto.Keysym, press bool) (*scratchSlot, bool) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.sym == sym {
			p.track(s, press)
			return s, false
		}
	}
	// Round robin over free slots so recently released keysyms stay bound.
	s := &p.slots[p.next]
	for i := range p.slots {
		c := &p.slots[(p.next+i)%len(p.slots)]
		if c.held == 0 {
			s = c
			p.next = (p.next + i + 1) % len(p.slots)
			break
		}
	}
	if s.held > 0 {
		log.Printf("Input: All %d scratch keycodes are held, rebinding keycode %d", len(p.slots), s.keycode)
		s.held = 0
	}
	s.sym = sym
	p.track(s, press)
	return s, true
}

func (p *scratchPool) track(s *scratchSlot, press bool) {
	if press {
		s.held++
	} else if s.held > 0 {
		s.held--
	}
}

func openBackend(opts Options) (Backend, error) {
	display := opts.Display
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	if display == "" {
		return nil, ErrNoDisplay
	}
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("XTEST extension: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	b := &x11Backend{
		conn:       conn,
		root:       screen.Root,
		width:      int(screen.WidthInPixels),
		height:     int(screen.HeightInPixels),
		minKeycode: setup.MinKeycode,
	}

	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		conn.Close()
		return nil, err
	}
	b.perKeycode = int(reply.KeysymsPerKeycode)
	if b.perKeycode <= 0 {
		conn.Close()
		return nil, fmt.Errorf("invalid keysyms per keycode: %d", b.perKeycode)
	}
	b.keysyms = reply.Keysyms
	b.scratch = newScratchPool(b.findScratchKeycodes(setup.MaxKeycode), b.row)
	return b, nil
}

// row returns the keysyms bound to a keycode
func (b *x11Backend) row(kc xproto.Keycode) []xproto.Keysym {
	i := (int(kc) - int(b.minKeycode)) * b.perKeycode
	if i < 0 || i+b.perKeycode > len(b.keysyms) {
		return nil
	}
	return b.keysyms[i : i+b.perKeycode]
}

// findScratchKeycodes returns the highest keycodes with no keysyms bound.
func (b *x11Backend) findScratchKeycodes(max xproto.Keycode) []xproto.Keycode {
	var found []xproto.Keycode
	for kc := int(max); kc >= int(b.minKeycode) && len(found) < maxScratchKeycodes; kc-- {
		empty := true
		for _, sym := range b.row(xproto.Keycode(kc)) {
			if sym != 0 {
				empty = false
				break
			}
		}
		if empty {
			found = append(found, xproto.Keycode(kc))
		}
	}
	if len(found) == 0 {
		return []xproto.Keycode{max}
	}
	return found
}

func (b *x11Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer b.conn.Close()
	for _, slot := range b.scratch.slots {
		if slot.sym != 0 && len(slot.original) > 0 {
			b.remap(slot.keycode, slot.original)
		}
	}
	b.conn.Sync()
	return nil
}

// ScanCode returns the first keycode bound to the keysym, like XKeysymToKeycode.
func (b *x11Backend) ScanCode(virtual uint32) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sym := range b.keysyms {
		kc := xproto.Keycode(i/b.perKeycode + int(b.minKeycode))
		if b.scratch.contains(kc) {
			continue
		}
		if uint32(sym) == virtual {
			return uint32(kc)
		}
	}
	return 0
}

// VirtualCode returns the keysym in column 0 of the keycode.
func (b *x11Backend) VirtualCode(code uint32) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	row := b.row(xproto.Keycode(code))
	if len(row) == 0 {
		return 0
	}
	return uint32(row[0])
}

func (b *x11Backend) KeyName(code, virtual uint32, extended bool) (string, bool) {
	return keysymName(virtual)
}

func (b *x11Backend) SendKey(ev KeyEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kc := xproto.Keycode(ev.Code)
	if ev.Encoding == EncodingVirtual {
		// XTEST only takes keycodes: bind the keysym to a scratch keycode.
		slot, rebind := b.scratch.slotFor(xproto.Keysym(ev.Code), ev.Press)
		if rebind {
			row := make([]xproto.Keysym, b.perKeycode)
			row[0] = slot.sym
			b.remap(slot.keycode, row)
			// Clients must see the new mapping before the key event.
			b.conn.Sync()
		}
		kc = slot.keycode
	}

	var typ byte = xproto.KeyRelease
	if ev.Press {
		typ = xproto.KeyPress
	}
	xtest.FakeInput(b.conn, typ, byte(kc), 0, b.root, 0, 0, 0)
	b.conn.Sync()
}

func (b *x11Backend) remap(kc xproto.Keycode, row []xproto.Keysym) {
	if err := xproto.ChangeKeyboardMappingChecked(b.conn, 1, kc, byte(b.perKeycode), row).Check(); err != nil {
		log.Printf("Input: Failed to remap keycode %d: %v", kc, err)
	}
}

func (b *x11Backend) SendPointer(ev PointerEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch ev.Kind {
	case PointerButton:
		typ := byte(xproto.ButtonRelease)
		if ev.Press {
			typ = xproto.ButtonPress
		}
		xtest.FakeInput(b.conn, typ, byte(ev.Button), 0, b.root, 0, 0, 0)
	case PointerMotion:
		// detail 1 marks the motion as relative
		xtest.FakeInput(b.conn, xproto.MotionNotify, 1, 0, b.root, int16(ev.X), int16(ev.Y), 0)
	case PointerAbsolute:
		xproto.WarpPointer(b.conn, xproto.WindowNone, b.root, 0, 0, 0, 0, int16(ev.X), int16(ev.Y))
	case PointerWheel:
		button := byte(x11ButtonWheelUp)
		if ev.Wheel < 0 {
			button = x11ButtonWheelDown
		}
		xtest.FakeInput(b.conn, xproto.ButtonPress, button, 0, b.root, 0, 0, 0)
		xtest.FakeInput(b.conn, xproto.ButtonRelease, button, 0, b.root, 0, 0, 0)
	}
	b.conn.Sync()
}

func (b *x11Backend) ScreenSize() (int, int) {
	return b.width, b.height
}
