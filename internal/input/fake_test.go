package input

import (
	"fmt"
	"strings"
)

// fakeBackend records every OS call instead of making it
type fakeBackend struct {
	scanCodes map[uint32]uint32
	names     map[uint32]string
	width     int
	height    int

	queries  []string
	keys     []KeyEvent
	pointers []PointerEvent
	closed   bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		scanCodes: make(map[uint32]uint32),
		names:     make(map[uint32]string),
		width:     1920,
		height:    1080,
	}
}

func (f *fakeBackend) ScanCode(virtual uint32) uint32 {
	f.queries = append(f.queries, fmt.Sprintf("scan 0x%X", virtual))
	return f.scanCodes[virtual]
}

func (f *fakeBackend) VirtualCode(code uint32) uint32 {
	f.queries = append(f.queries, fmt.Sprintf("virtual 0x%X", code))
	for v, c := range f.scanCodes {
		if c == code {
			return v
		}
	}
	return 0
}

func (f *fakeBackend) KeyName(code, virtual uint32, extended bool) (string, bool) {
	f.queries = append(f.queries, fmt.Sprintf("name 0x%X ext=%v", code, extended))
	name, ok := f.names[virtual]
	return name, ok
}

func (f *fakeBackend) SendKey(ev KeyEvent)         { f.keys = append(f.keys, ev) }
func (f *fakeBackend) SendPointer(ev PointerEvent) { f.pointers = append(f.pointers, ev) }
func (f *fakeBackend) ScreenSize() (int, int)      { return f.width, f.height }
func (f *fakeBackend) Close() error                { f.closed = true; return nil }

// Codes of the test layout. They are deliberately unlike any real backend.
const (
	testVirtualA      = 0x41
	testVirtualLeft   = 0x125
	testVirtualVolume = 0x1AF
	testVirtualF13    = 0x17C
)

func newTestLayout() *Layout {
	return NewLayout(LayoutSpec{
		Name: "test",
		Keys: map[KeyType]uint32{
			KeyA:        testVirtualA,
			KeyLeft:     testVirtualLeft,
			KeyVolumeUp: testVirtualVolume,
			KeyF13:      testVirtualF13,
		},
		Buttons: map[MouseButton]uint32{
			MouseLeft:  0x2,
			MouseRight: 0x8,
		},
		VirtualOnly: []uint32{testVirtualVolume},
		Extended:    []uint32{testVirtualLeft},
		AbsoluteMax: 65535,
	})
}

// logRecorder collects formatted log lines
type logRecorder struct {
	lines []string
}

func (l *logRecorder) logf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *logRecorder) contains(s string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
