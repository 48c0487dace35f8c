// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"encoding/binary"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item. Items without a callback are shown disabled.
type MenuItem struct {
	ID       int
	Title    string
	Callback func()
	item     *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	title   string
	tooltip string
	items   []*MenuItem
	onExit  func()
	quitCh  chan struct{}
}

// New creates a new system tray
func New(title, tooltip string) *Tray {
	t := &Tray{
		title:   title,
		tooltip: tooltip,
		quitCh:  make(chan struct{}),
	}
	t.onExit = func() {
		close(t.quitCh)
	}
	return t
}

// AddMenuItem adds a clickable menu item to the tray
func (t *Tray) AddMenuItem(title string, callback func()) int {
	id := len(t.items)
	t.items = append(t.items, &MenuItem{
		ID:       id,
		Title:    title,
		Callback: callback,
	})
	return id
}

// AddInfoItem adds a disabled line of text
func (t *Tray) AddInfoItem(title string) int {
	return t.AddMenuItem(title, nil)
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil) // nil indicates separator
}

// SetItemTitle changes the text of a menu item
func (t *Tray) SetItemTitle(id int, title string) {
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	t.items[id].Title = title
	if t.items[id].item != nil {
		t.items[id].item.SetTitle(title)
	}
}

// Run starts the tray event loop. It blocks until Stop is called and must
// run on the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.setupMenu, t.onExit)
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(icon(16))

	for _, menuItem := range t.items {
		if menuItem == nil {
			systray.AddSeparator()
			continue
		}
		item := systray.AddMenuItem(menuItem.Title, "")
		menuItem.item = item
		if menuItem.Callback == nil {
			item.Disable()
			continue
		}

		go func(mi *MenuItem) {
			for {
				select {
				case <-mi.item.ClickedCh:
					mi.Callback()
				case <-t.quitCh:
					return
				}
			}
		}(menuItem)
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// icon returns a size x size 32-bit ICO showing a key cap outline
func icon(size int) []byte {
	const (
		headerSize = 6 + 16
		dibSize    = 40
	)
	pixels := size * size * 4
	// AND mask rows are padded to 32 bits
	maskRow := ((size + 31) / 32) * 4
	imageSize := dibSize + pixels + maskRow*size

	ico := make([]byte, headerSize+imageSize)
	le := binary.LittleEndian

	// ICONDIR
	le.PutUint16(ico[2:], 1) // type: icon
	le.PutUint16(ico[4:], 1) // count

	// ICONDIRENTRY
	ico[6] = byte(size)
	ico[7] = byte(size)
	le.PutUint16(ico[10:], 1)  // planes
	le.PutUint16(ico[12:], 32) // bpp
	le.PutUint32(ico[14:], uint32(imageSize))
	le.PutUint32(ico[18:], headerSize)

	// BITMAPINFOHEADER; the height covers the XOR and AND bitmaps
	dib := ico[headerSize:]
	le.PutUint32(dib[0:], dibSize)
	le.PutUint32(dib[4:], uint32(size))
	le.PutUint32(dib[8:], uint32(size*2))
	le.PutUint16(dib[12:], 1)
	le.PutUint16(dib[14:], 32)
	le.PutUint32(dib[20:], uint32(pixels))

	// BGRA pixels, bottom-up
	px := dib[dibSize:]
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			border := x == 1 || y == 1 || x == size-2 || y == size-2
			inside := x > 0 && y > 0 && x < size-1 && y < size-1
			if !inside {
				continue
			}
			i := (y*size + x) * 4
			if border {
				px[i], px[i+1], px[i+2] = 0x30, 0x30, 0x30
			} else {
				px[i], px[i+1], px[i+2] = 0xF0, 0xF0, 0xF0
			}
			px[i+3] = 0xFF
		}
	}
	return ico
}
