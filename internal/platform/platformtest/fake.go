// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/1broseidon/rootwall/internal/platform"
)

// Pixmap is an in-memory BGRA surface.
type Pixmap struct {
	Width  int
	Height int
	Pix    []byte
}

// At returns the colour stored at (x, y).
func (p *Pixmap) At(x, y int) color.RGBA {
	i := (y*p.Width + x) * 4
	return color.RGBA{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i], A: 0xff}
}

func (p *Pixmap) set(x, y int, px []byte) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return
	}
	copy(p.Pix[(y*p.Width+x)*4:], px[:4])
}

// Fake records every call and keeps pixmap contents in memory. Set Fail to
// make the named method return an error.
type Fake struct {
	mu sync.Mutex

	ScreenInfo   platform.Screen
	Published    platform.PixmapID
	HasPublished bool
	Pixmaps      map[platform.PixmapID]*Pixmap
	Freed        []platform.PixmapID
	Calls        []string
	Retained     bool
	Closed       bool
	Fail         map[string]error

	next platform.PixmapID
}

var _ platform.Backend = (*Fake)(nil)

// New returns a fake with an empty screen of the given size at depth 24.
func New(width, height int) *Fake {
	return &Fake{
		ScreenInfo: platform.Screen{Width: width, Height: height, Depth: 24},
		Pixmaps:    make(map[platform.PixmapID]*Pixmap),
		Fail:       make(map[string]error),
		next:       0x400000,
	}
}

// AddPixmap registers an existing pixmap, e.g. one left by an earlier run.
func (f *Fake) AddPixmap(width, height int) platform.PixmapID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alloc(width, height)
}

// Pixmap returns the stored surface for id or nil.
func (f *Fake) Pixmap(id platform.PixmapID) *Pixmap {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Pixmaps[id]
}

func (f *Fake) alloc(width, height int) platform.PixmapID {
	f.next++
	f.Pixmaps[f.next] = &Pixmap{Width: width, Height: height, Pix: make([]byte, width*height*4)}
	return f.next
}

func (f *Fake) call(name string) error {
	f.Calls = append(f.Calls, name)
	return f.Fail[name]
}

func (f *Fake) lookup(id platform.PixmapID) (*Pixmap, error) {
	p, ok := f.Pixmaps[id]
	if !ok {
		return nil, fmt.Errorf("bad pixmap 0x%x", uint32(id))
	}
	return p, nil
}

func (f *Fake) Screen() (platform.Screen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Screen"); err != nil {
		return platform.Screen{}, err
	}
	return f.ScreenInfo, nil
}

func (f *Fake) PublishedPixmap() (platform.PixmapID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("PublishedPixmap"); err != nil {
		return 0, false, err
	}
	return f.Published, f.HasPublished, nil
}

func (f *Fake) Geometry(id platform.PixmapID) (platform.Geometry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Geometry"); err != nil {
		return platform.Geometry{}, err
	}
	p, err := f.lookup(id)
	if err != nil {
		return platform.Geometry{}, err
	}
	return platform.Geometry{Width: p.Width, Height: p.Height, Depth: f.ScreenInfo.Depth}, nil
}

func (f *Fake) CreatePixmap(width, height int) (platform.PixmapID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreatePixmap"); err != nil {
		return 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("bad size %dx%d", width, height)
	}
	return f.alloc(width, height), nil
}

func (f *Fake) FreePixmap(id platform.PixmapID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("FreePixmap"); err != nil {
		return err
	}
	if _, err := f.lookup(id); err != nil {
		return err
	}
	delete(f.Pixmaps, id)
	f.Freed = append(f.Freed, id)
	return nil
}

func (f *Fake) FillColor(id platform.PixmapID, rect platform.Rect, r, g, b uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("FillColor"); err != nil {
		return err
	}
	p, err := f.lookup(id)
	if err != nil {
		return err
	}
	px := []byte{b, g, r, 0xff}
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			p.set(x, y, px)
		}
	}
	return nil
}

func (f *Fake) PutImage(id platform.PixmapID, x, y, width, height int, pix []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("PutImage"); err != nil {
		return err
	}
	p, err := f.lookup(id)
	if err != nil {
		return err
	}
	if len(pix) < width*height*4 {
		return fmt.Errorf("short image: %d bytes for %dx%d", len(pix), width, height)
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := (row*width + col) * 4
			p.set(x+col, y+row, pix[i:i+4])
		}
	}
	return nil
}

func (f *Fake) FillTiled(id, tile platform.PixmapID, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("FillTiled"); err != nil {
		return err
	}
	p, err := f.lookup(id)
	if err != nil {
		return err
	}
	t, err := f.lookup(tile)
	if err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := ((y%t.Height)*t.Width + x%t.Width) * 4
			p.set(x, y, t.Pix[i:i+4])
		}
	}
	return nil
}

func (f *Fake) Publish(id platform.PixmapID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Publish"); err != nil {
		return err
	}
	if _, err := f.lookup(id); err != nil {
		return err
	}
	f.Published, f.HasPublished = id, true
	return nil
}

func (f *Fake) RetainPermanent() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("RetainPermanent"); err != nil {
		return err
	}
	f.Retained = true
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "Close")
	f.Closed = true
	return nil
}

// Called reports whether name was invoked.
func (f *Fake) Called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c == name {
			return true
		}
	}
	return false
}
