//go:build linux

package platform

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/rootwall/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Connect opens display (or $DISPLAY when empty) and returns a backend for it.
func Connect(display string) (Backend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

func (b *LinuxBackend) Screen() (Screen, error) {
	w, h := b.conn.ScreenSize()
	if w <= 0 || h <= 0 {
		return Screen{}, fmt.Errorf("display reports an empty screen (%dx%d)", w, h)
	}
	return Screen{Width: w, Height: h, Depth: int(b.conn.Depth())}, nil
}

func (b *LinuxBackend) PublishedPixmap() (PixmapID, bool, error) {
	pix, ok, err := b.conn.RootPixmap()
	return PixmapID(pix), ok, err
}

func (b *LinuxBackend) Geometry(id PixmapID) (Geometry, error) {
	w, h, depth, err := b.conn.PixmapGeometry(xproto.Pixmap(id))
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{Width: int(w), Height: int(h), Depth: int(depth)}, nil
}

func (b *LinuxBackend) CreatePixmap(width, height int) (PixmapID, error) {
	w, h, err := dims(width, height)
	if err != nil {
		return 0, err
	}
	pix, err := b.conn.CreatePixmap(w, h)
	return PixmapID(pix), err
}

func (b *LinuxBackend) FreePixmap(id PixmapID) error {
	return b.conn.FreePixmap(xproto.Pixmap(id))
}

func (b *LinuxBackend) FillColor(id PixmapID, rect Rect, r, g, bl uint8) error {
	w, h, err := dims(rect.Width, rect.Height)
	if err != nil {
		return err
	}
	x, y, err := origin(rect.X, rect.Y)
	if err != nil {
		return err
	}
	pixel, err := b.conn.AllocPixel(uint16(r)*257, uint16(g)*257, uint16(bl)*257)
	if err != nil {
		return err
	}
	return b.conn.FillRect(xproto.Drawable(id), pixel, x, y, w, h)
}

func (b *LinuxBackend) PutImage(id PixmapID, x, y, width, height int, pix []byte) error {
	if _, _, err := dims(width, height); err != nil {
		return err
	}
	if _, _, err := origin(x, y); err != nil {
		return err
	}
	return b.conn.PutImage(xproto.Pixmap(id), x, y, width, height, pix)
}

func (b *LinuxBackend) FillTiled(id, tile PixmapID, width, height int) error {
	w, h, err := dims(width, height)
	if err != nil {
		return err
	}
	return b.conn.FillTiled(xproto.Drawable(id), xproto.Pixmap(tile), w, h)
}

func (b *LinuxBackend) Publish(id PixmapID) error {
	pix := xproto.Pixmap(id)
	if err := b.conn.PublishRootPixmap(pix); err != nil {
		return err
	}
	if err := b.conn.SetRootBackground(pix); err != nil {
		return err
	}
	b.conn.Sync()
	return nil
}

func (b *LinuxBackend) RetainPermanent() error {
	return b.conn.RetainPermanent()
}

func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Sync()
		b.conn.Close()
	}
	return nil
}

// dims narrows a size to the 16-bit fields of the X protocol.
func dims(width, height int) (uint16, uint16, error) {
	if width <= 0 || height <= 0 || width > math.MaxUint16 || height > math.MaxUint16 {
		return 0, 0, fmt.Errorf("size %dx%d outside X11 limits", width, height)
	}
	return uint16(width), uint16(height), nil
}

func origin(x, y int) (int16, int16, error) {
	if x < math.MinInt16 || x > math.MaxInt16 || y < math.MinInt16 || y > math.MaxInt16 {
		return 0, 0, fmt.Errorf("origin (%d,%d) outside X11 limits", x, y)
	}
	return int16(x), int16(y), nil
}
