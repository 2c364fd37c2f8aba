package platform

import "errors"

// ErrUnsupported is returned where no display backend exists for the OS.
var ErrUnsupported = errors.New("no display backend for this platform")

// PixmapID is a platform-neutral off-screen surface identifier.
type PixmapID uint32

// Rect describes a rectangular region in surface coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Geometry is the size and depth of an existing surface.
type Geometry struct {
	Width  int
	Height int
	Depth  int
}

// Screen describes the default screen of the display.
type Screen struct {
	Width  int
	Height int
	Depth  int
}

// Backend abstracts the display-server operations needed to paint and publish
// a root background.
type Backend interface {
	Screen() (Screen, error)
	// PublishedPixmap returns the surface currently advertised as the root
	// background, if any.
	PublishedPixmap() (PixmapID, bool, error)
	Geometry(id PixmapID) (Geometry, error)
	CreatePixmap(width, height int) (PixmapID, error)
	FreePixmap(id PixmapID) error
	// FillColor paints rect of id with an 8-bit RGB colour.
	FillColor(id PixmapID, rect Rect, r, g, b uint8) error
	// PutImage uploads packed BGRA rows of width*4 bytes to id at (x, y).
	PutImage(id PixmapID, x, y, width, height int, pix []byte) error
	// FillTiled repeats tile across a width by height area of id.
	FillTiled(id, tile PixmapID, width, height int) error
	// Publish advertises id as the root background and repaints the root.
	Publish(id PixmapID) error
	// RetainPermanent keeps created surfaces alive after Close.
	RetainPermanent() error
	Close() error
}
