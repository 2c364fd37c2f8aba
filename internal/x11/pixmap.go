package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// CreatePixmap allocates a pixmap of the given size at the screen's default
// depth.
func (c *Connection) CreatePixmap(width, height uint16) (xproto.Pixmap, error) {
	conn := c.XUtil.Conn()
	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate pixmap id: %w", err)
	}
	err = xproto.CreatePixmapChecked(conn, c.Depth(), pix, xproto.Drawable(c.Root), width, height).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create %dx%d pixmap: %w", width, height, err)
	}
	return pix, nil
}

// FreePixmap releases pix on the server.
func (c *Connection) FreePixmap(pix xproto.Pixmap) error {
	if err := xproto.FreePixmapChecked(c.XUtil.Conn(), pix).Check(); err != nil {
		return fmt.Errorf("failed to free pixmap 0x%x: %w", uint32(pix), err)
	}
	return nil
}

// PixmapGeometry returns the size and depth of pix.
func (c *Connection) PixmapGeometry(pix xproto.Pixmap) (width, height uint16, depth byte, err error) {
	reply, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(pix)).Reply()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to query pixmap 0x%x: %w", uint32(pix), err)
	}
	return reply.Width, reply.Height, reply.Depth, nil
}

// AllocPixel resolves a 16-bit-per-channel colour to a pixel value in the
// default colormap.
func (c *Connection) AllocPixel(r, g, b uint16) (uint32, error) {
	reply, err := xproto.AllocColor(c.XUtil.Conn(), c.Screen.DefaultColormap, r, g, b).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate colour #%04x%04x%04x: %w", r, g, b, err)
	}
	return reply.Pixel, nil
}

// FillRect paints a solid rectangle of pixel into drawable.
func (c *Connection) FillRect(drawable xproto.Drawable, pixel uint32, x, y int16, width, height uint16) error {
	return c.withGC(drawable, xproto.GcForeground, []uint32{pixel}, func(gc xproto.Gcontext) error {
		rect := xproto.Rectangle{X: x, Y: y, Width: width, Height: height}
		return xproto.PolyFillRectangleChecked(c.XUtil.Conn(), drawable, gc, []xproto.Rectangle{rect}).Check()
	})
}

// FillTiled repeats tile across a width by height area of drawable starting
// at the origin.
func (c *Connection) FillTiled(drawable xproto.Drawable, tile xproto.Pixmap, width, height uint16) error {
	mask := uint32(xproto.GcFillStyle | xproto.GcTile | xproto.GcTileStippleOriginX | xproto.GcTileStippleOriginY)
	values := []uint32{xproto.FillStyleTiled, uint32(tile), 0, 0}
	return c.withGC(drawable, mask, values, func(gc xproto.Gcontext) error {
		rect := xproto.Rectangle{Width: width, Height: height}
		return xproto.PolyFillRectangleChecked(c.XUtil.Conn(), drawable, gc, []xproto.Rectangle{rect}).Check()
	})
}

func (c *Connection) withGC(drawable xproto.Drawable, mask uint32, values []uint32, fn func(xproto.Gcontext) error) error {
	conn := c.XUtil.Conn()
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return fmt.Errorf("failed to allocate gc id: %w", err)
	}
	if err := xproto.CreateGCChecked(conn, gc, drawable, mask, values).Check(); err != nil {
		return fmt.Errorf("failed to create gc: %w", err)
	}
	defer xproto.FreeGC(conn, gc)

	if err := fn(gc); err != nil {
		return fmt.Errorf("failed to fill drawable: %w", err)
	}
	return nil
}
