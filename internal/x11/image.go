package x11

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

var ErrUnsupportedVisual = errors.New("unsupported pixmap format")

// PutImage uploads a packed 32-bit BGRA buffer into pix with its top-left
// corner at (x, y). xgraphics splits the upload into requests that fit the
// server's limit.
func (c *Connection) PutImage(pix xproto.Pixmap, x, y int, width, height int, data []byte) error {
	if err := c.checkImageFormat(); err != nil {
		return err
	}
	if len(data) < width*height*4 {
		return fmt.Errorf("image buffer too short: %d bytes for %dx%d", len(data), width, height)
	}

	ximg := &xgraphics.Image{
		X:      c.XUtil,
		Pixmap: pix,
		Pix:    data,
		Stride: width * 4,
		Rect:   image.Rect(x, y, x+width, y+height),
	}
	if err := ximg.XDrawChecked(); err != nil {
		return fmt.Errorf("failed to upload %dx%d image: %w", width, height, err)
	}
	return nil
}

// checkImageFormat verifies the server stores default-depth pixels in 32
// bits, little-endian, which is the layout of an imaging.PixelBuffer.
func (c *Connection) checkImageFormat() error {
	setup := c.XUtil.Setup()
	if setup.ImageByteOrder != xproto.ImageOrderLSBFirst {
		return fmt.Errorf("%w: server image byte order is MSB first", ErrUnsupportedVisual)
	}
	for _, f := range setup.PixmapFormats {
		if f.Depth != c.Depth() {
			continue
		}
		if f.BitsPerPixel != 32 {
			return fmt.Errorf("%w: depth %d uses %d bits per pixel", ErrUnsupportedVisual, f.Depth, f.BitsPerPixel)
		}
		return nil
	}
	return fmt.Errorf("%w: no pixmap format for depth %d", ErrUnsupportedVisual, c.Depth())
}
