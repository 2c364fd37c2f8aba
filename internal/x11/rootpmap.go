package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Root background properties. _XROOTPMAP_ID is what compositors and
// pseudo-transparent terminals read; _XSETROOT_ID is the older xsetroot name.
const (
	AtomRootPixmap  = "_XROOTPMAP_ID"
	AtomSetrootID   = "_XSETROOT_ID"
	typePixmap      = "PIXMAP"
	pixmapPropBytes = 4
)

// RootPixmap returns the pixmap published in _XROOTPMAP_ID. The property must
// be of type PIXMAP, format 32, with exactly one item; anything else is
// treated as absent rather than an error.
func (c *Connection) RootPixmap() (xproto.Pixmap, bool, error) {
	atom, err := xprop.Atm(c.XUtil, AtomRootPixmap)
	if err != nil {
		return 0, false, fmt.Errorf("failed to intern %s: %w", AtomRootPixmap, err)
	}

	reply, err := xproto.GetProperty(c.XUtil.Conn(), false, c.Root, atom,
		xproto.AtomPixmap, 0, 1).Reply()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read %s: %w", AtomRootPixmap, err)
	}
	if reply.Type != xproto.AtomPixmap || reply.Format != 32 || reply.ValueLen != 1 || len(reply.Value) < pixmapPropBytes {
		return 0, false, nil
	}

	pix := xproto.Pixmap(xgb.Get32(reply.Value))
	if pix == 0 {
		return 0, false, nil
	}
	return pix, true, nil
}

// PublishRootPixmap writes pix into both root background properties.
func (c *Connection) PublishRootPixmap(pix xproto.Pixmap) error {
	for _, name := range []string{AtomSetrootID, AtomRootPixmap} {
		if err := xprop.ChangeProp32(c.XUtil, c.Root, name, typePixmap, uint(pix)); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	return nil
}

// SetRootBackground makes pix the root window background and repaints the
// whole root window with it.
func (c *Connection) SetRootBackground(pix xproto.Pixmap) error {
	conn := c.XUtil.Conn()
	err := xproto.ChangeWindowAttributesChecked(conn, c.Root, xproto.CwBackPixmap, []uint32{uint32(pix)}).Check()
	if err != nil {
		return fmt.Errorf("failed to set root background: %w", err)
	}
	if err := xproto.ClearAreaChecked(conn, false, c.Root, 0, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("failed to clear root window: %w", err)
	}
	return nil
}

// RetainPermanent keeps every resource this client created alive after the
// connection closes.
func (c *Connection) RetainPermanent() error {
	err := xproto.SetCloseDownModeChecked(c.XUtil.Conn(), xproto.CloseDownRetainPermanent).Check()
	if err != nil {
		return fmt.Errorf("failed to set close-down mode: %w", err)
	}
	return nil
}
