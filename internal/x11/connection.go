package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	Screen *xproto.ScreenInfo
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("cannot open display %q: %w", display, err)
	}

	return &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		Screen: xu.Screen(),
	}, nil
}

// ScreenSize returns the root window size in pixels. The setup values are
// preferred; the root geometry is queried if they are zero.
func (c *Connection) ScreenSize() (width, height int) {
	width, height = int(c.Screen.WidthInPixels), int(c.Screen.HeightInPixels)
	if width == 0 || height == 0 {
		rootRect := xwindow.RootGeometry(c.XUtil)
		width, height = rootRect.Width(), rootRect.Height()
	}
	return width, height
}

// Depth returns the default depth of the screen.
func (c *Connection) Depth() byte {
	return c.Screen.RootDepth
}

// Sync waits for the server to process every request sent so far.
func (c *Connection) Sync() {
	c.XUtil.Conn().Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
