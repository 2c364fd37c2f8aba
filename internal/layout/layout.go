package layout

import (
	"errors"
	"fmt"

	"github.com/1broseidon/rootwall/internal/wallpaper"
)

var ErrUnknownMode = errors.New("unhandled mode")

// Size is a width and height in pixels.
type Size struct {
	Width  int
	Height int
}

// Point is an x/y pair, used for offsets.
type Point struct {
	X int
	Y int
}

// Rect represents a destination position and size in screen coordinates
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of r and o, or a zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Result is the placement computed for one render.
//
// For the simple modes Dest is where the (possibly scaled) image lands; it
// may extend past the screen and is clipped by the renderer. For tile mode
// Dest is the tile at (0,0) with the image's native size and Tiled is set:
// the tile is repeated across the whole screen.
type Result struct {
	Mode   wallpaper.Mode
	Screen Size
	Dest   Rect
	Tiled  bool
}

// Visible returns the part of Dest that lands on the screen. For tile mode
// the whole screen is visible.
func (r Result) Visible() Rect {
	screen := Rect{Width: r.Screen.Width, Height: r.Screen.Height}
	if r.Tiled {
		return screen
	}
	return r.Dest.Intersect(screen)
}

// Compute places an image of size img on a screen of size screen. Offsets
// only apply to center and fill.
func Compute(mode wallpaper.Mode, img, screen Size, offset Point) (Result, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return Result{}, fmt.Errorf("invalid image size %dx%d", img.Width, img.Height)
	}
	if screen.Width <= 0 || screen.Height <= 0 {
		return Result{}, fmt.Errorf("invalid screen size %dx%d", screen.Width, screen.Height)
	}

	res := Result{Mode: mode, Screen: screen}
	switch mode {
	case wallpaper.ModeCenter:
		res.Dest = center(img, screen, offset)
	case wallpaper.ModeFill:
		res.Dest = fill(img, screen, offset)
	case wallpaper.ModeMax:
		res.Dest = maxFit(img, screen)
	case wallpaper.ModeScale:
		res.Dest = Rect{X: 0, Y: 0, Width: screen.Width, Height: screen.Height}
	case wallpaper.ModeTile:
		res.Dest = Rect{X: 0, Y: 0, Width: img.Width, Height: img.Height}
		res.Tiled = true
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	return res, nil
}

// centered returns the origin that centres size within screen. Go integer
// division truncates toward zero, which matches the C behaviour for images
// larger than the screen.
func centered(size, screen Size) (int, int) {
	return (screen.Width - size.Width) / 2, (screen.Height - size.Height) / 2
}

func center(img, screen Size, offset Point) Rect {
	x, y := centered(img, screen)
	return Rect{X: x + offset.X, Y: y + offset.Y, Width: img.Width, Height: img.Height}
}

func fill(img, screen Size, offset Point) Rect {
	sx, sy := ratios(img, screen)
	size := scaled(img, max(sx, sy))
	// The exact product always covers the screen; only float rounding can
	// land a pixel short.
	size.Width = max(size.Width, screen.Width)
	size.Height = max(size.Height, screen.Height)
	x, y := centered(size, screen)
	return Rect{X: x + offset.X, Y: y + offset.Y, Width: size.Width, Height: size.Height}
}

func maxFit(img, screen Size) Rect {
	sx, sy := ratios(img, screen)
	size := scaled(img, min(sx, sy))
	size.Width = min(size.Width, screen.Width)
	size.Height = min(size.Height, screen.Height)
	x, y := centered(size, screen)
	return Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
}

func ratios(img, screen Size) (float64, float64) {
	return float64(screen.Width) / float64(img.Width), float64(screen.Height) / float64(img.Height)
}

// scaled multiplies first and truncates afterwards so both axes use the same
// rounding direction. Neither axis collapses below one pixel.
func scaled(img Size, scale float64) Size {
	return Size{
		Width:  max(1, int(float64(img.Width)*scale)),
		Height: max(1, int(float64(img.Height)*scale)),
	}
}
