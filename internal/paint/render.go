package paint

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/1broseidon/rootwall/internal/imaging"
	"github.com/1broseidon/rootwall/internal/layout"
	"github.com/1broseidon/rootwall/internal/platform"
	"github.com/1broseidon/rootwall/internal/surface"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

// Renderer draws a placed image onto a prepared surface.
type Renderer struct {
	Backend platform.Backend
	Scaler  draw.Scaler
}

// Render draws img onto surf according to res. The surface must already be
// filled with bg.
func (r *Renderer) Render(surf surface.Surface, res layout.Result, img *imaging.PixelBuffer, bg wallpaper.RGB) error {
	if res.Tiled {
		return r.tile(surf, img, bg)
	}
	return r.place(surf, res, img, bg)
}

// place composes the on-screen part of the destination into a clip-sized
// canvas and uploads it.
func (r *Renderer) place(surf surface.Surface, res layout.Result, img *imaging.PixelBuffer, bg wallpaper.RGB) error {
	clip := res.Visible()
	if clip.Empty() {
		return nil
	}
	size, err := imaging.CheckedSize(uint64(clip.Width), uint64(clip.Height), 0)
	if err != nil {
		return fmt.Errorf("canvas %dx%d: %w", clip.Width, clip.Height, err)
	}
	canvas := imaging.NewPixelBufferAt(size, image.Pt(clip.X, clip.Y))
	canvas.Fill(opaque(bg))

	dest := image.Rect(res.Dest.X, res.Dest.Y, res.Dest.X+res.Dest.Width, res.Dest.Y+res.Dest.Height)
	r.compose(canvas, dest, img)

	if err := r.Backend.PutImage(surf.ID, clip.X, clip.Y, clip.Width, clip.Height, canvas.Pix); err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	return nil
}

// tile uploads the image, composed over bg, into an image-sized pixmap and
// repeats it across the whole surface from the origin.
func (r *Renderer) tile(surf surface.Surface, img *imaging.PixelBuffer, bg wallpaper.RGB) error {
	size, err := imaging.CheckedSize(uint64(img.Width()), uint64(img.Height()), 0)
	if err != nil {
		return fmt.Errorf("tile %dx%d: %w", img.Width(), img.Height(), err)
	}
	canvas := imaging.NewPixelBuffer(size)
	canvas.Fill(opaque(bg))
	r.compose(canvas, canvas.Bounds(), img)

	tile, err := r.Backend.CreatePixmap(size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("failed to create tile: %w", err)
	}
	defer r.Backend.FreePixmap(tile)

	if err := r.Backend.PutImage(tile, 0, 0, size.Width, size.Height, canvas.Pix); err != nil {
		return fmt.Errorf("failed to upload tile: %w", err)
	}
	if err := r.Backend.FillTiled(surf.ID, tile, surf.Width, surf.Height); err != nil {
		return fmt.Errorf("failed to tile surface: %w", err)
	}
	return nil
}

// compose draws img over canvas into dest, scaling when the sizes differ.
// Both buffers are viewed through Channels so the BGRA order is preserved.
func (r *Renderer) compose(canvas *imaging.PixelBuffer, dest image.Rectangle, img *imaging.PixelBuffer) {
	dst, src := canvas.Channels(), img.Channels()
	if dest.Dx() == img.Width() && dest.Dy() == img.Height() {
		draw.Draw(dst, dest, src, src.Bounds().Min, draw.Over)
		return
	}
	scaler := r.Scaler
	if scaler == nil {
		scaler = draw.BiLinear
	}
	scaler.Scale(dst, dest, src, src.Bounds(), draw.Over, nil)
}

func opaque(c wallpaper.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
