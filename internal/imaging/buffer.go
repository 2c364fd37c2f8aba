package imaging

import (
	"image"
	"image/color"
)

// PixelBuffer is a contiguous premultiplied BGRA image, 8 bits per channel.
// len(Pix) is always Width*Height*4 for buffers built by NewPixelBuffer.
type PixelBuffer struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

var _ image.Image = (*PixelBuffer)(nil)

// NewPixelBuffer allocates a zeroed buffer for a validated size at origin (0,0).
func NewPixelBuffer(size Size) *PixelBuffer {
	return NewPixelBufferAt(size, image.Point{})
}

// NewPixelBufferAt allocates a buffer whose bounds start at origin. Canvases
// use this so drawing can happen in screen coordinates.
func NewPixelBufferAt(size Size, origin image.Point) *PixelBuffer {
	return &PixelBuffer{
		Pix:    make([]uint8, size.Bytes),
		Stride: size.Width * BytesPerPixel,
		Rect:   image.Rect(origin.X, origin.Y, origin.X+size.Width, origin.Y+size.Height),
	}
}

func (b *PixelBuffer) Width() int  { return b.Rect.Dx() }
func (b *PixelBuffer) Height() int { return b.Rect.Dy() }

func (b *PixelBuffer) Bounds() image.Rectangle { return b.Rect }

func (b *PixelBuffer) ColorModel() color.Model { return color.RGBAModel }

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *PixelBuffer) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x-b.Rect.Min.X)*BytesPerPixel
}

func (b *PixelBuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return color.RGBA{}
	}
	i := b.PixOffset(x, y)
	return color.RGBA{R: b.Pix[i+2], G: b.Pix[i+1], B: b.Pix[i], A: b.Pix[i+3]}
}

func (b *PixelBuffer) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	i := b.PixOffset(x, y)
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	b.Pix[i+0] = rgba.B
	b.Pix[i+1] = rgba.G
	b.Pix[i+2] = rgba.R
	b.Pix[i+3] = rgba.A
}

// Fill paints every pixel with c.
func (b *PixelBuffer) Fill(c color.RGBA) {
	if len(b.Pix) < BytesPerPixel {
		return
	}
	px := [BytesPerPixel]uint8{c.B, c.G, c.R, c.A}
	copy(b.Pix, px[:])
	// Double the filled prefix until the buffer is covered.
	for filled := BytesPerPixel; filled < len(b.Pix); filled *= 2 {
		copy(b.Pix[filled:], b.Pix[:filled])
	}
}

// Channels returns the buffer as an *image.RGBA sharing the same memory.
// The first and third channels are swapped relative to image.RGBA, which is
// harmless for operations that treat channels independently (scaling,
// Porter-Duff compositing) and lets them use the standard fast paths.
// Colours written through the view must be swapped the same way; see SwapRB.
func (b *PixelBuffer) Channels() *image.RGBA {
	return &image.RGBA{Pix: b.Pix, Stride: b.Stride, Rect: b.Rect}
}

// SwapRB converts between RGBA and BGRA channel order.
func SwapRB(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.B, G: c.G, B: c.R, A: c.A}
}
