package imaging

import (
	"image"
	"image/color"
	"runtime"
	"sync"
)

// Workers returns the number of conversion workers for a requested thread
// count: 0 means one per CPU, and the result is never below 1.
func Workers(threads int) int {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}

// Convert copies src into dst as premultiplied BGRA. dst must have the same
// width and height as src; rows are split into bands across workers.
func Convert(dst *PixelBuffer, src image.Image, threads int) {
	sb := src.Bounds()
	rows := sb.Dy()
	if rows <= 0 || sb.Dx() <= 0 {
		return
	}

	workers := Workers(threads)
	if workers > rows {
		workers = rows
	}
	band := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < rows; start += band {
		end := start + band
		if end > rows {
			end = rows
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			convertRows(dst, src, y0, y1)
		}(start, end)
	}
	wg.Wait()
}

// convertRows converts source rows [y0, y1) relative to the bounds origin.
func convertRows(dst *PixelBuffer, src image.Image, y0, y1 int) {
	sb := src.Bounds()
	width := sb.Dx()

	for row := y0; row < y1; row++ {
		sy := sb.Min.Y + row
		out := dst.Pix[row*dst.Stride : row*dst.Stride+width*BytesPerPixel]

		switch s := src.(type) {
		case *image.RGBA:
			in := s.Pix[s.PixOffset(sb.Min.X, sy):]
			for x := 0; x < width; x++ {
				i := x * 4
				out[i+0] = in[i+2]
				out[i+1] = in[i+1]
				out[i+2] = in[i+0]
				out[i+3] = in[i+3]
			}
		case *image.NRGBA:
			in := s.Pix[s.PixOffset(sb.Min.X, sy):]
			for x := 0; x < width; x++ {
				i := x * 4
				a := uint32(in[i+3])
				out[i+0] = uint8(uint32(in[i+2]) * a / 0xff)
				out[i+1] = uint8(uint32(in[i+1]) * a / 0xff)
				out[i+2] = uint8(uint32(in[i+0]) * a / 0xff)
				out[i+3] = uint8(a)
			}
		case *image.YCbCr:
			for x := 0; x < width; x++ {
				c := s.YCbCrAt(sb.Min.X+x, sy)
				r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				i := x * 4
				out[i+0] = b
				out[i+1] = g
				out[i+2] = r
				out[i+3] = 0xff
			}
		default:
			for x := 0; x < width; x++ {
				r, g, b, a := src.At(sb.Min.X+x, sy).RGBA()
				i := x * 4
				out[i+0] = uint8(b >> 8)
				out[i+1] = uint8(g >> 8)
				out[i+2] = uint8(r >> 8)
				out[i+3] = uint8(a >> 8)
			}
		}
	}
}
