// Package imaging holds the BGRA pixel buffer and the gated decode pipeline
// that produces it from untrusted image files.
package imaging

import (
	"errors"
	"fmt"
	"math"
)

// BytesPerPixel is fixed: B, G, R, A at 8 bits each.
const BytesPerPixel = 4

// DefaultMaxPixels caps decoded images at 256 megapixels (1 GiB of BGRA).
const DefaultMaxPixels = 1 << 28

var (
	ErrEmptyImage        = errors.New("image has zero width or height")
	ErrDimensionOverflow = errors.New("image dimensions overflow")
	ErrSizeOverflow      = errors.New("image size overflow")
	ErrTooLarge          = errors.New("image exceeds pixel limit")
)

// Size is a validated pair of image dimensions. Only CheckedSize produces one
// with non-zero fields.
type Size struct {
	Width  int
	Height int
	Pixels uint
	Bytes  uint
}

// CheckedSize validates dimensions taken from untrusted input. The pixel count
// is computed in the platform size type and verified by dividing back, the
// byte count is verified the same way, and the total must be addressable as
// a Go slice. maxPixels of 0 disables the ceiling.
func CheckedSize(width, height uint64, maxPixels uint64) (Size, error) {
	if width == 0 || height == 0 {
		return Size{}, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return Size{}, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}

	w, h := uint(width), uint(height)
	pixels := w * h
	if pixels/w != h {
		return Size{}, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}
	bytes := pixels * BytesPerPixel
	if bytes/BytesPerPixel != pixels || bytes > math.MaxInt {
		return Size{}, fmt.Errorf("%w: %dx%d", ErrSizeOverflow, width, height)
	}
	if maxPixels > 0 && uint64(pixels) > maxPixels {
		return Size{}, fmt.Errorf("%w: %dx%d > %d pixels", ErrTooLarge, width, height, maxPixels)
	}

	return Size{
		Width:  int(w),
		Height: int(h),
		Pixels: pixels,
		Bytes:  bytes,
	}, nil
}
