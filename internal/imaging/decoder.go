package imaging

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Decode stages, in the order they run.
const (
	StageAcquire = "acquire"
	StageBackend = "backend"
	StageParse   = "parse"
	StageGate    = "gate"
	StageDecode  = "decode"
)

// StageError reports which decode stage failed.
type StageError struct {
	Codec string
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Codec, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Codec is a still-image decoding backend.
type Codec interface {
	Name() string
	// Available reports whether the backend can run in this process.
	Available() error
	// DecodeConfig reads container metadata without decoding pixels.
	DecodeConfig(r io.Reader) (image.Config, error)
	// Decode returns the first frame.
	Decode(r io.Reader) (image.Image, error)
}

// Decoder runs a Codec behind the size gate. Dimensions are validated from
// metadata before any pixels are decoded, and again on the decoded frame
// before the BGRA buffer is allocated.
type Decoder struct {
	Codec     Codec
	Threads   int
	MaxPixels uint64
}

// DecodeFile decodes the image at path into a new PixelBuffer owned by the caller.
func (d *Decoder) DecodeFile(path string) (*PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, d.stageErr(StageAcquire, err)
	}
	defer f.Close()

	return d.Decode(f)
}

// Decode decodes from a seekable reader. The reader is rewound once between
// the metadata read and the pixel decode.
func (d *Decoder) Decode(r io.ReadSeeker) (*PixelBuffer, error) {
	if d.Codec == nil {
		return nil, d.stageErr(StageAcquire, errors.New("no codec configured"))
	}
	if err := d.Codec.Available(); err != nil {
		return nil, d.stageErr(StageBackend, err)
	}

	meta, err := d.Codec.DecodeConfig(r)
	if err != nil {
		return nil, d.stageErr(StageParse, err)
	}
	if meta.Width < 0 || meta.Height < 0 {
		return nil, d.stageErr(StageGate, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, meta.Width, meta.Height))
	}
	size, err := CheckedSize(uint64(meta.Width), uint64(meta.Height), d.MaxPixels)
	if err != nil {
		return nil, d.stageErr(StageGate, err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, d.stageErr(StageAcquire, err)
	}
	img, err := d.Codec.Decode(r)
	if err != nil {
		return nil, d.stageErr(StageDecode, err)
	}

	// Formats such as GIF report a logical screen in their metadata while the
	// first frame may cover only part of it.
	b := img.Bounds()
	if _, err := CheckedSize(uint64(max(b.Dx(), 0)), uint64(max(b.Dy(), 0)), d.MaxPixels); err != nil {
		return nil, d.stageErr(StageGate, err)
	}
	if b.Dx() > size.Width || b.Dy() > size.Height {
		return nil, d.stageErr(StageGate, fmt.Errorf("%w: decoded %dx%d, header %dx%d",
			ErrDimensionOverflow, b.Dx(), b.Dy(), size.Width, size.Height))
	}
	if b != image.Rect(0, 0, size.Width, size.Height) {
		img = frameCanvas(img, size)
	}

	buf := NewPixelBuffer(size)
	Convert(buf, img, d.Threads)
	return buf, nil
}

// frameCanvas places frame on a transparent canvas of the full image size.
// Parts of the frame outside the canvas are clipped.
func frameCanvas(frame image.Image, size Size) image.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
	return canvas
}

func (d *Decoder) stageErr(stage string, err error) error {
	name := "image"
	if d.Codec != nil {
		name = d.Codec.Name()
	}
	return &StageError{Codec: name, Stage: stage, Err: err}
}
