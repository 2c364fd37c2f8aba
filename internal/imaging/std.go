package imaging

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// StdCodec decodes every format registered with the image package.
type StdCodec struct{}

var _ Codec = StdCodec{}

func (StdCodec) Name() string { return "image" }

func (StdCodec) Available() error { return nil }

func (StdCodec) DecodeConfig(r io.Reader) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(r)
	return cfg, err
}

func (StdCodec) Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}
