package paint

import (
	"log/slog"

	"github.com/1broseidon/rootwall/internal/avif"
	"github.com/1broseidon/rootwall/internal/imaging"
)

// LoadOptions controls how images are decoded.
type LoadOptions struct {
	// AVIFBackend is avif.BackendSystem or avif.BackendBundled; empty
	// selects avif.DefaultBackend.
	AVIFBackend string
	// Threads bounds the conversion workers; 0 uses every CPU.
	Threads int
	// MaxPixels caps decoded images; 0 uses imaging.DefaultMaxPixels.
	MaxPixels uint64
	// Logger reports the codec chosen for each file. Nil discards.
	Logger *slog.Logger
}

// LoadImage decodes path into a BGRA buffer. AVIF files use the AVIF codec,
// everything else the formats registered with the image package.
func LoadImage(path string, opts LoadOptions) (*imaging.PixelBuffer, error) {
	var codec imaging.Codec = imaging.StdCodec{}
	if avif.IsAVIF(path) {
		c, err := avif.NewCodec(opts.AVIFBackend)
		if err != nil {
			return nil, err
		}
		codec = c
		if opts.Logger != nil {
			opts.Logger.Info("decoding avif", "path", path, "backend", c.Backend())
		}
	}
	maxPixels := opts.MaxPixels
	if maxPixels == 0 {
		maxPixels = imaging.DefaultMaxPixels
	}
	dec := &imaging.Decoder{Codec: codec, Threads: opts.Threads, MaxPixels: maxPixels}
	return dec.DecodeFile(path)
}

// Loader returns a LoadImage bound to opts.
func Loader(opts LoadOptions) func(string) (*imaging.PixelBuffer, error) {
	return func(path string) (*imaging.PixelBuffer, error) {
		return LoadImage(path, opts)
	}
}
