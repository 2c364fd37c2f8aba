// Package avif provides the AVIF codec backends for the imaging decoder.
package avif

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	goavif "github.com/gen2brain/avif"

	"github.com/1broseidon/rootwall/internal/imaging"
)

// Backend names accepted in settings. The decoder never switches between
// them at runtime: a backend that cannot run fails before any pixels are read.
const (
	// BackendSystem decodes with the system libavif.
	BackendSystem = "system"
	// BackendBundled decodes with the WebAssembly build of libavif and dav1d
	// embedded in the binary. It is only in effect when libavif is not
	// loaded, which a build with -tags nodynamic guarantees.
	BackendBundled = "bundled"
	// DefaultBackend is used when no backend is configured.
	DefaultBackend = BackendSystem
)

var ErrUnknownBackend = errors.New("unknown avif backend")

// dynamic reports whether the system library was loaded. Swapped in tests.
var dynamic = goavif.Dynamic

// Codec decodes AVIF still images through a chosen backend.
type Codec struct {
	backend string
}

var _ imaging.Codec = (*Codec)(nil)

// NewCodec returns a codec bound to backend. An empty name selects DefaultBackend.
func NewCodec(backend string) (*Codec, error) {
	switch backend {
	case "":
		backend = DefaultBackend
	case BackendSystem, BackendBundled:
	default:
		return nil, fmt.Errorf("%w: %q (allowed: %s, %s)", ErrUnknownBackend, backend, BackendSystem, BackendBundled)
	}
	return &Codec{backend: backend}, nil
}

func (c *Codec) Name() string { return "avif(" + c.backend + ")" }

// Backend returns the configured backend name.
func (c *Codec) Backend() string { return c.backend }

// Available fails when the configured backend is not the one the decoder
// would use in this process.
func (c *Codec) Available() error {
	err := dynamic()
	switch c.backend {
	case BackendSystem:
		if err != nil {
			return fmt.Errorf("system libavif not available (set avif.backend: %s to use the embedded decoder): %w", BackendBundled, err)
		}
	case BackendBundled:
		if err == nil {
			return fmt.Errorf("system libavif is loaded; rebuild with -tags nodynamic to use the %s decoder", BackendBundled)
		}
	}
	return nil
}

func (c *Codec) DecodeConfig(r io.Reader) (image.Config, error) {
	return goavif.DecodeConfig(r)
}

// Decode returns the first frame only; animation is not supported.
func (c *Codec) Decode(r io.Reader) (image.Image, error) {
	return goavif.Decode(r)
}

// IsAVIF reports whether path names an AVIF file by extension.
func IsAVIF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".avif")
}
