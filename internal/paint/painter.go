// Package paint renders a wallpaper configuration onto the root window: it
// decodes the image, prepares the root surface, draws the placed image, and
// publishes the result.
package paint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/image/draw"

	"github.com/1broseidon/rootwall/internal/imaging"
	"github.com/1broseidon/rootwall/internal/layout"
	"github.com/1broseidon/rootwall/internal/platform"
	"github.com/1broseidon/rootwall/internal/surface"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

// ConnectFunc opens a display backend.
type ConnectFunc func(display string) (platform.Backend, error)

// LoadFunc decodes an image file.
type LoadFunc func(path string) (*imaging.PixelBuffer, error)

// Painter runs the full apply pipeline.
type Painter struct {
	Connect ConnectFunc
	Load    LoadFunc
	// Display is passed to Connect; empty means $DISPLAY.
	Display string
	Scaler  draw.Scaler
	Logger  *slog.Logger
}

// Report summarizes one successful apply.
type Report struct {
	Mode     wallpaper.Mode
	Image    layout.Size
	Screen   layout.Size
	Dest     layout.Rect
	Pixmap   platform.PixmapID
	Reused   bool
	Duration time.Duration
}

// Status describes the currently published root background.
type Status struct {
	Published bool
	Pixmap    platform.PixmapID
	Width     int
	Height    int
	Screen    layout.Size
}

func (p *Painter) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}

// Apply paints cfg onto the root window. The image is decoded before the
// display is touched, so a bad file leaves the current background alone.
func (p *Painter) Apply(ctx context.Context, cfg *wallpaper.Config) (Report, error) {
	start := time.Now()
	log := p.logger()

	if cfg == nil {
		return Report{}, wallpaper.ErrMissingPath
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	bg, err := wallpaper.ParseColor(cfg.BackgroundColor)
	if err != nil {
		return Report{}, err
	}

	log.Debug("decoding image", "path", cfg.Path)
	img, err := p.Load(cfg.Path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load %s: %w", cfg.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	backend, err := p.Connect(p.Display)
	if err != nil {
		return Report{}, err
	}
	defer backend.Close()

	screen, err := backend.Screen()
	if err != nil {
		return Report{}, fmt.Errorf("failed to query screen: %w", err)
	}

	surfaces := surface.NewManager(backend, log)
	surf, err := surfaces.Prepare(screen, bg)
	if err != nil {
		return Report{}, err
	}

	res, err := layout.Compute(cfg.Mode,
		layout.Size{Width: img.Width(), Height: img.Height()},
		layout.Size{Width: screen.Width, Height: screen.Height},
		layout.Point{X: cfg.OffsetX, Y: cfg.OffsetY})
	if err != nil {
		return Report{}, err
	}

	renderer := &Renderer{Backend: backend, Scaler: p.Scaler}
	if err := renderer.Render(surf, res, img, bg); err != nil {
		return Report{}, err
	}

	if err := backend.Publish(surf.ID); err != nil {
		return Report{}, fmt.Errorf("failed to publish root pixmap: %w", err)
	}
	surfaces.Release(surf)
	if surf.Created {
		if err := backend.RetainPermanent(); err != nil {
			return Report{}, err
		}
	}

	report := Report{
		Mode:     cfg.Mode,
		Image:    layout.Size{Width: img.Width(), Height: img.Height()},
		Screen:   res.Screen,
		Dest:     res.Dest,
		Pixmap:   surf.ID,
		Reused:   !surf.Created,
		Duration: time.Since(start),
	}
	log.Info("wallpaper applied",
		"path", cfg.Path,
		"mode", report.Mode.String(),
		"image", fmt.Sprintf("%dx%d", report.Image.Width, report.Image.Height),
		"dest", fmt.Sprintf("%dx%d%+d%+d", report.Dest.Width, report.Dest.Height, report.Dest.X, report.Dest.Y),
		"pixmap", fmt.Sprintf("0x%x", uint32(report.Pixmap)),
		"reused", report.Reused,
		"duration", report.Duration)
	return report, nil
}

// Status reports the root pixmap currently published on the display.
func (p *Painter) Status(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}
	backend, err := p.Connect(p.Display)
	if err != nil {
		return Status{}, err
	}
	defer backend.Close()

	screen, err := backend.Screen()
	if err != nil {
		return Status{}, fmt.Errorf("failed to query screen: %w", err)
	}
	st := Status{Screen: layout.Size{Width: screen.Width, Height: screen.Height}}

	id, found, err := backend.PublishedPixmap()
	if err != nil {
		return Status{}, fmt.Errorf("failed to query root pixmap: %w", err)
	}
	if !found {
		return st, nil
	}
	geom, err := backend.Geometry(id)
	if err != nil {
		p.logger().Debug("published pixmap unusable", "pixmap", fmt.Sprintf("0x%x", uint32(id)), "error", err)
		return st, nil
	}
	st.Published = true
	st.Pixmap = id
	st.Width, st.Height = geom.Width, geom.Height
	return st, nil
}
