// Package surface decides whether the published root pixmap can be painted
// again or must be replaced, and prepares the surface for rendering.
//
// Concurrent runs against the same display are not locked against each
// other. Checking the published handle before reuse is the only safeguard.
package surface

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/rootwall/internal/platform"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

// Decision is the outcome of comparing a published surface to the screen.
type Decision struct {
	Reuse bool
	// Discard is set when a stale surface exists and must be freed once its
	// replacement has been published.
	Discard bool
}

// Decide reuses a surface only when one was found with a non-zero handle and
// exactly the wanted width and height. Depth is not compared; surfaces are
// always created at the screen's default depth.
func Decide(found bool, handle platform.PixmapID, geom, want platform.Geometry) Decision {
	if found && handle != 0 && geom.Width == want.Width && geom.Height == want.Height {
		return Decision{Reuse: true}
	}
	return Decision{Discard: found && handle != 0}
}

// Surface is a screen-sized pixmap ready to be painted.
type Surface struct {
	ID      platform.PixmapID
	Width   int
	Height  int
	Created bool
	// Stale is the previously published pixmap that ID replaces, or 0. It
	// stays alive until Release so the root property never names a freed
	// pixmap.
	Stale platform.PixmapID
}

// Manager prepares root surfaces on a backend.
type Manager struct {
	Backend platform.Backend
	Logger  *slog.Logger
}

// NewManager returns a Manager; a nil logger discards output.
func NewManager(backend platform.Backend, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{Backend: backend, Logger: logger}
}

// Prepare returns a surface matching screen, reusing the published one when
// possible, and fills all of it with bg.
func (m *Manager) Prepare(screen platform.Screen, bg wallpaper.RGB) (Surface, error) {
	want := platform.Geometry{Width: screen.Width, Height: screen.Height, Depth: screen.Depth}

	handle, found, err := m.Backend.PublishedPixmap()
	if err != nil {
		return Surface{}, fmt.Errorf("failed to query root pixmap: %w", err)
	}

	var (
		geom     platform.Geometry
		dangling bool
	)
	if found && handle != 0 {
		geom, err = m.Backend.Geometry(handle)
		if err != nil {
			// The handle may belong to a client that has since exited.
			m.Logger.Debug("published pixmap unusable", "pixmap", fmt.Sprintf("0x%x", uint32(handle)), "error", err)
			geom, dangling = platform.Geometry{}, true
		}
	}

	dec := Decide(found, handle, geom, want)
	surf := Surface{ID: handle, Width: want.Width, Height: want.Height}
	if !dec.Reuse {
		id, err := m.Backend.CreatePixmap(want.Width, want.Height)
		if err != nil {
			return Surface{}, fmt.Errorf("failed to create root pixmap: %w", err)
		}
		surf.ID = id
		surf.Created = true
		if dec.Discard && !dangling {
			surf.Stale = handle
		}
	}
	m.Logger.Debug("root surface ready",
		"pixmap", fmt.Sprintf("0x%x", uint32(surf.ID)),
		"size", fmt.Sprintf("%dx%d", surf.Width, surf.Height),
		"reused", !surf.Created)

	rect := platform.Rect{Width: surf.Width, Height: surf.Height}
	if err := m.Backend.FillColor(surf.ID, rect, bg.R, bg.G, bg.B); err != nil {
		return Surface{}, fmt.Errorf("failed to clear root pixmap: %w", err)
	}
	return surf, nil
}

// Release frees the stale pixmap of surf, if any. Call it only after surf has
// been published. A failure is logged and otherwise ignored.
func (m *Manager) Release(surf Surface) {
	if surf.Stale == 0 {
		return
	}
	if err := m.Backend.FreePixmap(surf.Stale); err != nil {
		m.Logger.Warn("failed to free stale root pixmap", "pixmap", fmt.Sprintf("0x%x", uint32(surf.Stale)), "error", err)
		return
	}
	m.Logger.Debug("stale root pixmap freed", "pixmap", fmt.Sprintf("0x%x", uint32(surf.Stale)))
}
