package surface

import (
	"errors"
	"image/color"
	"testing"

	"github.com/1broseidon/rootwall/internal/platform"
	"github.com/1broseidon/rootwall/internal/platform/platformtest"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

func TestDecide(t *testing.T) {
	want := platform.Geometry{Width: 1920, Height: 1080, Depth: 24}
	tests := []struct {
		name   string
		found  bool
		handle platform.PixmapID
		geom   platform.Geometry
		expect Decision
	}{
		{"none published", false, 0, platform.Geometry{}, Decision{}},
		{"zero handle", true, 0, want, Decision{}},
		{"exact match", true, 7, want, Decision{Reuse: true}},
		{"depth ignored", true, 7, platform.Geometry{Width: 1920, Height: 1080, Depth: 32}, Decision{Reuse: true}},
		{"width differs", true, 7, platform.Geometry{Width: 1280, Height: 1080, Depth: 24}, Decision{Discard: true}},
		{"height differs", true, 7, platform.Geometry{Width: 1920, Height: 1200, Depth: 24}, Decision{Discard: true}},
		{"geometry unknown", true, 7, platform.Geometry{}, Decision{Discard: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.found, tt.handle, tt.geom, want); got != tt.expect {
				t.Fatalf("Decide() = %+v, want %+v", got, tt.expect)
			}
		})
	}
}

func TestPrepare_ReusesMatchingPixmap(t *testing.T) {
	fake := platformtest.New(64, 32)
	existing := fake.AddPixmap(64, 32)
	fake.Published, fake.HasPublished = existing, true

	surf, err := NewManager(fake, nil).Prepare(fake.ScreenInfo, wallpaper.RGB{R: 0x11, G: 0x22, B: 0x33})
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if surf.ID != existing || surf.Created {
		t.Fatalf("expected reuse of 0x%x, got %+v", uint32(existing), surf)
	}
	if fake.Called("CreatePixmap") || fake.Called("FreePixmap") {
		t.Fatalf("unexpected allocation calls: %v", fake.Calls)
	}
	// A reused surface is still repainted with the background.
	if got := fake.Pixmap(existing).At(63, 31); got != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}) {
		t.Fatalf("surface not filled, got %v", got)
	}
}

func TestPrepare_ReplacesMismatchedPixmap(t *testing.T) {
	fake := platformtest.New(64, 32)
	stale := fake.AddPixmap(32, 32)
	fake.Published, fake.HasPublished = stale, true

	surf, err := NewManager(fake, nil).Prepare(fake.ScreenInfo, wallpaper.RGB{})
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if !surf.Created || surf.ID == stale {
		t.Fatalf("expected new pixmap, got %+v", surf)
	}
	if surf.Stale != stale {
		t.Fatalf("expected stale handle 0x%x, got %+v", uint32(stale), surf)
	}
	if len(fake.Freed) != 0 {
		t.Fatalf("stale pixmap freed before publish, freed=%v", fake.Freed)
	}
	if p := fake.Pixmap(surf.ID); p == nil || p.Width != 64 || p.Height != 32 {
		t.Fatalf("new pixmap has wrong size: %+v", p)
	}

	NewManager(fake, nil).Release(surf)
	if len(fake.Freed) != 1 || fake.Freed[0] != stale {
		t.Fatalf("expected stale pixmap freed on release, freed=%v", fake.Freed)
	}
}

func TestRelease_NothingStale(t *testing.T) {
	fake := platformtest.New(10, 10)
	NewManager(fake, nil).Release(Surface{ID: 5, Created: true})
	if fake.Called("FreePixmap") {
		t.Fatalf("unexpected FreePixmap call: %v", fake.Calls)
	}
}

func TestPrepare_DanglingHandleIsReplaced(t *testing.T) {
	fake := platformtest.New(10, 10)
	fake.Published, fake.HasPublished = 0xdead, true

	surf, err := NewManager(fake, nil).Prepare(fake.ScreenInfo, wallpaper.RGB{})
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if !surf.Created || surf.Stale != 0 {
		t.Fatalf("expected a new pixmap and nothing to free for a dangling handle, got %+v", surf)
	}
}

func TestPrepare_NothingPublished(t *testing.T) {
	fake := platformtest.New(10, 10)
	surf, err := NewManager(fake, nil).Prepare(fake.ScreenInfo, wallpaper.RGB{})
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if !surf.Created || fake.Called("Geometry") || fake.Called("FreePixmap") {
		t.Fatalf("unexpected calls %v for %+v", fake.Calls, surf)
	}
}

func TestPrepare_CreateFailure(t *testing.T) {
	fake := platformtest.New(10, 10)
	boom := errors.New("BadAlloc")
	fake.Fail["CreatePixmap"] = boom

	if _, err := NewManager(fake, nil).Prepare(fake.ScreenInfo, wallpaper.RGB{}); !errors.Is(err, boom) {
		t.Fatalf("expected BadAlloc, got %v", err)
	}
}
