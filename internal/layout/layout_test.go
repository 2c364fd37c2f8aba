package layout

import (
	"errors"
	"testing"

	"github.com/1broseidon/rootwall/internal/wallpaper"
)

func TestCompute_CenterAppliesOffset(t *testing.T) {
	res, err := Compute(wallpaper.ModeCenter, Size{800, 600}, Size{1920, 1080}, Point{X: 10, Y: -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (1920-800)/2 = 560, (1080-600)/2 = 240
	want := Rect{X: 570, Y: 235, Width: 800, Height: 600}
	if res.Dest != want {
		t.Fatalf("expected %+v, got %+v", want, res.Dest)
	}
	if res.Tiled {
		t.Fatalf("center must not tile")
	}
}

func TestCompute_CenterLargerThanScreenTruncatesTowardZero(t *testing.T) {
	res, err := Compute(wallpaper.ModeCenter, Size{1001, 501}, Size{100, 100}, Point{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (100-1001)/2 = -450 (C and Go both truncate toward zero), (100-501)/2 = -200
	if res.Dest.X != -450 || res.Dest.Y != -200 {
		t.Fatalf("expected origin (-450,-200), got (%d,%d)", res.Dest.X, res.Dest.Y)
	}
	vis := res.Visible()
	if vis != (Rect{X: 0, Y: 0, Width: 100, Height: 100}) {
		t.Fatalf("expected visible clip to equal screen, got %+v", vis)
	}
}

func TestCompute_FillCoversAndCentres(t *testing.T) {
	res, err := Compute(wallpaper.ModeFill, Size{800, 600}, Size{1920, 1080}, Point{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// scale = max(2.4, 1.8) = 2.4 -> 1920x1440, centred at y=(1080-1440)/2=-180
	want := Rect{X: 3, Y: -176, Width: 1920, Height: 1440}
	if res.Dest != want {
		t.Fatalf("expected %+v, got %+v", want, res.Dest)
	}
}

func TestCompute_MaxFitsWithoutOffset(t *testing.T) {
	res, err := Compute(wallpaper.ModeMax, Size{800, 600}, Size{1920, 1080}, Point{X: 50, Y: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// scale = min(2.4, 1.8) = 1.8 -> 1440x1080 at x=240
	want := Rect{X: 240, Y: 0, Width: 1440, Height: 1080}
	if res.Dest != want {
		t.Fatalf("expected %+v, got %+v", want, res.Dest)
	}
}

func TestCompute_ScaleIsAlwaysScreenSize(t *testing.T) {
	for _, img := range []Size{{1, 1}, {800, 600}, {10, 4000}, {5000, 3}} {
		res, err := Compute(wallpaper.ModeScale, img, Size{1366, 768}, Point{X: 9, Y: 9})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Dest != (Rect{Width: 1366, Height: 768}) {
			t.Fatalf("image %+v: expected full-screen dest, got %+v", img, res.Dest)
		}
	}
}

func TestCompute_TileAnchorsAtOrigin(t *testing.T) {
	res, err := Compute(wallpaper.ModeTile, Size{64, 48}, Size{1920, 1080}, Point{X: 7, Y: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Tiled || res.Dest != (Rect{Width: 64, Height: 48}) {
		t.Fatalf("unexpected tile result %+v", res)
	}
	if res.Visible() != (Rect{Width: 1920, Height: 1080}) {
		t.Fatalf("tile should cover the whole screen, got %+v", res.Visible())
	}
}

func TestCompute_FillCoversAndMaxFitsForAllSizes(t *testing.T) {
	dims := []int{1, 2, 3, 7, 49, 100, 333, 640, 799, 1023, 1080, 1366, 1920, 2560, 3840, 4097}
	for _, iw := range dims {
		for _, ih := range dims {
			for _, screen := range []Size{{1920, 1080}, {1366, 768}, {3, 7}, {2560, 1440}, {49, 1}} {
				img := Size{iw, ih}
				fill, err := Compute(wallpaper.ModeFill, img, screen, Point{})
				if err != nil {
					t.Fatalf("fill error: %v", err)
				}
				if fill.Dest.Width < screen.Width || fill.Dest.Height < screen.Height {
					t.Fatalf("fill %+v on %+v does not cover: %+v", img, screen, fill.Dest)
				}

				fit, err := Compute(wallpaper.ModeMax, img, screen, Point{})
				if err != nil {
					t.Fatalf("max error: %v", err)
				}
				if fit.Dest.Width > screen.Width || fit.Dest.Height > screen.Height {
					t.Fatalf("max %+v on %+v overflows: %+v", img, screen, fit.Dest)
				}
			}
		}
	}
}

func TestCompute_Errors(t *testing.T) {
	if _, err := Compute(wallpaper.Mode(42), Size{1, 1}, Size{1, 1}, Point{}); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := Compute(wallpaper.ModeFill, Size{0, 1}, Size{1, 1}, Point{}); err == nil {
		t.Fatalf("expected error for empty image")
	}
	if _, err := Compute(wallpaper.ModeFill, Size{1, 1}, Size{1, 0}, Point{}); err == nil {
		t.Fatalf("expected error for empty screen")
	}
}

func TestRect_Intersect(t *testing.T) {
	a := Rect{X: -10, Y: 5, Width: 30, Height: 10}
	b := Rect{X: 0, Y: 0, Width: 15, Height: 8}
	if got := a.Intersect(b); got != (Rect{X: 0, Y: 5, Width: 15, Height: 3}) {
		t.Fatalf("unexpected intersection %+v", got)
	}
	if !a.Intersect(Rect{X: 100, Y: 100, Width: 1, Height: 1}).Empty() {
		t.Fatalf("expected empty intersection")
	}
}
