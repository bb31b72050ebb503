package rotate

import (
	"context"
	"testing"

	"github.com/user/pixelworker/pkg/adapters/logger"
	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
)

func opaque(w, h int) pixel.Buffer {
	buf := pixel.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, pixel.RGBA(uint8(x*11), uint8(y*13), 90, 255))
		}
	}
	return buf
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		angle        float64
		wantW, wantH int
	}{
		{"zero", 40, 30, 0, 40, 30},
		{"quarter", 40, 30, 90, 30, 40},
		{"negative quarter", 40, 30, -90, 30, 40},
		{"half", 40, 30, 180, 40, 30},
		{"three quarters", 40, 30, 270, 30, 40},
		{"full", 40, 30, 360, 40, 30},
		{"square diagonal", 10, 10, 45, 14, 14},
		{"pythagorean", 3, 4, 0, 3, 4},
		{"thin column", 1, 5, 0, 1, 5},
		{"thin row", 5, 1, 0, 5, 1},
		{"thin column quarter", 1, 5, 90, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Bounds(tt.w, tt.h, tt.angle)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
		})
	}
}

func TestBounds_SignIndependent(t *testing.T) {
	for _, angle := range []float64{13, 30, 45, 77.5, 120, 200} {
		w1, h1 := Bounds(64, 20, angle)
		w2, h2 := Bounds(64, 20, -angle)
		if w1 != w2 || h1 != h2 {
			t.Errorf("angle %v: %dx%d vs %dx%d", angle, w1, h1, w2, h2)
		}
	}
}

func TestRotate_ZeroIsIdentity(t *testing.T) {
	src := opaque(7, 5)
	out := Rotate(src, 0)

	if out.Width != 7 || out.Height != 5 {
		t.Fatalf("expected 7x5, got %dx%d", out.Width, out.Height)
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d: expected %#08x, got %#08x", i, uint32(src.Pix[i]), uint32(out.Pix[i]))
		}
	}
}

func TestRotate_HalfTurnTwiceRestoresDimensions(t *testing.T) {
	src := opaque(9, 4)
	once := Rotate(src, 180)
	twice := Rotate(once, 180)

	if twice.Width != 9 || twice.Height != 4 {
		t.Errorf("expected 9x4, got %dx%d", twice.Width, twice.Height)
	}
}

func TestRotate_DiagonalCornersTransparent(t *testing.T) {
	src := opaque(10, 10)
	out := Rotate(src, 45)

	corners := [][2]int{{0, 0}, {out.Width - 1, 0}, {0, out.Height - 1}, {out.Width - 1, out.Height - 1}}
	for _, c := range corners {
		if got := out.At(c[0], c[1]); got != 0 {
			t.Errorf("corner (%d,%d): expected 0, got %#08x", c[0], c[1], uint32(got))
		}
	}

	// The center always samples the source.
	if got := out.At(out.Width/2, out.Height/2); got.A() != 255 {
		t.Errorf("center: expected opaque source pixel, got %#08x", uint32(got))
	}
}

func TestRotate_OnlySourceColorsOrTransparent(t *testing.T) {
	src := opaque(12, 8)
	palette := map[pixel.Pixel]bool{0: true}
	for _, p := range src.Pix {
		palette[p] = true
	}

	for _, angle := range []float64{17, -33, 90, 135, 300} {
		out := Rotate(src, angle)
		for i, p := range out.Pix {
			if !palette[p] {
				t.Fatalf("angle %v pixel %d: %#08x is not a source color", angle, i, uint32(p))
			}
		}
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage(logger.NewNoop())
	src := opaque(6, 2)

	result, err := stage.Execute(context.Background(), pipeline.RotateInput{Source: src, AngleDegrees: 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Buffer.Width != 2 || result.Buffer.Height != 6 {
		t.Errorf("expected 2x6, got %dx%d", result.Buffer.Width, result.Buffer.Height)
	}
	if !result.Buffer.Valid() {
		t.Error("result buffer violates length invariant")
	}
}
