package resample

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/user/pixelworker/pkg/adapters/logger"
	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
)

// patterned returns a buffer where every pixel is distinct.
func patterned(w, h int) pixel.Buffer {
	buf := pixel.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, pixel.RGBA(uint8(x*17), uint8(y*29), uint8(x+y), 255))
		}
	}
	return buf
}

func uniform(w, h int, p pixel.Pixel) pixel.Buffer {
	buf := pixel.New(w, h)
	for i := range buf.Pix {
		buf.Pix[i] = p
	}
	return buf
}

func TestNearestNeighbor_Dimensions(t *testing.T) {
	src := patterned(7, 5)
	sizes := [][2]int{{1, 1}, {3, 2}, {7, 5}, {14, 10}, {20, 3}, {2, 33}}

	for _, size := range sizes {
		out := NearestNeighbor(src, size[0], size[1])
		if out.Width != size[0] || out.Height != size[1] {
			t.Errorf("expected %dx%d, got %dx%d", size[0], size[1], out.Width, out.Height)
		}
		if len(out.Pix) != size[0]*size[1] {
			t.Errorf("expected %d pixels, got %d", size[0]*size[1], len(out.Pix))
		}
	}
}

func TestNearestNeighbor_NoNewColors(t *testing.T) {
	src := patterned(7, 5)
	palette := make(map[pixel.Pixel]bool, len(src.Pix))
	for _, p := range src.Pix {
		palette[p] = true
	}

	for _, size := range [][2]int{{3, 11}, {13, 4}, {100, 100}} {
		out := NearestNeighbor(src, size[0], size[1])
		for i, p := range out.Pix {
			if !palette[p] {
				t.Fatalf("%dx%d: pixel %d (%#08x) is not a source color", size[0], size[1], i, uint32(p))
			}
		}
	}
}

func TestNearestNeighbor_Identity(t *testing.T) {
	src := patterned(9, 6)
	out := NearestNeighbor(src, 9, 6)

	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d: expected %#08x, got %#08x", i, uint32(src.Pix[i]), uint32(out.Pix[i]))
		}
	}
}

func TestNearestNeighbor_Upscale2x(t *testing.T) {
	src := patterned(2, 2)
	out := NearestNeighbor(src, 4, 4)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got, want := out.At(x, y), src.At(x/2, y/2); got != want {
				t.Errorf("(%d,%d): expected %#08x, got %#08x", x, y, uint32(want), uint32(got))
			}
		}
	}
}

// withinOne fails the test when any channel of got is more than one unit
// away from want.
func withinOne(t *testing.T, label string, got, want pixel.Pixel) {
	t.Helper()
	for c := 0; c < 4; c++ {
		diff := int(got.Channel(c)) - int(want.Channel(c))
		if diff < -1 || diff > 1 {
			t.Errorf("%s channel %d: expected %d±1, got %d", label, c, want.Channel(c), got.Channel(c))
		}
	}
}

func TestBilinear_UniformIdentity(t *testing.T) {
	fill := pixel.RGBA(12, 200, 77, 180)
	src := uniform(6, 4, fill)

	out := Bilinear(src, 6, 4)
	for i, p := range out.Pix {
		withinOne(t, fmt.Sprintf("pixel %d", i), p, fill)
	}
}

func TestBilinear_MatchesWeightedSum(t *testing.T) {
	const sw, sh, tw, th = 7, 5, 20, 17
	src := pixel.New(sw, sh)
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			src.Set(x, y, pixel.RGBA(uint8(x*37+y*11), uint8(y*53), uint8(x*x*5), 200))
		}
	}

	out := Bilinear(src, tw, th)

	dx := (float64(sw-1) + 0.5) / tw
	dy := (float64(sh-1) + 0.5) / th
	for i := 0; i < th; i++ {
		fy := dy * float64(i)
		y := int(math.Floor(fy))
		yd := fy - float64(y)
		for j := 0; j < tw; j++ {
			fx := dx * float64(j)
			x := int(math.Floor(fx))
			xd := fx - float64(x)

			x1, y1 := min(x+1, sw-1), min(y+1, sh-1)
			a, b := src.At(x, y), src.At(x1, y)
			c, d := src.At(x, y1), src.At(x1, y1)

			var ch [4]float64
			for k := range ch {
				ch[k] = float64(float64(a.Channel(k))*(1-xd)*(1-yd)) +
					float64(float64(b.Channel(k))*xd*(1-yd)) +
					float64(float64(c.Channel(k))*(1-xd)*yd) +
					float64(float64(d.Channel(k))*xd*yd)
			}
			want := pixel.FromChannels(ch[0], ch[1], ch[2], ch[3])

			if got := out.At(j, i); got != want {
				t.Errorf("(%d,%d): expected %#08x, got %#08x", j, i, uint32(want), uint32(got))
			}
		}
	}
}

func TestBilinear_RampWithinOneLSB(t *testing.T) {
	const w, h = 32, 3
	src := pixel.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, pixel.RGBA(uint8(x), uint8(x), uint8(x), 255))
		}
	}

	out := Bilinear(src, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := out.At(x, y)
			want := src.At(x, y)
			for c := 0; c < 4; c++ {
				diff := int(got.Channel(c)) - int(want.Channel(c))
				if diff < -1 || diff > 1 {
					t.Errorf("(%d,%d) channel %d: expected %d±1, got %d", x, y, c, want.Channel(c), got.Channel(c))
				}
			}
		}
	}
}

func TestBilinear_Upscale(t *testing.T) {
	// 2x1 black to white, upscaled to 4x1.
	// dx = 1.5/4 = 0.375: sample points 0, 0.375, 0.75, 1.125.
	src := pixel.New(2, 1)
	src.Pix[0] = pixel.RGBA(0, 0, 0, 255)
	src.Pix[1] = pixel.RGBA(200, 200, 200, 255)

	out := Bilinear(src, 4, 1)

	want := []uint8{0, 75, 150, 200}
	for x, v := range want {
		if got := out.Pix[x].R(); got != v {
			t.Errorf("column %d: expected %d, got %d", x, v, got)
		}
		if got := out.Pix[x].A(); got != 255 {
			t.Errorf("column %d: alpha expected 255, got %d", x, got)
		}
	}
}

func TestBilinear_SinglePixel(t *testing.T) {
	src := uniform(1, 1, pixel.RGBA(1, 2, 3, 4))
	out := Bilinear(src, 3, 2)

	if out.Width != 3 || out.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", out.Width, out.Height)
	}
	for i, p := range out.Pix {
		withinOne(t, fmt.Sprintf("pixel %d", i), p, src.Pix[0])
	}
}

func TestStage_Execute(t *testing.T) {
	src := patterned(4, 4)
	input := pipeline.ScaleInput{Source: src, TargetWidth: 8, TargetHeight: 2}

	for _, method := range []Method{MethodNearest, MethodBilinear} {
		stage := NewStage(method, logger.NewNoop())
		out, err := stage.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if out.Width != 8 || out.Height != 2 {
			t.Errorf("%s: expected 8x2, got %dx%d", method, out.Width, out.Height)
		}
	}
}

func TestStage_DoesNotMutateSource(t *testing.T) {
	src := patterned(5, 5)
	before := src.Clone()

	stage := NewStage(MethodBilinear, logger.NewNoop())
	if _, err := stage.Execute(context.Background(), pipeline.ScaleInput{Source: src, TargetWidth: 9, TargetHeight: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range src.Pix {
		if src.Pix[i] != before.Pix[i] {
			t.Fatalf("source pixel %d modified", i)
		}
	}
}
