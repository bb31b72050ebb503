package juxtapose

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/pixelworker/pkg/adapters/logger"
	"github.com/user/pixelworker/pkg/mocks"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Gap = 10
	opts.MaxPanelWidth = 100
	opts.MaxPanelHeight = 100
	opts.LabelHeight = 20
	return opts
}

func TestComputeLayout(t *testing.T) {
	layout := ComputeLayout(image.Pt(10, 10), image.Pt(20, 10), testOptions())

	if layout.Width != 230 || layout.Height != 140 {
		t.Errorf("expected 230x140, got %dx%d", layout.Width, layout.Height)
	}
	if layout.Before != image.Rect(10, 30, 110, 130) {
		t.Errorf("unexpected before panel %v", layout.Before)
	}
	// 100x50 panel centered in the 100 pixel band.
	if layout.After != image.Rect(120, 55, 220, 105) {
		t.Errorf("unexpected after panel %v", layout.After)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{10, 10, 100, 100, 100, 100},
		{30, 20, 100, 100, 90, 60}, // whole-number enlargement
		{400, 200, 100, 100, 100, 50},
		{1000, 1, 100, 100, 100, 1},
		{0, 5, 100, 100, 1, 1},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fit(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestCompose(t *testing.T) {
	renderer := &mocks.Renderer{}
	before := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	after := image.NewNRGBA(image.Rect(0, 0, 20, 10))

	sheet := Compose(renderer, before, after, testOptions())
	if sheet.Bounds().Dx() != 230 || sheet.Bounds().Dy() != 140 {
		t.Errorf("expected 230x140 sheet, got %v", sheet.Bounds())
	}

	if len(renderer.Canvases) != 1 {
		t.Fatalf("expected 1 canvas, got %d", len(renderer.Canvases))
	}
	canvas := renderer.Canvases[0]

	want := []mocks.DrawCall{
		{X: 10, Y: 30, Width: 100, Height: 100},
		{X: 120, Y: 55, Width: 100, Height: 50},
	}
	if len(canvas.Images) != len(want) {
		t.Fatalf("expected %d images, got %d", len(want), len(canvas.Images))
	}
	for i, call := range want {
		if canvas.Images[i] != call {
			t.Errorf("image %d: expected %+v, got %+v", i, call, canvas.Images[i])
		}
	}

	if len(canvas.Texts) != 2 || canvas.Texts[0] != "Before (10x10)" || canvas.Texts[1] != "After (20x10)" {
		t.Errorf("unexpected captions %v", canvas.Texts)
	}
}

func TestStage_Execute(t *testing.T) {
	fs := mocks.NewFileSystem()
	codec := &mocks.ImageCodec{}
	stage := New(&mocks.Renderer{}, codec, fs, logger.NewNoop(), testOptions())

	result, err := stage.Execute(context.Background(), Input{
		Before:     image.NewNRGBA(image.Rect(0, 0, 10, 10)),
		After:      image.NewNRGBA(image.Rect(0, 0, 20, 10)),
		OutputPath: "compare.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Width != 230 || result.Height != 140 {
		t.Errorf("expected 230x140, got %dx%d", result.Width, result.Height)
	}

	data, ok := fs.GetFile("compare.png")
	if !ok {
		t.Fatal("expected sheet to be written")
	}
	if string(data) != "png:230x140" || result.Bytes != len(data) {
		t.Errorf("unexpected sheet data %q (%d bytes reported)", data, result.Bytes)
	}
}

func TestStage_ExecuteMissingImage(t *testing.T) {
	stage := New(&mocks.Renderer{}, &mocks.ImageCodec{}, mocks.NewFileSystem(), logger.NewNoop(), testOptions())

	_, err := stage.Execute(context.Background(), Input{After: image.NewNRGBA(image.Rect(0, 0, 1, 1))})
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	beforePath := filepath.Join(dir, "before.png")
	afterPath := filepath.Join(dir, "after.png")
	outPath := filepath.Join(dir, "compare.png")

	writePNG(t, beforePath, 8, 8)
	writePNG(t, afterPath, 16, 8)

	result, err := Combine(beforePath, afterPath, outPath, testOptions())
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	// 8x8 and 16x8 are enlarged 12x and 6x into 96x96 and 96x48 panels.
	if result.Width != 222 || result.Height != 152 {
		t.Errorf("expected 222x152, got %dx%d", result.Width, result.Height)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected sheet on disk: %v", err)
	}

	if _, err := Combine(filepath.Join(dir, "missing.png"), afterPath, outPath, testOptions()); err == nil {
		t.Error("expected error for missing input")
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 100, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
