package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/pixelworker/pkg/pipeline"
)

const sampleRecipe = `
input: photo.jpg
output: out/photo.png
quality: 75
steps:
  - op: bilinear
    factor: 2
  - op: rotate
    angle: -30
  - op: median
  - op: convolve
    kernel: [0, -1, 0, -1, 5, -1, 0, -1, 0]
  - op: k-times
    width: 640
compare:
  path: out/compare.png
`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sampleRecipe))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if r.Input != "photo.jpg" || r.Output != "out/photo.png" {
		t.Errorf("unexpected paths %q %q", r.Input, r.Output)
	}
	if r.Quality != 75 {
		t.Errorf("expected quality 75, got %d", r.Quality)
	}
	if len(r.Steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(r.Steps))
	}
	if r.Steps[1].Angle != -30 {
		t.Errorf("expected angle -30, got %v", r.Steps[1].Angle)
	}
	if len(r.Steps[3].Kernel) != 9 {
		t.Errorf("expected 9 kernel values, got %d", len(r.Steps[3].Kernel))
	}

	// Unset fields keep their defaults.
	if r.Workers != 4 || !r.AutoOrient || r.Compare.Gap != 16 {
		t.Errorf("defaults lost: workers=%d auto_orient=%v gap=%d", r.Workers, r.AutoOrient, r.Compare.Gap)
	}
	if r.Compare.Path != "out/compare.png" {
		t.Errorf("unexpected compare path %q", r.Compare.Path)
	}

	if err := r.Validate(); err != nil {
		t.Errorf("expected valid recipe, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	if err := os.WriteFile(path, []byte(sampleRecipe), 0644); err != nil {
		t.Fatalf("write recipe: %v", err)
	}

	r, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if len(r.Steps) != 5 {
		t.Errorf("expected 5 steps, got %d", len(r.Steps))
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecipe_Validate(t *testing.T) {
	tests := []struct {
		name    string
		steps   []Step
		quality int
		wantErr error
	}{
		{"no steps", nil, 90, ErrNoSteps},
		{"bad quality", []Step{{Op: "median"}}, 0, ErrInvalidQuality},
		{"unknown op", []Step{{Op: "sharpen"}}, 90, ErrUnknownStep},
		{"scale without size", []Step{{Op: "nearest"}}, 90, ErrInvalidStep},
		{"negative width", []Step{{Op: "bilinear", Width: -1, Height: 2}}, 90, ErrInvalidStep},
		{"angle out of range", []Step{{Op: "rotate", Angle: 361}}, 90, ErrInvalidStep},
		{"short kernel", []Step{{Op: "convolve", Kernel: []float64{1, 2}}}, 90, ErrInvalidStep},
		{"zero-sum kernel", []Step{{Op: "convolve", Kernel: []float64{1, 0, -1, 1, 0, -1, 1, 0, -1}}}, 90, ErrInvalidStep},
		{"ok", []Step{{Op: "rotate", Angle: 360}, {Op: "convolve"}, {Op: "nearest", Height: 3}}, 90, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Defaults()
			r.Steps = tt.steps
			r.Quality = tt.quality

			err := r.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRecipe_ToOrchestratorConfig(t *testing.T) {
	r, err := Parse([]byte(sampleRecipe))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := r.ToOrchestratorConfig("", "")
	if err != nil {
		t.Fatalf("ToOrchestratorConfig failed: %v", err)
	}
	if cfg.InputPath != "photo.jpg" || cfg.OutputPath != "out/photo.png" {
		t.Errorf("expected recipe paths, got %q %q", cfg.InputPath, cfg.OutputPath)
	}
	if cfg.Quality != 75 {
		t.Errorf("expected quality 75, got %d", cfg.Quality)
	}

	wantOps := []pipeline.Op{
		pipeline.OpBilinear, pipeline.OpRotate, pipeline.OpMedian, pipeline.OpConvolve, pipeline.OpForwardScale,
	}
	if len(cfg.Steps) != len(wantOps) {
		t.Fatalf("expected %d steps, got %d", len(wantOps), len(cfg.Steps))
	}
	for i, op := range wantOps {
		if cfg.Steps[i].Op != op {
			t.Errorf("step %d: expected %s, got %s", i+1, op, cfg.Steps[i].Op)
		}
	}
	if cfg.Steps[3].Kernel == nil || cfg.Steps[3].Kernel[1][1] != 5 {
		t.Errorf("expected sharpen kernel, got %v", cfg.Steps[3].Kernel)
	}
	if cfg.Steps[4].Width != 640 || cfg.Steps[4].Height != 0 {
		t.Errorf("expected width-only scale, got %dx%d", cfg.Steps[4].Width, cfg.Steps[4].Height)
	}

	cfg, err = r.ToOrchestratorConfig("a.png", "b.bmp")
	if err != nil {
		t.Fatalf("ToOrchestratorConfig failed: %v", err)
	}
	if cfg.InputPath != "a.png" || cfg.OutputPath != "b.bmp" {
		t.Errorf("explicit paths should win, got %q %q", cfg.InputPath, cfg.OutputPath)
	}
}

func TestParseKernel(t *testing.T) {
	values, err := ParseKernel("1,2,1, 2,4,2; 1 2 1")
	if err != nil {
		t.Fatalf("ParseKernel failed: %v", err)
	}
	if len(values) != 9 || values[4] != 4 {
		t.Errorf("unexpected values %v", values)
	}

	if _, err := ParseKernel("1,2,3"); err == nil {
		t.Error("expected error for 3 values")
	}
	if _, err := ParseKernel("1,1,1,1,x,1,1,1,1"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#1a1a2e", color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}},
		{"ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#f00", color.RGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "#zzzzzz"} {
		if got := ParseColor(bad); got != color.Black {
			t.Errorf("ParseColor(%q) = %v, want black", bad, got)
		}
	}
}
