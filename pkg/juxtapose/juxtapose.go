// Package juxtapose renders before/after comparison sheets.
package juxtapose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/user/pixelworker/pkg/ports"
)

// ErrNoImage is returned when either side of the comparison is missing.
var ErrNoImage = errors.New("juxtapose: missing image")

// Options configures the sheet layout.
type Options struct {
	// Gap is the margin around and between the panels in pixels.
	Gap int
	// MaxPanelWidth and MaxPanelHeight bound each panel. Images are fitted
	// into the box; enlargements use whole-number factors.
	MaxPanelWidth  int
	MaxPanelHeight int
	// LabelHeight is the band above the panels holding the captions.
	LabelHeight int

	BeforeLabel string
	AfterLabel  string

	Background  color.Color
	TextColor   color.Color
	BorderColor color.Color
	FontSize    float64
	FontPath    string
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Gap:            16,
		MaxPanelWidth:  512,
		MaxPanelHeight: 512,
		LabelHeight:    28,
		BeforeLabel:    "Before",
		AfterLabel:     "After",
		Background:     color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255},
		TextColor:      color.White,
		BorderColor:    color.RGBA{R: 0x33, G: 0x33, B: 0x55, A: 255},
		FontSize:       14,
	}
}

// Layout is the computed geometry of a sheet.
type Layout struct {
	Width, Height int
	Before, After image.Rectangle
}

// ComputeLayout places both panels for images of the given sizes.
func ComputeLayout(before, after image.Point, opts Options) Layout {
	bw, bh := fit(before.X, before.Y, opts.MaxPanelWidth, opts.MaxPanelHeight)
	aw, ah := fit(after.X, after.Y, opts.MaxPanelWidth, opts.MaxPanelHeight)

	panelHeight := max(bh, ah)
	top := opts.Gap + opts.LabelHeight

	bx := opts.Gap
	ax := bx + bw + opts.Gap
	by := top + (panelHeight-bh)/2
	ay := top + (panelHeight-ah)/2

	return Layout{
		Width:  ax + aw + opts.Gap,
		Height: top + panelHeight + opts.Gap,
		Before: image.Rect(bx, by, bx+bw, by+bh),
		After:  image.Rect(ax, ay, ax+aw, ay+ah),
	}
}

// fit scales w x h into maxW x maxH, keeping the aspect ratio.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	s := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if s >= 1 {
		s = math.Floor(s)
	}
	return max(1, int(math.Round(float64(w)*s))), max(1, int(math.Round(float64(h)*s)))
}

// Compose draws before and after side by side with captions.
func Compose(renderer ports.Renderer, before, after image.Image, opts Options) image.Image {
	layout := ComputeLayout(before.Bounds().Size(), after.Bounds().Size(), opts)
	canvas := renderer.CreateCanvas(layout.Width, layout.Height, opts.Background)

	style := ports.TextStyle{
		FontSize: opts.FontSize,
		FontPath: opts.FontPath,
		Color:    opts.TextColor,
		Align:    ports.AlignCenter,
	}
	labelY := opts.Gap + opts.LabelHeight/2

	panels := []struct {
		img   image.Image
		rect  image.Rectangle
		label string
	}{
		{before, layout.Before, opts.BeforeLabel},
		{after, layout.After, opts.AfterLabel},
	}
	for _, p := range panels {
		r := p.rect
		scaled := renderer.ResizeImage(p.img, r.Dx(), r.Dy())
		canvas.DrawImage(scaled, r.Min.X, r.Min.Y)
		canvas.DrawRectStroke(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), opts.BorderColor, 1)

		size := p.img.Bounds().Size()
		caption := fmt.Sprintf("%s (%dx%d)", p.label, size.X, size.Y)
		canvas.DrawText(caption, r.Min.X+r.Dx()/2, labelY, style)
	}

	return canvas.ToImage()
}

// Input is a pair of images and where to write their sheet.
type Input struct {
	Before     image.Image
	After      image.Image
	OutputPath string
}

// Result describes the written sheet.
type Result struct {
	Width  int
	Height int
	Bytes  int
}

// Stage composes a sheet and writes it as PNG.
type Stage struct {
	renderer ports.Renderer
	codec    ports.ImageCodec
	fs       ports.FileSystem
	logger   ports.Logger
	opts     Options
}

// New creates a new Stage.
func New(renderer ports.Renderer, codec ports.ImageCodec, fs ports.FileSystem, logger ports.Logger, opts Options) *Stage {
	return &Stage{
		renderer: renderer,
		codec:    codec,
		fs:       fs,
		logger:   logger.WithComponent("juxtapose"),
		opts:     opts,
	}
}

// Execute renders and writes the comparison sheet.
func (s *Stage) Execute(ctx context.Context, input Input) (Result, error) {
	if input.Before == nil || input.After == nil {
		return Result{}, ErrNoImage
	}

	sheet := Compose(s.renderer, input.Before, input.After, s.opts)
	b := sheet.Bounds()
	s.logger.Debug("Composed comparison sheet: %dx%d", b.Dx(), b.Dy())

	data, err := s.codec.Encode(sheet, ports.FormatPNG, 0)
	if err != nil {
		return Result{}, fmt.Errorf("encode sheet: %w", err)
	}
	if err := s.fs.WriteFile(input.OutputPath, data); err != nil {
		return Result{}, fmt.Errorf("write sheet: %w", err)
	}

	return Result{Width: b.Dx(), Height: b.Dy(), Bytes: len(data)}, nil
}
