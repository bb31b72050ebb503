// Package ggrenderer implements ports.Renderer with the gg 2D library.
package ggrenderer

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/pixelworker/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a canvas filled with bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// ResizeImage scales img for display. Enlargements keep hard pixel edges so
// individual pixels stay visible; reductions are filtered.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	src := img.Bounds()

	var scaler draw.Scaler = draw.CatmullRom
	if width >= src.Dx() && height >= src.Dy() {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// DrawImage draws an image with its top-left corner at (x, y).
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawRectStroke draws a rectangle outline.
func (c *Canvas) DrawRectStroke(x, y, w, h int, col color.Color, strokeWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(strokeWidth)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Stroke()
}

// DrawText draws text vertically centered on y.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.applyFont(style)
	c.dc.SetColor(style.Color)
	c.dc.DrawStringAnchored(text, float64(x), float64(y), anchor(style.Align), 0.5)
}

// MeasureText returns the rendered size of text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.applyFont(style)
	return c.dc.MeasureString(text)
}

// ToImage returns the canvas contents.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// applyFont loads the style's font, keeping gg's built-in face when the
// font cannot be loaded.
func (c *Canvas) applyFont(style ports.TextStyle) {
	if style.FontPath == "" {
		return
	}
	_ = c.dc.LoadFontFace(style.FontPath, style.FontSize)
}

func anchor(align ports.TextAlign) float64 {
	switch align {
	case ports.AlignCenter:
		return 0.5
	case ports.AlignRight:
		return 1
	default:
		return 0
	}
}

var _ ports.Canvas = (*Canvas)(nil)
