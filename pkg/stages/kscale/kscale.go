// Package kscale implements the forward-mapped ("k-times") scaler.
//
// Unlike the inverse-mapped scalers in package resample, each source pixel
// is written to the destination cell it maps to, and the gaps left by
// upscaling are filled by linear interpolation, first along rows and then
// along columns. Cells past the last mapped source column or row are never
// filled and stay transparent.
package kscale

import (
	"context"
	"math"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
	"github.com/user/pixelworker/pkg/ports"
)

// Stage runs the forward scaler.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new forward-scale stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("kscale"),
	}
}

// Execute scales input.Source to the target dimensions.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScaleInput) (pixel.Buffer, error) {
	src := input.Source
	s.logger.Debug("Forward scaling %dx%d to %dx%d", src.Width, src.Height, input.TargetWidth, input.TargetHeight)
	return Scale(src, input.TargetWidth, input.TargetHeight), nil
}

// Scale forward-maps src onto a targetWidth x targetHeight canvas.
//
// Pass 1 writes source pixel (sx, sy) to (floor(sx/dx), floor(sy/dy)) with
// dx = sw/tw and dy = sh/th; on downscaling later pixels overwrite earlier
// ones. Pass 2 (tw > sw) fills the columns between two mapped source
// columns from the source colors. Pass 3 (th > sh) fills the rows between
// two mapped source rows from the destination, so it sees Pass 2's output.
func Scale(src pixel.Buffer, targetWidth, targetHeight int) pixel.Buffer {
	out := pixel.New(targetWidth, targetHeight)
	dx := float64(src.Width) / float64(targetWidth)
	dy := float64(src.Height) / float64(targetHeight)

	outCol := func(srcX int) int { return forward(srcX, dx, targetWidth) }
	outRow := func(srcY int) int { return forward(srcY, dy, targetHeight) }

	for srcY := 0; srcY < src.Height; srcY++ {
		y := outRow(srcY)
		for srcX := 0; srcX < src.Width; srcX++ {
			out.Pix[y*targetWidth+outCol(srcX)] = src.Pix[srcY*src.Width+srcX]
		}
	}

	if targetWidth > src.Width {
		for srcX := 0; srcX < src.Width-1; srcX++ {
			outX := outCol(srcX)
			outXPair := outCol(srcX + 1)
			for srcY := 0; srcY < src.Height; srcY++ {
				outY := outRow(srcY)
				first := src.Pix[srcY*src.Width+srcX]
				second := src.Pix[srcY*src.Width+srcX+1]
				for x := outX + 1; x < outXPair; x++ {
					k := float64(x-outX) / float64(outXPair-outX)
					out.Pix[outY*targetWidth+x] = lerpPixel(first, second, k)
				}
			}
		}
	}

	if targetHeight > src.Height {
		for srcY := 0; srcY < src.Height-1; srcY++ {
			outY := outRow(srcY)
			outYPair := outRow(srcY + 1)
			for outX := 0; outX < targetWidth; outX++ {
				first := out.Pix[outY*targetWidth+outX]
				second := out.Pix[outYPair*targetWidth+outX]
				for y := outY + 1; y < outYPair; y++ {
					k := float64(y-outY) / float64(outYPair-outY)
					out.Pix[y*targetWidth+outX] = lerpPixel(first, second, k)
				}
			}
		}
	}

	return out
}

// LinearInterpolate returns a + (b-a)*k.
func LinearInterpolate(a, b, k float64) float64 {
	return a + (b-a)*k
}

func lerpPixel(first, second pixel.Pixel, k float64) pixel.Pixel {
	var ch [4]float64
	for c := range ch {
		ch[c] = LinearInterpolate(float64(first.Channel(c)), float64(second.Channel(c)), k)
	}
	return pixel.FromChannels(ch[pixel.Red], ch[pixel.Green], ch[pixel.Blue], ch[pixel.Alpha])
}

// forward maps a source index to its destination index, floor(i/d),
// kept below n against float round-off.
func forward(i int, d float64, n int) int {
	out := int(math.Floor(float64(i) / d))
	if out >= n {
		return n - 1
	}
	return out
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ScaleInput, pixel.Buffer] = (*Stage)(nil)
