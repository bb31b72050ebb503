// Package resample implements the inverse-mapped scalers: nearest neighbor
// and bilinear interpolation.
package resample

import (
	"context"
	"math"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
	"github.com/user/pixelworker/pkg/ports"
)

// Method selects the sampling strategy of a Stage.
type Method int

const (
	MethodNearest Method = iota
	MethodBilinear
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodNearest:
		return "nearest"
	case MethodBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// Stage scales a buffer with a fixed method.
type Stage struct {
	method Method
	logger ports.Logger
}

// NewStage creates a new resample stage.
func NewStage(method Method, logger ports.Logger) *Stage {
	return &Stage{
		method: method,
		logger: logger.WithComponent("resample"),
	}
}

// Execute scales input.Source to the target dimensions.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScaleInput) (pixel.Buffer, error) {
	src := input.Source
	s.logger.Debug("Scaling %dx%d to %dx%d (%s)", src.Width, src.Height, input.TargetWidth, input.TargetHeight, s.method)

	switch s.method {
	case MethodBilinear:
		return Bilinear(src, input.TargetWidth, input.TargetHeight), nil
	default:
		return NearestNeighbor(src, input.TargetWidth, input.TargetHeight), nil
	}
}

// NearestNeighbor samples the source at (floor(x*sw/tw), floor(y*sh/th))
// for every destination pixel. Every output pixel is a source pixel.
func NearestNeighbor(src pixel.Buffer, targetWidth, targetHeight int) pixel.Buffer {
	out := pixel.New(targetWidth, targetHeight)
	dx := float64(src.Width) / float64(targetWidth)
	dy := float64(src.Height) / float64(targetHeight)

	for y := 0; y < targetHeight; y++ {
		srcY := clampIndex(int(math.Floor(float64(y)*dy)), src.Height)
		row := src.Pix[srcY*src.Width : (srcY+1)*src.Width]
		dst := out.Pix[y*targetWidth : (y+1)*targetWidth]
		for x := range dst {
			dst[x] = row[clampIndex(int(math.Floor(float64(x)*dx)), src.Width)]
		}
	}

	return out
}

// Bilinear interpolates the four neighbors around a half-pixel-shifted
// sampling grid: dx = (sw-1+0.5)/tw, dy = (sh-1+0.5)/th. Neighbors past the
// last column or row fall back to the nearest valid one. Channels are
// interpolated independently and truncated when packed.
func Bilinear(src pixel.Buffer, targetWidth, targetHeight int) pixel.Buffer {
	out := pixel.New(targetWidth, targetHeight)
	xMax := src.Width - 1
	yMax := src.Height - 1
	dx := (float64(xMax) + 0.5) / float64(targetWidth)
	dy := (float64(yMax) + 0.5) / float64(targetHeight)

	offset := 0
	for i := 0; i < targetHeight; i++ {
		fy := dy * float64(i)
		y := int(math.Floor(fy))
		yDiff := fy - float64(y)

		for j := 0; j < targetWidth; j++ {
			fx := dx * float64(j)
			x := int(math.Floor(fx))
			xDiff := fx - float64(x)
			index := y*src.Width + x

			a := src.Pix[index]
			b := a
			if x < xMax {
				b = src.Pix[index+1]
			}
			c := a
			if y < yMax {
				c = src.Pix[index+src.Width]
			}
			var d pixel.Pixel
			switch {
			case y >= yMax:
				d = b
			case x >= xMax:
				d = c
			default:
				d = src.Pix[index+src.Width+1]
			}

			var ch [4]float64
			for k := range ch {
				ch[k] = interpolate(
					float64(a.Channel(k)),
					float64(b.Channel(k)),
					float64(c.Channel(k)),
					float64(d.Channel(k)),
					xDiff, yDiff,
				)
			}
			out.Pix[offset] = pixel.FromChannels(ch[pixel.Red], ch[pixel.Green], ch[pixel.Blue], ch[pixel.Alpha])
			offset++
		}
	}

	return out
}

// interpolate weights the four neighbors as
// a(1-x)(1-y) + b·x(1-y) + c(1-x)y + d·x·y. The sum is truncated when
// packed, so flat areas can lose one unit to float round-off. Each term is
// rounded on its own so the compiler cannot fuse it into the sum.
func interpolate(a, b, c, d, xDiff, yDiff float64) float64 {
	return float64(a*(1-xDiff)*(1-yDiff)) +
		float64(b*xDiff*(1-yDiff)) +
		float64(c*(1-xDiff)*yDiff) +
		float64(d*xDiff*yDiff)
}

// clampIndex keeps a computed index inside [0, n) against float round-off.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ScaleInput, pixel.Buffer] = (*Stage)(nil)
