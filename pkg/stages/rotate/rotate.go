// Package rotate implements arbitrary-angle rotation onto the tightest
// axis-aligned canvas that holds the rotated source.
package rotate

import (
	"context"
	"math"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
	"github.com/user/pixelworker/pkg/ports"
)

// extentTolerance absorbs trigonometric round-off before flooring a canvas
// extent, so that 0, 90, 180 and 270 degrees keep exact integer sizes.
const extentTolerance = 1e-9

// Stage rotates a buffer.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new rotate stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("rotate"),
	}
}

// Execute rotates input.Source by input.AngleDegrees.
func (s *Stage) Execute(ctx context.Context, input pipeline.RotateInput) (pipeline.RotateResult, error) {
	src := input.Source
	out := Rotate(src, input.AngleDegrees)
	s.logger.Debug("Rotated %dx%d by %.2f degrees to %dx%d", src.Width, src.Height, input.AngleDegrees, out.Width, out.Height)
	return pipeline.RotateResult{Buffer: out}, nil
}

// Bounds returns the canvas size needed to hold a width x height rectangle
// rotated by angleDegrees. The result does not depend on the sign of the
// angle.
func Bounds(width, height int, angleDegrees float64) (newWidth, newHeight int) {
	angle := angleDegrees / 180 * math.Pi
	w, h := float64(width), float64(height)
	diagonal := math.Sqrt(w*w + h*h)
	diagonalAngle := math.Atan2(h, w)

	cosExtent := math.Max(math.Abs(math.Cos(angle+diagonalAngle)), math.Abs(math.Cos(angle-diagonalAngle)))
	sinExtent := math.Max(math.Abs(math.Sin(angle+diagonalAngle)), math.Abs(math.Sin(angle-diagonalAngle)))

	newWidth = int(math.Floor(diagonal*cosExtent + extentTolerance))
	newHeight = int(math.Floor(diagonal*sinExtent + extentTolerance))
	return newWidth, newHeight
}

// Rotate inverse-maps every destination pixel to the source around both
// centers and copies the nearest source pixel. Destination pixels whose
// source falls outside the image are 0 (transparent black).
func Rotate(src pixel.Buffer, angleDegrees float64) pixel.Buffer {
	newWidth, newHeight := Bounds(src.Width, src.Height, angleDegrees)
	out := pixel.New(newWidth, newHeight)

	angle := angleDegrees / 180 * math.Pi
	sin, cos := math.Sincos(-angle)
	halfNewW, halfNewH := float64(newWidth)/2, float64(newHeight)/2
	halfW, halfH := float64(src.Width)/2, float64(src.Height)/2

	for y := 0; y < newHeight; y++ {
		ry := float64(y) - halfNewH
		for x := 0; x < newWidth; x++ {
			rx := float64(x) - halfNewW
			sx := int(math.Floor(rx*cos - ry*sin + halfW))
			sy := int(math.Floor(rx*sin + ry*cos + halfH))
			if sx < 0 || sx >= src.Width || sy < 0 || sy >= src.Height {
				continue
			}
			out.Pix[y*newWidth+x] = src.Pix[sy*src.Width+sx]
		}
	}

	return out
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.RotateInput, pipeline.RotateResult] = (*Stage)(nil)
