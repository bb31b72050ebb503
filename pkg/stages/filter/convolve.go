package filter

import (
	"context"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
	"github.com/user/pixelworker/pkg/ports"
)

// ConvolveStage runs the convolution filter.
type ConvolveStage struct {
	logger ports.Logger
}

// NewConvolveStage creates a new convolution filter stage.
func NewConvolveStage(logger ports.Logger) *ConvolveStage {
	return &ConvolveStage{
		logger: logger.WithComponent("convolve"),
	}
}

// Execute convolves input.Source with input.Kernel.
func (s *ConvolveStage) Execute(ctx context.Context, input pipeline.ConvolveInput) (pixel.Buffer, error) {
	s.logger.Debug("Convolving %dx%d, kernel sum %.3f", input.Source.Width, input.Source.Height, input.Kernel.Sum())
	return Convolve(input.Source, input.Kernel), nil
}

// Convolve weights every neighborhood with kernel, divides each channel sum
// by kernel.Sum(), clamps to [0, 255] and truncates. The kernel sum must not
// be zero; callers validate that first.
func Convolve(src pixel.Buffer, kernel pipeline.Kernel) pixel.Buffer {
	norm := kernel.Sum()
	var weights [Size]float64
	for i := range weights {
		weights[i] = kernel.Weight(i)
	}

	return mapBuffer(src, func(points *[Size]pixel.Pixel) pixel.Pixel {
		var sums [4]float64
		for i, p := range points {
			w := weights[i]
			sums[pixel.Red] += float64(p.R()) * w
			sums[pixel.Green] += float64(p.G()) * w
			sums[pixel.Blue] += float64(p.B()) * w
			sums[pixel.Alpha] += float64(p.A()) * w
		}
		return pixel.FromChannels(
			sums[pixel.Red]/norm,
			sums[pixel.Green]/norm,
			sums[pixel.Blue]/norm,
			sums[pixel.Alpha]/norm,
		)
	})
}

// Ensure ConvolveStage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ConvolveInput, pixel.Buffer] = (*ConvolveStage)(nil)
