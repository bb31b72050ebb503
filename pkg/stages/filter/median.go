package filter

import (
	"context"
	"slices"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
	"github.com/user/pixelworker/pkg/ports"
)

// MedianStage runs the median filter.
type MedianStage struct {
	logger ports.Logger
}

// NewMedianStage creates a new median filter stage.
func NewMedianStage(logger ports.Logger) *MedianStage {
	return &MedianStage{
		logger: logger.WithComponent("median"),
	}
}

// Execute applies the median filter to input.Source.
func (s *MedianStage) Execute(ctx context.Context, input pipeline.FilterInput) (pixel.Buffer, error) {
	s.logger.Debug("Median filtering %dx%d", input.Source.Width, input.Source.Height)
	return Median(input.Source), nil
}

// Median replaces every pixel with the middle element of its neighborhood
// ordered by Brightness. The sort is stable, so among equally bright
// candidates the one earliest in gather order wins the middle slot.
func Median(src pixel.Buffer) pixel.Buffer {
	return mapBuffer(src, func(points *[Size]pixel.Pixel) pixel.Pixel {
		slices.SortStableFunc(points[:], func(a, b pixel.Pixel) int {
			return a.Brightness() - b.Brightness()
		})
		return points[Size/2]
	})
}

// Ensure MedianStage implements pipeline.Stage
var _ pipeline.Stage[pipeline.FilterInput, pixel.Buffer] = (*MedianStage)(nil)
