// Package dispatcher routes tagged job requests to the transform engines.
//
// Validation happens here, at the boundary, so the engines only ever see
// well-formed input and never have to report errors themselves.
package dispatcher

import (
	"context"
	"fmt"
	"math"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
	"github.com/user/pixelworker/pkg/ports"
	"github.com/user/pixelworker/pkg/stages/filter"
	"github.com/user/pixelworker/pkg/stages/kscale"
	"github.com/user/pixelworker/pkg/stages/resample"
	"github.com/user/pixelworker/pkg/stages/rotate"
)

// Dispatcher holds one stage per operation. It keeps no state between
// requests and is safe for concurrent use.
type Dispatcher struct {
	nearest  pipeline.Stage[pipeline.ScaleInput, pixel.Buffer]
	bilinear pipeline.Stage[pipeline.ScaleInput, pixel.Buffer]
	forward  pipeline.Stage[pipeline.ScaleInput, pixel.Buffer]
	rotate   pipeline.Stage[pipeline.RotateInput, pipeline.RotateResult]
	median   pipeline.Stage[pipeline.FilterInput, pixel.Buffer]
	convolve pipeline.Stage[pipeline.ConvolveInput, pixel.Buffer]
	logger   ports.Logger
}

// New creates a Dispatcher wired to the built-in engines.
func New(logger ports.Logger) *Dispatcher {
	return &Dispatcher{
		nearest:  resample.NewStage(resample.MethodNearest, logger),
		bilinear: resample.NewStage(resample.MethodBilinear, logger),
		forward:  kscale.NewStage(logger),
		rotate:   rotate.NewStage(logger),
		median:   filter.NewMedianStage(logger),
		convolve: filter.NewConvolveStage(logger),
		logger:   logger.WithComponent("dispatcher"),
	}
}

// Validate checks a request without running it.
func Validate(req pipeline.Request) error {
	if !req.Op.Known() {
		return fmt.Errorf("%w: tag %d", ErrUnknownOperation, int(req.Op))
	}

	src := req.Source
	if src.Width <= 0 || src.Height <= 0 {
		return fmt.Errorf("%w: %s source is %dx%d", ErrDimensionMismatch, req.Op, src.Width, src.Height)
	}
	if len(src.Pix) != src.Width*src.Height {
		return fmt.Errorf("%w: %s source is %dx%d but holds %d pixels",
			ErrDimensionMismatch, req.Op, src.Width, src.Height, len(src.Pix))
	}

	switch req.Op {
	case pipeline.OpNearestNeighbor, pipeline.OpBilinear, pipeline.OpForwardScale:
		if req.TargetWidth <= 0 || req.TargetHeight <= 0 {
			return fmt.Errorf("%w: %s target %dx%d", ErrInvalidTargetSize, req.Op, req.TargetWidth, req.TargetHeight)
		}
	case pipeline.OpRotate:
		if math.IsNaN(req.AngleDegrees) || math.IsInf(req.AngleDegrees, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidAngle, req.AngleDegrees)
		}
	case pipeline.OpConvolve:
		if !req.Kernel.Finite() {
			return fmt.Errorf("%w: non-finite weight in %v", ErrDegenerateKernel, req.Kernel)
		}
		if req.Kernel.Sum() == 0 {
			return fmt.Errorf("%w: weights of %v sum to zero", ErrDegenerateKernel, req.Kernel)
		}
	}

	return nil
}

// Dispatch validates req, runs exactly one engine and returns its output
// unmodified.
func (d *Dispatcher) Dispatch(ctx context.Context, req pipeline.Request) (pipeline.Result, error) {
	if err := Validate(req); err != nil {
		d.logger.Debug("Rejected job: %s", err)
		return pipeline.Result{}, err
	}

	var (
		out pixel.Buffer
		err error
	)

	switch req.Op {
	case pipeline.OpNearestNeighbor:
		out, err = d.nearest.Execute(ctx, scaleInput(req))
	case pipeline.OpBilinear:
		out, err = d.bilinear.Execute(ctx, scaleInput(req))
	case pipeline.OpForwardScale:
		out, err = d.forward.Execute(ctx, scaleInput(req))
	case pipeline.OpRotate:
		var rotated pipeline.RotateResult
		rotated, err = d.rotate.Execute(ctx, pipeline.RotateInput{Source: req.Source, AngleDegrees: req.AngleDegrees})
		out = rotated.Buffer
	case pipeline.OpMedian:
		out, err = d.median.Execute(ctx, pipeline.FilterInput{Source: req.Source})
	case pipeline.OpConvolve:
		out, err = d.convolve.Execute(ctx, pipeline.ConvolveInput{Source: req.Source, Kernel: req.Kernel})
	}
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("%s: %w", req.Op, err)
	}

	return pipeline.Result{Op: req.Op, Buffer: out}, nil
}

func scaleInput(req pipeline.Request) pipeline.ScaleInput {
	return pipeline.ScaleInput{
		Source:       req.Source,
		TargetWidth:  req.TargetWidth,
		TargetHeight: req.TargetHeight,
	}
}
