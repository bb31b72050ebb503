// Package orchestrator runs a recipe of transform steps over one image file.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/pixel"
	"github.com/user/pixelworker/pkg/ports"
)

var (
	// ErrNoSteps is returned when a run has nothing to apply.
	ErrNoSteps = errors.New("orchestrator: no steps")
	// ErrOutputFormat is returned when the output format cannot be determined.
	ErrOutputFormat = errors.New("orchestrator: unsupported output format")
)

// Runner executes one job. *worker.Worker implements it.
type Runner interface {
	Do(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// Step is one resolved recipe step.
type Step struct {
	Op pipeline.Op `json:"op"`

	// Scale target. Factor, when positive, wins over Width/Height.
	// With only one of Width/Height set the other keeps the aspect ratio.
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Factor float64 `json:"factor,omitempty"`

	Angle  float64          `json:"angle,omitempty"`
	Kernel *pipeline.Kernel `json:"kernel,omitempty"`
}

// Request builds the job that applies the step to src.
func (s Step) Request(src pixel.Buffer) pipeline.Request {
	switch s.Op {
	case pipeline.OpRotate:
		return pipeline.NewRotateRequest(src, s.Angle)
	case pipeline.OpMedian:
		return pipeline.NewMedianRequest(src)
	case pipeline.OpConvolve:
		kernel := pipeline.BoxKernel()
		if s.Kernel != nil {
			kernel = *s.Kernel
		}
		return pipeline.NewConvolveRequest(src, kernel)
	}

	tw, th := s.targetSize(src.Width, src.Height)
	return pipeline.NewScaleRequest(s.Op, src, tw, th)
}

func (s Step) targetSize(w, h int) (int, int) {
	if s.Factor > 0 {
		return scaled(w, s.Factor), scaled(h, s.Factor)
	}

	tw, th := s.Width, s.Height
	switch {
	case tw > 0 && th <= 0 && w > 0:
		th = scaled(h, float64(tw)/float64(w))
	case th > 0 && tw <= 0 && h > 0:
		tw = scaled(w, float64(th)/float64(h))
	}
	return tw, th
}

// scaled multiplies n by f, rounding down and never below 1.
func scaled(n int, f float64) int {
	v := int(math.Floor(float64(n) * f))
	if v < 1 {
		return 1
	}
	return v
}

// Config contains everything needed for one run.
type Config struct {
	InputPath  string
	OutputPath string
	Steps      []Step

	// Format of the output. FormatUnknown picks it from OutputPath.
	Format  ports.ImageFormat
	Quality int
}

// Orchestrator reads an image, applies steps on a Runner and writes the result.
type Orchestrator struct {
	runner Runner
	codec  ports.ImageCodec
	fs     ports.FileSystem
	sink   ports.DebugSink
	logger ports.Logger
}

// New creates a new Orchestrator.
func New(
	runner Runner,
	codec ports.ImageCodec,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		runner: runner,
		codec:  codec,
		fs:     fs,
		sink:   sink,
		logger: logger,
	}
}

// Run executes every step of config in order.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	start := time.Now()

	if len(config.Steps) == 0 {
		return RunResult{}, ErrNoSteps
	}

	format := config.Format
	if format == ports.FormatUnknown {
		format = ports.FormatFromPath(config.OutputPath)
	}
	if format == ports.FormatUnknown || format == ports.FormatWebP {
		return RunResult{}, fmt.Errorf("%w: %s", ErrOutputFormat, config.OutputPath)
	}

	o.logger.Info("Processing %s", config.InputPath)

	// 1. Read and decode
	data, err := o.fs.ReadFile(config.InputPath)
	if err != nil {
		o.logger.Error("Failed to read input: %s", err)
		return RunResult{}, fmt.Errorf("read input: %w", err)
	}

	img, inputFormat, err := o.codec.Decode(data)
	if err != nil {
		o.logger.Error("Failed to decode input: %s", err)
		return RunResult{}, fmt.Errorf("decode input: %w", err)
	}
	buf := pixel.FromImage(img)
	o.logger.Info("Decoded %s image: %dx%d", inputFormat, buf.Width, buf.Height)

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(config.Steps, "", "  "); err == nil {
			o.sink.SaveRecipeJSON(data)
		}
		o.sink.SaveSource(img)
	}

	result := RunResult{
		InputPath:    config.InputPath,
		OutputPath:   config.OutputPath,
		InputFormat:  inputFormat,
		OutputFormat: format,
		SourceWidth:  buf.Width,
		SourceHeight: buf.Height,
		Source:       img,
	}

	// 2. Apply steps
	for i, step := range config.Steps {
		req := step.Request(buf)
		stepStart := time.Now()

		res, err := o.runner.Do(ctx, req)
		if err != nil {
			o.logger.Error("Step %d (%s) failed: %s", i+1, step.Op, err)
			return RunResult{}, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}

		sr := StepResult{
			Index:        i + 1,
			Op:           step.Op,
			InputWidth:   buf.Width,
			InputHeight:  buf.Height,
			OutputWidth:  res.Buffer.Width,
			OutputHeight: res.Buffer.Height,
			Duration:     time.Since(stepStart),
		}
		result.Steps = append(result.Steps, sr)
		o.logger.Info("Step %d/%d: %s %dx%d to %dx%d in %d ms",
			sr.Index, len(config.Steps), sr.Op, sr.InputWidth, sr.InputHeight,
			sr.OutputWidth, sr.OutputHeight, sr.Duration.Milliseconds())

		if o.sink.Enabled() {
			o.sink.SaveStep(sr.Index, step.Op.String(), res.Buffer.ToImage())
		}
		buf = res.Buffer
	}

	// 3. Encode and write
	out := buf.ToImage()
	encoded, err := o.codec.Encode(out, format, config.Quality)
	if err != nil {
		o.logger.Error("Failed to encode output: %s", err)
		return RunResult{}, fmt.Errorf("encode output: %w", err)
	}

	if err := o.fs.WriteFile(config.OutputPath, encoded); err != nil {
		o.logger.Error("Failed to write output: %s", err)
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}
	o.logger.Info("Output saved to %s", config.OutputPath)

	result.OutputWidth = buf.Width
	result.OutputHeight = buf.Height
	result.OutputBytes = int64(len(encoded))
	result.Output = out
	result.TotalDuration = time.Since(start)

	return result, nil
}

// StepResult describes one executed step.
type StepResult struct {
	Index        int
	Op           pipeline.Op
	InputWidth   int
	InputHeight  int
	OutputWidth  int
	OutputHeight int
	Duration     time.Duration
}

// RunResult contains the results of a run for summary generation.
type RunResult struct {
	InputPath    string
	OutputPath   string
	InputFormat  ports.ImageFormat
	OutputFormat ports.ImageFormat

	SourceWidth  int
	SourceHeight int
	OutputWidth  int
	OutputHeight int
	OutputBytes  int64

	Steps         []StepResult
	TotalDuration time.Duration

	// Decoded input and final output, for comparison sheets.
	Source image.Image
	Output image.Image
}
