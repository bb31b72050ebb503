// Package summarizer builds Markdown summaries of transform runs.
package summarizer

import (
	"time"

	"github.com/user/pixelworker/pkg/orchestrator"
)

// Summary contains everything reported about one CLI invocation.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Settings Settings

	// One entry per processed file.
	Runs []Run
}

// Settings contains the execution configuration.
type Settings struct {
	Command    string
	Quality    int
	AutoOrient bool
	Workers    int
	QueueSize  int
}

// Run describes one processed file.
type Run struct {
	Input    ImageInfo
	Output   ImageInfo
	Steps    []StepInfo
	Duration time.Duration

	// Err is set when the file failed.
	Err string
}

// ImageInfo describes an input or output image.
type ImageInfo struct {
	Path   string
	Format string
	Width  int
	Height int
	Bytes  int64
}

// StepInfo describes one executed step.
type StepInfo struct {
	Index        int
	Op           string
	InputWidth   int
	InputHeight  int
	OutputWidth  int
	OutputHeight int
	Duration     time.Duration
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// RunFromResult converts an orchestrator result into a Run.
func RunFromResult(r orchestrator.RunResult) Run {
	run := Run{
		Input: ImageInfo{
			Path:   r.InputPath,
			Format: r.InputFormat.String(),
			Width:  r.SourceWidth,
			Height: r.SourceHeight,
		},
		Output: ImageInfo{
			Path:   r.OutputPath,
			Format: r.OutputFormat.String(),
			Width:  r.OutputWidth,
			Height: r.OutputHeight,
			Bytes:  r.OutputBytes,
		},
		Duration: r.TotalDuration,
	}
	for _, s := range r.Steps {
		run.Steps = append(run.Steps, StepInfo{
			Index:        s.Index,
			Op:           s.Op.String(),
			InputWidth:   s.InputWidth,
			InputHeight:  s.InputHeight,
			OutputWidth:  s.OutputWidth,
			OutputHeight: s.OutputHeight,
			Duration:     s.Duration,
		})
	}
	return run
}

// FailedRun records a file that could not be processed.
func FailedRun(input, output string, err error) Run {
	return Run{
		Input:  ImageInfo{Path: input},
		Output: ImageInfo{Path: output},
		Err:    err.Error(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSettings sets the execution settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddRun appends a processed file.
func (b *Builder) AddRun(run Run) *Builder {
	b.summary.Runs = append(b.summary.Runs, run)
	return b
}

// AddResult appends a successful orchestrator result.
func (b *Builder) AddResult(result orchestrator.RunResult) *Builder {
	return b.AddRun(RunFromResult(result))
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
