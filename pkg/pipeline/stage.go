// Package pipeline provides the stage abstraction and the job types shared
// by the transform engines, the dispatcher and the worker.
package pipeline

import (
	"context"
)

// Stage is one transform engine exposed behind a uniform signature.
// Engines are pure: the output depends only on the input.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
