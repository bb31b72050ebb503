package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving the buffer produced by every recipe step.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRecipeJSON saves the resolved recipe as JSON.
	SaveRecipeJSON(data []byte) error

	// SaveSource saves the decoded input image.
	SaveSource(img image.Image) error

	// SaveStep saves the output of step index, produced by operation op.
	SaveStep(index int, op string, img image.Image) error
}
