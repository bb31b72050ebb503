// Package nullsink provides a debug sink that discards everything.
package nullsink

import (
	"image"

	"github.com/user/pixelworker/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false; callers skip encoding intermediate results.
func (s *Sink) Enabled() bool {
	return false
}

// SaveRecipeJSON does nothing.
func (s *Sink) SaveRecipeJSON(data []byte) error {
	return nil
}

// SaveSource does nothing.
func (s *Sink) SaveSource(img image.Image) error {
	return nil
}

// SaveStep does nothing.
func (s *Sink) SaveStep(index int, op string, img image.Image) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
