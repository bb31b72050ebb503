package mocks

import (
	"image"
	"sync"

	"github.com/user/pixelworker/pkg/ports"
)

// SavedStep is one image recorded by DebugSink.SaveStep.
type SavedStep struct {
	Index int
	Op    string
	Image image.Image
}

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	RecipeJSON []byte
	Source     image.Image
	Steps      []SavedStep
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveRecipeJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecipeJSON = data
	return nil
}

func (m *DebugSink) SaveSource(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Source = img
	return nil
}

func (m *DebugSink) SaveStep(index int, op string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Steps = append(m.Steps, SavedStep{Index: index, Op: op, Image: img})
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
