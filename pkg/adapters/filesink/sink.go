// Package filesink writes intermediate recipe results to a directory.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/pixelworker/pkg/ports"
)

// Sink saves debug output to files under baseDir:
//
//	recipe.json
//	source.png
//	steps/step-01-median.png
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	codec   ports.ImageCodec
}

// New creates a new Sink.
func New(baseDir string, fs ports.FileSystem, codec ports.ImageCodec) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		codec:   codec,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveRecipeJSON saves the resolved recipe.
func (s *Sink) SaveRecipeJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "recipe.json"), data)
}

// SaveSource saves the decoded input as PNG.
func (s *Sink) SaveSource(img image.Image) error {
	return s.savePNG(filepath.Join(s.baseDir, "source.png"), img)
}

// SaveStep saves the result of step index (1-based) as PNG.
func (s *Sink) SaveStep(index int, op string, img image.Image) error {
	dir := filepath.Join(s.baseDir, "steps")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.savePNG(filepath.Join(dir, StepFileName(index, op)), img)
}

// StepFileName returns the file name used for step index.
func StepFileName(index int, op string) string {
	return fmt.Sprintf("step-%02d-%s.png", index, op)
}

func (s *Sink) savePNG(path string, img image.Image) error {
	data, err := s.codec.Encode(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return s.fs.WriteFile(path, data)
}

var _ ports.DebugSink = (*Sink)(nil)
