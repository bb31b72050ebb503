// Package config loads transform recipes from YAML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/pixelworker/pkg/orchestrator"
	"github.com/user/pixelworker/pkg/pipeline"
)

var (
	// ErrNoSteps is returned by Validate for a recipe without steps.
	ErrNoSteps = errors.New("config: recipe has no steps")
	// ErrUnknownStep is returned for a step whose op is not recognized.
	ErrUnknownStep = errors.New("config: unknown step")
	// ErrInvalidStep is returned for a step with unusable parameters.
	ErrInvalidStep = errors.New("config: invalid step")
	// ErrInvalidQuality is returned for an output quality outside 1..100.
	ErrInvalidQuality = errors.New("config: quality must be between 1 and 100")
)

// MaxAngle bounds rotation angles, matching a full turn in either direction.
const MaxAngle = 360.0

// Recipe is a sequence of transform steps plus output settings.
type Recipe struct {
	// Input/Output
	Input  string `yaml:"input" json:"input,omitempty"`
	Output string `yaml:"output" json:"output,omitempty"`

	Steps []Step `yaml:"steps" json:"steps"`

	// Encoding
	Quality    int  `yaml:"quality" json:"quality"`
	AutoOrient bool `yaml:"auto_orient" json:"auto_orient"`

	// Execution
	Workers   int `yaml:"workers" json:"workers"`
	QueueSize int `yaml:"queue_size" json:"queue_size"`

	// Extras
	Compare CompareConfig `yaml:"compare" json:"compare"`
	Summary string        `yaml:"summary" json:"summary,omitempty"`

	// Debug
	Debug    bool   `yaml:"debug" json:"debug"`
	DebugDir string `yaml:"debug_dir" json:"debug_dir"`
}

// Step is one operation as written in a recipe file.
type Step struct {
	Op     string    `yaml:"op" json:"op"`
	Width  int       `yaml:"width,omitempty" json:"width,omitempty"`
	Height int       `yaml:"height,omitempty" json:"height,omitempty"`
	Factor float64   `yaml:"factor,omitempty" json:"factor,omitempty"`
	Angle  float64   `yaml:"angle,omitempty" json:"angle,omitempty"`
	Kernel []float64 `yaml:"kernel,omitempty" json:"kernel,omitempty"`
}

// CompareConfig configures the before/after comparison sheet.
type CompareConfig struct {
	Path  string      `yaml:"path" json:"path,omitempty"`
	Gap   int         `yaml:"gap" json:"gap"`
	Theme ThemeConfig `yaml:"theme" json:"theme"`
}

// ThemeConfig represents theming options.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color" json:"background_color"`
	TextColor       string `yaml:"text_color" json:"text_color"`
	BorderColor     string `yaml:"border_color" json:"border_color"`
}

// Defaults returns a Recipe with default values and no steps.
func Defaults() Recipe {
	return Recipe{
		// Encoding
		Quality:    90,
		AutoOrient: true,

		// Execution
		Workers:   4,
		QueueSize: 16,

		// Extras
		Compare: CompareConfig{
			Gap: 16,
			Theme: ThemeConfig{
				BackgroundColor: "#1a1a2e",
				TextColor:       "#ffffff",
				BorderColor:     "#333355",
			},
		},

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads a recipe from a YAML file on top of Defaults.
func LoadFromFile(path string) (Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	return Parse(data)
}

// Parse decodes YAML recipe data on top of Defaults.
func Parse(data []byte) (Recipe, error) {
	r := Defaults()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse recipe: %w", err)
	}
	return r, nil
}

// Validate checks the recipe without touching any image.
func (r Recipe) Validate() error {
	if len(r.Steps) == 0 {
		return ErrNoSteps
	}
	if r.Quality < 1 || r.Quality > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, r.Quality)
	}
	for i, s := range r.Steps {
		if _, err := s.Resolve(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Resolve converts the step into its executable form.
func (s Step) Resolve() (orchestrator.Step, error) {
	op, ok := pipeline.ParseOp(s.Op)
	if !ok {
		return orchestrator.Step{}, fmt.Errorf("%w: %q", ErrUnknownStep, s.Op)
	}

	step := orchestrator.Step{Op: op}

	switch op {
	case pipeline.OpRotate:
		if s.Angle < -MaxAngle || s.Angle > MaxAngle {
			return step, fmt.Errorf("%w: angle %v outside -360..360", ErrInvalidStep, s.Angle)
		}
		step.Angle = s.Angle

	case pipeline.OpConvolve:
		if len(s.Kernel) > 0 {
			k, err := pipeline.KernelFromSlice(s.Kernel)
			if err != nil {
				return step, fmt.Errorf("%w: %v", ErrInvalidStep, err)
			}
			if k.Sum() == 0 || !k.Finite() {
				return step, fmt.Errorf("%w: kernel weights must be finite with a non-zero sum", ErrInvalidStep)
			}
			step.Kernel = &k
		}

	case pipeline.OpMedian:

	default:
		if s.Factor < 0 || s.Width < 0 || s.Height < 0 {
			return step, fmt.Errorf("%w: %s size must not be negative", ErrInvalidStep, op)
		}
		if s.Factor == 0 && s.Width == 0 && s.Height == 0 {
			return step, fmt.Errorf("%w: %s needs width, height or factor", ErrInvalidStep, op)
		}
		step.Width, step.Height, step.Factor = s.Width, s.Height, s.Factor
	}

	return step, nil
}

// ToOrchestratorConfig converts the recipe for one input/output pair.
// Empty paths fall back to the recipe's own Input and Output.
func (r Recipe) ToOrchestratorConfig(input, output string) (orchestrator.Config, error) {
	if input == "" {
		input = r.Input
	}
	if output == "" {
		output = r.Output
	}

	cfg := orchestrator.Config{
		InputPath:  input,
		OutputPath: output,
		Quality:    r.Quality,
	}
	for i, s := range r.Steps {
		step, err := s.Resolve()
		if err != nil {
			return cfg, fmt.Errorf("step %d: %w", i+1, err)
		}
		cfg.Steps = append(cfg.Steps, step)
	}
	return cfg, nil
}

// ParseKernel parses nine comma or space separated weights.
func ParseKernel(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	if len(fields) != 9 {
		return nil, fmt.Errorf("kernel needs 9 values, got %d", len(fields))
	}

	values := make([]float64, 0, 9)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("kernel value %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseColor parses a hex color string (#rgb or #rrggbb) to color.Color.
// Malformed input yields black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
