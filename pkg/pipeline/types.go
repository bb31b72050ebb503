package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/user/pixelworker/pkg/pixel"
)

// =============================================================================
// Operations
// =============================================================================

// Op is the operation tag of a job request. The numeric values are part of
// the job protocol and must not change.
type Op int

const (
	OpNearestNeighbor Op = 1
	OpBilinear        Op = 2
	OpForwardScale    Op = 3
	OpRotate          Op = 4
	OpMedian          Op = 5
	OpConvolve        Op = 6
)

var opNames = map[Op]string{
	OpNearestNeighbor: "nearest",
	OpBilinear:        "bilinear",
	OpForwardScale:    "kscale",
	OpRotate:          "rotate",
	OpMedian:          "median",
	OpConvolve:        "convolve",
}

// String returns the short name used in recipes and on the command line.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Known reports whether the tag names one of the six engines.
func (o Op) Known() bool {
	_, ok := opNames[o]
	return ok
}

// IsScale reports whether the operation takes target dimensions.
func (o Op) IsScale() bool {
	return o == OpNearestNeighbor || o == OpBilinear || o == OpForwardScale
}

// MarshalText encodes the operation by name.
func (o Op) MarshalText() ([]byte, error) {
	if !o.Known() {
		return nil, fmt.Errorf("unknown operation tag %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText accepts any name ParseOp accepts.
func (o *Op) UnmarshalText(text []byte) error {
	op, ok := ParseOp(string(text))
	if !ok {
		return fmt.Errorf("unknown operation %q", text)
	}
	*o = op
	return nil
}

// ParseOp parses an operation name. Aliases follow the names of the
// algorithms ("nearest-neighbor", "k-times", ...).
func ParseOp(s string) (Op, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "nearest-neighbor", "nn":
		return OpNearestNeighbor, true
	case "bilinear", "bilinear-interpolation":
		return OpBilinear, true
	case "kscale", "k-times", "forward":
		return OpForwardScale, true
	case "rotate":
		return OpRotate, true
	case "median":
		return OpMedian, true
	case "convolve", "convolution":
		return OpConvolve, true
	default:
		return 0, false
	}
}

// =============================================================================
// Kernel
// =============================================================================

// Kernel is a 3x3 convolution matrix in row-major order.
type Kernel [3][3]float64

// BoxKernel returns the all-ones kernel, a 9-tap box blur.
func BoxKernel() Kernel {
	return Kernel{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}
}

// IdentityKernel returns the kernel that leaves an image unchanged.
func IdentityKernel() Kernel {
	return Kernel{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	}
}

// KernelFromSlice builds a kernel from nine row-major values.
func KernelFromSlice(values []float64) (Kernel, error) {
	var k Kernel
	if len(values) != 9 {
		return k, fmt.Errorf("kernel needs 9 values, got %d", len(values))
	}
	for i, v := range values {
		k[i/3][i%3] = v
	}
	return k, nil
}

// Sum is the normalization factor: the sum of all entries.
func (k Kernel) Sum() float64 {
	var sum float64
	for _, row := range k {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Weight returns the weight for neighbor idx of the 3x3 gather order.
func (k Kernel) Weight(idx int) float64 {
	return k[idx/3][idx%3]
}

// Finite reports whether every entry is a finite number.
func (k Kernel) Finite() bool {
	for _, row := range k {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// =============================================================================
// Stage inputs and results
// =============================================================================

// ScaleInput is the input of the three scalers.
type ScaleInput struct {
	Source       pixel.Buffer
	TargetWidth  int
	TargetHeight int
}

// RotateInput is the input of the rotation engine.
type RotateInput struct {
	Source       pixel.Buffer
	AngleDegrees float64
}

// RotateResult carries the rotated buffer. The new canvas dimensions are
// the buffer's Width and Height.
type RotateResult struct {
	Buffer pixel.Buffer
}

// FilterInput is the input of the median filter.
type FilterInput struct {
	Source pixel.Buffer
}

// ConvolveInput is the input of the convolution filter.
type ConvolveInput struct {
	Source pixel.Buffer
	Kernel Kernel
}

// =============================================================================
// Job protocol
// =============================================================================

// Request is a tagged job. Fields not used by Op are ignored.
type Request struct {
	Op     Op
	Source pixel.Buffer

	// Scale operations
	TargetWidth  int
	TargetHeight int

	// Rotate
	AngleDegrees float64

	// Convolve
	Kernel Kernel
}

// Result is the output of one job. For rotation the new dimensions are
// Buffer.Width and Buffer.Height.
type Result struct {
	Op     Op
	Buffer pixel.Buffer
}

// NewScaleRequest builds a request for one of the three scalers.
func NewScaleRequest(op Op, src pixel.Buffer, targetWidth, targetHeight int) Request {
	return Request{Op: op, Source: src, TargetWidth: targetWidth, TargetHeight: targetHeight}
}

// NewRotateRequest builds a rotation request.
func NewRotateRequest(src pixel.Buffer, angleDegrees float64) Request {
	return Request{Op: OpRotate, Source: src, AngleDegrees: angleDegrees}
}

// NewMedianRequest builds a median filter request.
func NewMedianRequest(src pixel.Buffer) Request {
	return Request{Op: OpMedian, Source: src}
}

// NewConvolveRequest builds a convolution request.
func NewConvolveRequest(src pixel.Buffer, kernel Kernel) Request {
	return Request{Op: OpConvolve, Source: src, Kernel: kernel}
}
