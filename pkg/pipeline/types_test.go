package pipeline

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/user/pixelworker/pkg/pixel"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		in   string
		want Op
	}{
		{"nearest", OpNearestNeighbor},
		{"NN", OpNearestNeighbor},
		{"bilinear", OpBilinear},
		{"k-times", OpForwardScale},
		{" kscale ", OpForwardScale},
		{"rotate", OpRotate},
		{"median", OpMedian},
		{"convolution", OpConvolve},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOp(tt.in)
			if !ok {
				t.Fatalf("ParseOp(%q) failed", tt.in)
			}
			if got != tt.want {
				t.Errorf("ParseOp(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	if _, ok := ParseOp("sharpen"); ok {
		t.Error("expected unknown name to fail")
	}
}

func TestOp_Tags(t *testing.T) {
	for tag := 1; tag <= 6; tag++ {
		if !Op(tag).Known() {
			t.Errorf("tag %d should be known", tag)
		}
	}
	for _, tag := range []int{0, 7, -1} {
		if Op(tag).Known() {
			t.Errorf("tag %d should be unknown", tag)
		}
	}
	if Op(9).String() != "op(9)" {
		t.Errorf("unexpected name %q", Op(9).String())
	}
	if !OpForwardScale.IsScale() || OpRotate.IsScale() {
		t.Error("IsScale mismatch")
	}
}

func TestOp_JSON(t *testing.T) {
	data, err := json.Marshal(struct{ Op Op }{OpMedian})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"Op":"median"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var decoded struct{ Op Op }
	if err := json.Unmarshal([]byte(`{"Op":"bilinear"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Op != OpBilinear {
		t.Errorf("expected bilinear, got %s", decoded.Op)
	}

	if _, err := json.Marshal(struct{ Op Op }{Op(42)}); err == nil {
		t.Error("expected error marshaling unknown tag")
	}
}

func TestKernel(t *testing.T) {
	if BoxKernel().Sum() != 9 {
		t.Errorf("box kernel sum = %v", BoxKernel().Sum())
	}
	if IdentityKernel().Sum() != 1 || IdentityKernel().Weight(4) != 1 {
		t.Error("identity kernel must weight only the center")
	}

	k, err := KernelFromSlice([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		t.Fatalf("KernelFromSlice failed: %v", err)
	}
	if k[1][2] != 6 || k.Weight(7) != 8 {
		t.Errorf("unexpected layout %v", k)
	}

	if _, err := KernelFromSlice([]float64{1, 2}); err == nil {
		t.Error("expected error for short kernel")
	}

	k[0][0] = math.NaN()
	if k.Finite() {
		t.Error("expected NaN weight to be non-finite")
	}
}

func TestStageFunc(t *testing.T) {
	stage := StageFunc[FilterInput, pixel.Buffer](func(ctx context.Context, in FilterInput) (pixel.Buffer, error) {
		return in.Source.Clone(), nil
	})

	src := pixel.New(2, 2)
	out, err := stage.Execute(context.Background(), FilterInput{Source: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Width != 2 || out.Height != 2 {
		t.Errorf("expected 2x2, got %dx%d", out.Width, out.Height)
	}
}
