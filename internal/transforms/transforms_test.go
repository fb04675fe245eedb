package transforms

import (
	"math"
	"testing"

	"github.com/ganeval-ml/ganeval/internal/backend/cpu"
	"github.com/ganeval-ml/ganeval/internal/tensor"
)

type B = *cpu.CPUBackend

func fromSlice(t *testing.T, data []float32, shape tensor.Shape, b B) *tensor.Tensor[float32, B] {
	t.Helper()
	ts, err := tensor.FromSlice(data, shape, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return ts
}

func checkClose(t *testing.T, got []float32, want []float32, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i])-float64(want[i])) > tol {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResizeUpscaleBilinear(t *testing.T) {
	b := cpu.New()
	input := fromSlice(t, []float32{0, 1, 2, 3}, tensor.Shape{1, 1, 2, 2}, b)

	out := NewResize(4, b).Apply(input)
	if !out.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("output shape = %v, want [1 1 4 4]", out.Shape())
	}
	checkClose(t, out.Data(), []float32{
		0, 0.25, 0.75, 1,
		0.5, 0.75, 1.25, 1.5,
		1.5, 1.75, 2.25, 2.5,
		2, 2.25, 2.75, 3,
	}, 1e-5)
}

func TestResizeShorterSide(t *testing.T) {
	b := cpu.New()

	// 4x8 image, target 2: shorter side becomes 2, aspect ratio preserved.
	out := NewResize(2, b).Apply(tensor.Randn[float32](tensor.Shape{1, 3, 4, 8}, b))
	if !out.Shape().Equal(tensor.Shape{1, 3, 2, 4}) {
		t.Errorf("output shape = %v, want [1 3 2 4]", out.Shape())
	}

	// 8x4 image, target 2: width is the shorter side.
	out = NewResize(2, b).Apply(tensor.Randn[float32](tensor.Shape{1, 3, 8, 4}, b))
	if !out.Shape().Equal(tensor.Shape{1, 3, 4, 2}) {
		t.Errorf("output shape = %v, want [1 3 4 2]", out.Shape())
	}
}

func TestResizeLongSideRounds(t *testing.T) {
	b := cpu.New()

	// 4x6 image, target 3: the long side scales to 4.5 and rounds up to 5.
	out := NewResize(3, b).Apply(tensor.Randn[float32](tensor.Shape{1, 1, 4, 6}, b))
	if !out.Shape().Equal(tensor.Shape{1, 1, 3, 5}) {
		t.Errorf("output shape = %v, want [1 1 3 5]", out.Shape())
	}

	// Transposed aspect ratio takes the other branch.
	out = NewResize(3, b).Apply(tensor.Randn[float32](tensor.Shape{1, 1, 6, 4}, b))
	if !out.Shape().Equal(tensor.Shape{1, 1, 5, 3}) {
		t.Errorf("output shape = %v, want [1 1 5 3]", out.Shape())
	}
}

func TestResizeIdentity(t *testing.T) {
	b := cpu.New()
	input := tensor.Randn[float32](tensor.Shape{1, 1, 3, 3}, b)
	out := NewResize(3, b).Apply(input)
	if out != input {
		t.Error("resize to the same size should return the input")
	}
}

func TestCenterCrop(t *testing.T) {
	b := cpu.New()
	input := fromSlice(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, tensor.Shape{1, 1, 4, 4}, b)

	out := NewCenterCrop(2, b).Apply(input)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("output shape = %v, want [1 1 2 2]", out.Shape())
	}
	checkClose(t, out.Data(), []float32{6, 7, 10, 11}, 0)
}

func TestCenterCropTooSmall(t *testing.T) {
	b := cpu.New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for input smaller than the crop")
		}
	}()
	NewCenterCrop(4, b).Apply(tensor.Randn[float32](tensor.Shape{1, 1, 2, 2}, b))
}

func TestNormalize(t *testing.T) {
	b := cpu.New()
	nm := NewNormalize([]float32{0.5, 0.25}, []float32{0.5, 0.25}, b)

	input := fromSlice(t, []float32{0, 1, 0, 1}, tensor.Shape{1, 2, 1, 2}, b)
	out := nm.Apply(input)

	// Channel 0: (x-0.5)/0.5; channel 1: (x-0.25)/0.25.
	checkClose(t, out.Data(), []float32{-1, 1, -1, 3}, 1e-6)
	// The input is untouched.
	checkClose(t, input.Data(), []float32{0, 1, 0, 1}, 0)
}

func TestNormalizeInvertRoundtrip(t *testing.T) {
	b := cpu.New()
	mean := []float32{0.485, 0.456, 0.406}
	std := []float32{0.229, 0.224, 0.225}
	nm := NewNormalize(mean, std, b)

	input := tensor.Rand[float32](tensor.Shape{2, 3, 4, 4}, b)
	restored := nm.Invert().Apply(nm.Apply(input))

	checkClose(t, restored.Data(), input.Data(), 1e-5)
}

func TestNormalizeValidation(t *testing.T) {
	b := cpu.New()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero std")
		}
	}()
	NewNormalize([]float32{0.5}, []float32{0}, b)
}

func TestComposeInvertSkipsGeometric(t *testing.T) {
	b := cpu.New()
	pipeline := NewCompose[B](
		NewResize(4, b),
		NewCenterCrop(4, b),
		NewNormalize([]float32{0.5}, []float32{0.5}, b),
	)

	input := tensor.Rand[float32](tensor.Shape{1, 1, 6, 6}, b)
	forward := pipeline.Apply(input)
	if !forward.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("forward shape = %v, want [1 1 4 4]", forward.Shape())
	}

	// The inverse only undoes the normalization; the 4x4 geometry stays.
	back := pipeline.Invert().Apply(forward)
	if !back.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("inverse shape = %v, want [1 1 4 4]", back.Shape())
	}
	for i, v := range back.Data() {
		if v < -1e-5 || v > 1+1e-5 {
			t.Fatalf("element %d = %v outside the original [0,1] range", i, v)
		}
	}
}

func TestClassifierPreset(t *testing.T) {
	b := cpu.New()
	pipeline := Classifier(b)
	if pipeline.Len() != 3 {
		t.Fatalf("Len = %d, want 3", pipeline.Len())
	}

	out := pipeline.Apply(tensor.Rand[float32](tensor.Shape{1, 3, 32, 32}, b))
	if !out.Shape().Equal(tensor.Shape{1, 3, ClassifierInputSize, ClassifierInputSize}) {
		t.Errorf("output shape = %v, want [1 3 %d %d]", out.Shape(), ClassifierInputSize, ClassifierInputSize)
	}
}

func TestTanhOutputInverse(t *testing.T) {
	b := cpu.New()
	gen := TanhOutput(1, b)

	// Generator range [-1, 1] maps back to image range [0, 1].
	input := fromSlice(t, []float32{-1, 0, 1}, tensor.Shape{1, 1, 1, 3}, b)
	out := gen.Invert().Apply(input)
	checkClose(t, out.Data(), []float32{0, 0.5, 1}, 1e-6)
}
