package nn

import (
	"math"
	"testing"

	"github.com/ganeval-ml/ganeval/internal/backend/cpu"
	"github.com/ganeval-ml/ganeval/internal/tensor"
)

func fromSlice(t *testing.T, data []float32, shape tensor.Shape, b *cpu.CPUBackend) *tensor.Tensor[float32, *cpu.CPUBackend] {
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

func TestLinearForward(t *testing.T) {
	b := cpu.New()
	layer := NewLinear(3, 2, b)

	// Overwrite the random init with known values.
	w := layer.Weight().Tensor().Raw().AsFloat32()
	copy(w, []float32{1, 0, -1, 2, 1, 0}) // [2,3]
	bias := layer.Bias().Tensor().Raw().AsFloat32()
	copy(bias, []float32{1, -1})

	input := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	out := layer.Forward(input)

	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("output shape = %v, want [2 2]", out.Shape())
	}
	// Row 0: [1-3+1, 2+2-1] = [-1, 3]; row 1: [4-6+1, 8+5-1] = [-1, 12].
	checkClose(t, out.Data(), []float32{-1, 3, -1, 12}, 1e-5)
}

func TestLinearShapeChecks(t *testing.T) {
	b := cpu.New()
	layer := NewLinear(4, 2, b)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on feature mismatch")
		}
	}()
	layer.Forward(fromSlice(t, []float32{1, 2, 3}, tensor.Shape{1, 3}, b))
}

func TestConv2DModuleBias(t *testing.T) {
	b := cpu.New()
	conv := NewConv2D(1, 1, 2, 2, 1, 0, true, b)

	copy(conv.Weight().Tensor().Raw().AsFloat32(), []float32{1, 1, 1, 1})
	copy(conv.bias.Tensor().Raw().AsFloat32(), []float32{10})

	input := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, b)
	out := conv.Forward(input)

	if !out.Shape().Equal(tensor.Shape{1, 1, 1, 1}) {
		t.Fatalf("output shape = %v, want [1 1 1 1]", out.Shape())
	}
	checkClose(t, out.Data(), []float32{20}, 1e-5)
}

func TestConv2DComputeOutputSize(t *testing.T) {
	b := cpu.New()
	conv := NewConv2D(3, 8, 3, 3, 2, 1, true, b)

	size := conv.ComputeOutputSize(16, 16)
	if size != [2]int{8, 8} {
		t.Errorf("output size = %v, want [8 8]", size)
	}
}

func TestActivations(t *testing.T) {
	b := cpu.New()
	input := fromSlice(t, []float32{-2, -0.5, 0, 1}, tensor.Shape{4}, b)

	relu := NewReLU(b).Forward(input)
	checkClose(t, relu.Data(), []float32{0, 0, 0, 1}, 1e-6)

	lrelu := NewLeakyReLU(0.2, b).Forward(input)
	checkClose(t, lrelu.Data(), []float32{-0.4, -0.1, 0, 1}, 1e-6)

	tanh := NewTanh(b).Forward(input)
	checkClose(t, tanh.Data(), []float32{
		float32(math.Tanh(-2)), float32(math.Tanh(-0.5)), 0, float32(math.Tanh(1)),
	}, 1e-5)

	sig := NewSigmoid(b).Forward(input)
	checkClose(t, sig.Data(), []float32{
		float32(1 / (1 + math.Exp(2))),
		float32(1 / (1 + math.Exp(0.5))),
		0.5,
		float32(1 / (1 + math.Exp(-1))),
	}, 1e-5)

	// The input must not be mutated by any of the activations.
	checkClose(t, input.Data(), []float32{-2, -0.5, 0, 1}, 0)
}

func TestSoftmaxModule(t *testing.T) {
	b := cpu.New()
	input := fromSlice(t, []float32{1, 2, 3, 1, 1, 1}, tensor.Shape{2, 3}, b)

	out := NewSoftmax(-1, b).Forward(input)
	data := out.Data()
	for row := 0; row < 2; row++ {
		var sum float64
		for col := 0; col < 3; col++ {
			sum += float64(data[row*3+col])
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("row %d sums to %v, want 1", row, sum)
		}
	}
	checkClose(t, data[3:], []float32{1.0 / 3, 1.0 / 3, 1.0 / 3}, 1e-5)
}

func TestDropoutEvalIsIdentity(t *testing.T) {
	b := cpu.New()
	d := NewDropout(0.5, b)
	if d.Training() {
		t.Fatal("dropout should start in eval mode")
	}

	input := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4}, b)
	out := d.Forward(input)
	checkClose(t, out.Data(), []float32{1, 2, 3, 4}, 0)
}

func TestDropoutTrainScalesKeptValues(t *testing.T) {
	b := cpu.New()
	d := NewDropout(0.5, b)
	d.Train(true)

	input := fromSlice(t, []float32{1, 1, 1, 1, 1, 1, 1, 1}, tensor.Shape{8}, b)
	out := d.Forward(input)
	for i, v := range out.Data() {
		if v != 0 && math.Abs(float64(v)-2) > 1e-6 {
			t.Errorf("element %d: got %v, want 0 or 2", i, v)
		}
	}
	// The input is left untouched.
	checkClose(t, input.Data(), []float32{1, 1, 1, 1, 1, 1, 1, 1}, 0)
}

func TestDropoutInvalidP(t *testing.T) {
	b := cpu.New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for p=1")
		}
	}()
	NewDropout(1, b)
}

func TestSequential(t *testing.T) {
	b := cpu.New()
	seq := NewSequential[*cpu.CPUBackend](
		NewLinear(3, 4, b),
		NewReLU(b),
	)
	seq.Append(NewDropout(0.5, b))
	seq.Append(NewLinear(4, 2, b))

	if seq.Len() != 4 {
		t.Fatalf("Len = %d, want 4", seq.Len())
	}

	input := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{1, 3}, b)
	out := seq.Forward(input)
	if !out.Shape().Equal(tensor.Shape{1, 2}) {
		t.Errorf("output shape = %v, want [1 2]", out.Shape())
	}

	// Two Linear layers with weight and bias each.
	if got := len(seq.Parameters()); got != 4 {
		t.Errorf("Parameters length = %d, want 4", got)
	}

	seq.Train(true)
	d := seq.At(2).(*Dropout[*cpu.CPUBackend])
	if !d.Training() {
		t.Error("Train(true) did not reach the dropout layer")
	}
	seq.Train(false)
	if d.Training() {
		t.Error("Train(false) did not reach the dropout layer")
	}
}

func TestPad2DIdentity(t *testing.T) {
	b := cpu.New()
	p := NewPad2D(0, tensor.PadZero, b)

	input := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, b)
	out := p.Forward(input)
	if !out.Shape().Equal(input.Shape()) {
		t.Errorf("padding 0 changed the shape: %v", out.Shape())
	}
}

func TestPad2DReflect(t *testing.T) {
	b := cpu.New()
	p := NewPad2D(1, tensor.PadReflect, b)

	input := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, b)
	out := p.Forward(input)
	if !out.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("output shape = %v, want [1 1 4 4]", out.Shape())
	}
	checkClose(t, out.Data(), []float32{
		4, 3, 4, 3,
		2, 1, 2, 1,
		4, 3, 4, 3,
		2, 1, 2, 1,
	}, 0)
}

func TestMaxPool2DModule(t *testing.T) {
	b := cpu.New()
	pool := NewMaxPool2D(2, 2, b)

	input := fromSlice(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, tensor.Shape{1, 1, 4, 4}, b)

	out := pool.Forward(input)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("output shape = %v, want [1 1 2 2]", out.Shape())
	}
	checkClose(t, out.Data(), []float32{6, 8, 14, 16}, 0)
}

func TestIdentity(t *testing.T) {
	b := cpu.New()
	input := fromSlice(t, []float32{1, 2}, tensor.Shape{2}, b)
	out := NewIdentity[*cpu.CPUBackend]().Forward(input)
	if out != input {
		t.Error("identity should return its input unchanged")
	}
}
