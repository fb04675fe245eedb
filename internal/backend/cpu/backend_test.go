package cpu

import (
	"math"
	"testing"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

func rawFromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw error: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func checkValues(t *testing.T, got *tensor.RawTensor, want []float32, name string) {
	t.Helper()
	data := got.AsFloat32()
	if len(data) != len(want) {
		t.Fatalf("%s: got %d values, want %d", name, len(data), len(want))
	}
	for i := range want {
		if math.Abs(float64(data[i]-want[i])) > 1e-5 {
			t.Errorf("%s: data[%d] = %g, want %g", name, i, data[i], want[i])
		}
	}
}

func TestConv2DValues(t *testing.T) {
	backend := New()

	// 1x1x3x3 input, 1x1x2x2 all-ones kernel, stride 1, no padding.
	input := rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{1, 1, 3, 3})
	kernel := rawFromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{1, 1, 2, 2})

	out := backend.Conv2D(input, kernel, 1, 0)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Conv2D shape = %v, want [1 1 2 2]", out.Shape())
	}
	checkValues(t, out, []float32{12, 16, 24, 28}, "Conv2D")
}

func TestConv2DStrideAndPadding(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel := rawFromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1})

	// Identity kernel with padding 1, stride 2 samples padded positions
	// (0,0), (0,2), (2,0) and (2,2); only the last lands in bounds, on
	// the input value 4.
	out := backend.Conv2D(input, kernel, 2, 1)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Conv2D shape = %v, want [1 1 2 2]", out.Shape())
	}
	checkValues(t, out, []float32{0, 0, 0, 4}, "Conv2D stride 2 padding 1")
}

func TestConv2DMultiChannel(t *testing.T) {
	backend := New()

	// 2 input channels, kernel sums both channels at a single position.
	input := rawFromSlice(t, []float32{
		1, 2, 3, 4, // channel 0
		10, 20, 30, 40, // channel 1
	}, tensor.Shape{1, 2, 2, 2})
	kernel := rawFromSlice(t, []float32{1, 1}, tensor.Shape{1, 2, 1, 1})

	out := backend.Conv2D(input, kernel, 1, 0)
	checkValues(t, out, []float32{11, 22, 33, 44}, "Conv2D multi-channel")
}

func TestMaxPool2DValues(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, tensor.Shape{1, 1, 4, 4})

	out := backend.MaxPool2D(input, 2, 2)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("MaxPool2D shape = %v, want [1 1 2 2]", out.Shape())
	}
	checkValues(t, out, []float32{6, 8, 14, 16}, "MaxPool2D")
}

func TestPad2DZero(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	out := backend.Pad2D(input, 1, tensor.PadZero)
	if !out.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("Pad2D shape = %v, want [1 1 4 4]", out.Shape())
	}
	checkValues(t, out, []float32{
		0, 0, 0, 0,
		0, 1, 2, 0,
		0, 3, 4, 0,
		0, 0, 0, 0,
	}, "Pad2D zero")
}

func TestPad2DReflect(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3})

	out := backend.Pad2D(input, 1, tensor.PadReflect)
	if !out.Shape().Equal(tensor.Shape{1, 1, 5, 5}) {
		t.Fatalf("Pad2D shape = %v, want [1 1 5 5]", out.Shape())
	}
	checkValues(t, out, []float32{
		5, 4, 5, 6, 5,
		2, 1, 2, 3, 2,
		5, 4, 5, 6, 5,
		8, 7, 8, 9, 8,
		5, 4, 5, 6, 5,
	}, "Pad2D reflect")
}

func TestPad2DReflectTooLarge(t *testing.T) {
	backend := New()
	input := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})

	defer func() {
		if recover() == nil {
			t.Error("reflect padding >= spatial dim should panic")
		}
	}()
	backend.Pad2D(input, 2, tensor.PadReflect)
}

func TestSoftmaxValues(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{1, 2, 3, 1, 1, 1}, tensor.Shape{2, 3})
	out := backend.Softmax(input, 1)

	data := out.AsFloat32()
	// Row sums must be 1.
	for r := 0; r < 2; r++ {
		var sum float64
		for c := 0; c < 3; c++ {
			sum += float64(data[r*3+c])
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("softmax row %d sums to %g, want 1", r, sum)
		}
	}
	// exp(1), exp(2), exp(3) normalized.
	e1, e2, e3 := math.Exp(1), math.Exp(2), math.Exp(3)
	z := e1 + e2 + e3
	want0 := []float64{e1 / z, e2 / z, e3 / z}
	for c := 0; c < 3; c++ {
		if math.Abs(float64(data[c])-want0[c]) > 1e-5 {
			t.Errorf("softmax[0][%d] = %g, want %g", c, data[c], want0[c])
		}
	}
	// Uniform row.
	for c := 3; c < 6; c++ {
		if math.Abs(float64(data[c])-1.0/3.0) > 1e-5 {
			t.Errorf("softmax[1][%d] = %g, want 1/3", c-3, data[c])
		}
	}
}

func TestSumDimAndMeanDim(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	rows := backend.SumDim(input, 1, false)
	if !rows.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("SumDim(1) shape = %v, want [2]", rows.Shape())
	}
	checkValues(t, rows, []float32{6, 15}, "SumDim(1)")

	cols := backend.SumDim(input, 0, true)
	if !cols.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("SumDim(0, keepDim) shape = %v, want [1 3]", cols.Shape())
	}
	checkValues(t, cols, []float32{5, 7, 9}, "SumDim(0, keepDim)")

	neg := backend.SumDim(input, -1, false)
	checkValues(t, neg, []float32{6, 15}, "SumDim(-1)")

	means := backend.MeanDim(input, 1, false)
	checkValues(t, means, []float32{2, 5}, "MeanDim(1)")
}

func TestScalarOps(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	checkValues(t, backend.MulScalar(input, float32(2)), []float32{2, 4, 6, 8}, "MulScalar")
	checkValues(t, backend.AddScalar(input, 1.5), []float32{2.5, 3.5, 4.5, 5.5}, "AddScalar")
	checkValues(t, backend.SubScalar(input, 1), []float32{0, 1, 2, 3}, "SubScalar")
	checkValues(t, backend.DivScalar(input, 2), []float32{0.5, 1, 1.5, 2}, "DivScalar")
}

func TestMathOps(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{1, 4, 9}, tensor.Shape{3})
	checkValues(t, backend.Sqrt(input), []float32{1, 2, 3}, "Sqrt")
	checkValues(t, backend.Rsqrt(input), []float32{1, 0.5, 1.0 / 3.0}, "Rsqrt")

	logIn := rawFromSlice(t, []float32{1, float32(math.E)}, tensor.Shape{2})
	checkValues(t, backend.Log(logIn), []float32{0, 1}, "Log")

	expIn := rawFromSlice(t, []float32{0, 1}, tensor.Shape{2})
	checkValues(t, backend.Exp(expIn), []float32{1, float32(math.E)}, "Exp")
}

func TestCatDim1(t *testing.T) {
	backend := New()

	a := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFromSlice(t, []float32{5, 6}, tensor.Shape{2, 1})

	out := backend.Cat([]*tensor.RawTensor{a, b}, 1)
	if !out.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Cat shape = %v, want [2 3]", out.Shape())
	}
	checkValues(t, out, []float32{1, 2, 5, 3, 4, 6}, "Cat dim 1")
}

func TestCastRoundTrip(t *testing.T) {
	backend := New()

	input := rawFromSlice(t, []float32{1.5, 2.5}, tensor.Shape{2})
	f64 := backend.Cast(input, tensor.Float64)
	if f64.DType() != tensor.Float64 {
		t.Fatalf("Cast dtype = %v, want Float64", f64.DType())
	}
	data := f64.AsFloat64()
	if data[0] != 1.5 || data[1] != 2.5 {
		t.Errorf("Cast values = %v, want [1.5 2.5]", data)
	}

	back := backend.Cast(f64, tensor.Float32)
	checkValues(t, back, []float32{1.5, 2.5}, "Cast back")
}

func TestBinaryBroadcast(t *testing.T) {
	backend := New()

	a := rawFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3, 1})
	b := rawFromSlice(t, []float32{10, 20}, tensor.Shape{1, 2})

	out := backend.Add(a, b)
	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("broadcast Add shape = %v, want [3 2]", out.Shape())
	}
	checkValues(t, out, []float32{11, 21, 12, 22, 13, 23}, "broadcast Add")
}

func TestDivByZeroInf(t *testing.T) {
	backend := New()

	a := rawFromSlice(t, []float32{1}, tensor.Shape{1})
	b := rawFromSlice(t, []float32{0}, tensor.Shape{1})

	out := backend.Div(a, b)
	if v := out.AsFloat32()[0]; !math.IsInf(float64(v), 1) {
		t.Errorf("1/0 = %g, want +Inf", v)
	}
}
