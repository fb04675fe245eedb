package nn

import (
	"fmt"
	"math"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Activation capability interfaces. Backends that provide fused
// implementations satisfy these; otherwise the layers fall back to
// compositions of core ops.

// ReLUBackend is implemented by backends with a native ReLU kernel.
type ReLUBackend interface {
	ReLU(x *tensor.RawTensor) *tensor.RawTensor
}

// LeakyReLUBackend is implemented by backends with a native LeakyReLU kernel.
type LeakyReLUBackend interface {
	LeakyReLU(x *tensor.RawTensor, negativeSlope float64) *tensor.RawTensor
}

// TanhBackend is implemented by backends with a native Tanh kernel.
type TanhBackend interface {
	Tanh(x *tensor.RawTensor) *tensor.RawTensor
}

// SigmoidBackend is implemented by backends with a native Sigmoid kernel.
type SigmoidBackend interface {
	Sigmoid(x *tensor.RawTensor) *tensor.RawTensor
}

// ReLU applies the rectified linear unit function element-wise:
// ReLU(x) = max(0, x).
type ReLU[B tensor.Backend] struct {
	backend B
}

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend](backend B) *ReLU[B] {
	return &ReLU[B]{backend: backend}
}

// Forward applies ReLU activation.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if rb, ok := any(r.backend).(ReLUBackend); ok {
		return tensor.New[float32, B](rb.ReLU(input.Raw()), r.backend)
	}
	// Fallback: relu(x) = (x + |x|) / 2 is not expressible with core ops
	// without abs, so compute on the host.
	out := input.Raw().Copy()
	data := out.AsFloat32()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return tensor.New[float32, B](out, r.backend)
}

// Parameters returns all trainable parameters (empty for ReLU).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (r *ReLU[B]) String() string {
	return "ReLU()"
}

// LeakyReLU applies the leaky rectified linear unit function element-wise:
// LeakyReLU(x) = x if x >= 0, negativeSlope*x otherwise.
type LeakyReLU[B tensor.Backend] struct {
	negativeSlope float64
	backend       B
}

// NewLeakyReLU creates a new LeakyReLU activation layer.
func NewLeakyReLU[B tensor.Backend](negativeSlope float64, backend B) *LeakyReLU[B] {
	return &LeakyReLU[B]{negativeSlope: negativeSlope, backend: backend}
}

// Forward applies LeakyReLU activation.
func (l *LeakyReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if lb, ok := any(l.backend).(LeakyReLUBackend); ok {
		return tensor.New[float32, B](lb.LeakyReLU(input.Raw(), l.negativeSlope), l.backend)
	}
	out := input.Raw().Copy()
	data := out.AsFloat32()
	slope := float32(l.negativeSlope)
	for i, v := range data {
		if v < 0 {
			data[i] = slope * v
		}
	}
	return tensor.New[float32, B](out, l.backend)
}

// Parameters returns all trainable parameters (empty for LeakyReLU).
func (l *LeakyReLU[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (l *LeakyReLU[B]) String() string {
	return fmt.Sprintf("LeakyReLU(negative_slope=%g)", l.negativeSlope)
}

// Tanh applies the hyperbolic tangent function element-wise.
type Tanh[B tensor.Backend] struct {
	backend B
}

// NewTanh creates a new Tanh activation layer.
func NewTanh[B tensor.Backend](backend B) *Tanh[B] {
	return &Tanh[B]{backend: backend}
}

// Forward applies Tanh activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if tb, ok := any(t.backend).(TanhBackend); ok {
		return tensor.New[float32, B](tb.Tanh(input.Raw()), t.backend)
	}
	out := input.Raw().Copy()
	data := out.AsFloat32()
	for i, v := range data {
		data[i] = float32(math.Tanh(float64(v)))
	}
	return tensor.New[float32, B](out, t.backend)
}

// Parameters returns all trainable parameters (empty for Tanh).
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (t *Tanh[B]) String() string {
	return "Tanh()"
}

// Sigmoid applies the logistic function element-wise:
// Sigmoid(x) = 1 / (1 + exp(-x)).
type Sigmoid[B tensor.Backend] struct {
	backend B
}

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid[B tensor.Backend](backend B) *Sigmoid[B] {
	return &Sigmoid[B]{backend: backend}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if sb, ok := any(s.backend).(SigmoidBackend); ok {
		return tensor.New[float32, B](sb.Sigmoid(input.Raw()), s.backend)
	}
	out := input.Raw().Copy()
	data := out.AsFloat32()
	for i, v := range data {
		data[i] = float32(1 / (1 + math.Exp(-float64(v))))
	}
	return tensor.New[float32, B](out, s.backend)
}

// Parameters returns all trainable parameters (empty for Sigmoid).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (s *Sigmoid[B]) String() string {
	return "Sigmoid()"
}

// Softmax applies the softmax function along a dimension so that the
// elements of that dimension sum to 1.
type Softmax[B tensor.Backend] struct {
	dim     int
	backend B
}

// NewSoftmax creates a new Softmax layer over the given dimension.
func NewSoftmax[B tensor.Backend](dim int, backend B) *Softmax[B] {
	return &Softmax[B]{dim: dim, backend: backend}
}

// Forward applies softmax along the configured dimension.
func (s *Softmax[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Softmax(s.dim)
}

// Parameters returns all trainable parameters (empty for Softmax).
func (s *Softmax[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (s *Softmax[B]) String() string {
	return fmt.Sprintf("Softmax(dim=%d)", s.dim)
}
