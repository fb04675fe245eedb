package transforms

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Normalize shifts and scales each channel: out = (in - mean) / std.
// Its inverse is a Normalize with mean' = -mean/std and std' = 1/std.
type Normalize[B tensor.Backend] struct {
	mean    []float32
	std     []float32
	backend B
}

// NewNormalize creates a per-channel normalization transform.
func NewNormalize[B tensor.Backend](mean, std []float32, backend B) *Normalize[B] {
	if len(mean) == 0 || len(mean) != len(std) {
		panic(fmt.Sprintf("normalize: mean and std must be non-empty and equal length, got %d and %d", len(mean), len(std)))
	}
	for i, s := range std {
		if s == 0 {
			panic(fmt.Sprintf("normalize: std[%d] is zero", i))
		}
	}
	return &Normalize[B]{
		mean:    append([]float32(nil), mean...),
		std:     append([]float32(nil), std...),
		backend: backend,
	}
}

// Apply normalizes the batch.
func (nm *Normalize[B]) Apply(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("normalize: expected 4D input, got shape %v", shape))
	}
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	if c != len(nm.mean) {
		panic(fmt.Sprintf("normalize: expected %d channels, got %d", len(nm.mean), c))
	}

	out := x.Raw().Copy()
	data := out.AsFloat32()
	plane := h * w
	for b := 0; b < n; b++ {
		for ch := 0; ch < c; ch++ {
			base := (b*c + ch) * plane
			mean, invStd := nm.mean[ch], 1/nm.std[ch]
			for i := 0; i < plane; i++ {
				data[base+i] = (data[base+i] - mean) * invStd
			}
		}
	}
	return tensor.New[float32, B](out, nm.backend)
}

// Invert returns the inverse normalization.
func (nm *Normalize[B]) Invert() Transform[B] {
	mean := make([]float32, len(nm.mean))
	std := make([]float32, len(nm.std))
	for i := range nm.mean {
		std[i] = 1 / nm.std[i]
		mean[i] = -nm.mean[i] / nm.std[i]
	}
	return NewNormalize(mean, std, nm.backend)
}

// String returns a string representation of the transform.
func (nm *Normalize[B]) String() string {
	return fmt.Sprintf("Normalize(mean=%v, std=%v)", nm.mean, nm.std)
}
