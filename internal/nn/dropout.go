package nn

import (
	"fmt"
	"math/rand"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Dropout randomly zeroes elements of the input with probability p during
// training, scaling the survivors by 1/(1-p) so the expected activation is
// unchanged (inverted dropout).
//
// Layers are created in evaluation mode, where Forward is the identity.
// Call Train(true) to enable the stochastic behavior.
type Dropout[B tensor.Backend] struct {
	p        float64
	training bool
	backend  B
}

// NewDropout creates a new Dropout layer with drop probability p.
func NewDropout[B tensor.Backend](p float64, backend B) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("dropout: probability must be in [0, 1), got %g", p))
	}
	return &Dropout[B]{p: p, backend: backend}
}

// Train toggles training mode.
func (d *Dropout[B]) Train(training bool) {
	d.training = training
}

// Training reports whether the layer is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// Forward applies dropout in training mode and is the identity otherwise.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	out := input.Raw().Copy()
	data := out.AsFloat32()
	scale := float32(1 / (1 - d.p))
	for i := range data {
		//nolint:gosec // math/rand for dropout masks (not security-critical)
		if rand.Float64() < d.p {
			data[i] = 0
		} else {
			data[i] *= scale
		}
	}
	return tensor.New[float32, B](out, d.backend)
}

// Parameters returns all trainable parameters (empty for Dropout).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (d *Dropout[B]) String() string {
	return fmt.Sprintf("Dropout(p=%g)", d.p)
}
