package nn

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Pad2D pads the spatial dimensions of a 4D tensor.
//
// It is most often composed in front of a Conv2D to obtain reflect padding,
// which the convolution itself only supports as zeros.
type Pad2D[B tensor.Backend] struct {
	padding int
	mode    tensor.PadMode
	backend B
}

// NewPad2D creates a new padding layer.
func NewPad2D[B tensor.Backend](padding int, mode tensor.PadMode, backend B) *Pad2D[B] {
	if padding < 0 {
		panic(fmt.Sprintf("pad2d: invalid padding %d", padding))
	}
	return &Pad2D[B]{
		padding: padding,
		mode:    mode,
		backend: backend,
	}
}

// Forward pads the input.
//
// Input: [batch, channels, height, width]
// Output: [batch, channels, height + 2*padding, width + 2*padding].
func (p *Pad2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if p.padding == 0 {
		return input
	}
	outputRaw := p.backend.Pad2D(input.Raw(), p.padding, p.mode)
	return tensor.New[float32, B](outputRaw, p.backend)
}

// Parameters returns all trainable parameters (empty for Pad2D).
func (p *Pad2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (p *Pad2D[B]) String() string {
	return fmt.Sprintf("Pad2D(padding=%d, mode=%s)", p.padding, p.mode)
}
