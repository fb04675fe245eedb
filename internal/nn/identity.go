package nn

import "github.com/ganeval-ml/ganeval/internal/tensor"

// Identity returns its input unchanged. It is used to crop the final
// classification layer off a pretrained network so that the forward pass
// yields the penultimate feature embedding instead of logits.
type Identity[B tensor.Backend] struct{}

// NewIdentity creates a new Identity layer.
func NewIdentity[B tensor.Backend]() *Identity[B] {
	return &Identity[B]{}
}

// Forward returns the input unchanged.
func (i *Identity[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input
}

// Parameters returns all trainable parameters (empty for Identity).
func (i *Identity[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (i *Identity[B]) String() string {
	return "Identity()"
}
