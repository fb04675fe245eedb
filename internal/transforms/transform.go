// Package transforms implements image tensor preprocessing for the
// evaluation pipeline.
//
// All transforms operate on batched image tensors of shape
// [batch, channels, height, width] with float32 values. They mirror the
// preprocessing a pretrained classifier was trained with (resize, center
// crop, per-channel normalization) plus the inverse normalization needed to
// map generator outputs back into classifier space.
package transforms

import "github.com/ganeval-ml/ganeval/internal/tensor"

// Transform maps a batched image tensor to a batched image tensor.
type Transform[B tensor.Backend] interface {
	Apply(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// Invertible is implemented by transforms whose effect on value statistics
// can be undone. Geometric transforms (resize, crop) are not invertible.
type Invertible[B tensor.Backend] interface {
	Transform[B]
	Invert() Transform[B]
}

// Compose chains transforms in order.
type Compose[B tensor.Backend] struct {
	transforms []Transform[B]
}

// NewCompose creates a transform pipeline from the given transforms.
func NewCompose[B tensor.Backend](ts ...Transform[B]) *Compose[B] {
	return &Compose[B]{transforms: ts}
}

// Apply runs the transforms in order.
func (c *Compose[B]) Apply(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := x
	for _, t := range c.transforms {
		out = t.Apply(out)
	}
	return out
}

// Invert returns a pipeline that undoes the value statistics of this one:
// the invertible transforms, inverted, in reverse order. Geometric
// transforms are skipped since a generator trained on the pipeline already
// produces images at the transformed geometry.
func (c *Compose[B]) Invert() Transform[B] {
	var inv []Transform[B]
	for i := len(c.transforms) - 1; i >= 0; i-- {
		if t, ok := c.transforms[i].(Invertible[B]); ok {
			inv = append(inv, t.Invert())
		}
	}
	return NewCompose(inv...)
}

// Len returns the number of transforms in the pipeline.
func (c *Compose[B]) Len() int {
	return len(c.transforms)
}
