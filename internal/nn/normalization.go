package nn

import (
	"fmt"
	"math"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Normalization layers for 4D [batch, channels, height, width] inputs.
//
// All of them compute statistics from the current batch; there are no
// running averages, which matches evaluation over generated samples where
// each forward pass is self-contained.

// BatchNorm2D normalizes each channel using the mean and variance computed
// over the batch and spatial dimensions, then applies a learnable per-channel
// scale and shift.
type BatchNorm2D[B tensor.Backend] struct {
	numFeatures int
	eps         float64
	gamma       *Parameter[B]
	beta        *Parameter[B]
	backend     B
}

// NewBatchNorm2D creates a new batch normalization layer.
func NewBatchNorm2D[B tensor.Backend](numFeatures int, eps float64, backend B) *BatchNorm2D[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("batchnorm2d: invalid numFeatures %d", numFeatures))
	}
	shape := tensor.Shape{numFeatures}
	return &BatchNorm2D[B]{
		numFeatures: numFeatures,
		eps:         eps,
		gamma:       NewParameter("gamma", Ones(shape, backend)),
		beta:        NewParameter("beta", Zeros(shape, backend)),
		backend:     backend,
	}
}

// Forward normalizes the input per channel.
func (bn *BatchNorm2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("batchnorm2d: expected 4D input, got shape %v", shape))
	}
	if shape[1] != bn.numFeatures {
		panic(fmt.Sprintf("batchnorm2d: expected %d channels, got %d", bn.numFeatures, shape[1]))
	}

	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	in := input.Raw().AsFloat32()
	out := input.Raw().Copy()
	data := out.AsFloat32()
	gamma := bn.gamma.Tensor().Raw().AsFloat32()
	beta := bn.beta.Tensor().Raw().AsFloat32()

	plane := h * w
	count := float64(n * plane)
	for ch := 0; ch < c; ch++ {
		var sum, sumSq float64
		for b := 0; b < n; b++ {
			base := (b*c + ch) * plane
			for i := 0; i < plane; i++ {
				v := float64(in[base+i])
				sum += v
				sumSq += v * v
			}
		}
		mean := sum / count
		variance := sumSq/count - mean*mean
		if variance < 0 {
			variance = 0
		}
		invStd := 1 / math.Sqrt(variance+bn.eps)
		scale := float32(invStd) * gamma[ch]
		shift := beta[ch] - float32(mean*invStd)*gamma[ch]
		for b := 0; b < n; b++ {
			base := (b*c + ch) * plane
			for i := 0; i < plane; i++ {
				data[base+i] = in[base+i]*scale + shift
			}
		}
	}
	return tensor.New[float32, B](out, bn.backend)
}

// Parameters returns the scale and shift parameters.
func (bn *BatchNorm2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{bn.gamma, bn.beta}
}

// String returns a string representation of the layer.
func (bn *BatchNorm2D[B]) String() string {
	return fmt.Sprintf("BatchNorm2D(%d, eps=%g)", bn.numFeatures, bn.eps)
}

// InstanceNorm2D normalizes each channel of each sample independently using
// the mean and variance over the spatial dimensions. No affine transform.
type InstanceNorm2D[B tensor.Backend] struct {
	numFeatures int
	eps         float64
	backend     B
}

// NewInstanceNorm2D creates a new instance normalization layer.
func NewInstanceNorm2D[B tensor.Backend](numFeatures int, eps float64, backend B) *InstanceNorm2D[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("instancenorm2d: invalid numFeatures %d", numFeatures))
	}
	return &InstanceNorm2D[B]{numFeatures: numFeatures, eps: eps, backend: backend}
}

// Forward normalizes each (sample, channel) plane.
func (in2d *InstanceNorm2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("instancenorm2d: expected 4D input, got shape %v", shape))
	}
	if shape[1] != in2d.numFeatures {
		panic(fmt.Sprintf("instancenorm2d: expected %d channels, got %d", in2d.numFeatures, shape[1]))
	}

	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	in := input.Raw().AsFloat32()
	out := input.Raw().Copy()
	data := out.AsFloat32()

	plane := h * w
	count := float64(plane)
	for b := 0; b < n; b++ {
		for ch := 0; ch < c; ch++ {
			base := (b*c + ch) * plane
			var sum, sumSq float64
			for i := 0; i < plane; i++ {
				v := float64(in[base+i])
				sum += v
				sumSq += v * v
			}
			mean := sum / count
			variance := sumSq/count - mean*mean
			if variance < 0 {
				variance = 0
			}
			invStd := float32(1 / math.Sqrt(variance+in2d.eps))
			m := float32(mean)
			for i := 0; i < plane; i++ {
				data[base+i] = (in[base+i] - m) * invStd
			}
		}
	}
	return tensor.New[float32, B](out, in2d.backend)
}

// Parameters returns all trainable parameters (empty for InstanceNorm2D).
func (in2d *InstanceNorm2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (in2d *InstanceNorm2D[B]) String() string {
	return fmt.Sprintf("InstanceNorm2D(%d, eps=%g)", in2d.numFeatures, in2d.eps)
}

// PixelNorm2D divides each pixel's channel vector by its root mean square:
// x / sqrt(mean(x^2, dim=channels) + eps). Used by progressive GAN style
// generators in place of batch normalization.
type PixelNorm2D[B tensor.Backend] struct {
	eps     float64
	backend B
}

// NewPixelNorm2D creates a new pixel normalization layer.
func NewPixelNorm2D[B tensor.Backend](eps float64, backend B) *PixelNorm2D[B] {
	return &PixelNorm2D[B]{eps: eps, backend: backend}
}

// Forward normalizes each spatial position across channels.
func (pn *PixelNorm2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("pixelnorm2d: expected 4D input, got shape %v", shape))
	}

	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	in := input.Raw().AsFloat32()
	out := input.Raw().Copy()
	data := out.AsFloat32()

	plane := h * w
	for b := 0; b < n; b++ {
		sampleBase := b * c * plane
		for i := 0; i < plane; i++ {
			var sumSq float64
			for ch := 0; ch < c; ch++ {
				v := float64(in[sampleBase+ch*plane+i])
				sumSq += v * v
			}
			invRMS := float32(1 / math.Sqrt(sumSq/float64(c)+pn.eps))
			for ch := 0; ch < c; ch++ {
				idx := sampleBase + ch*plane + i
				data[idx] = in[idx] * invRMS
			}
		}
	}
	return tensor.New[float32, B](out, pn.backend)
}

// Parameters returns all trainable parameters (empty for PixelNorm2D).
func (pn *PixelNorm2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (pn *PixelNorm2D[B]) String() string {
	return fmt.Sprintf("PixelNorm2D(eps=%g)", pn.eps)
}

// LayerNorm2D normalizes each sample over its channel and spatial
// dimensions, then applies a learnable per-channel scale and shift.
type LayerNorm2D[B tensor.Backend] struct {
	numFeatures int
	eps         float64
	gamma       *Parameter[B]
	beta        *Parameter[B]
	backend     B
}

// NewLayerNorm2D creates a new layer normalization layer.
func NewLayerNorm2D[B tensor.Backend](numFeatures int, eps float64, backend B) *LayerNorm2D[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("layernorm2d: invalid numFeatures %d", numFeatures))
	}
	shape := tensor.Shape{numFeatures}
	return &LayerNorm2D[B]{
		numFeatures: numFeatures,
		eps:         eps,
		gamma:       NewParameter("gamma", Ones(shape, backend)),
		beta:        NewParameter("beta", Zeros(shape, backend)),
		backend:     backend,
	}
}

// Forward normalizes each sample over channels and spatial positions.
func (ln *LayerNorm2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("layernorm2d: expected 4D input, got shape %v", shape))
	}
	if shape[1] != ln.numFeatures {
		panic(fmt.Sprintf("layernorm2d: expected %d channels, got %d", ln.numFeatures, shape[1]))
	}

	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	in := input.Raw().AsFloat32()
	out := input.Raw().Copy()
	data := out.AsFloat32()
	gamma := ln.gamma.Tensor().Raw().AsFloat32()
	beta := ln.beta.Tensor().Raw().AsFloat32()

	plane := h * w
	sampleSize := c * plane
	count := float64(sampleSize)
	for b := 0; b < n; b++ {
		base := b * sampleSize
		var sum, sumSq float64
		for i := 0; i < sampleSize; i++ {
			v := float64(in[base+i])
			sum += v
			sumSq += v * v
		}
		mean := sum / count
		variance := sumSq/count - mean*mean
		if variance < 0 {
			variance = 0
		}
		invStd := float32(1 / math.Sqrt(variance+ln.eps))
		m := float32(mean)
		for ch := 0; ch < c; ch++ {
			chBase := base + ch*plane
			for i := 0; i < plane; i++ {
				data[chBase+i] = (in[chBase+i]-m)*invStd*gamma[ch] + beta[ch]
			}
		}
	}
	return tensor.New[float32, B](out, ln.backend)
}

// Parameters returns the scale and shift parameters.
func (ln *LayerNorm2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{ln.gamma, ln.beta}
}

// String returns a string representation of the layer.
func (ln *LayerNorm2D[B]) String() string {
	return fmt.Sprintf("LayerNorm2D(%d, eps=%g)", ln.numFeatures, ln.eps)
}
