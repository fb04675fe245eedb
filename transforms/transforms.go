// Copyright 2025 GANEval. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package transforms provides the public API for GANEval's image tensor
// preprocessing.
//
// Transforms operate on batched image tensors [batch, channels, height,
// width] and mirror the preprocessing of the pretrained classifier used by
// the metrics, plus the inverse normalization that maps generator outputs
// back into classifier space.
//
// Example:
//
//	backend := cpu.New()
//	pre := transforms.Classifier(backend)
//	ready := pre.Apply(images) // resized, cropped, normalized
package transforms

import (
	"github.com/ganeval-ml/ganeval/internal/transforms"
	"github.com/ganeval-ml/ganeval/tensor"
)

// Transform maps a batched image tensor to a batched image tensor.
type Transform[B tensor.Backend] = transforms.Transform[B]

// Invertible is implemented by transforms whose value statistics can be
// undone.
type Invertible[B tensor.Backend] = transforms.Invertible[B]

// Concrete transforms.
type (
	// Compose chains transforms in order.
	Compose[B tensor.Backend] = transforms.Compose[B]
	// Resize rescales with bilinear interpolation.
	Resize[B tensor.Backend] = transforms.Resize[B]
	// CenterCrop extracts the central square region.
	CenterCrop[B tensor.Backend] = transforms.CenterCrop[B]
	// Normalize shifts and scales each channel.
	Normalize[B tensor.Backend] = transforms.Normalize[B]
)

// ImageNet normalization statistics.
var (
	ImageNetMean = transforms.ImageNetMean
	ImageNetStd  = transforms.ImageNetStd
)

// ClassifierInputSize is the spatial size the pretrained classifier expects.
const ClassifierInputSize = transforms.ClassifierInputSize

// NewCompose creates a transform pipeline from the given transforms.
func NewCompose[B tensor.Backend](ts ...Transform[B]) *Compose[B] {
	return transforms.NewCompose(ts...)
}

// NewResize creates a bilinear resize targeting the given shorter-side size.
func NewResize[B tensor.Backend](size int, backend B) *Resize[B] {
	return transforms.NewResize(size, backend)
}

// NewCenterCrop creates a center crop transform.
func NewCenterCrop[B tensor.Backend](size int, backend B) *CenterCrop[B] {
	return transforms.NewCenterCrop(size, backend)
}

// NewNormalize creates a per-channel normalization transform.
func NewNormalize[B tensor.Backend](mean, std []float32, backend B) *Normalize[B] {
	return transforms.NewNormalize(mean, std, backend)
}

// Classifier returns the pretrained classifier's preprocessing pipeline:
// resize 299, center crop 299, ImageNet normalization.
func Classifier[B tensor.Backend](backend B) *Compose[B] {
	return transforms.Classifier(backend)
}

// TanhOutput returns the pipeline a generator with a Tanh output layer was
// trained against (per-channel Normalize(0.5, 0.5)).
func TanhOutput[B tensor.Backend](channels int, backend B) *Compose[B] {
	return transforms.TanhOutput(channels, backend)
}
