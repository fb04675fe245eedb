// Copyright 2025 GANEval. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for GANEval's neural network layers.
//
// The package exposes the building blocks the evaluation pipeline and GAN
// encoders are assembled from:
//   - Core layers: Linear, Conv2D, MaxPool2D, Pad2D
//   - Activations: ReLU, LeakyReLU, Tanh, Sigmoid, Softmax
//   - Normalization: BatchNorm2D, InstanceNorm2D, PixelNorm2D, LayerNorm2D
//   - Composite blocks: ContractingBlock, UNETContractingBlock, MLPBlock
//   - Containers: Sequential, Identity, Dropout
//
// Example:
//
//	backend := cpu.New()
//	block := nn.NewContractingBlock(64, nn.DefaultContractingBlockConfig(), backend)
//	out := block.Forward(images) // [n, 128, h/2, w/2]
package nn

import (
	"github.com/ganeval-ml/ganeval/internal/nn"
	"github.com/ganeval-ml/ganeval/tensor"
)

// Module is the base interface for all neural network components.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter of a layer.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Core layers.
type (
	// Linear is a fully connected layer: y = x @ W.T + b.
	Linear[B tensor.Backend] = nn.Linear[B]
	// Conv2D is a 2D convolutional layer.
	Conv2D[B tensor.Backend] = nn.Conv2D[B]
	// MaxPool2D is a 2D max pooling layer.
	MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]
	// Pad2D pads the spatial dimensions of a 4D tensor.
	Pad2D[B tensor.Backend] = nn.Pad2D[B]
)

// Activations.
type (
	// ReLU is the rectified linear unit activation.
	ReLU[B tensor.Backend] = nn.ReLU[B]
	// LeakyReLU is the leaky rectified linear unit activation.
	LeakyReLU[B tensor.Backend] = nn.LeakyReLU[B]
	// Tanh is the hyperbolic tangent activation.
	Tanh[B tensor.Backend] = nn.Tanh[B]
	// Sigmoid is the logistic activation.
	Sigmoid[B tensor.Backend] = nn.Sigmoid[B]
	// Softmax normalizes along a dimension to a probability distribution.
	Softmax[B tensor.Backend] = nn.Softmax[B]
)

// Normalization layers.
type (
	// BatchNorm2D normalizes channels over the batch and spatial dims.
	BatchNorm2D[B tensor.Backend] = nn.BatchNorm2D[B]
	// InstanceNorm2D normalizes each sample's channels independently.
	InstanceNorm2D[B tensor.Backend] = nn.InstanceNorm2D[B]
	// PixelNorm2D normalizes each pixel's channel vector to unit RMS.
	PixelNorm2D[B tensor.Backend] = nn.PixelNorm2D[B]
	// LayerNorm2D normalizes each sample over channels and spatial dims.
	LayerNorm2D[B tensor.Backend] = nn.LayerNorm2D[B]
)

// Containers and composite blocks.
type (
	// Sequential chains modules so each output feeds the next input.
	Sequential[B tensor.Backend] = nn.Sequential[B]
	// Identity returns its input unchanged.
	Identity[B tensor.Backend] = nn.Identity[B]
	// Dropout randomly zeroes inputs during training.
	Dropout[B tensor.Backend] = nn.Dropout[B]
	// ContractingBlock is a strided downsampling convolution block.
	ContractingBlock[B tensor.Backend] = nn.ContractingBlock[B]
	// UNETContractingBlock is a double-convolution downsampling block.
	UNETContractingBlock[B tensor.Backend] = nn.UNETContractingBlock[B]
	// MLPBlock is a three layer perceptron block.
	MLPBlock[B tensor.Backend] = nn.MLPBlock[B]
)

// Block configuration.
type (
	// Activation selects the non-linearity used inside composite blocks.
	Activation = nn.Activation
	// NormType selects the normalization layer used in ContractingBlock.
	NormType = nn.NormType
	// ContractingBlockConfig configures a ContractingBlock.
	ContractingBlockConfig = nn.ContractingBlockConfig
	// UNETContractingBlockConfig configures a UNETContractingBlock.
	UNETContractingBlockConfig = nn.UNETContractingBlockConfig
)

// Activation and normalization selectors.
const (
	ActivationReLU      Activation = nn.ActivationReLU
	ActivationLeakyReLU Activation = nn.ActivationLeakyReLU

	NormBatch    NormType = nn.NormBatch
	NormInstance NormType = nn.NormInstance
	NormPixel    NormType = nn.NormPixel
	NormLayer    NormType = nn.NormLayer
)

// NewParameter creates a named parameter wrapping a tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// NewLinear creates a fully connected layer with Xavier initialization.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// NewConv2D creates a 2D convolutional layer with Xavier initialization.
func NewConv2D[B tensor.Backend](inChannels, outChannels, kernelH, kernelW, stride, padding int, useBias bool, backend B) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, backend)
}

// NewMaxPool2D creates a 2D max pooling layer.
func NewMaxPool2D[B tensor.Backend](kernelSize, stride int, backend B) *MaxPool2D[B] {
	return nn.NewMaxPool2D(kernelSize, stride, backend)
}

// NewPad2D creates a spatial padding layer.
func NewPad2D[B tensor.Backend](padding int, mode tensor.PadMode, backend B) *Pad2D[B] {
	return nn.NewPad2D(padding, mode, backend)
}

// NewReLU creates a ReLU activation layer.
func NewReLU[B tensor.Backend](backend B) *ReLU[B] {
	return nn.NewReLU(backend)
}

// NewLeakyReLU creates a LeakyReLU activation layer.
func NewLeakyReLU[B tensor.Backend](negativeSlope float64, backend B) *LeakyReLU[B] {
	return nn.NewLeakyReLU(negativeSlope, backend)
}

// NewTanh creates a Tanh activation layer.
func NewTanh[B tensor.Backend](backend B) *Tanh[B] {
	return nn.NewTanh(backend)
}

// NewSigmoid creates a Sigmoid activation layer.
func NewSigmoid[B tensor.Backend](backend B) *Sigmoid[B] {
	return nn.NewSigmoid(backend)
}

// NewSoftmax creates a Softmax layer over the given dimension.
func NewSoftmax[B tensor.Backend](dim int, backend B) *Softmax[B] {
	return nn.NewSoftmax(dim, backend)
}

// NewBatchNorm2D creates a batch normalization layer.
func NewBatchNorm2D[B tensor.Backend](numFeatures int, eps float64, backend B) *BatchNorm2D[B] {
	return nn.NewBatchNorm2D(numFeatures, eps, backend)
}

// NewInstanceNorm2D creates an instance normalization layer.
func NewInstanceNorm2D[B tensor.Backend](numFeatures int, eps float64, backend B) *InstanceNorm2D[B] {
	return nn.NewInstanceNorm2D(numFeatures, eps, backend)
}

// NewPixelNorm2D creates a pixel normalization layer.
func NewPixelNorm2D[B tensor.Backend](eps float64, backend B) *PixelNorm2D[B] {
	return nn.NewPixelNorm2D(eps, backend)
}

// NewLayerNorm2D creates a layer normalization layer.
func NewLayerNorm2D[B tensor.Backend](numFeatures int, eps float64, backend B) *LayerNorm2D[B] {
	return nn.NewLayerNorm2D(numFeatures, eps, backend)
}

// NewSequential creates a sequential container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// NewIdentity creates an Identity layer.
func NewIdentity[B tensor.Backend]() *Identity[B] {
	return nn.NewIdentity[B]()
}

// NewDropout creates a Dropout layer with drop probability p.
func NewDropout[B tensor.Backend](p float64, backend B) *Dropout[B] {
	return nn.NewDropout(p, backend)
}

// NewContractingBlock creates a contracting block.
func NewContractingBlock[B tensor.Backend](inChannels int, cfg ContractingBlockConfig, backend B) *ContractingBlock[B] {
	return nn.NewContractingBlock(inChannels, cfg, backend)
}

// DefaultContractingBlockConfig returns the standard contracting block
// configuration: kernel 3, stride 2, reflect padding 1, instance norm, ReLU.
func DefaultContractingBlockConfig() ContractingBlockConfig {
	return nn.DefaultContractingBlockConfig()
}

// NewUNETContractingBlock creates a UNET contracting block.
func NewUNETContractingBlock[B tensor.Backend](inChannels int, cfg UNETContractingBlockConfig, backend B) *UNETContractingBlock[B] {
	return nn.NewUNETContractingBlock(inChannels, cfg, backend)
}

// DefaultUNETContractingBlockConfig returns the standard UNET block
// configuration: kernel 3, batch norm, no dropout, LeakyReLU.
func DefaultUNETContractingBlockConfig() UNETContractingBlockConfig {
	return nn.DefaultUNETContractingBlockConfig()
}

// NewMLPBlock creates a three layer perceptron block.
func NewMLPBlock[B tensor.Backend](inDim, hiddenDim, outDim int, activation Activation, backend B) *MLPBlock[B] {
	return nn.NewMLPBlock(inDim, hiddenDim, outDim, activation, backend)
}
