// Package nn implements the neural network building blocks for GANEval.
//
// This package provides the layers the GAN evaluation pipeline is built
// from:
//   - Module interface: base interface for all NN components
//   - Parameter: weights and biases of layers
//   - Linear, Conv2D, MaxPool2D, Pad2D: core layers
//   - Activations: ReLU, LeakyReLU, Tanh, Sigmoid, Softmax
//   - Normalization: BatchNorm2D, InstanceNorm2D, PixelNorm2D, LayerNorm2D
//   - Blocks: ContractingBlock, UNETContractingBlock, MLPBlock
//   - Sequential: container for stacking layers
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build complex architectures:
//
//	block := nn.NewSequential[Backend](
//	    nn.NewConv2D(3, 6, 3, 3, 2, 1, true, backend),
//	    nn.NewLeakyReLU(0.2, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features] and the 2D
	// layers expect [batch, channels, height, width].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	//
	// This includes weights, biases, and any nested module parameters.
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []*Parameter[B]
}
