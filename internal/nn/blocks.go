package nn

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Activation selects the non-linearity used inside the composite blocks.
type Activation string

const (
	// ActivationReLU selects ReLU.
	ActivationReLU Activation = "relu"
	// ActivationLeakyReLU selects LeakyReLU with slope 0.2.
	ActivationLeakyReLU Activation = "lrelu"
)

// NormType selects the normalization layer used inside ContractingBlock.
type NormType string

const (
	// NormBatch selects BatchNorm2D.
	NormBatch NormType = "batch"
	// NormInstance selects InstanceNorm2D.
	NormInstance NormType = "instance"
	// NormPixel selects PixelNorm2D.
	NormPixel NormType = "pixel"
	// NormLayer selects LayerNorm2D.
	NormLayer NormType = "layer"
)

const normEps = 1e-5

func newActivation[B tensor.Backend](activation Activation, backend B) Module[B] {
	switch activation {
	case ActivationReLU:
		return NewReLU(backend)
	case ActivationLeakyReLU:
		return NewLeakyReLU(0.2, backend)
	default:
		panic(fmt.Sprintf("nn: unsupported activation %q", activation))
	}
}

// ContractingBlockConfig configures a ContractingBlock. The zero value is not
// usable; start from DefaultContractingBlockConfig.
type ContractingBlockConfig struct {
	// OutChannels is the number of output channels. Zero means 2*InChannels.
	OutChannels int
	// UseNorm adds a normalization layer after the convolution.
	UseNorm bool
	// NormType selects which normalization layer UseNorm adds.
	NormType NormType
	// KernelSize is the convolution filter size.
	KernelSize int
	// Stride is the convolution stride.
	Stride int
	// Padding is the spatial padding applied before the convolution.
	Padding int
	// PadMode selects how the padding region is filled.
	PadMode tensor.PadMode
	// Activation is the non-linearity applied at the end of the block.
	Activation Activation
}

// DefaultContractingBlockConfig returns the standard configuration:
// kernel 3, stride 2, reflect padding 1, instance norm, ReLU.
func DefaultContractingBlockConfig() ContractingBlockConfig {
	return ContractingBlockConfig{
		UseNorm:    true,
		NormType:   NormInstance,
		KernelSize: 3,
		Stride:     2,
		Padding:    1,
		PadMode:    tensor.PadReflect,
		Activation: ActivationReLU,
	}
}

// ContractingBlock halves the spatial resolution with a strided convolution
// and doubles the channel count by default, followed by an optional
// normalization layer and an activation.
type ContractingBlock[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	block       *Sequential[B]
}

// NewContractingBlock creates a new contracting block.
func NewContractingBlock[B tensor.Backend](inChannels int, cfg ContractingBlockConfig, backend B) *ContractingBlock[B] {
	if inChannels <= 0 {
		panic(fmt.Sprintf("contractingblock: invalid inChannels %d", inChannels))
	}
	outChannels := cfg.OutChannels
	if outChannels == 0 {
		outChannels = inChannels * 2
	}

	block := NewSequential[B]()
	// The convolution only pads with zeros, so non-zero pad modes are
	// realized with an explicit Pad2D in front of an unpadded Conv2D.
	if cfg.Padding > 0 && cfg.PadMode != tensor.PadZero {
		block.Append(NewPad2D(cfg.Padding, cfg.PadMode, backend))
		block.Append(NewConv2D(inChannels, outChannels, cfg.KernelSize, cfg.KernelSize, cfg.Stride, 0, true, backend))
	} else {
		block.Append(NewConv2D(inChannels, outChannels, cfg.KernelSize, cfg.KernelSize, cfg.Stride, cfg.Padding, true, backend))
	}
	if cfg.UseNorm {
		switch cfg.NormType {
		case NormBatch:
			block.Append(NewBatchNorm2D(outChannels, normEps, backend))
		case NormInstance:
			block.Append(NewInstanceNorm2D(outChannels, normEps, backend))
		case NormPixel:
			block.Append(NewPixelNorm2D(normEps, backend))
		case NormLayer:
			block.Append(NewLayerNorm2D(outChannels, normEps, backend))
		default:
			panic(fmt.Sprintf("contractingblock: unsupported norm type %q", cfg.NormType))
		}
	}
	block.Append(newActivation(cfg.Activation, backend))

	return &ContractingBlock[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		block:       block,
	}
}

// Forward runs the block.
//
// Input: [batch, inChannels, height, width]
// Output: [batch, outChannels, height', width'] where the spatial size
// follows from the kernel, stride and padding (halved with the defaults).
func (c *ContractingBlock[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return c.block.Forward(input)
}

// Parameters returns the parameters of the contained layers.
func (c *ContractingBlock[B]) Parameters() []*Parameter[B] {
	return c.block.Parameters()
}

// OutChannels returns the number of output channels.
func (c *ContractingBlock[B]) OutChannels() int {
	return c.outChannels
}

// String returns a string representation of the block.
func (c *ContractingBlock[B]) String() string {
	return fmt.Sprintf("ContractingBlock(%d -> %d)", c.inChannels, c.outChannels)
}

// UNETContractingBlock performs two stride-1 convolutions, each followed by
// optional batch normalization, optional dropout and an activation, then
// downsamples with a 2x2 max pool. Padding 1 keeps the convolutions
// shape-preserving, so the block exactly halves the spatial size.
type UNETContractingBlock[B tensor.Backend] struct {
	inChannels int
	block      *Sequential[B]
}

// UNETContractingBlockConfig configures a UNETContractingBlock.
type UNETContractingBlockConfig struct {
	// UseBatchNorm adds BatchNorm2D after each convolution.
	UseBatchNorm bool
	// UseDropout adds Dropout after each normalization.
	UseDropout bool
	// DropoutP is the dropout probability when UseDropout is set.
	DropoutP float64
	// KernelSize is the convolution filter size.
	KernelSize int
	// Activation is the non-linearity after each convolution.
	Activation Activation
}

// DefaultUNETContractingBlockConfig returns the standard configuration:
// kernel 3, batch norm, no dropout, LeakyReLU.
func DefaultUNETContractingBlockConfig() UNETContractingBlockConfig {
	return UNETContractingBlockConfig{
		UseBatchNorm: true,
		DropoutP:     0.5,
		KernelSize:   3,
		Activation:   ActivationLeakyReLU,
	}
}

// NewUNETContractingBlock creates a new UNET contracting block.
func NewUNETContractingBlock[B tensor.Backend](inChannels int, cfg UNETContractingBlockConfig, backend B) *UNETContractingBlock[B] {
	if inChannels <= 0 {
		panic(fmt.Sprintf("unetcontractingblock: invalid inChannels %d", inChannels))
	}
	outChannels := inChannels * 2

	block := NewSequential[B]()
	channels := inChannels
	for i := 0; i < 2; i++ {
		block.Append(NewConv2D(channels, outChannels, cfg.KernelSize, cfg.KernelSize, 1, 1, true, backend))
		if cfg.UseBatchNorm {
			block.Append(NewBatchNorm2D(outChannels, normEps, backend))
		}
		if cfg.UseDropout {
			block.Append(NewDropout(cfg.DropoutP, backend))
		}
		block.Append(newActivation(cfg.Activation, backend))
		channels = outChannels
	}
	block.Append(NewMaxPool2D(2, 2, backend))

	return &UNETContractingBlock[B]{
		inChannels: inChannels,
		block:      block,
	}
}

// Forward runs the block.
//
// Input: [batch, inChannels, height, width]
// Output: [batch, 2*inChannels, height/2, width/2].
func (u *UNETContractingBlock[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return u.block.Forward(input)
}

// Parameters returns the parameters of the contained layers.
func (u *UNETContractingBlock[B]) Parameters() []*Parameter[B] {
	return u.block.Parameters()
}

// Train propagates training mode to the dropout layers.
func (u *UNETContractingBlock[B]) Train(training bool) {
	u.block.Train(training)
}

// String returns a string representation of the block.
func (u *UNETContractingBlock[B]) String() string {
	return fmt.Sprintf("UNETContractingBlock(%d -> %d)", u.inChannels, u.inChannels*2)
}

// MLPBlock is a three layer perceptron: Linear-act-Linear-act-Linear.
// The final layer has no activation so the block can produce unbounded
// outputs (logits, embeddings).
type MLPBlock[B tensor.Backend] struct {
	inDim     int
	hiddenDim int
	outDim    int
	block     *Sequential[B]
}

// NewMLPBlock creates a new multi-layer perceptron block.
func NewMLPBlock[B tensor.Backend](inDim, hiddenDim, outDim int, activation Activation, backend B) *MLPBlock[B] {
	if inDim <= 0 || hiddenDim <= 0 || outDim <= 0 {
		panic(fmt.Sprintf("mlpblock: invalid dims in=%d, hidden=%d, out=%d", inDim, hiddenDim, outDim))
	}

	block := NewSequential[B](
		NewLinear(inDim, hiddenDim, backend),
		newActivation(activation, backend),
		NewLinear(hiddenDim, hiddenDim, backend),
		newActivation(activation, backend),
		NewLinear(hiddenDim, outDim, backend),
	)

	return &MLPBlock[B]{
		inDim:     inDim,
		hiddenDim: hiddenDim,
		outDim:    outDim,
		block:     block,
	}
}

// Forward runs the block.
//
// Input: [batch, inDim]
// Output: [batch, outDim].
func (m *MLPBlock[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.block.Forward(input)
}

// Parameters returns the parameters of the contained layers.
func (m *MLPBlock[B]) Parameters() []*Parameter[B] {
	return m.block.Parameters()
}

// String returns a string representation of the block.
func (m *MLPBlock[B]) String() string {
	return fmt.Sprintf("MLPBlock(%d -> %d -> %d)", m.inDim, m.hiddenDim, m.outDim)
}
