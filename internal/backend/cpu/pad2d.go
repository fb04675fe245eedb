package cpu

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Pad2D pads the two spatial dimensions of a 4D tensor.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, height + 2*padding, width + 2*padding]
//
// PadZero fills the border with zeros. PadReflect mirrors interior values
// across the edge (the edge value itself is not repeated); it requires
// padding < height and padding < width.
func (cpu *CPUBackend) Pad2D(input *tensor.RawTensor, padding int, mode tensor.PadMode) *tensor.RawTensor {
	if padding < 0 {
		panic(fmt.Sprintf("pad2d: invalid padding %d", padding))
	}

	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("pad2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}

	N := inputShape[0]
	C := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]

	if mode == tensor.PadReflect && (padding >= H || padding >= W) {
		panic(fmt.Sprintf("pad2d: reflect padding %d must be smaller than spatial dims (%d, %d)", padding, H, W))
	}

	HOut := H + 2*padding
	WOut := W + 2*padding

	output, err := tensor.NewRaw(tensor.Shape{N, C, HOut, WOut}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("pad2d: failed to create output tensor: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		pad2d(output.AsFloat32(), input.AsFloat32(), N, C, H, W, padding, mode)
	case tensor.Float64:
		pad2d(output.AsFloat64(), input.AsFloat64(), N, C, H, W, padding, mode)
	default:
		panic(fmt.Sprintf("pad2d: unsupported dtype %s", input.DType()))
	}

	return output
}

func pad2d[T float](output, input []T, n, c, h, w, padding int, mode tensor.PadMode) {
	hOut := h + 2*padding
	wOut := w + 2*padding

	for plane := 0; plane < n*c; plane++ {
		src := input[plane*h*w : (plane+1)*h*w]
		dst := output[plane*hOut*wOut : (plane+1)*hOut*wOut]

		for y := 0; y < hOut; y++ {
			srcY, okY := padIndex(y-padding, h, mode)
			for x := 0; x < wOut; x++ {
				srcX, okX := padIndex(x-padding, w, mode)
				if okY && okX {
					dst[y*wOut+x] = src[srcY*w+srcX]
				}
				// Zero mode leaves out-of-range positions at their
				// zero-initialized value.
			}
		}
	}
}

// padIndex maps a possibly out-of-range coordinate back into [0, n).
// For zero padding it reports false for out-of-range coordinates.
func padIndex(i, n int, mode tensor.PadMode) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	if mode == tensor.PadZero {
		return 0, false
	}
	// Reflect without repeating the edge value.
	if i < 0 {
		return -i, true
	}
	return 2*n - 2 - i, true
}
