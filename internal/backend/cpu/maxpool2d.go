package cpu

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/parallel"
	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// MaxPool2D performs 2D max pooling with a square window.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_h, out_w]
//
// Where:
//
//	out_h = (height - kernelSize) / stride + 1
//	out_w = (width - kernelSize) / stride + 1
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("maxpool2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}

	N := inputShape[0]
	C := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]

	HOut := (H-kernelSize)/stride + 1
	WOut := (W-kernelSize)/stride + 1
	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid output dimensions: out_h=%d, out_w=%d", HOut, WOut))
	}

	output, err := tensor.NewRaw(tensor.Shape{N, C, HOut, WOut}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxpool2d: failed to create output tensor: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		maxpool2d(output.AsFloat32(), input.AsFloat32(), N, C, H, W, HOut, WOut, kernelSize, stride)
	case tensor.Float64:
		maxpool2d(output.AsFloat64(), input.AsFloat64(), N, C, H, W, HOut, WOut, kernelSize, stride)
	default:
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %s", input.DType()))
	}

	return output
}

// maxpool2d computes the window maximum per (batch, channel) plane.
func maxpool2d[T float](output, input []T, n, c, h, w, hOut, wOut, kernelSize, stride int) {
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1

	parallel.ForBatch(n, c, func(b, ch int) {
		src := input[(b*c+ch)*h*w : (b*c+ch+1)*h*w]
		dst := output[(b*c+ch)*hOut*wOut : (b*c+ch+1)*hOut*wOut]

		for outH := 0; outH < hOut; outH++ {
			for outW := 0; outW < wOut; outW++ {
				hStart := outH * stride
				wStart := outW * stride

				maxVal := src[hStart*w+wStart]
				for i := 0; i < kernelSize; i++ {
					for j := 0; j < kernelSize; j++ {
						if v := src[(hStart+i)*w+wStart+j]; v > maxVal {
							maxVal = v
						}
					}
				}
				dst[outH*wOut+outW] = maxVal
			}
		}
	}, cfg)
}
