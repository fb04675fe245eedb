package cpu

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/parallel"
	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
//
// Im2col lowers the convolution to a matrix multiplication: input patches
// become rows of a column buffer, the kernel becomes a [C_out, C_in*K_h*K_w]
// matrix, and their product is rearranged into the NCHW output.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}

	N := inputShape[0]
	CIn := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]
	COut := kernelShape[0]
	KH := kernelShape[2]
	KW := kernelShape[3]

	if CIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", CIn, kernelShape[1]))
	}

	HOut := (H+2*padding-KH)/stride + 1
	WOut := (W+2*padding-KW)/stride + 1
	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", HOut, WOut))
	}

	output, err := tensor.NewRaw(tensor.Shape{N, COut, HOut, WOut}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create output tensor: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		conv2d(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(),
			N, CIn, H, W, COut, KH, KW, HOut, WOut, stride, padding)
	case tensor.Float64:
		conv2d(output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(),
			N, CIn, H, W, COut, KH, KW, HOut, WOut, stride, padding)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

// conv2d lowers the convolution to im2col followed by a matmul whose output
// channels are computed in parallel.
func conv2d[T float](output, input, kernel []T, n, cIn, h, w, cOut, kh, kw, hOut, wOut, stride, padding int) {
	colWidth := cIn * kh * kw
	colHeight := n * hOut * wOut
	colBuf := make([]T, colHeight*colWidth)

	im2col(colBuf, input, n, cIn, h, w, kh, kw, hOut, wOut, stride, padding)

	// kernel rows: [C_out, C_in*K_h*K_w]; colBuf rows: [N*H_out*W_out, same].
	// The product lands directly in NCHW layout by walking output positions
	// per (batch, channel).
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1
	hw := hOut * wOut

	parallel.ForBatch(n, cOut, func(b, c int) {
		kernelRow := kernel[c*colWidth : (c+1)*colWidth]
		dst := output[(b*cOut+c)*hw : (b*cOut+c+1)*hw]
		for p := 0; p < hw; p++ {
			col := colBuf[(b*hw+p)*colWidth : (b*hw+p+1)*colWidth]
			var sum T
			for k, kv := range kernelRow {
				sum += kv * col[k]
			}
			dst[p] = sum
		}
	}, cfg)
}

// im2col transforms the input into a column matrix.
//
// Each row of colBuf holds the flattened input patch for one output
// position; out-of-bounds reads (padding) contribute zeros.
func im2col[T float](colBuf, input []T, n, c, h, w, kh, kw, hOut, wOut, stride, padding int) {
	colWidth := c * kh * kw
	colIdx := 0

	for b := 0; b < n; b++ {
		for outH := 0; outH < hOut; outH++ {
			for outW := 0; outW < wOut; outW++ {
				hStart := outH*stride - padding
				wStart := outW*stride - padding
				bufIdx := colIdx * colWidth

				for ch := 0; ch < c; ch++ {
					for i := 0; i < kh; i++ {
						for j := 0; j < kw; j++ {
							y := hStart + i
							x := wStart + j

							if y >= 0 && y < h && x >= 0 && x < w {
								colBuf[bufIdx] = input[b*c*h*w+ch*h*w+y*w+x]
							} else {
								colBuf[bufIdx] = 0
							}
							bufIdx++
						}
					}
				}

				colIdx++
			}
		}
	}
}
