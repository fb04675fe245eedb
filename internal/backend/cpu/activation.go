package cpu

import (
	"fmt"
	"math"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Softmax applies softmax along the given dimension.
//
// The maximum along the dimension is subtracted before exponentiation for
// numerical stability.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dimension %d out of range for %dD tensor", dim, ndim))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		softmax(result.AsFloat32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		softmax(result.AsFloat64(), x.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s", x.DType()))
	}

	return result
}

func softmax[T float](result, data []T, shape tensor.Shape, dim int) {
	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	dimSize := shape[dim]

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*dimSize*inner + in

			maxVal := data[base]
			for d := 1; d < dimSize; d++ {
				if v := data[base+d*inner]; v > maxVal {
					maxVal = v
				}
			}

			var sum float64
			for d := 0; d < dimSize; d++ {
				e := math.Exp(float64(data[base+d*inner] - maxVal))
				result[base+d*inner] = T(e)
				sum += e
			}

			for d := 0; d < dimSize; d++ {
				result[base+d*inner] = T(float64(result[base+d*inner]) / sum)
			}
		}
	}
}

// ReLU applies the rectifier max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.applyUnary("relu", x,
		func(v float32) float32 { return max(v, 0) },
		func(v float64) float64 { return max(v, 0) })
}

// LeakyReLU applies the leaky rectifier with the given negative slope.
func (cpu *CPUBackend) LeakyReLU(x *tensor.RawTensor, negativeSlope float64) *tensor.RawTensor {
	return cpu.applyUnary("leakyrelu", x,
		func(v float32) float32 {
			if v < 0 {
				return v * float32(negativeSlope)
			}
			return v
		},
		func(v float64) float64 {
			if v < 0 {
				return v * negativeSlope
			}
			return v
		})
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.applyUnary("tanh", x,
		func(v float32) float32 { return float32(math.Tanh(float64(v))) },
		math.Tanh)
}

// Sigmoid applies the logistic function 1/(1+e^-x) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.applyUnary("sigmoid", x,
		func(v float32) float32 { return float32(1.0 / (1.0 + math.Exp(-float64(v)))) },
		func(v float64) float64 { return 1.0 / (1.0 + math.Exp(-v)) })
}
