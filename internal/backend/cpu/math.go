package cpu

import (
	"math"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Exp computes the element-wise exponential e^x.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.applyUnary("exp", x,
		func(v float32) float32 { return float32(math.Exp(float64(v))) },
		math.Exp)
}

// Log computes the element-wise natural logarithm ln(x).
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.applyUnary("log", x,
		func(v float32) float32 { return float32(math.Log(float64(v))) },
		math.Log)
}

// Sqrt computes the element-wise square root.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.applyUnary("sqrt", x,
		func(v float32) float32 { return float32(math.Sqrt(float64(v))) },
		math.Sqrt)
}

// Rsqrt computes the element-wise reciprocal square root 1/sqrt(x).
func (cpu *CPUBackend) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.applyUnary("rsqrt", x,
		func(v float32) float32 { return float32(1.0 / math.Sqrt(float64(v))) },
		func(v float64) float64 { return 1.0 / math.Sqrt(v) })
}
