package cpu

import (
	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("mulscalar", scalar)
	return cpu.applyUnary("mulscalar", x,
		func(v float32) float32 { return v * float32(s) },
		func(v float64) float64 { return v * s })
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("addscalar", scalar)
	return cpu.applyUnary("addscalar", x,
		func(v float32) float32 { return v + float32(s) },
		func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from every element.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("subscalar", scalar)
	return cpu.applyUnary("subscalar", x,
		func(v float32) float32 { return v - float32(s) },
		func(v float64) float64 { return v - s })
}

// DivScalar divides every element by a scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("divscalar", scalar)
	return cpu.applyUnary("divscalar", x,
		func(v float32) float32 { return v / float32(s) },
		func(v float64) float64 { return v / s })
}
