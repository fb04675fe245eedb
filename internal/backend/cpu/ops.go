package cpu

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// float constrains kernels to the floating-point dtypes.
type float interface {
	~float32 | ~float64
}

// dataOf returns the typed data slice of a raw tensor.
func dataOf[T tensor.DType](r *tensor.RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case uint8:
		return any(r.AsUint8()).([]T)
	default:
		panic("unsupported type")
	}
}

// applyBinary evaluates op element-wise into result, broadcasting a and b
// to the result shape where needed.
func applyBinary[T float](result, a, b *tensor.RawTensor, op func(x, y T) T) {
	dst := dataOf[T](result)
	av := dataOf[T](a)
	bv := dataOf[T](b)

	outShape := result.Shape()
	if a.Shape().Equal(b.Shape()) {
		// Fast path: identical shapes, plain vectorized loop.
		for i := range dst {
			dst[i] = op(av[i], bv[i])
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	n := outShape.NumElements()
	ndim := len(outShape)
	for i := 0; i < n; i++ {
		rem := i
		ai, bi := 0, 0
		for d := 0; d < ndim; d++ {
			idx := rem / outStrides[d]
			rem %= outStrides[d]
			ai += idx * aStrides[d]
			bi += idx * bStrides[d]
		}
		dst[i] = op(av[ai], bv[bi])
	}
}

// broadcastStrides aligns a shape's strides to the output shape, substituting
// stride 0 for broadcast (size-1 or missing) dimensions.
func broadcastStrides(shape, outShape tensor.Shape) []int {
	strides := shape.ComputeStrides()
	aligned := make([]int, len(outShape))
	offset := len(outShape) - len(shape)

	for d := range outShape {
		srcDim := d - offset
		if srcDim < 0 || shape[srcDim] == 1 {
			aligned[d] = 0
		} else {
			aligned[d] = strides[srcDim]
		}
	}
	return aligned
}

// applyUnary evaluates op element-wise into a fresh tensor.
func (cpu *CPUBackend) applyUnary(name string, x *tensor.RawTensor,
	op32 func(v float32) float32, op64 func(v float64) float64,
) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i := range src {
			dst[i] = op32(src[i])
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i := range src {
			dst[i] = op64(src[i])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

// toFloat64 converts a scalar of any numeric type to float64.
func toFloat64(name string, scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	case uint8:
		return float64(v)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", name, scalar))
	}
}
