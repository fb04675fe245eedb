package cpu

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Cat concatenates tensors along the given dimension.
//
// All tensors must share dtype and shape except along dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: empty tensor list")
	}

	first := tensors[0]
	ndim := len(first.Shape())
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dimension %d out of range for %dD tensor", dim, ndim))
	}

	// Validate shapes and compute the concatenated size.
	catSize := 0
	for i, t := range tensors {
		shape := t.Shape()
		if len(shape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dims, expected %d", i, len(shape), ndim))
		}
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: tensor %d dtype %s != %s", i, t.DType(), first.DType()))
		}
		for d := 0; d < ndim; d++ {
			if d != dim && shape[d] != first.Shape()[d] {
				panic(fmt.Sprintf("cat: tensor %d shape %v incompatible with %v along dim %d",
					i, shape, first.Shape(), dim))
			}
		}
		catSize += shape[dim]
	}

	outShape := first.Shape().Clone()
	outShape[dim] = catSize

	result, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Copy byte blocks: each tensor contributes contiguous runs of
	// shape[dim]*inner elements for every outer index.
	elemSize := first.DType().Size()
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= outShape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= outShape[d]
	}

	dst := result.Data()
	outRowBytes := catSize * inner * elemSize
	colOffset := 0
	for _, t := range tensors {
		src := t.Data()
		rowBytes := t.Shape()[dim] * inner * elemSize
		for o := 0; o < outer; o++ {
			copy(dst[o*outRowBytes+colOffset:], src[o*rowBytes:(o+1)*rowBytes])
		}
		colOffset += rowBytes
	}

	return result
}
