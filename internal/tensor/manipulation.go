package tensor

// Cat concatenates tensors along a dimension.
//
// All tensors must have identical shapes except along dim.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{2, 3}, backend)
//	b := tensor.Zeros[float32](Shape{2, 3}, backend)
//	c := tensor.Cat([]*Tensor[float32, B]{a, b}, 0) // Shape: [4, 3]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: empty tensor list")
	}

	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.Raw()
	}

	backend := tensors[0].Backend()
	result := backend.Cat(raws, dim)
	return New[T, B](result, backend)
}
