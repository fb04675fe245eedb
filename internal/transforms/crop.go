package transforms

import (
	"fmt"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// CenterCrop extracts the central Size x Size region of each image. Inputs
// smaller than the crop size are rejected.
type CenterCrop[B tensor.Backend] struct {
	size    int
	backend B
}

// NewCenterCrop creates a center crop transform.
func NewCenterCrop[B tensor.Backend](size int, backend B) *CenterCrop[B] {
	if size <= 0 {
		panic(fmt.Sprintf("centercrop: invalid size %d", size))
	}
	return &CenterCrop[B]{size: size, backend: backend}
}

// Apply crops the batch.
func (cc *CenterCrop[B]) Apply(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("centercrop: expected 4D input, got shape %v", shape))
	}
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	if h < cc.size || w < cc.size {
		panic(fmt.Sprintf("centercrop: input %dx%d smaller than crop size %d", h, w, cc.size))
	}
	if h == cc.size && w == cc.size {
		return x
	}

	top := (h - cc.size) / 2
	left := (w - cc.size) / 2

	outRaw, err := tensor.NewRaw(tensor.Shape{n, c, cc.size, cc.size}, tensor.Float32, x.Device())
	if err != nil {
		panic(err)
	}
	in := x.Raw().AsFloat32()
	out := outRaw.AsFloat32()

	plane := h * w
	outPlane := cc.size * cc.size
	for b := 0; b < n; b++ {
		for ch := 0; ch < c; ch++ {
			src := in[(b*c+ch)*plane:]
			dst := out[(b*c+ch)*outPlane:]
			for row := 0; row < cc.size; row++ {
				srcRow := src[(top+row)*w+left : (top+row)*w+left+cc.size]
				copy(dst[row*cc.size:(row+1)*cc.size], srcRow)
			}
		}
	}
	return tensor.New[float32, B](outRaw, cc.backend)
}

// String returns a string representation of the transform.
func (cc *CenterCrop[B]) String() string {
	return fmt.Sprintf("CenterCrop(%d)", cc.size)
}
