package transforms

import (
	"fmt"
	"math"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Resize rescales images with bilinear interpolation so that the shorter
// spatial side equals Size, preserving aspect ratio.
type Resize[B tensor.Backend] struct {
	size    int
	backend B
}

// NewResize creates a resize transform targeting the given shorter-side size.
func NewResize[B tensor.Backend](size int, backend B) *Resize[B] {
	if size <= 0 {
		panic(fmt.Sprintf("resize: invalid size %d", size))
	}
	return &Resize[B]{size: size, backend: backend}
}

// Apply resizes the batch.
func (r *Resize[B]) Apply(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("resize: expected 4D input, got shape %v", shape))
	}
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]

	// The long side rounds to the nearest integer, matching torchvision.
	var outH, outW int
	if h <= w {
		outH = r.size
		outW = int(math.Round(float64(w) * float64(r.size) / float64(h)))
	} else {
		outW = r.size
		outH = int(math.Round(float64(h) * float64(r.size) / float64(w)))
	}
	if outH == h && outW == w {
		return x
	}

	outRaw, err := tensor.NewRaw(tensor.Shape{n, c, outH, outW}, tensor.Float32, x.Device())
	if err != nil {
		panic(err)
	}
	in := x.Raw().AsFloat32()
	out := outRaw.AsFloat32()

	scaleH := float64(h) / float64(outH)
	scaleW := float64(w) / float64(outW)
	plane := h * w
	outPlane := outH * outW

	for b := 0; b < n; b++ {
		for ch := 0; ch < c; ch++ {
			src := in[(b*c+ch)*plane:]
			dst := out[(b*c+ch)*outPlane:]
			for oy := 0; oy < outH; oy++ {
				// Pixel centers map at half-integer offsets.
				sy := (float64(oy)+0.5)*scaleH - 0.5
				y0, wy := splitCoord(sy, h)
				for ox := 0; ox < outW; ox++ {
					sx := (float64(ox)+0.5)*scaleW - 0.5
					x0, wx := splitCoord(sx, w)

					y1 := min(y0+1, h-1)
					x1 := min(x0+1, w-1)
					top := float64(src[y0*w+x0])*(1-wx) + float64(src[y0*w+x1])*wx
					bot := float64(src[y1*w+x0])*(1-wx) + float64(src[y1*w+x1])*wx
					dst[oy*outW+ox] = float32(top*(1-wy) + bot*wy)
				}
			}
		}
	}
	return tensor.New[float32, B](outRaw, r.backend)
}

// splitCoord clamps a source coordinate to the image and splits it into an
// integer base index and a fractional interpolation weight.
func splitCoord(s float64, limit int) (int, float64) {
	if s < 0 {
		return 0, 0
	}
	i := int(s)
	if i >= limit-1 {
		return limit - 1, 0
	}
	return i, s - float64(i)
}

// String returns a string representation of the transform.
func (r *Resize[B]) String() string {
	return fmt.Sprintf("Resize(%d)", r.size)
}
