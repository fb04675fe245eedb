package transforms

import "github.com/ganeval-ml/ganeval/internal/tensor"

// ImageNet normalization statistics.
var (
	ImageNetMean = []float32{0.485, 0.456, 0.406}
	ImageNetStd  = []float32{0.229, 0.224, 0.225}
)

// ClassifierInputSize is the spatial size the pretrained classifier expects.
const ClassifierInputSize = 299

// Classifier returns the preprocessing pipeline of the pretrained
// classifier: resize the shorter side to 299, center crop 299x299 and
// normalize with the ImageNet channel statistics.
func Classifier[B tensor.Backend](backend B) *Compose[B] {
	return NewCompose[B](
		NewResize(ClassifierInputSize, backend),
		NewCenterCrop(ClassifierInputSize, backend),
		NewNormalize(ImageNetMean, ImageNetStd, backend),
	)
}

// TanhOutput returns the pipeline a generator with a Tanh output layer was
// trained against: values in [-1, 1], i.e. Normalize(mean=0.5, std=0.5) per
// channel. Its inverse maps generated samples back to [0, 1] before the
// classifier preprocessing is applied.
func TanhOutput[B tensor.Backend](channels int, backend B) *Compose[B] {
	mean := make([]float32, channels)
	std := make([]float32, channels)
	for i := range mean {
		mean[i] = 0.5
		std[i] = 0.5
	}
	return NewCompose[B](NewNormalize(mean, std, backend))
}
