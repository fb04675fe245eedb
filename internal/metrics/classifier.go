package metrics

import "github.com/ganeval-ml/ganeval/internal/tensor"

// Classifier is a pretrained image classifier used as the measurement
// instrument for both metrics. Features returns the penultimate embedding
// (the network with its final classification layer cropped to an identity);
// Logits returns the raw class scores.
type Classifier[B tensor.Backend] interface {
	// Features maps a preprocessed image batch [batch, channels, h, w] to
	// feature embeddings [batch, FeatureDim()].
	Features(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Logits maps a preprocessed image batch to class scores
	// [batch, NumClasses()].
	Logits(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// FeatureDim returns the embedding dimension.
	FeatureDim() int

	// NumClasses returns the number of output classes.
	NumClasses() int
}

// Generator produces a batch of images from its inputs: either condition
// tensors selected from a sample tuple, or a noise tensor.
type Generator[B tensor.Backend] interface {
	Generate(inputs ...*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// BatchSource yields batches of sample tuples. Each call returns one tuple
// of batched tensors (all sharing the batch dimension) and io.EOF when the
// source is exhausted.
type BatchSource[B tensor.Backend] interface {
	Next() ([]*tensor.Tensor[float32, B], error)
}
