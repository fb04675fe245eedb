package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/ganeval-ml/ganeval/internal/tensor"
	"github.com/ganeval-ml/ganeval/internal/transforms"
)

// DefaultSampleBudget is the number of samples each metric is computed
// over when the evaluator is given no explicit budget. Larger budgets make
// the estimates more accurate.
const DefaultSampleBudget = 512

// EvaluatorConfig configures an Evaluator.
type EvaluatorConfig struct {
	// SampleBudget caps how many samples are drawn from the source. Zero
	// means DefaultSampleBudget.
	SampleBudget int
	// TargetIndex selects the real image from each sample tuple. Negative
	// means the tuple has a single element which is the target.
	TargetIndex int
	// ConditionIndices selects the tuple elements fed to the generator for
	// image-to-image translation. Empty means the generator is fed noise.
	ConditionIndices []int
	// NoiseDim is the noise dimension for unconditional generators. It is
	// required when ConditionIndices is empty.
	NoiseDim int
}

// Evaluator drives the shared sampling loop of both metrics: draw real
// sample tuples from a source, run the generator on conditions or noise,
// re-normalize the generated images from generator space back through the
// classifier preprocessing, and feed both sides to the classifier.
type Evaluator[B tensor.Backend] struct {
	classifier Classifier[B]
	preprocess *transforms.Compose[B]
	cfg        EvaluatorConfig
	backend    B
}

// NewEvaluator creates an evaluator over the given classifier. The
// classifier preprocessing pipeline is taken from transforms.Classifier.
func NewEvaluator[B tensor.Backend](classifier Classifier[B], cfg EvaluatorConfig, backend B) *Evaluator[B] {
	if cfg.SampleBudget <= 0 {
		cfg.SampleBudget = DefaultSampleBudget
	}
	return &Evaluator[B]{
		classifier: classifier,
		preprocess: transforms.Classifier(backend),
		cfg:        cfg,
		backend:    backend,
	}
}

// generatorInputs assembles the generator inputs for one sample tuple:
// either the configured condition elements passed through the generator's
// training transforms, or a fresh noise batch.
func (e *Evaluator[B]) generatorInputs(sample []*tensor.Tensor[float32, B], batchSize int,
	genTransforms *transforms.Compose[B]) ([]*tensor.Tensor[float32, B], error) {

	if len(e.cfg.ConditionIndices) > 0 {
		inputs := make([]*tensor.Tensor[float32, B], 0, len(e.cfg.ConditionIndices))
		for _, idx := range e.cfg.ConditionIndices {
			if idx < 0 || idx >= len(sample) {
				return nil, fmt.Errorf("metrics: condition index %d out of range for %d-element sample", idx, len(sample))
			}
			cond := sample[idx]
			if genTransforms != nil {
				cond = genTransforms.Apply(cond)
			}
			inputs = append(inputs, cond)
		}
		return inputs, nil
	}

	if e.cfg.NoiseDim <= 0 {
		return nil, errors.New("metrics: NoiseDim required when no condition indices are set")
	}
	noise := tensor.Randn[float32](tensor.Shape{batchSize, e.cfg.NoiseDim}, e.backend)
	return []*tensor.Tensor[float32, B]{noise}, nil
}

// target selects the real image tensor from a sample tuple.
func (e *Evaluator[B]) target(sample []*tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if e.cfg.TargetIndex < 0 {
		if len(sample) != 1 {
			return nil, fmt.Errorf("metrics: TargetIndex unset but sample has %d elements", len(sample))
		}
		return sample[0], nil
	}
	if e.cfg.TargetIndex >= len(sample) {
		return nil, fmt.Errorf("metrics: target index %d out of range for %d-element sample", e.cfg.TargetIndex, len(sample))
	}
	return sample[e.cfg.TargetIndex], nil
}

// generate runs the generator and maps its output back into classifier
// input space. Generators emit values in the space of their training
// transforms (typically [-1, 1] from a Tanh head), so the inverse of those
// transforms is applied before the classifier preprocessing.
func (e *Evaluator[B]) generate(gen Generator[B], inputs []*tensor.Tensor[float32, B],
	genInverse transforms.Transform[B]) *tensor.Tensor[float32, B] {

	out := gen.Generate(inputs...)
	if genInverse != nil {
		out = genInverse.Apply(out)
	}
	return e.preprocess.Apply(out)
}

// CollectMoments streams real and generated samples through the classifier
// feature head, accumulating the moments needed by the Fréchet distance.
func (e *Evaluator[B]) CollectMoments(source BatchSource[B], gen Generator[B],
	genTransforms *transforms.Compose[B]) (real, fake *Moments, err error) {

	dim := e.classifier.FeatureDim()
	real = NewMoments(dim)
	fake = NewMoments(dim)

	var genInverse transforms.Transform[B]
	if genTransforms != nil {
		genInverse = genTransforms.Invert()
	}

	seen := 0
	for seen < e.cfg.SampleBudget {
		sample, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("metrics: reading sample batch: %w", err)
		}
		if len(sample) == 0 {
			return nil, nil, errors.New("metrics: source returned empty sample tuple")
		}

		target, err := e.target(sample)
		if err != nil {
			return nil, nil, err
		}
		batchSize := target.Shape()[0]

		realEmb := e.classifier.Features(e.preprocess.Apply(target))
		if err := real.Add(realEmb.Data(), batchSize); err != nil {
			return nil, nil, err
		}

		inputs, err := e.generatorInputs(sample, batchSize, genTransforms)
		if err != nil {
			return nil, nil, err
		}
		fakeEmb := e.classifier.Features(e.generate(gen, inputs, genInverse))
		if err := fake.Add(fakeEmb.Data(), batchSize); err != nil {
			return nil, nil, err
		}

		seen += batchSize
	}

	if real.Count() == 0 {
		return nil, nil, errors.New("metrics: source yielded no samples")
	}
	return real, fake, nil
}

// CollectPredictions streams generated samples through the classifier's
// softmax head, collecting the probability rows the Inception Score needs.
func (e *Evaluator[B]) CollectPredictions(source BatchSource[B], gen Generator[B],
	genTransforms *transforms.Compose[B]) (*Predictions, error) {

	preds := NewPredictions(e.classifier.NumClasses())

	var genInverse transforms.Transform[B]
	if genTransforms != nil {
		genInverse = genTransforms.Invert()
	}

	seen := 0
	for seen < e.cfg.SampleBudget {
		sample, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("metrics: reading sample batch: %w", err)
		}
		if len(sample) == 0 {
			return nil, errors.New("metrics: source returned empty sample tuple")
		}

		batchSize := sample[0].Shape()[0]
		inputs, err := e.generatorInputs(sample, batchSize, genTransforms)
		if err != nil {
			return nil, err
		}

		logits := e.classifier.Logits(e.generate(gen, inputs, genInverse))
		probs := logits.Softmax(1)
		if err := preds.Add(probs.Data(), batchSize); err != nil {
			return nil, err
		}

		seen += batchSize
	}

	if preds.Count() == 0 {
		return nil, errors.New("metrics: source yielded no samples")
	}
	return preds, nil
}

// FID computes the Fréchet Inception Distance between real samples from the
// source and samples produced by the generator.
func (e *Evaluator[B]) FID(source BatchSource[B], gen Generator[B],
	genTransforms *transforms.Compose[B]) (float64, error) {

	real, fake, err := e.CollectMoments(source, gen, genTransforms)
	if err != nil {
		return 0, err
	}
	return FrechetDistance(real, fake)
}

// InceptionScore computes the Inception Score of the generator's samples.
func (e *Evaluator[B]) InceptionScore(source BatchSource[B], gen Generator[B],
	genTransforms *transforms.Compose[B]) (float64, error) {

	preds, err := e.CollectPredictions(source, gen, genTransforms)
	if err != nil {
		return 0, err
	}
	return preds.InceptionScore()
}
