// Copyright 2025 GANEval. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metrics provides the public API for GANEval's evaluation
// metrics: the Fréchet Inception Distance and the Inception Score.
//
// Both metrics measure a generator through the lens of a pretrained
// classifier. FID compares the Gaussian statistics of real and generated
// feature embeddings; the Inception Score measures the sharpness and
// diversity of the class distributions predicted for generated samples.
//
// Example:
//
//	backend := cpu.New()
//	eval := metrics.NewEvaluator(classifier, metrics.EvaluatorConfig{
//	    SampleBudget: 512,
//	    NoiseDim:     128,
//	    TargetIndex:  -1,
//	}, backend)
//
//	fid, err := eval.FID(source, gen, genTransforms)
//	score, err := eval.InceptionScore(source, gen, genTransforms)
package metrics

import (
	"github.com/ganeval-ml/ganeval/internal/metrics"
	"github.com/ganeval-ml/ganeval/tensor"
)

// Moments accumulates streaming first and second moments of feature
// vectors.
type Moments = metrics.Moments

// Predictions collects per-sample class probability rows.
type Predictions = metrics.Predictions

// EvaluatorConfig configures an Evaluator.
type EvaluatorConfig = metrics.EvaluatorConfig

// DefaultSampleBudget is the default number of samples per metric.
const DefaultSampleBudget = metrics.DefaultSampleBudget

// Interfaces of the evaluation loop.
type (
	// Classifier is the pretrained network used as the measurement
	// instrument.
	Classifier[B tensor.Backend] = metrics.Classifier[B]
	// Generator produces image batches from conditions or noise.
	Generator[B tensor.Backend] = metrics.Generator[B]
	// BatchSource yields batches of sample tuples.
	BatchSource[B tensor.Backend] = metrics.BatchSource[B]
	// Evaluator drives the shared sampling loop of both metrics.
	Evaluator[B tensor.Backend] = metrics.Evaluator[B]
)

// NewMoments creates a moments accumulator for dim-dimensional vectors.
func NewMoments(dim int) *Moments {
	return metrics.NewMoments(dim)
}

// RestoreMoments rebuilds a moments accumulator from persisted state.
func RestoreMoments(dim, count int, sum, outer []float64) (*Moments, error) {
	return metrics.RestoreMoments(dim, count, sum, outer)
}

// NewPredictions creates a prediction collector over the given number of
// classes.
func NewPredictions(classes int) *Predictions {
	return metrics.NewPredictions(classes)
}

// FrechetDistance computes the Fréchet distance between two accumulated
// Gaussians: ||mx - my||^2 + tr(Cx + Cy - 2 sqrt(Cx Cy)).
func FrechetDistance(x, y *Moments) (float64, error) {
	return metrics.FrechetDistance(x, y)
}

// NewEvaluator creates an evaluator over the given classifier.
func NewEvaluator[B tensor.Backend](classifier Classifier[B], cfg EvaluatorConfig, backend B) *Evaluator[B] {
	return metrics.NewEvaluator(classifier, cfg, backend)
}
