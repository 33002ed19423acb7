// Package mlmodel loads the offline-trained phishing classifier and runs
// inference on it.
//
// The training pipeline exports the fitted network as plain JSON: an ordered
// list of dense layers, each with a weight matrix (one row per output unit),
// a bias vector and an activation name. The reference topology is
// 7 → 16 (relu) → 8 (relu) → 1 (sigmoid), but this package only cares that
// the shapes chain together; the network is otherwise opaque.
package mlmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

const (
	activationReLU    = "relu"
	activationSigmoid = "sigmoid"
)

type layer struct {
	Activation string      `json:"activation"`
	Weights    [][]float64 `json:"weights"`
	Biases     []float64   `json:"biases"`
}

// Model is a feed-forward binary classifier. It is immutable after Load and
// safe for concurrent Predict calls.
type Model struct {
	layers    []layer
	inputSize int
}

// Load reads a model weights file and validates its shape. Every layer's
// weight matrix must consume exactly the previous layer's output width, and
// the final layer must emit a single probability.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var doc struct {
		Layers []layer `json:"layers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}
	if len(doc.Layers) == 0 {
		return nil, fmt.Errorf("model file %s contains no layers", path)
	}

	inputSize := 0
	width := -1
	for i, l := range doc.Layers {
		if len(l.Weights) == 0 {
			return nil, fmt.Errorf("layer %d has no units", i)
		}
		if len(l.Biases) != len(l.Weights) {
			return nil, fmt.Errorf("layer %d: %d biases for %d units", i, len(l.Biases), len(l.Weights))
		}
		if l.Activation != activationReLU && l.Activation != activationSigmoid {
			return nil, fmt.Errorf("layer %d: unsupported activation %q", i, l.Activation)
		}

		in := len(l.Weights[0])
		for u, row := range l.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("layer %d: unit %d has %d weights, want %d", i, u, len(row), in)
			}
		}

		if i == 0 {
			inputSize = in
		} else if in != width {
			return nil, fmt.Errorf("layer %d expects %d inputs but layer %d emits %d", i, in, i-1, width)
		}
		width = len(l.Weights)
	}
	if width != 1 {
		return nil, fmt.Errorf("final layer emits %d values, want a single probability", width)
	}

	return &Model{layers: doc.Layers, inputSize: inputSize}, nil
}

// InputSize returns the feature arity the model was trained on.
func (m *Model) InputSize() int {
	return m.inputSize
}

// Predict runs the feed-forward pass and returns the phishing probability.
func (m *Model) Predict(ctx context.Context, features []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(features) != m.inputSize {
		return 0, fmt.Errorf("feature vector has %d slots, model expects %d", len(features), m.inputSize)
	}

	current := features
	for _, l := range m.layers {
		next := make([]float64, len(l.Weights))
		for u, row := range l.Weights {
			sum := l.Biases[u]
			for j, w := range row {
				sum += w * current[j]
			}
			next[u] = activate(l.Activation, sum)
		}
		current = next
	}
	return current[0], nil
}

func activate(name string, x float64) float64 {
	switch name {
	case activationReLU:
		return math.Max(0, x)
	case activationSigmoid:
		return 1 / (1 + math.Exp(-x))
	}
	// Unreachable: Load rejects unknown activations.
	return x
}
