package mlmodel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

// A hand-checkable 2 → 2 (relu) → 1 (sigmoid) network.
const tinyModel = `{
	"layers": [
		{"activation": "relu", "weights": [[1, -1], [0.5, 0.5]], "biases": [0, 0]},
		{"activation": "sigmoid", "weights": [[1, 1]], "biases": [0]}
	]
}`

func TestLoad_ValidModel(t *testing.T) {
	model, err := Load(writeModel(t, tinyModel))
	require.NoError(t, err)
	assert.Equal(t, 2, model.InputSize())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Missing file handled by caller", ""},
		{"Not JSON", `weights go here`},
		{"No layers", `{"layers": []}`},
		{"Bias count mismatch", `{"layers": [{"activation": "sigmoid", "weights": [[1]], "biases": [0, 0]}]}`},
		{"Unknown activation", `{"layers": [{"activation": "tanh", "weights": [[1]], "biases": [0]}]}`},
		{"Ragged weight matrix", `{"layers": [{"activation": "sigmoid", "weights": [[1, 2], [1]], "biases": [0, 0]}]}`},
		{"Layer width mismatch", `{
			"layers": [
				{"activation": "relu", "weights": [[1, 1]], "biases": [0]},
				{"activation": "sigmoid", "weights": [[1, 1, 1]], "biases": [0]}
			]}`},
		{"Final layer not scalar", `{"layers": [{"activation": "relu", "weights": [[1], [1]], "biases": [0, 0]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			if tt.doc == "" {
				path = filepath.Join(t.TempDir(), "missing.json")
			} else {
				path = writeModel(t, tt.doc)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestPredict(t *testing.T) {
	model, err := Load(writeModel(t, tinyModel))
	require.NoError(t, err)

	t.Run("All-zero input lands on sigmoid midpoint", func(t *testing.T) {
		prob, err := model.Predict(context.Background(), []float64{0, 0})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, prob, 1e-9)
	})

	t.Run("Hand-computed forward pass", func(t *testing.T) {
		// relu(2-1)=1, relu(1.5)=1.5 → sigmoid(2.5) ≈ 0.924142
		prob, err := model.Predict(context.Background(), []float64{2, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.924142, prob, 1e-5)
	})

	t.Run("Probability stays in unit interval", func(t *testing.T) {
		prob, err := model.Predict(context.Background(), []float64{1000, -1000})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prob, 0.0)
		assert.LessOrEqual(t, prob, 1.0)
	})

	t.Run("Wrong arity is an error", func(t *testing.T) {
		_, err := model.Predict(context.Background(), []float64{1})
		assert.Error(t, err)
	})

	t.Run("Cancelled context is respected", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := model.Predict(ctx, []float64{1, 2})
		assert.Error(t, err)
	})
}
