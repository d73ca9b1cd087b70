package boosting

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	bcerrors "bikecast/pkg/errors"
)

func TestClassifierFitPredict(t *testing.T) {
	X, y := separableData(80)

	clf := NewClassifier(Params{NumIterations: 15, MinLeafSize: 5})
	require.NoError(t, clf.Fit(X, y))
	require.True(t, clf.IsFitted())

	labels, err := clf.Predict(X)
	require.NoError(t, err)
	proba, err := clf.PredictProba(X)
	require.NoError(t, err)

	correct := 0
	for i := 0; i < labels.Len(); i++ {
		p := proba.AtVec(i)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		if labels.AtVec(i) == y[i] {
			correct++
		}
	}
	// Separable data should be fit almost perfectly.
	assert.Greater(t, float64(correct)/float64(labels.Len()), 0.95)
}

func TestClassifierNotFitted(t *testing.T) {
	clf := NewClassifier(Params{})

	_, err := clf.PredictProba(mat.NewDense(1, 2, []float64{1, 2}))
	require.Error(t, err)
	var nf *bcerrors.NotFittedError
	assert.True(t, bcerrors.As(err, &nf))
}

func TestClassifierRejectsMismatchedLabels(t *testing.T) {
	X, y := separableData(20)

	clf := NewClassifier(Params{})
	err := clf.Fit(X, y[:10])
	require.Error(t, err)

	err = clf.Fit(X, nil)
	require.Error(t, err)
	assert.True(t, bcerrors.Is(err, bcerrors.ErrEmptyData))
}

func TestModelJSONRoundTripPreservesPredictions(t *testing.T) {
	X, y := separableData(60)

	clf := NewClassifier(Params{NumIterations: 10, MinLeafSize: 5})
	require.NoError(t, clf.Fit(X, y))

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, clf.Model.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, clf.Model.NumFeatures, loaded.NumFeatures)
	assert.Equal(t, len(clf.Model.Trees), len(loaded.Trees))

	for _, features := range [][]float64{{12, 1}, {-7, 2}, {0.5, 0}} {
		want, err := clf.Model.PredictRaw(features)
		require.NoError(t, err)
		got, err := loaded.PredictRaw(features)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestLoadFromJSONRejectsGarbage(t *testing.T) {
	_, err := LoadFromJSON([]byte("not json"))
	assert.Error(t, err)

	_, err = LoadFromJSON([]byte("{}"))
	assert.Error(t, err)
}
