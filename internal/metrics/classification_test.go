package metrics

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	bcerrors "bikecast/pkg/errors"
)

func vec(vals ...float64) *mat.VecDense {
	return mat.NewVecDense(len(vals), vals)
}

func TestAUCPerfectRanking(t *testing.T) {
	yTrue := vec(0, 0, 1, 1)
	yScore := vec(0.1, 0.2, 0.8, 0.9)

	auc, err := AUC(yTrue, yScore)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, auc, 1e-12)
}

func TestAUCReversedRanking(t *testing.T) {
	yTrue := vec(0, 0, 1, 1)
	yScore := vec(0.9, 0.8, 0.2, 0.1)

	auc, err := AUC(yTrue, yScore)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, auc, 1e-12)
}

func TestAUCKnownValue(t *testing.T) {
	// One of the two positives is ranked below one negative:
	// 3 of 4 positive/negative pairs are ordered correctly.
	yTrue := vec(0, 1, 0, 1)
	yScore := vec(0.1, 0.3, 0.35, 0.8)

	auc, err := AUC(yTrue, yScore)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, auc, 1e-12)
}

func TestAUCSingleClassWarnsAndReturnsHalf(t *testing.T) {
	var got error
	bcerrors.SetWarningHandler(func(w error) { got = w })
	defer bcerrors.SetWarningHandler(nil)

	auc, err := AUC(vec(1, 1, 1), vec(0.2, 0.5, 0.9))
	require.NoError(t, err)
	assert.Equal(t, 0.5, auc)

	var w *bcerrors.UndefinedMetricWarning
	require.True(t, bcerrors.As(got, &w))
	assert.Equal(t, "AUC", w.Metric)
}

func TestAUCTiedScores(t *testing.T) {
	// All scores equal: the curve is the diagonal.
	auc, err := AUC(vec(0, 1, 0, 1), vec(0.5, 0.5, 0.5, 0.5))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, auc, 1e-12)
}

func TestF1(t *testing.T) {
	yTrue := vec(1, 1, 1, 0, 0, 0)
	yPred := vec(1, 1, 0, 1, 0, 0)

	// precision 2/3, recall 2/3.
	f1, err := F1(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, f1, 1e-12)
}

func TestF1NoPositivePredictions(t *testing.T) {
	var got error
	bcerrors.SetWarningHandler(func(w error) { got = w })
	defer bcerrors.SetWarningHandler(nil)

	f1, err := F1(vec(1, 0, 1), vec(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, f1)
	assert.NotNil(t, got)
}

func TestPrecisionRecallAccuracy(t *testing.T) {
	yTrue := vec(1, 1, 0, 0)
	yPred := vec(1, 0, 1, 0)

	p, err := Precision(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	r, err := Recall(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-12)

	a, err := Accuracy(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a, 1e-12)
}

func TestMetricsRejectBadInput(t *testing.T) {
	_, err := AUC(nil, vec(0.5))
	assert.Error(t, err)

	_, err = AUC(vec(0, 1), vec(0.5))
	assert.Error(t, err)

	_, err = F1(vec(0, 2), vec(0, 1))
	assert.Error(t, err)

	_, err = Accuracy(vec(0, 1), vec(1))
	assert.Error(t, err)
}

func TestROCCurveEndpoints(t *testing.T) {
	curve, err := ROC(vec(0, 1, 0, 1), vec(0.1, 0.4, 0.35, 0.8))
	require.NoError(t, err)
	require.Equal(t, len(curve.FPR), len(curve.TPR))

	assert.Equal(t, 0.0, curve.FPR[0])
	assert.Equal(t, 0.0, curve.TPR[0])
	assert.Equal(t, 1.0, curve.FPR[len(curve.FPR)-1])
	assert.Equal(t, 1.0, curve.TPR[len(curve.TPR)-1])

	for i := 1; i < len(curve.FPR); i++ {
		assert.GreaterOrEqual(t, curve.FPR[i], curve.FPR[i-1])
		assert.GreaterOrEqual(t, curve.TPR[i], curve.TPR[i-1])
	}
}

func TestROCSingleClassIsError(t *testing.T) {
	_, err := ROC(vec(0, 0, 0), vec(0.1, 0.2, 0.3))
	assert.Error(t, err)
}

func TestROCSavePNG(t *testing.T) {
	curve, err := ROC(vec(0, 1, 0, 1), vec(0.1, 0.4, 0.35, 0.8))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roc.png")
	require.NoError(t, curve.SavePNG(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestAUCNaNScoreStillSorts(t *testing.T) {
	// NaN scores sort unpredictably but must not panic.
	_, err := AUC(vec(0, 1), vec(math.NaN(), 0.5))
	assert.NoError(t, err)
}
