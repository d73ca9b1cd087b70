package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	bcerrors "bikecast/pkg/errors"
)

func TestMinMaxScalerFitTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		-2, 40,
		8, 60,
		18, 90,
	})

	s := NewMinMaxScaler()
	scaled, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, []float64{-2, 40}, s.DataMin)
	assert.Equal(t, []float64{18, 90}, s.DataMax)

	assert.InDelta(t, 0.0, scaled.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, scaled.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, scaled.At(2, 0), 1e-12)
	assert.InDelta(t, 0.4, scaled.At(1, 1), 1e-12)
}

func TestMinMaxScalerOutOfRangeValues(t *testing.T) {
	s := NewMinMaxScaler()
	require.NoError(t, s.Fit(mat.NewDense(2, 1, []float64{0, 10})))

	out, err := s.Transform(mat.NewDense(2, 1, []float64{-5, 20}))
	require.NoError(t, err)
	assert.InDelta(t, -0.5, out.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0, out.At(1, 0), 1e-12)
}

func TestMinMaxScalerConstantColumn(t *testing.T) {
	s := NewMinMaxScaler()
	out, err := s.FitTransform(mat.NewDense(3, 1, []float64{7, 7, 7}))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, out.At(i, 0))
	}
}

func TestMinMaxScalerInverseTransformRoundTrip(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 100,
		2, 150,
		3, 125,
		4, 175,
	})

	s := NewMinMaxScaler()
	scaled, err := s.FitTransform(X)
	require.NoError(t, err)

	back, err := s.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-10))
}

func TestMinMaxScalerTransformIdempotentShape(t *testing.T) {
	X := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})

	s := NewMinMaxScaler()
	require.NoError(t, s.Fit(X))

	a, err := s.Transform(X)
	require.NoError(t, err)
	b, err := s.Transform(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, b))
}

func TestMinMaxScalerErrors(t *testing.T) {
	s := NewMinMaxScaler()

	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	var nf *bcerrors.NotFittedError
	require.True(t, bcerrors.As(err, &nf))

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var de *bcerrors.DimensionError
	require.True(t, bcerrors.As(err, &de))
}
