package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"bikecast/internal/estimator"
	bcerrors "bikecast/pkg/errors"
)

// MinMaxScaler rescales each column to [0, 1] using the minimum and maximum
// observed during Fit. A constant column scales to 0.
type MinMaxScaler struct {
	estimator.Base

	// DataMin and DataMax are the per-column bounds learned from training data.
	DataMin []float64
	DataMax []float64

	// Scale is DataMax - DataMin, clamped to 1 for constant columns.
	Scale []float64

	// NFeatures is the column count seen at Fit time.
	NFeatures int
}

// NewMinMaxScaler creates an unfitted MinMaxScaler.
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{}
}

// Fit learns the per-column min and max of X.
func (m *MinMaxScaler) Fit(X mat.Matrix) (err error) {
	defer bcerrors.Recover(&err, "MinMaxScaler.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return bcerrors.NewModelError("MinMaxScaler.Fit", "empty data", bcerrors.ErrEmptyData)
	}

	m.NFeatures = c
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		lo, hi := X.At(0, j), X.At(0, j)
		for i := 1; i < r; i++ {
			v := X.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		m.DataMin[j] = lo
		m.DataMax[j] = hi

		if math.Abs(hi-lo) < 1e-12 {
			m.Scale[j] = 1
		} else {
			m.Scale[j] = hi - lo
		}
	}

	m.SetFitted()
	return nil
}

// Transform rescales X with the fitted bounds. Values outside the training
// range map outside [0, 1] and are not clipped.
func (m *MinMaxScaler) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer bcerrors.Recover(&err, "MinMaxScaler.Transform")
	if !m.IsFitted() {
		return nil, bcerrors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, bcerrors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-m.DataMin[j])/m.Scale[j])
		}
	}
	return result, nil
}

// FitTransform fits on X and returns its scaling.
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps scaled values back to the original range.
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer bcerrors.Recover(&err, "MinMaxScaler.InverseTransform")
	if !m.IsFitted() {
		return nil, bcerrors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, bcerrors.NewDimensionError("MinMaxScaler.InverseTransform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*m.Scale[j]+m.DataMin[j])
		}
	}
	return result, nil
}
