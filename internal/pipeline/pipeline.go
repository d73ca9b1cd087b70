// Package pipeline assembles the rental feature vector: one-hot encoded
// season and weather condition, min-max scaled temperature, humidity and
// windspeed, and the remaining numeric columns passed through. Fit learns
// parameters from the training partition only; Transform applies the same
// learned parameters to any record set, so train, test and inference rows
// share one feature space.
package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"bikecast/internal/dataset"
	"bikecast/internal/estimator"
	"bikecast/internal/preprocessing"
	bcerrors "bikecast/pkg/errors"
)

var (
	categoricalNames = []string{"season", "weathercondition"}
	scaledNames      = []string{"temperature", "humidity", "windspeed"}
	passthroughNames = []string{"month", "hour", "holiday", "weekday", "workingday"}
)

// FeaturePipeline is the fit/transform stage between raw records and the
// numeric feature matrix consumed by the trainer.
type FeaturePipeline struct {
	estimator.Base

	encoder *preprocessing.OneHotEncoder
	scaler  *preprocessing.MinMaxScaler
}

// New creates an unfitted FeaturePipeline.
func New() *FeaturePipeline {
	return &FeaturePipeline{
		encoder: preprocessing.NewOneHotEncoder(),
		scaler:  preprocessing.NewMinMaxScaler(),
	}
}

// Fit learns one-hot categories and min-max bounds from d.
func (p *FeaturePipeline) Fit(d dataset.Dataset) (err error) {
	defer bcerrors.Recover(&err, "FeaturePipeline.Fit")
	if len(d) == 0 {
		return bcerrors.NewModelError("FeaturePipeline.Fit", "empty data", bcerrors.ErrEmptyData)
	}

	if err := p.encoder.Fit(categoricalMatrix(d)); err != nil {
		return err
	}
	if err := p.scaler.Fit(scaledMatrix(d)); err != nil {
		return err
	}

	p.SetFitted()
	return nil
}

// Transform maps records to the concatenated feature matrix, one row per
// record: encoded categoricals, then scaled numerics, then passthrough
// columns.
func (p *FeaturePipeline) Transform(d dataset.Dataset) (_ *mat.Dense, err error) {
	defer bcerrors.Recover(&err, "FeaturePipeline.Transform")
	if !p.IsFitted() {
		return nil, bcerrors.NewNotFittedError("FeaturePipeline", "Transform")
	}
	if len(d) == 0 {
		return nil, bcerrors.NewModelError("FeaturePipeline.Transform", "empty data", bcerrors.ErrEmptyData)
	}

	encoded, err := p.encoder.Transform(categoricalMatrix(d))
	if err != nil {
		return nil, err
	}
	scaled, err := p.scaler.Transform(scaledMatrix(d))
	if err != nil {
		return nil, err
	}
	passthrough := passthroughMatrix(d)

	n := len(d)
	width := p.NumOutputFeatures()
	result := mat.NewDense(n, width, nil)
	for i := 0; i < n; i++ {
		col := 0
		for j := 0; j < p.encoder.NOutputs; j++ {
			result.Set(i, col, encoded.At(i, j))
			col++
		}
		for j := 0; j < len(scaledNames); j++ {
			result.Set(i, col, scaled.At(i, j))
			col++
		}
		for j := 0; j < len(passthroughNames); j++ {
			result.Set(i, col, passthrough.At(i, j))
			col++
		}
	}
	return result, nil
}

// FitTransform fits on d and returns its feature matrix.
func (p *FeaturePipeline) FitTransform(d dataset.Dataset) (*mat.Dense, error) {
	if err := p.Fit(d); err != nil {
		return nil, err
	}
	return p.Transform(d)
}

// TransformRecord maps a single raw record to its feature vector using the
// fitted parameters. The record's label, if any, is ignored.
func (p *FeaturePipeline) TransformRecord(r dataset.RentalRecord) ([]float64, error) {
	X, err := p.Transform(dataset.Dataset{r})
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, 0, X), nil
}

// NumOutputFeatures returns the feature vector width.
func (p *FeaturePipeline) NumOutputFeatures() int {
	if !p.IsFitted() {
		return 0
	}
	return p.encoder.NOutputs + len(scaledNames) + len(passthroughNames)
}

// ScalerBounds returns the fitted min and max of scaled column j
// (0 temperature, 1 humidity, 2 windspeed).
func (p *FeaturePipeline) ScalerBounds(j int) (min, max float64) {
	return p.scaler.DataMin[j], p.scaler.DataMax[j]
}

// FeatureNames returns the output column names in vector order.
func (p *FeaturePipeline) FeatureNames() []string {
	if !p.IsFitted() {
		return nil
	}
	names := p.encoder.FeatureNamesOut(categoricalNames)
	names = append(names, scaledNames...)
	names = append(names, passthroughNames...)
	return names
}

func categoricalMatrix(d dataset.Dataset) *mat.Dense {
	X := mat.NewDense(len(d), len(categoricalNames), nil)
	for i, r := range d {
		X.Set(i, 0, r.Season)
		X.Set(i, 1, r.WeatherCondition)
	}
	return X
}

func scaledMatrix(d dataset.Dataset) *mat.Dense {
	X := mat.NewDense(len(d), len(scaledNames), nil)
	for i, r := range d {
		X.Set(i, 0, r.Temperature)
		X.Set(i, 1, r.Humidity)
		X.Set(i, 2, r.Windspeed)
	}
	return X
}

func passthroughMatrix(d dataset.Dataset) *mat.Dense {
	X := mat.NewDense(len(d), len(passthroughNames), nil)
	for i, r := range d {
		X.Set(i, 0, r.Month)
		X.Set(i, 1, r.Hour)
		X.Set(i, 2, r.Holiday)
		X.Set(i, 3, r.Weekday)
		X.Set(i, 4, r.WorkingDay)
	}
	return X
}
