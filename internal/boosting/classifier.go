package boosting

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"bikecast/internal/estimator"
	bcerrors "bikecast/pkg/errors"
)

// Classifier is the binary gradient-boosting classifier. It wraps the
// trainer and the trained Model behind the Fit/Predict contract.
type Classifier struct {
	estimator.Base

	Params Params
	Model  *Model
}

// NewClassifier creates an unfitted classifier with the given parameters.
func NewClassifier(params Params) *Classifier {
	return &Classifier{Params: params}
}

// Fit trains on features X and a 0/1 label vector y of matching length.
func (c *Classifier) Fit(X mat.Matrix, y []float64) (err error) {
	defer bcerrors.Recover(&err, "Classifier.Fit")

	rows, cols := X.Dims()
	if len(y) == 0 {
		return bcerrors.NewModelError("Classifier.Fit", "empty label column", bcerrors.ErrEmptyData)
	}
	if rows != len(y) {
		return bcerrors.NewDimensionError("Classifier.Fit", rows, len(y), 0)
	}

	log.Info().
		Int("samples", rows).
		Int("features", cols).
		Int("iterations", c.Params.NumIterations).
		Float64("learning_rate", c.Params.LearningRate).
		Msg("fitting classifier")

	trainer := NewTrainer(c.Params)
	if err := trainer.Fit(X, y); err != nil {
		return err
	}
	c.Model = trainer.Model()
	c.SetFitted()
	return nil
}

// PredictProba returns the positive-class probability per row of X.
func (c *Classifier) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	if !c.IsFitted() {
		return nil, bcerrors.NewNotFittedError("Classifier", "PredictProba")
	}
	return c.Model.PredictProbaMatrix(X)
}

// Predict returns the 0/1 label per row of X under the 0.5 threshold.
func (c *Classifier) Predict(X mat.Matrix) (*mat.VecDense, error) {
	proba, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}

	labels := mat.NewVecDense(proba.Len(), nil)
	for i := 0; i < proba.Len(); i++ {
		if proba.AtVec(i) >= 0.5 {
			labels.SetVec(i, 1)
		}
	}
	return labels, nil
}
