// Package predict ties the feature pipeline and the boosting classifier
// together into a trained model that scores rental records and evaluates
// itself on a held-out set.
package predict

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"bikecast/internal/boosting"
	"bikecast/internal/dataset"
	"bikecast/internal/metrics"
	"bikecast/internal/pipeline"
	bcerrors "bikecast/pkg/errors"
)

// FittedModel holds a fitted feature pipeline and a trained classifier.
// Both are fit on the same training split so feature layout and scaling
// bounds stay consistent at inference time.
type FittedModel struct {
	Pipeline   *pipeline.FeaturePipeline
	Classifier *boosting.Classifier
}

// Prediction is the outcome of scoring a single rental record.
type Prediction struct {
	WillRent    bool
	Probability float64
	RawScore    float64
}

// Evaluation aggregates the held-out metrics of a trained model.
type Evaluation struct {
	AUC       float64
	F1        float64
	Accuracy  float64
	Precision float64
	Recall    float64
}

// Train fits the feature pipeline and the classifier on the training split.
func Train(train dataset.Dataset, params boosting.Params) (*FittedModel, error) {
	if len(train) == 0 {
		return nil, bcerrors.NewModelError("predict.Train", "empty training set", bcerrors.ErrEmptyData)
	}

	p := pipeline.New()
	X, err := p.FitTransform(train)
	if err != nil {
		return nil, err
	}

	clf := boosting.NewClassifier(params)
	if err := clf.Fit(X, train.Labels()); err != nil {
		return nil, err
	}

	log.Info().
		Int("train_records", len(train)).
		Int("features", p.NumOutputFeatures()).
		Msg("model trained")

	return &FittedModel{Pipeline: p, Classifier: clf}, nil
}

// PredictRecord scores one record through the fitted pipeline and model.
func (m *FittedModel) PredictRecord(r dataset.RentalRecord) (Prediction, error) {
	features, err := m.Pipeline.TransformRecord(r)
	if err != nil {
		return Prediction{}, err
	}
	if !m.Classifier.IsFitted() {
		return Prediction{}, bcerrors.NewNotFittedError("FittedModel", "PredictRecord")
	}

	raw, err := m.Classifier.Model.PredictRaw(features)
	if err != nil {
		return Prediction{}, err
	}
	proba := boosting.Sigmoid(raw)
	return Prediction{
		WillRent:    proba >= 0.5,
		Probability: proba,
		RawScore:    raw,
	}, nil
}

// Evaluate computes AUC, F1 and the supporting metrics on a held-out split.
func (m *FittedModel) Evaluate(test dataset.Dataset) (Evaluation, error) {
	yTrue, proba, err := m.score(test)
	if err != nil {
		return Evaluation{}, err
	}

	labels := mat.NewVecDense(proba.Len(), nil)
	for i := 0; i < proba.Len(); i++ {
		if proba.AtVec(i) >= 0.5 {
			labels.SetVec(i, 1)
		}
	}

	var ev Evaluation
	if ev.AUC, err = metrics.AUC(yTrue, proba); err != nil {
		return Evaluation{}, err
	}
	if ev.F1, err = metrics.F1(yTrue, labels); err != nil {
		return Evaluation{}, err
	}
	if ev.Accuracy, err = metrics.Accuracy(yTrue, labels); err != nil {
		return Evaluation{}, err
	}
	if ev.Precision, err = metrics.Precision(yTrue, labels); err != nil {
		return Evaluation{}, err
	}
	if ev.Recall, err = metrics.Recall(yTrue, labels); err != nil {
		return Evaluation{}, err
	}

	log.Info().
		Int("test_records", len(test)).
		Float64("auc", ev.AUC).
		Float64("f1", ev.F1).
		Float64("accuracy", ev.Accuracy).
		Msg("model evaluated")
	return ev, nil
}

// ROC computes the ROC curve of the model on a held-out split.
func (m *FittedModel) ROC(test dataset.Dataset) (*metrics.ROCCurve, error) {
	yTrue, proba, err := m.score(test)
	if err != nil {
		return nil, err
	}
	return metrics.ROC(yTrue, proba)
}

func (m *FittedModel) score(test dataset.Dataset) (yTrue, proba *mat.VecDense, err error) {
	if len(test) == 0 {
		return nil, nil, bcerrors.NewModelError("FittedModel.score", "empty test set", bcerrors.ErrEmptyData)
	}

	X, err := m.Pipeline.Transform(test)
	if err != nil {
		return nil, nil, err
	}
	proba, err = m.Classifier.PredictProba(X)
	if err != nil {
		return nil, nil, err
	}
	return mat.NewVecDense(len(test), test.Labels()), proba, nil
}
