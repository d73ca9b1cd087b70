package boosting

import "math"

// ObjectiveFunction supplies per-sample first and second derivatives of the
// training loss with respect to the raw score.
type ObjectiveFunction interface {
	Gradient(prediction, target float64) float64
	Hessian(prediction, target float64) float64
	Loss(prediction, target float64) float64
	InitScore(targets []float64) float64
	Name() string
}

// LogisticObjective is the binary cross-entropy loss over raw log-odds
// scores: gradient p - y, hessian p(1-p).
type LogisticObjective struct{}

// NewLogisticObjective creates the binary classification objective.
func NewLogisticObjective() *LogisticObjective {
	return &LogisticObjective{}
}

const probEpsilon = 1e-15

// Gradient returns dL/dscore for one sample.
func (o *LogisticObjective) Gradient(prediction, target float64) float64 {
	return Sigmoid(prediction) - target
}

// Hessian returns d²L/dscore² for one sample, kept strictly positive for
// numerical stability of the leaf value computation.
func (o *LogisticObjective) Hessian(prediction, target float64) float64 {
	p := Sigmoid(prediction)
	h := p * (1 - p)
	if h < probEpsilon {
		return probEpsilon
	}
	return h
}

// Loss returns the log loss of one sample.
func (o *LogisticObjective) Loss(prediction, target float64) float64 {
	p := clampProb(Sigmoid(prediction))
	if target >= 0.5 {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}

// InitScore returns the log-odds of the positive rate, the constant score
// minimizing the loss before any tree is added. A single-class target vector
// yields a large finite score rather than ±Inf.
func (o *LogisticObjective) InitScore(targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range targets {
		sum += t
	}
	p := clampProb(sum / float64(len(targets)))
	return math.Log(p / (1 - p))
}

// Name returns the objective identifier.
func (o *LogisticObjective) Name() string {
	return "binary_logistic"
}

func clampProb(p float64) float64 {
	if p < probEpsilon {
		return probEpsilon
	}
	if p > 1-probEpsilon {
		return 1 - probEpsilon
	}
	return p
}
