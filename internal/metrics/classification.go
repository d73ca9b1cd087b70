// Package metrics implements the binary-classification evaluation measures
// reported by the workflow: AUC over predicted scores plus the thresholded
// precision/recall family, and the ROC curve behind the AUC.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	bcerrors "bikecast/pkg/errors"
)

// AUC computes the area under the ROC curve from true 0/1 labels and
// predicted scores. A test set containing only one class makes the curve
// undefined; the conventional 0.5 is returned and a warning is emitted.
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	if err := checkPair("AUC", yTrue, yScore); err != nil {
		return 0, err
	}

	fprs, tprs, ok := rocPoints(yTrue, yScore)
	if !ok {
		bcerrors.Warn(bcerrors.NewUndefinedMetricWarning("AUC", "only one class present in yTrue", 0.5))
		return 0.5, nil
	}

	// Trapezoid rule over the ROC points.
	auc := 0.0
	for i := 1; i < len(fprs); i++ {
		width := fprs[i] - fprs[i-1]
		height := (tprs[i] + tprs[i-1]) / 2
		auc += width * height
	}
	return auc, nil
}

// F1 computes the harmonic mean of precision and recall for predicted 0/1
// labels. When precision or recall is undefined the result is 0 with a
// warning, matching the scikit-learn convention.
func F1(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("F1", yTrue, yPred); err != nil {
		return 0, err
	}

	precision, recall := precisionRecall(yTrue, yPred)
	if precision+recall == 0 {
		bcerrors.Warn(bcerrors.NewUndefinedMetricWarning("F1", "no positive predictions or no positive labels", 0))
		return 0, nil
	}
	return 2 * precision * recall / (precision + recall), nil
}

// Precision is the fraction of positive predictions that are correct.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("Precision", yTrue, yPred); err != nil {
		return 0, err
	}
	p, _ := precisionRecall(yTrue, yPred)
	return p, nil
}

// Recall is the fraction of positive labels that are predicted positive.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("Recall", yTrue, yPred); err != nil {
		return 0, err
	}
	_, r := precisionRecall(yTrue, yPred)
	return r, nil
}

// Accuracy is the fraction of correct predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := checkPair("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < yTrue.Len(); i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(yTrue.Len()), nil
}

func precisionRecall(yTrue, yPred *mat.VecDense) (precision, recall float64) {
	var tp, fp, fn float64
	for i := 0; i < yTrue.Len(); i++ {
		truth := yTrue.AtVec(i) == 1
		pred := yPred.AtVec(i) >= 0.5
		switch {
		case pred && truth:
			tp++
		case pred && !truth:
			fp++
		case !pred && truth:
			fn++
		}
	}

	if tp+fp > 0 {
		precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		recall = tp / (tp + fn)
	}
	return precision, recall
}

// rocPoints computes the ROC curve as (FPR, TPR) pairs ordered from (0,0) to
// (1,1). ok is false when yTrue holds a single class.
func rocPoints(yTrue, yScore *mat.VecDense) (fprs, tprs []float64, ok bool) {
	n := yTrue.Len()

	var totalPos, totalNeg float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			totalPos++
		} else {
			totalNeg++
		}
	}
	if totalPos == 0 || totalNeg == 0 {
		return nil, nil, false
	}

	type pair struct {
		score float64
		label float64
	}
	pairs := make([]pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = pair{score: yScore.AtVec(i), label: yTrue.AtVec(i)}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	fprs = append(fprs, 0)
	tprs = append(tprs, 0)

	var tp, fp float64
	prevScore := pairs[0].score + 1
	for _, p := range pairs {
		if p.score != prevScore {
			fprs = append(fprs, fp/totalNeg)
			tprs = append(tprs, tp/totalPos)
			prevScore = p.score
		}
		if p.label == 1 {
			tp++
		} else {
			fp++
		}
	}

	fprs = append(fprs, 1)
	tprs = append(tprs, 1)
	return fprs, tprs, true
}

func checkPair(op string, yTrue, yOther *mat.VecDense) error {
	if yTrue == nil || yOther == nil {
		return bcerrors.NewValueError(op, "input vectors cannot be nil")
	}
	n := yTrue.Len()
	if n == 0 {
		return bcerrors.NewValueError(op, "input vectors cannot be empty")
	}
	if n != yOther.Len() {
		return bcerrors.NewDimensionError(op, n, yOther.Len(), 0)
	}
	for i := 0; i < n; i++ {
		if v := yTrue.AtVec(i); v != 0 && v != 1 {
			return bcerrors.NewValueError(op, "yTrue must contain only 0 or 1")
		}
	}
	return nil
}
