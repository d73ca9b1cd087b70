// Package preprocessing implements the feature transformations used by the
// rental pipeline: one-hot encoding of categorical columns and min-max
// scaling of numeric columns. All components follow the Fit/Transform
// contract: Fit learns parameters from training data only, Transform applies
// them unchanged to any input.
package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"bikecast/internal/estimator"
	bcerrors "bikecast/pkg/errors"
)

// OneHotEncoder encodes numeric categorical columns (such as season codes
// 1..4) as 0/1 indicator blocks. Categories are learned per column from the
// training data; a value unseen during Fit transforms to an all-zero block.
type OneHotEncoder struct {
	estimator.Base

	// Categories holds the sorted distinct values per input column.
	Categories [][]float64

	// categoryToIdx maps a category value to its indicator position.
	categoryToIdx []map[float64]int

	// NFeatures is the input column count.
	NFeatures int

	// NOutputs is the total indicator count over all columns.
	NOutputs int
}

// NewOneHotEncoder creates an unfitted OneHotEncoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit learns the category set of each column of X.
func (e *OneHotEncoder) Fit(X mat.Matrix) (err error) {
	defer bcerrors.Recover(&err, "OneHotEncoder.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return bcerrors.NewModelError("OneHotEncoder.Fit", "empty data", bcerrors.ErrEmptyData)
	}

	e.NFeatures = c
	e.Categories = make([][]float64, c)
	e.categoryToIdx = make([]map[float64]int, c)
	e.NOutputs = 0

	for j := 0; j < c; j++ {
		seen := make(map[float64]bool)
		for i := 0; i < r; i++ {
			seen[X.At(i, j)] = true
		}

		categories := make([]float64, 0, len(seen))
		for v := range seen {
			categories = append(categories, v)
		}
		sort.Float64s(categories)
		e.Categories[j] = categories

		toIdx := make(map[float64]int, len(categories))
		for idx, v := range categories {
			toIdx[v] = idx
		}
		e.categoryToIdx[j] = toIdx
		e.NOutputs += len(categories)
	}

	e.SetFitted()
	return nil
}

// Transform encodes X using the fitted categories. Unknown values leave their
// block all zero.
func (e *OneHotEncoder) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer bcerrors.Recover(&err, "OneHotEncoder.Transform")
	if !e.IsFitted() {
		return nil, bcerrors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	r, c := X.Dims()
	if c != e.NFeatures {
		return nil, bcerrors.NewDimensionError("OneHotEncoder.Transform", e.NFeatures, c, 1)
	}

	result := mat.NewDense(r, e.NOutputs, nil)
	for i := 0; i < r; i++ {
		offset := 0
		for j := 0; j < c; j++ {
			if idx, ok := e.categoryToIdx[j][X.At(i, j)]; ok {
				result.Set(i, offset+idx, 1)
			}
			offset += len(e.Categories[j])
		}
	}
	return result, nil
}

// FitTransform fits on X and returns its encoding.
func (e *OneHotEncoder) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := e.Fit(X); err != nil {
		return nil, err
	}
	return e.Transform(X)
}

// FeatureNamesOut returns the indicator names, one per output column, in the
// form "<input>_<category>".
func (e *OneHotEncoder) FeatureNamesOut(inputNames []string) []string {
	if !e.IsFitted() {
		return nil
	}

	var names []string
	for j, categories := range e.Categories {
		base := fmt.Sprintf("x%d", j)
		if inputNames != nil && j < len(inputNames) {
			base = inputNames[j]
		}
		for _, v := range categories {
			names = append(names, fmt.Sprintf("%s_%g", base, v))
		}
	}
	return names
}
