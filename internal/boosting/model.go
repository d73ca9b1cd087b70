// Package boosting implements the gradient-boosted decision-tree binary
// classifier used by the rental workflow. Trees are grown greedily with exact
// splits under second-order gradient statistics; the ensemble predicts a raw
// log-odds score mapped to a probability by the logistic function.
package boosting

import (
	"math"

	"gonum.org/v1/gonum/mat"

	bcerrors "bikecast/pkg/errors"
)

// NodeType distinguishes leaves from split nodes.
type NodeType int

const (
	// LeafNode is a terminal node carrying a value.
	LeafNode NodeType = iota
	// SplitNode compares one feature against a threshold.
	SplitNode
)

// Node is a single node in a tree, stored in the tree's flat node array.
type Node struct {
	NodeID     int      `json:"node_id"`
	ParentID   int      `json:"parent_id"`
	LeftChild  int      `json:"left_child"`
	RightChild int      `json:"right_child"`
	NodeType   NodeType `json:"node_type"`

	SplitFeature int     `json:"split_feature"`
	Threshold    float64 `json:"threshold"`
	Gain         float64 `json:"gain,omitempty"`

	LeafValue float64 `json:"leaf_value"`
	LeafCount int     `json:"leaf_count,omitempty"`
}

// IsLeaf reports whether the node is terminal.
func (n *Node) IsLeaf() bool {
	return n.LeftChild == -1 && n.RightChild == -1
}

// Tree is one member of the ensemble. Nodes[0] is the root.
type Tree struct {
	TreeIndex     int     `json:"tree_index"`
	NumLeaves     int     `json:"num_leaves"`
	ShrinkageRate float64 `json:"shrinkage"`
	Nodes         []Node  `json:"nodes"`
}

// Predict returns this tree's contribution for one feature vector, with the
// shrinkage rate already applied.
func (t *Tree) Predict(features []float64) float64 {
	nodeID := 0
	for nodeID >= 0 && nodeID < len(t.Nodes) {
		node := &t.Nodes[nodeID]
		if node.IsLeaf() {
			return node.LeafValue * t.ShrinkageRate
		}
		if features[node.SplitFeature] <= node.Threshold {
			nodeID = node.LeftChild
		} else {
			nodeID = node.RightChild
		}
	}
	return 0
}

// Model is a trained ensemble. Immutable after training; safe to share
// between the evaluator and the inference engine.
type Model struct {
	NumFeatures  int      `json:"num_features"`
	NumIteration int      `json:"num_iteration"`
	LearningRate float64  `json:"learning_rate"`
	InitScore    float64  `json:"init_score"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Trees        []Tree   `json:"trees"`
}

// PredictRaw returns the raw log-odds score for one feature vector.
func (m *Model) PredictRaw(features []float64) (float64, error) {
	if len(features) != m.NumFeatures {
		return 0, bcerrors.NewDimensionError("Model.PredictRaw", m.NumFeatures, len(features), 1)
	}
	score := m.InitScore
	for i := range m.Trees {
		score += m.Trees[i].Predict(features)
	}
	return score, nil
}

// PredictProba returns the positive-class probability for one feature vector.
func (m *Model) PredictProba(features []float64) (float64, error) {
	raw, err := m.PredictRaw(features)
	if err != nil {
		return 0, err
	}
	return Sigmoid(raw), nil
}

// PredictProbaMatrix returns the positive-class probability for each row of X.
func (m *Model) PredictProbaMatrix(X mat.Matrix) (*mat.VecDense, error) {
	rows, cols := X.Dims()
	if cols != m.NumFeatures {
		return nil, bcerrors.NewDimensionError("Model.PredictProbaMatrix", m.NumFeatures, cols, 1)
	}

	proba := mat.NewVecDense(rows, nil)
	features := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			features[j] = X.At(i, j)
		}
		p, err := m.PredictProba(features)
		if err != nil {
			return nil, err
		}
		proba.SetVec(i, p)
	}
	return proba, nil
}

// Sigmoid maps a raw score to (0, 1).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
