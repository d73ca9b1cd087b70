package boosting

import (
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	bcerrors "bikecast/pkg/errors"
)

// Params holds the training hyperparameters. Zero values take defaults in
// NewTrainer.
type Params struct {
	NumIterations  int     `json:"num_iterations"`
	LearningRate   float64 `json:"learning_rate"`
	MaxDepth       int     `json:"max_depth"`
	MinLeafSize    int     `json:"min_leaf_size"`
	Lambda         float64 `json:"lambda_l2"`
	MinGainToSplit float64 `json:"min_gain_to_split"`
}

// Trainer grows the tree ensemble. Training is deterministic: splits are
// exact and evaluated in fixed feature order, so a fixed input yields an
// identical model on every run.
type Trainer struct {
	params Params

	X *mat.Dense
	y []float64

	gradients []float64
	hessians  []float64
	scores    []float64

	trees     []Tree
	objective ObjectiveFunction
	initScore float64
}

// NewTrainer creates a trainer, applying defaults for unset parameters.
func NewTrainer(params Params) *Trainer {
	if params.NumIterations == 0 {
		params.NumIterations = 100
	}
	if params.LearningRate == 0 {
		params.LearningRate = 0.1
	}
	if params.MaxDepth == 0 {
		params.MaxDepth = 6
	}
	if params.MinLeafSize == 0 {
		params.MinLeafSize = 20
	}
	if params.Lambda == 0 {
		params.Lambda = 1.0
	}
	if params.MinGainToSplit == 0 {
		params.MinGainToSplit = 1e-7
	}
	return &Trainer{
		params:    params,
		objective: NewLogisticObjective(),
	}
}

// Fit trains the ensemble on features X and 0/1 labels y.
func (t *Trainer) Fit(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return bcerrors.NewModelError("Trainer.Fit", "empty feature matrix", bcerrors.ErrEmptyData)
	}
	if rows != len(y) {
		return bcerrors.NewDimensionError("Trainer.Fit", rows, len(y), 0)
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return bcerrors.Newf("bikecast: Trainer.Fit: label at row %d must be 0 or 1, got %g", i, v)
		}
	}

	t.X = mat.DenseCopyOf(X)
	t.y = y
	t.trees = nil

	t.initScore = t.objective.InitScore(y)
	t.scores = make([]float64, rows)
	for i := range t.scores {
		t.scores[i] = t.initScore
	}
	t.gradients = make([]float64, rows)
	t.hessians = make([]float64, rows)

	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}

	log.Debug().
		Int("samples", rows).
		Int("features", cols).
		Int("iterations", t.params.NumIterations).
		Msg("training started")

	for iter := 0; iter < t.params.NumIterations; iter++ {
		t.computeGradients()

		tree := t.buildTree(iter, indices)
		t.trees = append(t.trees, tree)
		t.updateScores(tree)

		if iter%10 == 0 {
			log.Debug().
				Int("iteration", iter).
				Float64("loss", t.currentLoss()).
				Msg("training progress")
		}
	}

	log.Info().
		Int("trees", len(t.trees)).
		Float64("final_loss", t.currentLoss()).
		Msg("training finished")
	return nil
}

// Model returns the trained ensemble.
func (t *Trainer) Model() *Model {
	_, cols := t.X.Dims()
	return &Model{
		NumFeatures:  cols,
		NumIteration: len(t.trees),
		LearningRate: t.params.LearningRate,
		InitScore:    t.initScore,
		Trees:        t.trees,
	}
}

func (t *Trainer) computeGradients() {
	for i := range t.y {
		t.gradients[i] = t.objective.Gradient(t.scores[i], t.y[i])
		t.hessians[i] = t.objective.Hessian(t.scores[i], t.y[i])
	}
}

func (t *Trainer) buildTree(index int, indices []int) Tree {
	tree := Tree{
		TreeIndex:     index,
		ShrinkageRate: t.params.LearningRate,
	}
	t.buildNode(&tree, indices, -1, 0)
	for i := range tree.Nodes {
		if tree.Nodes[i].IsLeaf() {
			tree.NumLeaves++
		}
	}
	return tree
}

func (t *Trainer) buildNode(tree *Tree, indices []int, parentID, depth int) int {
	nodeID := len(tree.Nodes)

	if depth >= t.params.MaxDepth || len(indices) < 2*t.params.MinLeafSize {
		tree.Nodes = append(tree.Nodes, t.leaf(nodeID, parentID, indices))
		return nodeID
	}

	split := t.findBestSplit(indices)
	if split.Feature < 0 || split.Gain < t.params.MinGainToSplit {
		tree.Nodes = append(tree.Nodes, t.leaf(nodeID, parentID, indices))
		return nodeID
	}

	tree.Nodes = append(tree.Nodes, Node{
		NodeID:       nodeID,
		ParentID:     parentID,
		NodeType:     SplitNode,
		SplitFeature: split.Feature,
		Threshold:    split.Threshold,
		Gain:         split.Gain,
	})

	left, right := t.partition(indices, split)
	leftID := t.buildNode(tree, left, nodeID, depth+1)
	rightID := t.buildNode(tree, right, nodeID, depth+1)
	tree.Nodes[nodeID].LeftChild = leftID
	tree.Nodes[nodeID].RightChild = rightID
	return nodeID
}

func (t *Trainer) leaf(nodeID, parentID int, indices []int) Node {
	return Node{
		NodeID:     nodeID,
		ParentID:   parentID,
		NodeType:   LeafNode,
		LeftChild:  -1,
		RightChild: -1,
		LeafValue:  t.leafValue(indices),
		LeafCount:  len(indices),
	}
}

// leafValue is the Newton step -G/(H+lambda) over the samples in the leaf.
func (t *Trainer) leafValue(indices []int) float64 {
	var sumGrad, sumHess float64
	for _, idx := range indices {
		sumGrad += t.gradients[idx]
		sumHess += t.hessians[idx]
	}
	return -sumGrad / (sumHess + t.params.Lambda)
}

type splitInfo struct {
	Feature   int
	Threshold float64
	Gain      float64
}

func (t *Trainer) findBestSplit(indices []int) splitInfo {
	best := splitInfo{Feature: -1, Gain: -1}

	var totalGrad, totalHess float64
	for _, idx := range indices {
		totalGrad += t.gradients[idx]
		totalHess += t.hessians[idx]
	}

	_, cols := t.X.Dims()
	order := make([]int, len(indices))
	for feature := 0; feature < cols; feature++ {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool {
			return t.X.At(order[a], feature) < t.X.At(order[b], feature)
		})

		var leftGrad, leftHess float64
		for i := 0; i < len(order)-1; i++ {
			idx := order[i]
			leftGrad += t.gradients[idx]
			leftHess += t.hessians[idx]

			cur := t.X.At(idx, feature)
			next := t.X.At(order[i+1], feature)
			if cur == next {
				continue
			}

			leftCount := i + 1
			rightCount := len(order) - leftCount
			if leftCount < t.params.MinLeafSize || rightCount < t.params.MinLeafSize {
				continue
			}

			gain := t.splitGain(leftGrad, leftHess, totalGrad-leftGrad, totalHess-leftHess, totalGrad, totalHess)
			if gain > best.Gain {
				best = splitInfo{
					Feature:   feature,
					Threshold: (cur + next) / 2,
					Gain:      gain,
				}
			}
		}
	}
	return best
}

// splitGain is the reduction in regularized loss from splitting:
// G_L²/(H_L+λ) + G_R²/(H_R+λ) − G²/(H+λ), halved.
func (t *Trainer) splitGain(leftGrad, leftHess, rightGrad, rightHess, totalGrad, totalHess float64) float64 {
	lambda := t.params.Lambda
	return 0.5 * (leftGrad*leftGrad/(leftHess+lambda) +
		rightGrad*rightGrad/(rightHess+lambda) -
		totalGrad*totalGrad/(totalHess+lambda))
}

func (t *Trainer) partition(indices []int, split splitInfo) (left, right []int) {
	for _, idx := range indices {
		if t.X.At(idx, split.Feature) <= split.Threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right
}

func (t *Trainer) updateScores(tree Tree) {
	rows, cols := t.X.Dims()
	features := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			features[j] = t.X.At(i, j)
		}
		t.scores[i] += tree.Predict(features)
	}
}

func (t *Trainer) currentLoss() float64 {
	var loss float64
	for i := range t.y {
		loss += t.objective.Loss(t.scores[i], t.y[i])
	}
	return loss / float64(len(t.y))
}
