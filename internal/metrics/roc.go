package metrics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	bcerrors "bikecast/pkg/errors"
)

// ROCCurve holds the points of a receiver operating characteristic curve
// ordered from (0,0) to (1,1).
type ROCCurve struct {
	FPR []float64
	TPR []float64
}

// ROC computes the ROC curve from true 0/1 labels and predicted scores.
func ROC(yTrue, yScore *mat.VecDense) (*ROCCurve, error) {
	if err := checkPair("ROC", yTrue, yScore); err != nil {
		return nil, err
	}

	fprs, tprs, ok := rocPoints(yTrue, yScore)
	if !ok {
		return nil, bcerrors.NewValueError("ROC", "yTrue must contain both classes")
	}
	return &ROCCurve{FPR: fprs, TPR: tprs}, nil
}

// SavePNG renders the curve together with the chance diagonal and writes it
// to path as a PNG image.
func (c *ROCCurve) SavePNG(path string) error {
	p := plot.New()
	p.Title.Text = "ROC Curve"
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(c.FPR))
	for i := range c.FPR {
		pts[i].X = c.FPR[i]
		pts[i].Y = c.TPR[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return bcerrors.Wrap(err, "failed to build ROC line")
	}
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("model", line)

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return bcerrors.Wrap(err, "failed to build chance line")
	}
	diag.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diag)
	p.Legend.Add("chance", diag)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return bcerrors.Wrap(err, "failed to save ROC plot")
	}
	return nil
}
