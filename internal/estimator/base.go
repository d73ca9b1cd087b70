// Package estimator provides the shared fitted-state tracking embedded by
// every fit/transform component in the pipeline.
package estimator

// State is the learning state of an estimator.
type State int

const (
	// NotFitted indicates Fit has not completed yet.
	NotFitted State = iota
	// Fitted indicates the estimator is ready for Transform/Predict.
	Fitted
)

// Base is embedded by estimators to track whether Fit has run.
type Base struct {
	State State
}

// IsFitted reports whether Fit has completed.
func (b *Base) IsFitted() bool {
	return b.State == Fitted
}

// SetFitted marks the estimator as fitted. Called by implementations at the
// end of a successful Fit.
func (b *Base) SetFitted() {
	b.State = Fitted
}

// Reset returns the estimator to the untrained state.
func (b *Base) Reset() {
	b.State = NotFitted
}
