package dataset

import (
	"github.com/rs/zerolog/log"

	bcerrors "bikecast/pkg/errors"
)

// ClassBalance holds per-label record counts for the full dataset.
type ClassBalance struct {
	CountFalse int
	CountTrue  int
}

// Total returns the dataset size covered by the report.
func (b ClassBalance) Total() int {
	return b.CountFalse + b.CountTrue
}

// Balanced reports whether both classes are present.
func (b ClassBalance) Balanced() bool {
	return b.CountFalse > 0 && b.CountTrue > 0
}

// ReportBalance counts records per label value. An absent class raises a
// warning through the warning hook; the run continues, training a model on a
// single class is left to the caller's judgement.
func ReportBalance(d Dataset) ClassBalance {
	var b ClassBalance
	for _, r := range d {
		if r.RentalType {
			b.CountTrue++
		} else {
			b.CountFalse++
		}
	}

	if b.CountFalse == 0 {
		bcerrors.Warn(bcerrors.NewClassImbalanceWarning("false", 0))
	}
	if b.CountTrue == 0 {
		bcerrors.Warn(bcerrors.NewClassImbalanceWarning("true", 0))
	}

	log.Info().
		Int("class_false", b.CountFalse).
		Int("class_true", b.CountTrue).
		Msg("class balance")
	return b
}
