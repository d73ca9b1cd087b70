package dataset

import (
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	bcerrors "bikecast/pkg/errors"
)

// Split partitions d into disjoint train and test sets. Membership is a
// seeded pseudo-random permutation, so the same seed and input order always
// produce the same partition. Sizes satisfy |test| = round(fraction*N) and
// |train| + |test| = N.
func Split(d Dataset, testFraction float64, seed uint64) (train, test Dataset, err error) {
	if len(d) == 0 {
		return nil, nil, bcerrors.NewModelError("dataset.Split", "empty dataset", bcerrors.ErrEmptyData)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, bcerrors.NewValueError("dataset.Split", "test fraction must be in (0, 1)")
	}

	n := len(d)
	nTest := int(float64(n)*testFraction + 0.5)
	if nTest == 0 {
		nTest = 1
	}
	if nTest == n {
		nTest = n - 1
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	test = make(Dataset, 0, nTest)
	train = make(Dataset, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, d[idx])
		} else {
			train = append(train, d[idx])
		}
	}

	log.Info().
		Int("train", len(train)).
		Int("test", len(test)).
		Uint64("seed", seed).
		Msg("dataset split")
	return train, test, nil
}
