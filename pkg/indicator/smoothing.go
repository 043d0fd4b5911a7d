package indicator

import (
	"math"

	"github.com/pkg/errors"
)

// ema advances an exponential moving average by one sample
func ema(prev, x, alpha float64) float64 {
	return x*alpha + prev*(1-alpha)
}

// wilder advances a Wilder (running) moving average by one sample, the divisor is the period itself
func wilder(prev, x float64, period int) float64 {
	return (prev*float64(period-1) + x) / float64(period)
}

func alphaOf(period int) float64 {
	return 2.0 / float64(period+1)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func validateCloses(closes []float64) error {
	for i, c := range closes {
		if !isFinite(c) {
			return errors.Wrapf(ErrInvalidClose, "seed close #%d: %v", i, c)
		}
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}
