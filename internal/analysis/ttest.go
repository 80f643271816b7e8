package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"retcheck/domain/returns"
	"retcheck/internal/errors"
)

// NullMean is the hypothesised mean daily return under H0
const NullMean = 0.0

// OneSampleTTest tests H0: mean = 0 against H1: mean > 0.
//
// The t-distribution with n-1 degrees of freedom gives a two-tailed p-value.
// Halving it yields the one-tailed value only when t >= 0. For t < 0 the
// upper-tail p-value 1 - p/2 is returned instead and DirectionConsistent is
// false.
//
// Fails with STATISTICAL_INPUT_ERROR when there are fewer than two
// observations, a value is NaN or infinite, or the sample has zero variance.
// The series is never modified.
func OneSampleTTest(series *returns.Series) (*returns.TestResult, error) {
	if series == nil {
		return nil, errors.StatisticalInputError("no returns series")
	}
	data := series.Values()
	if err := validateSample(data); err != nil {
		return nil, err
	}

	n := len(data)
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, errors.WithCode(errors.CodeStatisticalInput, "mean", err)
	}
	stdDev, err := stats.StandardDeviationSample(data)
	if err != nil {
		return nil, errors.WithCode(errors.CodeStatisticalInput, "sample standard deviation", err)
	}
	if stdDev == 0 || math.IsNaN(stdDev) {
		return nil, errors.StatisticalInputError("sample has zero variance; t-statistic is undefined")
	}

	stdErr := stdDev / math.Sqrt(float64(n))
	t := (mean - NullMean) / stdErr
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, errors.StatisticalInputError(fmt.Sprintf("t-statistic is not finite (mean=%g, std err=%g)", mean, stdErr))
	}

	df := float64(n - 1)
	twoTailed := TwoTailedPValue(t, df)
	oneTailed, consistent := UpperTailPValue(t, twoTailed)

	return &returns.TestResult{
		TStatistic:          t,
		PValue:              oneTailed,
		TwoTailedPValue:     twoTailed,
		DegreesOfFreedom:    df,
		N:                   n,
		Mean:                mean,
		StdDev:              stdDev,
		StdErr:              stdErr,
		Alternative:         returns.AlternativeGreater,
		DirectionConsistent: consistent,
	}, nil
}

// TwoTailedPValue computes P(|T| >= |t|) for Student's t with df degrees of freedom
func TwoTailedPValue(t, df float64) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * tDist.Survival(math.Abs(t))
	return math.Min(1, math.Max(0, p))
}

// UpperTailPValue converts a two-tailed p-value into P(T >= t). Halving is
// used when t >= 0; the second return value reports whether that held.
func UpperTailPValue(t, twoTailed float64) (float64, bool) {
	if t >= 0 {
		return twoTailed / 2, true
	}
	return 1 - twoTailed/2, false
}

func validateSample(data []float64) error {
	if len(data) < 2 {
		return errors.StatisticalInputError(fmt.Sprintf("need at least 2 observations, got %d", len(data)))
	}

	allEqual := true
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.StatisticalInputError(fmt.Sprintf("observation %d is not finite (%v)", i+1, v))
		}
		if v != data[0] {
			allEqual = false
		}
	}
	// Catches constant samples before rounding in the mean can fake a tiny variance
	if allEqual {
		return errors.StatisticalInputError("sample has zero variance; t-statistic is undefined")
	}
	return nil
}
