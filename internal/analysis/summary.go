package analysis

import (
	"github.com/montanaflynn/stats"

	"retcheck/domain/returns"
	"retcheck/internal/errors"
)

// Describe computes descriptive statistics for the series. StdDev is the
// sample (n-1) standard deviation and is zero for a single observation.
func Describe(series *returns.Series) (*returns.Summary, error) {
	if series == nil || series.Len() == 0 {
		return nil, errors.StatisticalInputError("cannot describe an empty series")
	}
	data := stats.Float64Data(series.Values())

	mean, err := data.Mean()
	if err != nil {
		return nil, errors.WithCode(errors.CodeStatisticalInput, "mean", err)
	}
	min, err := data.Min()
	if err != nil {
		return nil, errors.WithCode(errors.CodeStatisticalInput, "min", err)
	}
	max, err := data.Max()
	if err != nil {
		return nil, errors.WithCode(errors.CodeStatisticalInput, "max", err)
	}
	median, err := data.Median()
	if err != nil {
		return nil, errors.WithCode(errors.CodeStatisticalInput, "median", err)
	}

	var stdDev float64
	if data.Len() > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return nil, errors.WithCode(errors.CodeStatisticalInput, "sample standard deviation", err)
		}
	}

	return &returns.Summary{
		N:      data.Len(),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
	}, nil
}
