package analysis

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retcheck/domain/returns"
	"retcheck/internal/errors"
)

/*
Reference values, python:

import scipy.stats as stats
t, p = stats.ttest_1samp([0.01, 0.02, 0.015, -0.005, 0.03], 0.0)
print(t, p / 2.0)   # 2.4188315916278085 0.03642752980512787
*/
const (
	refT         = 2.4188315916278085
	refOneTailed = 0.03642752980512787
)

func series(values ...float64) *returns.Series {
	return returns.NewSeries("test", returns.DefaultColumn, values)
}

func TestOneSampleTTest_MatchesReference(t *testing.T) {
	result, err := OneSampleTTest(series(0.01, 0.02, 0.015, -0.005, 0.03))
	require.NoError(t, err)

	assert.InDelta(t, refT, result.TStatistic, 1e-9)
	assert.InDelta(t, refOneTailed, result.PValue, 1e-9)
	assert.InDelta(t, 2*refOneTailed, result.TwoTailedPValue, 1e-9)
	assert.Equal(t, 4.0, result.DegreesOfFreedom)
	assert.Equal(t, 5, result.N)
	assert.InDelta(t, 0.014, result.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(167.5e-6), result.StdDev, 1e-12)
	assert.InDelta(t, result.StdDev/math.Sqrt(5), result.StdErr, 1e-15)
	assert.Equal(t, returns.AlternativeGreater, result.Alternative)
	assert.True(t, result.DirectionConsistent)
}

func TestOneSampleTTest_ZeroMean(t *testing.T) {
	result, err := OneSampleTTest(series(-0.01, 0.01, -0.02, 0.02))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, result.TStatistic, 1e-12)
	assert.InDelta(t, 0.5, result.PValue, 1e-12)
	assert.InDelta(t, 1.0, result.TwoTailedPValue, 1e-12)
	assert.True(t, result.DirectionConsistent)
}

func TestOneSampleTTest_OppositeDirection(t *testing.T) {
	result, err := OneSampleTTest(series(-0.01, -0.02, -0.015, 0.005, -0.03))
	require.NoError(t, err)

	assert.InDelta(t, -refT, result.TStatistic, 1e-9)
	assert.InDelta(t, 1-refOneTailed, result.PValue, 1e-9)
	assert.InDelta(t, 2*refOneTailed, result.TwoTailedPValue, 1e-9)
	assert.False(t, result.DirectionConsistent)
	assert.Greater(t, result.PValue, 0.5)
}

func TestOneSampleTTest_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		series *returns.Series
	}{
		{"nil series", nil},
		{"empty", series()},
		{"single observation", series(0.01)},
		{"all zeros", series(0, 0, 0, 0)},
		{"constant", series(0.01, 0.01, 0.01, 0.01, 0.01)},
		{"NaN", series(0.01, math.NaN(), 0.02)},
		{"positive infinity", series(0.01, math.Inf(1), 0.02)},
		{"negative infinity", series(math.Inf(-1), 0.01, 0.02)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OneSampleTTest(tt.series)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, stderrors.Is(err, errors.ErrStatisticalInput), "got %v", err)
			assert.Equal(t, errors.CodeStatisticalInput, errors.GetCode(err))
		})
	}
}

func TestOneSampleTTest_Idempotent(t *testing.T) {
	s := series(0.01, 0.02, 0.015, -0.005, 0.03)
	before := s.Values()

	first, err := OneSampleTTest(s)
	require.NoError(t, err)
	second, err := OneSampleTTest(s)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, before, s.Values())
}

func TestOneSampleTTest_PValueInUnitInterval(t *testing.T) {
	samples := [][]float64{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{-5, -4, -3, -2, -1},
		{0.001, -0.002, 0.0005, 0.0012, -0.0007, 0.0003},
		{100, 100.0001},
	}
	for _, s := range samples {
		result, err := OneSampleTTest(series(s...))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.PValue, 0.0)
		assert.LessOrEqual(t, result.PValue, 1.0)
		assert.GreaterOrEqual(t, result.TwoTailedPValue, 0.0)
		assert.LessOrEqual(t, result.TwoTailedPValue, 1.0)
	}
}

func TestUpperTailPValue(t *testing.T) {
	p, ok := UpperTailPValue(1.5, 0.2)
	assert.InDelta(t, 0.1, p, 1e-15)
	assert.True(t, ok)

	p, ok = UpperTailPValue(-1.5, 0.2)
	assert.InDelta(t, 0.9, p, 1e-15)
	assert.False(t, ok)

	p, ok = UpperTailPValue(0, 1)
	assert.Equal(t, 0.5, p)
	assert.True(t, ok)
}

func TestTwoTailedPValue_LargeDFApproachesNormal(t *testing.T) {
	// P(|Z| >= 1.96) ~= 0.05
	assert.InDelta(t, 0.05, TwoTailedPValue(1.959963984540054, 1e7), 1e-5)
	assert.InDelta(t, TwoTailedPValue(2, 10), TwoTailedPValue(-2, 10), 1e-15)
}
