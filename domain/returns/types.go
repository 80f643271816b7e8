package returns

// DefaultColumn is the header of the column holding daily net returns
const DefaultColumn = "return"

// Alternative names the direction of the alternative hypothesis
type Alternative string

const (
	// AlternativeGreater is H1: mean daily return > 0
	AlternativeGreater Alternative = "greater"
)

// Series is an ordered, immutable sequence of per-period returns read from
// one column of a source file.
type Series struct {
	source string
	column string
	values []float64
}

// NewSeries copies values so later changes by the caller cannot leak in
func NewSeries(source, column string, values []float64) *Series {
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{source: source, column: column, values: v}
}

// Source returns where the series was loaded from
func (s *Series) Source() string { return s.source }

// Column returns the column label
func (s *Series) Column() string { return s.column }

// Len returns the number of observations
func (s *Series) Len() int { return len(s.values) }

// Values returns a copy of the observations
func (s *Series) Values() []float64 {
	v := make([]float64, len(s.values))
	copy(v, s.values)
	return v
}

// TestResult is the outcome of a one-sample t-test of H0: mean = 0.
type TestResult struct {
	TStatistic       float64     `json:"t_statistic"`
	PValue           float64     `json:"p_value"`
	TwoTailedPValue  float64     `json:"two_tailed_p_value"`
	DegreesOfFreedom float64     `json:"degrees_of_freedom"`
	N                int         `json:"n"`
	Mean             float64     `json:"mean"`
	StdDev           float64     `json:"std_dev"`
	StdErr           float64     `json:"std_err"`
	Alternative      Alternative `json:"alternative"`

	// DirectionConsistent is false when the statistic points away from the
	// alternative. PValue is then the upper-tail probability (> 0.5), not
	// half of the two-tailed value.
	DirectionConsistent bool `json:"direction_consistent"`
}

// Summary holds descriptive statistics of a series
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}
