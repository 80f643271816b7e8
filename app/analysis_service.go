package app

import (
	"context"
	"time"

	"retcheck/domain/returns"
	"retcheck/internal"
	"retcheck/internal/analysis"
	"retcheck/internal/errors"
	"retcheck/ports"
)

// Stage names used to prefix errors so the user can tell which step failed
const (
	StageLoad  = "load returns"
	StageTTest = "t-test"
)

// AnalysisService runs the load -> t-test pipeline for one returns file
type AnalysisService struct {
	reader ports.ReturnsReader
	logger *internal.Logger
}

// AnalysisRequest names the input and optional extras
type AnalysisRequest struct {
	Path    string
	Summary bool
}

// Analysis is the structured outcome of one run
type Analysis struct {
	Source    string              `json:"source"`
	Column    string              `json:"column"`
	Result    *returns.TestResult `json:"result"`
	Summary   *returns.Summary    `json:"summary,omitempty"`
	RuntimeMs int64               `json:"runtime_ms"`
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(reader ports.ReturnsReader, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.Discard
	}
	return &AnalysisService{reader: reader, logger: logger}
}

// Analyze loads the returns and tests H0: mean = 0 against H1: mean > 0.
// Errors are prefixed with the stage that failed and keep their code.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	startTime := time.Now()

	series, err := s.reader.ReadReturns(ctx, req.Path)
	if err != nil {
		return nil, errors.Wrap(err, StageLoad)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, StageTTest)
	}
	result, err := analysis.OneSampleTTest(series)
	if err != nil {
		return nil, errors.Wrap(err, StageTTest)
	}
	if !result.DirectionConsistent {
		s.logger.Warn("[AnalysisService] t=%.3f points away from H1 (mean > 0); p-value is the upper tail 1 - p/2, not p/2", result.TStatistic)
	}

	out := &Analysis{
		Source: series.Source(),
		Column: series.Column(),
		Result: result,
	}

	if req.Summary {
		summary, err := analysis.Describe(series)
		if err != nil {
			return nil, errors.Wrap(err, "summary")
		}
		out.Summary = summary
	}

	out.RuntimeMs = time.Since(startTime).Milliseconds()
	s.logger.Info("[AnalysisService] n=%d t=%.6f p=%.6f in %dms", result.N, result.TStatistic, result.PValue, out.RuntimeMs)

	return out, nil
}
