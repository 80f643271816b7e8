package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"retcheck/domain/returns"
	"retcheck/internal/errors"
)

// Format selects the report rendering
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json" (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown report format %q (want text or json)", s))
}

// Text renders the two-line summary: t-statistic to 3 decimals, p-value to 6.
func Text(result *returns.TestResult) string {
	return fmt.Sprintf("t-statistic: %.3f\np-value: %.6f\n", result.TStatistic, result.PValue)
}

// SummaryText renders descriptive statistics as aligned lines
func SummaryText(s *returns.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "observations: %d\n", s.N)
	fmt.Fprintf(&b, "mean:         %.6f\n", s.Mean)
	fmt.Fprintf(&b, "std dev:      %.6f\n", s.StdDev)
	fmt.Fprintf(&b, "min:          %.6f\n", s.Min)
	fmt.Fprintf(&b, "median:       %.6f\n", s.Median)
	fmt.Fprintf(&b, "max:          %.6f\n", s.Max)
	return b.String()
}

// Envelope is the structured form of a report
type Envelope struct {
	RunID   string              `json:"run_id"`
	Source  string              `json:"source"`
	Column  string              `json:"column"`
	Result  *returns.TestResult `json:"result"`
	Summary *returns.Summary    `json:"summary,omitempty"`
}

// NewEnvelope stamps a fresh run id on the result
func NewEnvelope(source, column string, result *returns.TestResult, summary *returns.Summary) Envelope {
	return Envelope{
		RunID:   uuid.NewString(),
		Source:  source,
		Column:  column,
		Result:  result,
		Summary: summary,
	}
}

// Writer renders reports in one format. The whole report is built before
// anything is written, so a failure leaves w untouched.
type Writer struct {
	format Format
}

// NewWriter creates a report writer
func NewWriter(format Format) *Writer {
	return &Writer{format: format}
}

// Write renders the envelope to w
func (rw *Writer) Write(w io.Writer, env Envelope) error {
	if env.Result == nil {
		return errors.InternalError("report has no test result")
	}

	var out []byte
	switch rw.format {
	case FormatJSON:
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "encode %s report", rw.format)
		}
		out = append(data, '\n')
	default:
		text := Text(env.Result)
		if env.Summary != nil {
			text += "\n" + SummaryText(env.Summary)
		}
		out = []byte(text)
	}

	if _, err := w.Write(out); err != nil {
		return errors.Wrapf(err, "write %s report", rw.format)
	}
	return nil
}
