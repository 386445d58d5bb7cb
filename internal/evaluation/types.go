package evaluation

import (
	"errors"
	"fmt"
)

// Request carries everything the scoring pipeline needs for one reflection.
// It is immutable once built and never persisted.
type Request struct {
	Principle string
	Question  string
	Response  string
	Detailed  bool
}

type Reasoning struct {
	EffortReasoning   string `json:"effort_reasoning"`
	QualityReasoning  string `json:"quality_reasoning"`
	OverallAssessment string `json:"overall_assessment"`
}

// Result is the validated outcome of an evaluation. EffortScore and
// QualityScore are always inside [0,10]; Reasoning is non-nil only when
// the caller asked for a detailed evaluation.
type Result struct {
	EffortScore  float64    `json:"effort_score"`
	QualityScore float64    `json:"quality_score"`
	Feedback     string     `json:"feedback"`
	Suggestions  []string   `json:"suggestions"`
	Reasoning    *Reasoning `json:"reasoning,omitempty"`
}

// ErrNotConfigured means the generation endpoint credential is missing.
// It is a service misconfiguration, not an evaluation failure, and must
// never be absorbed by the fallback path.
var ErrNotConfigured = errors.New("AI service not configured")

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("generation endpoint http %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether the status is worth retrying. Among 4xx only
// 429 qualifies; everything else under 500 is a hard failure.
func (e *HTTPError) Transient() bool {
	if e.StatusCode == 429 {
		return true
	}
	return e.StatusCode >= 500 && e.StatusCode <= 599
}

type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unusable model response: %s (raw: %s)", e.Reason, truncate(e.Raw, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func clampScore(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
