package evaluation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Fallback produces a deterministic heuristic result when the generation
// endpoint or the parser failed. It never errors, so the evaluation
// pipeline is total: an outage degrades score quality, not availability.
// The length/50 and words/20 formulas are kept as-is from the production
// behavior this replaces.
func Fallback(req Request, cause error) *Result {
	summary := "generation endpoint unavailable"
	if cause != nil {
		summary = cause.Error()
	}

	chars := utf8.RuneCountInString(req.Response)
	words := len(strings.Fields(req.Response))

	result := &Result{
		EffortScore:  clampScore(float64(chars)/50, 1, 5),
		QualityScore: clampScore(float64(words)/20, 1, 5),
		Feedback:     fmt.Sprintf("AI evaluation failed: %s. Your reflection has been recorded and will be reviewed manually.", summary),
		Suggestions: []string{
			"Try to be more specific in your examples",
			"Include more details about your learning process",
		},
	}

	if req.Detailed {
		result.Reasoning = &Reasoning{
			EffortReasoning:   fmt.Sprintf("Heuristic score from response length: %d characters.", chars),
			QualityReasoning:  fmt.Sprintf("Heuristic score from word count: %d words.", words),
			OverallAssessment: fmt.Sprintf("Automatic evaluation was unavailable (%s); these scores are heuristic and the reflection will be reviewed manually.", summary),
		}
	}
	return result
}
