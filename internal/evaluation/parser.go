package evaluation

import (
	"encoding/json"
	"strings"
)

// The generation API has shipped the reply text at more than one path over
// time, so extraction walks a prioritized list of known envelope shapes
// rather than trusting a single one.
type candidate struct {
	Content *struct {
		Parts []generatePart `json:"parts"`
	} `json:"content"`
	Parts        []generatePart `json:"parts"`
	Text         string         `json:"text"`
	FinishReason string         `json:"finishReason"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

var textExtractors = []func(c candidate) string{
	func(c candidate) string {
		if c.Content != nil && len(c.Content.Parts) > 0 {
			return c.Content.Parts[0].Text
		}
		return ""
	},
	func(c candidate) string { return c.Text },
	func(c candidate) string {
		if len(c.Parts) > 0 {
			return c.Parts[0].Text
		}
		return ""
	},
}

// extractText pulls the model's reply text out of the raw endpoint body.
// A body that is not an envelope at all is passed through as-is, so the
// parser also accepts bare payload text.
func extractText(raw string) (string, error) {
	var envelope generateResponse
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil || len(envelope.Candidates) == 0 {
		return raw, nil
	}

	first := envelope.Candidates[0]
	for _, extract := range textExtractors {
		if text := extract(first); strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	reason := "no text payload in any known envelope shape"
	if first.FinishReason != "" {
		reason = "finished with reason " + first.FinishReason + " and no usable text"
	}
	return "", &ParseError{Reason: reason, Raw: raw}
}

// stripCodeFence removes a surrounding markdown fence if the model ignored
// the no-fences instruction. Parsing fenced and unfenced payloads must give
// identical results.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

type scorePayload struct {
	EffortScore  *float64   `json:"effort_score"`
	QualityScore *float64   `json:"quality_score"`
	Feedback     string     `json:"feedback"`
	Suggestions  []string   `json:"suggestions"`
	Reasoning    *Reasoning `json:"reasoning"`
}

// ParseEvaluation turns a raw endpoint reply into a validated Result.
// Scores outside [0,10] are clamped, never rejected: the rubric bands are
// advisory to the model, not enforced. Missing free-text fields default to
// empty; missing scores are a ParseError.
func ParseEvaluation(raw string, detailed bool) (*Result, error) {
	text, err := extractText(raw)
	if err != nil {
		return nil, err
	}

	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return nil, &ParseError{Reason: "empty model reply", Raw: raw}
	}

	var payload scorePayload
	if uErr := json.Unmarshal([]byte(cleaned), &payload); uErr != nil {
		return nil, &ParseError{Reason: "invalid JSON: " + uErr.Error(), Raw: text}
	}
	if payload.EffortScore == nil || payload.QualityScore == nil {
		return nil, &ParseError{Reason: "effort_score and quality_score must both be numeric", Raw: text}
	}

	result := &Result{
		EffortScore:  clampScore(*payload.EffortScore, 0, 10),
		QualityScore: clampScore(*payload.QualityScore, 0, 10),
		Feedback:     payload.Feedback,
		Suggestions:  payload.Suggestions,
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}

	if detailed {
		result.Reasoning = fillReasoning(payload.Reasoning)
	}
	return result, nil
}

// fillReasoning guarantees all three sub-fields are present on a detailed
// result even when the model omitted some of them.
func fillReasoning(r *Reasoning) *Reasoning {
	filled := &Reasoning{
		EffortReasoning:   "No effort reasoning provided.",
		QualityReasoning:  "No quality reasoning provided.",
		OverallAssessment: "No overall assessment provided.",
	}
	if r == nil {
		return filled
	}
	if strings.TrimSpace(r.EffortReasoning) != "" {
		filled.EffortReasoning = r.EffortReasoning
	}
	if strings.TrimSpace(r.QualityReasoning) != "" {
		filled.QualityReasoning = r.QualityReasoning
	}
	if strings.TrimSpace(r.OverallAssessment) != "" {
		filled.OverallAssessment = r.OverallAssessment
	}
	return filled
}
