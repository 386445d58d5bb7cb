package evaluation

import (
	"errors"
	"testing"
)

func envelope(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func TestParseEvaluation_HappyPath(t *testing.T) {
	raw := envelope(`{"effort_score":8,"quality_score":7,"feedback":"Great work","suggestions":["Keep it up"]}`)

	result, err := ParseEvaluation(raw, false)
	if err != nil {
		t.Fatalf("ParseEvaluation: %v", err)
	}
	if result.EffortScore != 8 || result.QualityScore != 7 {
		t.Fatalf("scores = %v/%v, want 8/7", result.EffortScore, result.QualityScore)
	}
	if result.Feedback != "Great work" {
		t.Fatalf("feedback = %q", result.Feedback)
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0] != "Keep it up" {
		t.Fatalf("suggestions = %v", result.Suggestions)
	}
	if result.Reasoning != nil {
		t.Fatalf("basic result must not carry reasoning")
	}
}

func TestParseEvaluation_EnvelopeShapes(t *testing.T) {
	payload := `{"effort_score":6,"quality_score":6}`
	cases := []struct {
		name string
		raw  string
	}{
		{
			name: "content_parts_text",
			raw:  `{"candidates":[{"content":{"parts":[{"text":` + jsonString(payload) + `}]}}]}`,
		},
		{
			name: "candidate_text",
			raw:  `{"candidates":[{"text":` + jsonString(payload) + `}]}`,
		},
		{
			name: "candidate_parts_text",
			raw:  `{"candidates":[{"parts":[{"text":` + jsonString(payload) + `}]}]}`,
		},
		{
			name: "bare_payload",
			raw:  payload,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseEvaluation(tc.raw, false)
			if err != nil {
				t.Fatalf("ParseEvaluation: %v", err)
			}
			if result.EffortScore != 6 || result.QualityScore != 6 {
				t.Fatalf("scores = %v/%v, want 6/6", result.EffortScore, result.QualityScore)
			}
		})
	}
}

func TestParseEvaluation_FenceStrippingIdempotent(t *testing.T) {
	payload := `{"effort_score":5,"quality_score":4,"feedback":"ok","suggestions":[]}`
	fenced := "```json\n" + payload + "\n```"

	plain, err := ParseEvaluation(envelope(payload), false)
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	withFence, err := ParseEvaluation(envelope(fenced), false)
	if err != nil {
		t.Fatalf("fenced: %v", err)
	}
	if plain.EffortScore != withFence.EffortScore ||
		plain.QualityScore != withFence.QualityScore ||
		plain.Feedback != withFence.Feedback {
		t.Fatalf("fenced and unfenced payloads parsed differently: %+v vs %+v", plain, withFence)
	}

	bareFence := "```\n" + payload + "\n```"
	withBareFence, err := ParseEvaluation(envelope(bareFence), false)
	if err != nil {
		t.Fatalf("bare fence: %v", err)
	}
	if withBareFence.EffortScore != plain.EffortScore {
		t.Fatalf("bare fence parse diverged")
	}
}

func TestParseEvaluation_ClampsScores(t *testing.T) {
	cases := []struct {
		name        string
		payload     string
		wantEffort  float64
		wantQuality float64
	}{
		{
			name:        "above_range",
			payload:     `{"effort_score":15,"quality_score":11}`,
			wantEffort:  10,
			wantQuality: 10,
		},
		{
			name:        "below_range",
			payload:     `{"effort_score":-3,"quality_score":-0.5}`,
			wantEffort:  0,
			wantQuality: 0,
		},
		{
			name:        "in_range_untouched",
			payload:     `{"effort_score":7.5,"quality_score":0}`,
			wantEffort:  7.5,
			wantQuality: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseEvaluation(envelope(tc.payload), false)
			if err != nil {
				t.Fatalf("ParseEvaluation: %v", err)
			}
			if result.EffortScore != tc.wantEffort || result.QualityScore != tc.wantQuality {
				t.Fatalf("scores = %v/%v, want %v/%v", result.EffortScore, result.QualityScore, tc.wantEffort, tc.wantQuality)
			}
		})
	}
}

func TestParseEvaluation_Failures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty_text", raw: envelope("")},
		{name: "whitespace_text", raw: envelope("   \n  ")},
		{name: "not_json_payload", raw: envelope("the student did well")},
		{name: "missing_effort", raw: envelope(`{"quality_score":7}`)},
		{name: "missing_quality", raw: envelope(`{"effort_score":7}`)},
		{name: "string_score", raw: envelope(`{"effort_score":"8","quality_score":7}`)},
		{name: "finish_reason_no_text", raw: `{"candidates":[{"finishReason":"SAFETY"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEvaluation(tc.raw, false)
			if err == nil {
				t.Fatalf("expected ParseError, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseEvaluation_MissingFreeTextFieldsDefault(t *testing.T) {
	result, err := ParseEvaluation(envelope(`{"effort_score":6,"quality_score":5}`), false)
	if err != nil {
		t.Fatalf("ParseEvaluation: %v", err)
	}
	if result.Feedback != "" {
		t.Fatalf("feedback should default to empty, got %q", result.Feedback)
	}
	if result.Suggestions == nil || len(result.Suggestions) != 0 {
		t.Fatalf("suggestions should default to empty list, got %v", result.Suggestions)
	}
}

func TestParseEvaluation_DetailedShape(t *testing.T) {
	t.Run("full_reasoning_passthrough", func(t *testing.T) {
		payload := `{"effort_score":8,"quality_score":9,"reasoning":{"effort_reasoning":"worked hard","quality_reasoning":"clear writing","overall_assessment":"strong"}}`
		result, err := ParseEvaluation(envelope(payload), true)
		if err != nil {
			t.Fatalf("ParseEvaluation: %v", err)
		}
		if result.Reasoning == nil {
			t.Fatalf("detailed result must carry reasoning")
		}
		if result.Reasoning.EffortReasoning != "worked hard" ||
			result.Reasoning.QualityReasoning != "clear writing" ||
			result.Reasoning.OverallAssessment != "strong" {
			t.Fatalf("reasoning not passed through: %+v", result.Reasoning)
		}
	})

	t.Run("omitted_reasoning_gets_placeholders", func(t *testing.T) {
		result, err := ParseEvaluation(envelope(`{"effort_score":8,"quality_score":9}`), true)
		if err != nil {
			t.Fatalf("ParseEvaluation: %v", err)
		}
		if result.Reasoning == nil {
			t.Fatalf("detailed result must carry reasoning even when model omitted it")
		}
		if result.Reasoning.EffortReasoning == "" ||
			result.Reasoning.QualityReasoning == "" ||
			result.Reasoning.OverallAssessment == "" {
			t.Fatalf("placeholder reasoning has empty fields: %+v", result.Reasoning)
		}
	})

	t.Run("basic_drops_reasoning", func(t *testing.T) {
		payload := `{"effort_score":8,"quality_score":9,"reasoning":{"effort_reasoning":"x","quality_reasoning":"y","overall_assessment":"z"}}`
		result, err := ParseEvaluation(envelope(payload), false)
		if err != nil {
			t.Fatalf("ParseEvaluation: %v", err)
		}
		if result.Reasoning != nil {
			t.Fatalf("basic result must not carry reasoning")
		}
	})
}
