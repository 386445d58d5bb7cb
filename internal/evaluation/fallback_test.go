package evaluation

import (
	"errors"
	"strings"
	"testing"
)

func TestFallback_HeuristicFormulas(t *testing.T) {
	cases := []struct {
		name        string
		response    string
		wantEffort  float64
		wantQuality float64
	}{
		{
			// 100 chars / 50 = 2, 10 words / 20 = 0.5 clamped up to 1
			name:        "short_response",
			response:    strings.Repeat("abcdefghi ", 10),
			wantEffort:  2,
			wantQuality: 1,
		},
		{
			// huge response clamps both to 5
			name:        "long_response",
			response:    strings.Repeat("reflection word ", 200),
			wantEffort:  5,
			wantQuality: 5,
		},
		{
			name:        "empty_response_floors_at_one",
			response:    "",
			wantEffort:  1,
			wantQuality: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Fallback(Request{Response: tc.response}, errors.New("boom"))
			if result.EffortScore != tc.wantEffort {
				t.Fatalf("effort = %v, want %v", result.EffortScore, tc.wantEffort)
			}
			if result.QualityScore != tc.wantQuality {
				t.Fatalf("quality = %v, want %v", result.QualityScore, tc.wantQuality)
			}
			if result.EffortScore < 0 || result.EffortScore > 10 || result.QualityScore < 0 || result.QualityScore > 10 {
				t.Fatalf("scores escaped [0,10]: %v/%v", result.EffortScore, result.QualityScore)
			}
		})
	}
}

func TestFallback_Messaging(t *testing.T) {
	result := Fallback(Request{Response: "some answer"}, errors.New("connection refused"))

	if !strings.Contains(result.Feedback, "AI evaluation failed") {
		t.Fatalf("feedback must say the AI evaluation failed, got %q", result.Feedback)
	}
	if !strings.Contains(result.Feedback, "connection refused") {
		t.Fatalf("feedback should carry the error summary, got %q", result.Feedback)
	}
	if !strings.Contains(result.Feedback, "reviewed manually") {
		t.Fatalf("feedback must promise manual review, got %q", result.Feedback)
	}
	if len(result.Suggestions) != 2 {
		t.Fatalf("suggestions = %v", result.Suggestions)
	}
	if result.Reasoning != nil {
		t.Fatalf("basic fallback must not carry reasoning")
	}
}

func TestFallback_DetailedReasoningCitesCounts(t *testing.T) {
	req := Request{Response: "five words in this response", Detailed: true}
	result := Fallback(req, errors.New("boom"))

	if result.Reasoning == nil {
		t.Fatalf("detailed fallback must synthesize reasoning")
	}
	if !strings.Contains(result.Reasoning.EffortReasoning, "27 characters") {
		t.Fatalf("effort reasoning should cite the character count, got %q", result.Reasoning.EffortReasoning)
	}
	if !strings.Contains(result.Reasoning.QualityReasoning, "5 words") {
		t.Fatalf("quality reasoning should cite the word count, got %q", result.Reasoning.QualityReasoning)
	}
	if !strings.Contains(result.Reasoning.OverallAssessment, "boom") {
		t.Fatalf("overall assessment should cite the failure, got %q", result.Reasoning.OverallAssessment)
	}
}

func TestFallback_NilCause(t *testing.T) {
	result := Fallback(Request{Response: "x"}, nil)
	if !strings.Contains(result.Feedback, "AI evaluation failed") {
		t.Fatalf("feedback = %q", result.Feedback)
	}
}
