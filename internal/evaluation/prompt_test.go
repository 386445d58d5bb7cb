package evaluation

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Basic(t *testing.T) {
	req := Request{
		Principle: "Collaboration",
		Question:  "Describe a successful team project",
		Response:  "We organized a mentorship fair with 15 teammates.",
	}
	prompt := BuildPrompt(req)

	for _, want := range []string{
		"Effort Score (0-10)",
		"Quality Score (0-10)",
		"0-3: minimal",
		"8-9: excellent",
		"10: outstanding",
		req.Principle,
		req.Question,
		req.Response,
		`"effort_score"`,
		`"quality_score"`,
		"Do not wrap the JSON in markdown code fences",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, `"reasoning"`) {
		t.Fatalf("basic prompt must not ask for reasoning")
	}
}

func TestBuildPrompt_DetailedAsksForReasoning(t *testing.T) {
	prompt := BuildPrompt(Request{Principle: "Ownership", Question: "q", Response: "r", Detailed: true})

	for _, want := range []string{`"reasoning"`, `"effort_reasoning"`, `"quality_reasoning"`, `"overall_assessment"`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("detailed prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Request{Principle: "Integrity", Question: "q", Response: "r"}
	if BuildPrompt(req) != BuildPrompt(req) {
		t.Fatalf("BuildPrompt must be deterministic")
	}
}
