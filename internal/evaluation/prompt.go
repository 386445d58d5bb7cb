package evaluation

import (
	"fmt"
	"strings"
)

// The anchor bands keep repeated evaluations of similar responses close
// together; earlier prompt revisions without them produced score drift.
const rubricBands = `Effort Score (0-10): how much genuine work and engagement the response shows.
- 0-3: minimal effort, one-liner or off-topic
- 4-5: basic effort, answers the question without depth
- 6-7: good effort, concrete detail and real engagement
- 8-9: excellent effort, thorough and specific
- 10: outstanding, exceptional depth and self-driven detail

Quality Score (0-10): clarity, insight, and evidence of real learning.
- 0-3: minimal quality, vague or generic statements
- 4-5: basic quality, some relevant points
- 6-7: good quality, clear reasoning and specific examples
- 8-9: excellent quality, insightful and well-structured
- 10: outstanding, demonstrates deep reflection and growth`

const basicShape = `{"effort_score": <number>, "quality_score": <number>, "feedback": "<string>", "suggestions": ["<string>", ...]}`

const detailedShape = `{"effort_score": <number>, "quality_score": <number>, "feedback": "<string>", "suggestions": ["<string>", ...], "reasoning": {"effort_reasoning": "<string>", "quality_reasoning": "<string>", "overall_assessment": "<string>"}}`

// BuildPrompt renders the scoring instructions for the generation endpoint.
// Pure function: same Request in, same prompt out.
func BuildPrompt(req Request) string {
	shape := basicShape
	if req.Detailed {
		shape = detailedShape
	}

	var b strings.Builder
	b.WriteString("You are evaluating a student leadership reflection. Score it on two dimensions.\n\n")
	b.WriteString(rubricBands)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Leadership principle: %s\n", req.Principle)
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	fmt.Fprintf(&b, "Student response: %s\n\n", req.Response)
	b.WriteString("Respond with ONLY a JSON object of exactly this shape:\n")
	b.WriteString(shape)
	b.WriteString("\n\nDo not wrap the JSON in markdown code fences. Do not add any text before or after the JSON object.")
	return b.String()
}
