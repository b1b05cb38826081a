package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptRegistry_RendersEveryFlow(t *testing.T) {
	inputs := map[Flow]any{
		FlowExtractResume:    extractInput{ResumeText: "Jane Doe"},
		FlowScoreResume:      scoreInput{ResumeText: "Jane Doe"},
		FlowDetailedFeedback: feedbackInput{ResumeText: "Jane Doe", AtsScore: 40},
		FlowPortfolioResume: portfolioInput{Documents: []promptDocument{
			{Index: 1, Type: "project", FileName: "a.md", Text: "Jane Doe"},
		}},
		FlowPortfolioText: portfolioInput{Documents: []promptDocument{
			{Index: 1, Type: "other", FileName: "b.pdf", Attached: true},
		}},
		FlowTranscribeDocument: transcribeInput{FileName: "scan.pdf"},
	}

	require.Len(t, inputs, len(promptRegistry))

	for flow, input := range inputs {
		t.Run(string(flow), func(t *testing.T) {
			cfg, err := lookupPrompt(flow)
			require.NoError(t, err)
			require.NotNil(t, cfg.Schema)

			prompt, err := cfg.Render(input)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
			assert.NotContains(t, prompt, "<no value>")
		})
	}
}

func TestScorePrompt_OmitsEmptyGuidelines(t *testing.T) {
	cfg, err := lookupPrompt(FlowScoreResume)
	require.NoError(t, err)

	prompt, err := cfg.Render(scoreInput{ResumeText: "x"})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "REFERENCE GUIDELINES")
}

func TestFormatGuidelineContext(t *testing.T) {
	assert.Equal(t, "", FormatGuidelineContext(nil))

	got := FormatGuidelineContext([]SearchResult{
		{Score: 0.91, Text: " Use standard headings. "},
		{Score: 0.5, Text: "Avoid tables."},
	})
	assert.Equal(t, "--- Guideline 1 (Score: 0.91) ---\nUse standard headings.\n\n--- Guideline 2 (Score: 0.50) ---\nAvoid tables.", got)
}

func TestExtractJSON(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```":    `{"a":1}`,
		"Here you go: {\"a\":1} bye": `{"a":1}`,
		"[1,2]":                      "[1,2]",
		"no json":                    "no json",
		"```\n[1]\n```":              "[1]",
	}

	for input, want := range tests {
		assert.Equal(t, want, extractJSON(input), "input %q", input)
	}
}

func TestExtractJSON_KeepsFencesInsideValues(t *testing.T) {
	fence := "```"
	payload := `{"summary":"Wrap snippets in ` + fence + `go` + fence + ` blocks"}`

	assert.Equal(t, payload, extractJSON(fence+"json\n"+payload+"\n"+fence))
	assert.Equal(t, payload, extractJSON("Sure, here it is:\n"+payload))
}
