package services

import (
	"fmt"
	"strings"
	"text/template"

	"google.golang.org/genai"
)

type Flow string

const (
	FlowExtractResume      Flow = "extract_resume"
	FlowScoreResume        Flow = "score_resume"
	FlowDetailedFeedback   Flow = "detailed_feedback"
	FlowPortfolioResume    Flow = "portfolio_resume"
	FlowPortfolioText      Flow = "portfolio_text"
	FlowTranscribeDocument Flow = "transcribe_document"
)

// PromptConfig is one named AI flow: what to say, what shape to expect back.
type PromptConfig struct {
	Name        string
	Template    *template.Template
	Schema      *genai.Schema
	Temperature float32
}

func (p PromptConfig) Render(input any) (string, error) {
	var sb strings.Builder
	if err := p.Template.Execute(&sb, input); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", p.Name, err)
	}
	return sb.String(), nil
}

type extractInput struct {
	ResumeText string
}

type scoreInput struct {
	ResumeText string
	Guidelines string
}

type feedbackInput struct {
	ResumeText string
	AtsScore   int
}

type portfolioInput struct {
	Documents []promptDocument
}

// promptDocument is one portfolio entry as the prompt sees it. Binary entries
// have no Text and travel as an attachment labelled with Index.
type promptDocument struct {
	Index    int
	Type     string
	FileName string
	Text     string
	Attached bool
}

type transcribeInput struct {
	FileName string
}

const extractTemplate = `You are an expert resume parser. Extract the candidate's information from the resume text below into the requested JSON structure.

Rules:
- Copy facts exactly as written. Do not invent anything.
- Any field not present in the text must be an empty string "" or an empty array [], never omitted and never null.
- githubLink and linkedinLink must be full URLs. If only a username or a path such as "in/handle" appears, expand it (https://github.com/<user>, https://linkedin.com/in/<handle>).
- List coreSkills with the most prominent first.
- List education and experience with the most recent entry first.
- achievements and certifications are arrays of plain strings.

RESUME TEXT:
{{.ResumeText}}`

const scoreTemplate = `You are an applicant tracking system (ATS) evaluator. Rate how well the resume below would pass automated screening.

Consider:
1. Keyword coverage: concrete skills, tools and role titles a screening system would match on
2. Formatting: plain structure, no content that parsers lose (tables, images, columns)
3. Structure: standard section headings, contact details, reverse-chronological history
4. Measurable impact in experience and project descriptions
{{- if .Guidelines}}

REFERENCE GUIDELINES:
{{.Guidelines}}
{{- end}}

Return atsScore as an integer from 0 to 100 and feedback as 2-4 sentences naming the biggest issues.

RESUME:
{{.ResumeText}}`

const feedbackTemplate = `You are a senior career coach. The resume below received an ATS compatibility score of {{.AtsScore}} out of 100.

Write detailed, actionable feedback that would raise the score. Cover missing keywords, weak or unquantified bullet points, formatting problems and missing sections. Group the advice by resume section and be specific to this resume.

RESUME:
{{.ResumeText}}`

const portfolioDocumentsTemplate = `{{define "documents"}}PORTFOLIO DOCUMENTS:
{{range .Documents}}
--- Document {{.Index}} ({{.Type}}): {{.FileName}} ---
{{if .Attached}}[content attached as Document {{.Index}}]{{else}}{{.Text}}{{end}}
{{end}}{{end}}`

const portfolioInstructions = `Instructions:
1. Synthesize the documents into one coherent profile. Do not simply concatenate them.
2. Order education in reverse-chronological order, most recent first.
3. Deduplicate skills that appear in several documents.
4. Cross-validate personal details (name, email, phone, links) that appear on more than one document and keep the consistent values.
5. Write a short professional summary of 2-3 sentences.
6. Any section with no supporting material must be an empty string "" or an empty array [].`

const portfolioResumeTemplate = portfolioDocumentsTemplate + `You are an expert resume writer. Build a structured resume from the candidate's portfolio documents (certificates, project reports and other material).

` + portfolioInstructions + `
7. achievements and certifications are arrays of plain strings.

{{template "documents" .}}`

const portfolioTextTemplate = portfolioDocumentsTemplate + `You are an expert resume writer. Write a complete plain-text resume from the candidate's portfolio documents (certificates, project reports and other material).

` + portfolioInstructions + `
7. Use clear section headings. Return the whole resume as synthesizedText.

{{template "documents" .}}`

const transcribeTemplate = `Transcribe all text in the attached document{{if .FileName}} ({{.FileName}}){{end}}. Keep the reading order and line breaks. Do not summarize, translate or add commentary.`

var promptRegistry = map[Flow]PromptConfig{
	FlowExtractResume: {
		Name:        "extract resume",
		Template:    template.Must(template.New(string(FlowExtractResume)).Parse(extractTemplate)),
		Schema:      resumeResponseSchema(),
		Temperature: 0.1,
	},
	FlowScoreResume: {
		Name:        "score resume",
		Template:    template.Must(template.New(string(FlowScoreResume)).Parse(scoreTemplate)),
		Schema:      atsResponseSchema(),
		Temperature: 0.3,
	},
	FlowDetailedFeedback: {
		Name:        "detailed feedback",
		Template:    template.Must(template.New(string(FlowDetailedFeedback)).Parse(feedbackTemplate)),
		Schema:      feedbackResponseSchema(),
		Temperature: 0.5,
	},
	FlowPortfolioResume: {
		Name:        "portfolio resume",
		Template:    template.Must(template.New(string(FlowPortfolioResume)).Parse(portfolioResumeTemplate)),
		Schema:      resumeResponseSchema(),
		Temperature: 0.2,
	},
	FlowPortfolioText: {
		Name:        "portfolio text",
		Template:    template.Must(template.New(string(FlowPortfolioText)).Parse(portfolioTextTemplate)),
		Schema:      synthesizedTextResponseSchema(),
		Temperature: 0.4,
	},
	FlowTranscribeDocument: {
		Name:        "transcribe document",
		Template:    template.Must(template.New(string(FlowTranscribeDocument)).Parse(transcribeTemplate)),
		Schema:      transcriptionResponseSchema(),
		Temperature: 0,
	},
}

func lookupPrompt(flow Flow) (PromptConfig, error) {
	cfg, ok := promptRegistry[flow]
	if !ok {
		return PromptConfig{}, fmt.Errorf("unknown prompt flow: %s", flow)
	}
	return cfg, nil
}

// FormatGuidelineContext renders retrieved guideline chunks for the scoring prompt.
func FormatGuidelineContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Guideline %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
