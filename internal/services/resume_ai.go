package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/resume-builder/internal/models"
)

// ResumeAIService wraps every model-backed resume flow. Each call is one model
// round trip; failures are returned as-is and never retried.
type ResumeAIService interface {
	ExtractResume(ctx context.Context, resumeText string) (*models.Resume, error)
	ScoreResume(ctx context.Context, input ScoreInput) (*models.AtsResult, error)
	DetailedFeedback(ctx context.Context, resumeText string, atsScore int) (string, error)
	GenerateResumeFromPortfolio(ctx context.Context, docs []models.PortfolioDocument) (*models.Resume, error)
	SynthesizePortfolioText(ctx context.Context, docs []models.PortfolioDocument) (string, error)
}

// ScoreInput carries either raw text or a structured record. Text wins when
// both are set.
type ScoreInput struct {
	Text   string
	Resume *models.Resume
}

func (in ScoreInput) resumeText() string {
	if strings.TrimSpace(in.Text) != "" {
		return in.Text
	}
	if in.Resume != nil {
		return models.FlattenResume(in.Resume)
	}
	return ""
}

type resumeAIService struct {
	model      GenerativeModel
	guidelines GuidelineRetriever
	extractor  TextExtractor
}

// NewResumeAIService builds the service. guidelines and extractor are optional;
// extractor converts DOCX portfolio entries to text before they reach the model.
func NewResumeAIService(model GenerativeModel, guidelines GuidelineRetriever, extractor TextExtractor) ResumeAIService {
	return &resumeAIService{
		model:      model,
		guidelines: guidelines,
		extractor:  extractor,
	}
}

func (s *resumeAIService) ExtractResume(ctx context.Context, resumeText string) (*models.Resume, error) {
	raw, err := runStructured(ctx, s.model, FlowExtractResume, extractInput{ResumeText: resumeText}, nil)
	if err != nil {
		return nil, err
	}

	resume, err := models.CoerceResume(raw)
	if err != nil {
		return nil, fmt.Errorf("extracted resume rejected: %w", err)
	}
	return resume, nil
}

func (s *resumeAIService) ScoreResume(ctx context.Context, input ScoreInput) (*models.AtsResult, error) {
	text := input.resumeText()

	var guidelines string
	if s.guidelines != nil && strings.TrimSpace(text) != "" {
		results, err := s.guidelines.Retrieve(ctx, text)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to retrieve ATS guidelines: %v\n", err)
		} else {
			guidelines = FormatGuidelineContext(results)
		}
	}

	raw, err := runStructured(ctx, s.model, FlowScoreResume, scoreInput{ResumeText: text, Guidelines: guidelines}, nil)
	if err != nil {
		return nil, err
	}

	result, err := models.CoerceAtsResult(raw)
	if err != nil {
		return nil, fmt.Errorf("ats result rejected: %w", err)
	}
	return result, nil
}

func (s *resumeAIService) DetailedFeedback(ctx context.Context, resumeText string, atsScore int) (string, error) {
	raw, err := runStructured(ctx, s.model, FlowDetailedFeedback, feedbackInput{ResumeText: resumeText, AtsScore: atsScore}, nil)
	if err != nil {
		return "", err
	}

	var out struct {
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode feedback: %w", err)
	}

	feedback := strings.TrimSpace(out.Feedback)
	if feedback == "" {
		return "", fmt.Errorf("detailed feedback: %w", ErrEmptyOutput)
	}
	return feedback, nil
}

func (s *resumeAIService) GenerateResumeFromPortfolio(ctx context.Context, docs []models.PortfolioDocument) (*models.Resume, error) {
	input, attachments, err := s.preparePortfolio(ctx, docs)
	if err != nil {
		return nil, err
	}

	raw, err := runStructured(ctx, s.model, FlowPortfolioResume, input, attachments)
	if err != nil {
		return nil, err
	}

	resume, err := models.CoerceResume(raw)
	if err != nil {
		return nil, fmt.Errorf("synthesized resume rejected: %w", err)
	}
	return resume, nil
}

func (s *resumeAIService) SynthesizePortfolioText(ctx context.Context, docs []models.PortfolioDocument) (string, error) {
	input, attachments, err := s.preparePortfolio(ctx, docs)
	if err != nil {
		return "", err
	}

	raw, err := runStructured(ctx, s.model, FlowPortfolioText, input, attachments)
	if err != nil {
		return "", err
	}

	var out struct {
		SynthesizedText string `json:"synthesizedText"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode synthesized text: %w", err)
	}

	text := strings.TrimSpace(out.SynthesizedText)
	if text == "" {
		return "", fmt.Errorf("portfolio text: %w", ErrEmptyOutput)
	}
	return text, nil
}

// preparePortfolio decodes every document. Text goes inline in the prompt;
// DOCX is converted to text when an extractor is available; everything else is
// attached as media labelled with its document index.
func (s *resumeAIService) preparePortfolio(ctx context.Context, docs []models.PortfolioDocument) (portfolioInput, []Attachment, error) {
	if len(docs) == 0 {
		return portfolioInput{}, nil, ErrNoDocuments
	}

	input := portfolioInput{Documents: make([]promptDocument, 0, len(docs))}
	var attachments []Attachment

	for i, doc := range docs {
		blob, err := doc.Decode()
		if err != nil {
			return portfolioInput{}, nil, fmt.Errorf("document %d: %w", i+1, err)
		}

		pd := promptDocument{
			Index:    i + 1,
			Type:     string(doc.Type),
			FileName: doc.FileName,
		}

		switch {
		case blob.IsText():
			pd.Text = strings.TrimSpace(string(blob.Data))
		case blob.MimeType == MimeDOCX && s.extractor != nil:
			text, err := s.extractor.Extract(ctx, blob.MimeType, blob.Data)
			if err != nil {
				return portfolioInput{}, nil, fmt.Errorf("document %d: %w", i+1, err)
			}
			pd.Text = text
		default:
			pd.Attached = true
			attachments = append(attachments, Attachment{
				MimeType: blob.MimeType,
				Data:     blob.Data,
				Label:    fmt.Sprintf("Document %d (%s): %s", pd.Index, pd.Type, pd.FileName),
			})
		}

		input.Documents = append(input.Documents, pd)
	}

	return input, attachments, nil
}
