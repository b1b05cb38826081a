package services

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"google.golang.org/genai"
)

// Attachment is binary media sent alongside a prompt (scanned certificates,
// PDFs, images).
type Attachment struct {
	MimeType string
	Data     []byte
	Label    string
}

type GenerateRequest struct {
	Prompt      string
	Attachments []Attachment
	// Schema constrains the response to JSON of that shape. Nil means free text.
	Schema      *genai.Schema
	Temperature float32
}

// GenerativeModel is the one collaborator every AI flow goes through. An empty
// string with a nil error means the model produced no usable output.
type GenerativeModel interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	GenerativeModel
	Embedder
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, modelName, embedModel string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
	}, nil
}

const maxEmbedBytes = 40000

// truncateUTF8 cuts s to at most maxBytes without splitting a rune.
func truncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	text = truncateUTF8(text, maxEmbedBytes)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// Generate implements GenerativeModel.
func (g *geminiService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.Schema
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, buildContents(req), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		log.Println("⚠️ Gemini API returned nil response")
		return "", nil
	}

	return resp.Text(), nil
}

func buildContents(req GenerateRequest) []*genai.Content {
	if len(req.Attachments) == 0 {
		return genai.Text(req.Prompt)
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, a := range req.Attachments {
		if a.Label != "" {
			parts = append(parts, genai.NewPartFromText(a.Label))
		}
		parts = append(parts, genai.NewPartFromBytes(a.Data, a.MimeType))
	}

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}
