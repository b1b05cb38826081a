package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrEmptyOutput = errors.New("model returned no usable output")
	ErrNoDocuments = errors.New("no portfolio documents to synthesize from")
)

// runStructured renders the flow's prompt, makes exactly one model call and
// returns the raw JSON payload. Decoding and validation are left to the caller.
func runStructured(ctx context.Context, model GenerativeModel, flow Flow, input any, attachments []Attachment) ([]byte, error) {
	cfg, err := lookupPrompt(flow)
	if err != nil {
		return nil, err
	}

	prompt, err := cfg.Render(input)
	if err != nil {
		return nil, err
	}

	log.Printf("📝 %s prompt length: %d characters, %d attachments", cfg.Name, len(prompt), len(attachments))

	response, err := model.Generate(ctx, GenerateRequest{
		Prompt:      prompt,
		Attachments: attachments,
		Schema:      cfg.Schema,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", cfg.Name, err)
	}

	payload := strings.TrimSpace(extractJSON(response))
	if payload == "" || payload == "null" || payload == "{}" {
		log.Printf("⚠️ Empty response received for %s", cfg.Name)
		return nil, fmt.Errorf("%s: %w", cfg.Name, ErrEmptyOutput)
	}

	log.Printf("✅ %s response received: %d characters", cfg.Name, len(payload))
	return []byte(payload), nil
}

// extractJSON pulls the JSON payload out of a reply that may be wrapped in a
// markdown fence or surrounded by prose. Only the outer fence is removed.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		rest = strings.TrimPrefix(rest, "json")
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
