package cli

import (
	"context"
	"fmt"

	"alfredoptarigan/resume-builder/internal/config"
	"alfredoptarigan/resume-builder/internal/services"
)

// DefaultFactory wires Gemini, and Qdrant when withIngest is set or guideline
// retrieval is enabled.
func DefaultFactory(ctx context.Context, cfg *config.Config, withIngest bool) (*Services, error) {
	gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		return nil, err
	}

	var store services.GuidelineStore
	if withIngest || cfg.Qdrant.Enabled {
		qdrant, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			return nil, err
		}
		if err := qdrant.InitCollection(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize collection: %w", err)
		}
		store = services.NewGuidelineStore(gemini, qdrant, cfg.Qdrant.TopK)
	}

	extractor := services.NewTextExtractor(gemini)

	return &Services{
		AI:        services.NewResumeAIService(gemini, store, extractor),
		Extractor: extractor,
		Ingestor:  store,
	}, nil
}
