package services

import (
	"context"
	"fmt"
	"log"
)

// GuidelineRetriever returns ATS guideline passages relevant to a resume.
type GuidelineRetriever interface {
	Retrieve(ctx context.Context, resumeText string) ([]SearchResult, error)
}

type GuidelineIngestor interface {
	// Ingest replaces every chunk previously stored for source and returns
	// the number of chunks written.
	Ingest(ctx context.Context, source, docType, text string) (int, error)
}

type GuidelineStore interface {
	GuidelineRetriever
	GuidelineIngestor
}

type guidelineStore struct {
	embedder  Embedder
	qdrant    QdrantService
	chunker   TextChunker
	topK      int
	chunkSize int
	overlap   int
}

func NewGuidelineStore(embedder Embedder, qdrant QdrantService, topK int) GuidelineStore {
	if topK <= 0 {
		topK = 4
	}
	return &guidelineStore{
		embedder:  embedder,
		qdrant:    qdrant,
		chunker:   NewTextChunker(),
		topK:      topK,
		chunkSize: 1000,
		overlap:   200,
	}
}

func (g *guidelineStore) Retrieve(ctx context.Context, resumeText string) ([]SearchResult, error) {
	embedding, err := g.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := g.qdrant.SearchSimilar(ctx, embedding, DocTypeATSGuideline, g.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search guidelines: %w", err)
	}

	log.Printf("🔍 Retrieved %d guideline chunks\n", len(results))
	return results, nil
}

func (g *guidelineStore) Ingest(ctx context.Context, source, docType, text string) (int, error) {
	if docType == "" {
		docType = DocTypeATSGuideline
	}

	pieces := g.chunker.ChunkText(text, g.chunkSize, g.overlap)
	if len(pieces) == 0 {
		return 0, ErrNoTextContent
	}

	chunks := make([]GuidelineChunk, 0, len(pieces))
	for i, piece := range pieces {
		embedding, err := g.embedder.GenerateEmbedding(ctx, piece)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunk %d of %s: %w", i+1, source, err)
		}
		chunks = append(chunks, GuidelineChunk{
			Source:     source,
			DocType:    docType,
			ChunkIndex: i,
			Text:       piece,
			Embedding:  embedding,
		})
	}

	if err := g.qdrant.DeleteDocument(ctx, source); err != nil {
		return 0, err
	}
	if err := g.qdrant.UpsertChunks(ctx, chunks); err != nil {
		return 0, err
	}

	return len(chunks), nil
}
