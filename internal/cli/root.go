package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-builder/internal/config"
	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

// Services is what the commands need. Ingestor is only built for ingest.
type Services struct {
	AI        services.ResumeAIService
	Extractor services.TextExtractor
	Ingestor  services.GuidelineIngestor
}

type ServiceFactory func(ctx context.Context, cfg *config.Config, withIngest bool) (*Services, error)

// NewRootCmd builds resumectl. factory is called once per command run.
func NewRootCmd(factory ServiceFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "resumectl",
		Short: "Extract, score and index resumes from the command line",
		Long: `resumectl runs the resume builder's AI flows against local files.

It reads the same environment (.env) as the API server.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newExtractCmd(factory),
		newScoreCmd(factory),
		newIngestCmd(factory),
	)

	return root
}

func newExtractCmd(factory ServiceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a structured resume from a PDF, DOCX, text or image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := factory(ctx, config.Load(), false)
			if err != nil {
				return err
			}

			text, err := readDocumentText(ctx, svc.Extractor, args[0])
			if err != nil {
				return err
			}

			resume, err := svc.AI.ExtractResume(ctx, text)
			if err != nil {
				return fmt.Errorf("resume extraction failed: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), resume)
		},
	}
}

func newScoreCmd(factory ServiceFactory) *cobra.Command {
	var withFeedback bool

	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Score a resume for ATS compatibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := factory(ctx, config.Load(), false)
			if err != nil {
				return err
			}

			text, err := readDocumentText(ctx, svc.Extractor, args[0])
			if err != nil {
				return err
			}

			result, err := svc.AI.ScoreResume(ctx, services.ScoreInput{Text: text})
			if err != nil {
				return fmt.Errorf("resume analysis failed: %w", err)
			}

			if withFeedback {
				feedback, err := svc.AI.DetailedFeedback(ctx, text, result.AtsScore)
				if err != nil {
					return fmt.Errorf("feedback generation failed: %w", err)
				}
				result.DetailedFeedback = feedback
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&withFeedback, "feedback", false, "also generate detailed feedback")
	return cmd
}

func newIngestCmd(factory ServiceFactory) *cobra.Command {
	var docType string

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Chunk, embed and index ATS guideline documents into Qdrant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := factory(ctx, config.Load(), true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				text, err := readDocumentText(ctx, svc.Extractor, path)
				if err == nil {
					var n int
					n, err = svc.Ingestor.Ingest(ctx, filepath.Base(path), docType, text)
					if err == nil {
						fmt.Fprintf(out, "✅ %s: %d chunks\n", path, n)
						continue
					}
				}
				failed++
				fmt.Fprintf(out, "❌ %s: %v\n", path, err)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", services.DocTypeATSGuideline, "document type stored with each chunk")
	return cmd
}

func readDocumentText(ctx context.Context, extractor services.TextExtractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType := models.MimeTypeFromFileName(path)
	if mimeType == "" {
		mimeType = services.MimeText
	}

	text, err := extractor.Extract(ctx, mimeType, data)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	return text, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
