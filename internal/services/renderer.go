package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"alfredoptarigan/resume-builder/internal/models"
)

const (
	ExportFormatPDF  = "pdf"
	ExportFormatHTML = "html"

	MimeHTML = "text/html"
)

// DefaultMargins in inches.
var DefaultMargins = models.Margins{Top: 0.5, Right: 0.5, Bottom: 0.5, Left: 0.5}

type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string, margins models.Margins) ([]byte, error)
}

type chromedpRenderer struct {
	chromePath string
	timeout    time.Duration
}

func NewChromedpRenderer(chromePath string, timeout time.Duration) PDFRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &chromedpRenderer{chromePath: chromePath, timeout: timeout}
}

func (r *chromedpRenderer) RenderPDF(ctx context.Context, html string, margins models.Margins) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write html: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(margins.Top).
				WithMarginRight(margins.Right).
				WithMarginBottom(margins.Bottom).
				WithMarginLeft(margins.Left).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}

	return pdfBuf, nil
}

type ExportOptions struct {
	HTML     string
	Format   string
	Margins  *models.Margins
	FileName string
}

// ExportResult is returned on success and failure alike. Error is the failure
// descriptor; Data is empty when it is set.
type ExportResult struct {
	Data     []byte
	MimeType string
	FileName string
	Error    string
}

func (r ExportResult) OK() bool {
	return r.Error == ""
}

type Exporter interface {
	Export(ctx context.Context, opts ExportOptions) ExportResult
}

type exporter struct {
	renderer PDFRenderer
}

func NewExporter(renderer PDFRenderer) Exporter {
	return &exporter{renderer: renderer}
}

func (e *exporter) Export(ctx context.Context, opts ExportOptions) ExportResult {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = ExportFormatPDF
	}

	if strings.TrimSpace(opts.HTML) == "" {
		return ExportResult{Error: "nothing to export: markup is empty"}
	}

	margins := DefaultMargins
	if opts.Margins != nil {
		margins = *opts.Margins
	}

	fileName := exportFileName(opts.FileName, format)

	switch format {
	case ExportFormatHTML:
		return ExportResult{Data: []byte(opts.HTML), MimeType: MimeHTML, FileName: fileName}
	case ExportFormatPDF:
		if e.renderer == nil {
			return ExportResult{Error: "pdf export is not available"}
		}
		data, err := e.renderer.RenderPDF(ctx, opts.HTML, margins)
		if err != nil {
			log.Printf("❌ PDF export failed: %v\n", err)
			return ExportResult{Error: fmt.Sprintf("pdf export failed: %v", err)}
		}
		if len(data) == 0 {
			return ExportResult{Error: "pdf export produced an empty document"}
		}
		return ExportResult{Data: data, MimeType: MimePDF, FileName: fileName}
	default:
		return ExportResult{Error: fmt.Sprintf("unsupported export format: %s", opts.Format)}
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// exportFileName sanitizes the requested name and forces the format's extension.
func exportFileName(requested, format string) string {
	name := filepath.Base(strings.TrimSpace(requested))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.Trim(unsafeFileChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "resume"
	}
	return base + "." + format
}
