package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF      = "application/pdf"
	MimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText     = "text/plain"
	MimeMarkdown = "text/markdown"
	MimePNG      = "image/png"
	MimeJPEG     = "image/jpeg"
	MimeWEBP     = "image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoTextContent     = errors.New("no text content found in document")
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, mimeType string, data []byte) (string, error)
	Supports(mimeType string) bool
}

type textExtractor struct {
	// model transcribes images and scanned PDFs. Nil disables that path.
	model GenerativeModel
}

func NewTextExtractor(model GenerativeModel) TextExtractor {
	return &textExtractor{model: model}
}

func (t *textExtractor) Supports(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOCX, MimeText, MimeMarkdown:
		return true
	case MimePNG, MimeJPEG, MimeWEBP:
		return t.model != nil
	}
	return false
}

func (t *textExtractor) Extract(ctx context.Context, mimeType string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch mimeType {
	case MimeText, MimeMarkdown:
		text = string(data)
	case MimePDF:
		text, err = extractPDFText(data)
		if err == nil && strings.TrimSpace(text) == "" && t.model != nil {
			log.Println("📄 PDF has no text layer, falling back to transcription")
			text, err = t.transcribe(ctx, mimeType, data)
		}
	case MimeDOCX:
		text, err = extractDocxText(data)
	case MimePNG, MimeJPEG, MimeWEBP:
		if t.model == nil {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
		}
		text, err = t.transcribe(ctx, mimeType, data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrNoTextContent
	}
	return text, nil
}

func (t *textExtractor) transcribe(ctx context.Context, mimeType string, data []byte) (string, error) {
	raw, err := runStructured(ctx, t.model, FlowTranscribeDocument, transcribeInput{}, []Attachment{
		{MimeType: mimeType, Data: data},
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode transcription: %w", err)
	}
	return out.Text, nil
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>`)
	docxTab          = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens document.xml into lines, one per paragraph.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
