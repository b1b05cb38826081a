package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_PlainText(t *testing.T) {
	ex := NewTextExtractor(nil)

	text, err := ex.Extract(context.Background(), MimeText, []byte("  Jane Doe  \n\n\n  Go, Rust \n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo, Rust", text)
}

func TestTextExtractor_EmptyText(t *testing.T) {
	_, err := NewTextExtractor(nil).Extract(context.Background(), MimeMarkdown, []byte(" \n \n"))
	assert.ErrorIs(t, err, ErrNoTextContent)
}

func TestTextExtractor_Unsupported(t *testing.T) {
	ex := NewTextExtractor(nil)

	assert.False(t, ex.Supports("application/zip"))
	assert.False(t, ex.Supports(MimePNG), "images need a model")
	assert.True(t, ex.Supports(MimePDF))
	assert.True(t, ex.Supports(MimeDOCX))

	_, err := ex.Extract(context.Background(), "application/zip", []byte("PK"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ex.Extract(context.Background(), MimePNG, []byte{0x89})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTextExtractor_ImageTranscription(t *testing.T) {
	model := &fakeModel{responses: []string{`{"text": "  Jane Doe \n\n Go "}`}}
	ex := NewTextExtractor(model)
	require.True(t, ex.Supports(MimePNG))

	text, err := ex.Extract(context.Background(), MimePNG, []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo", text)

	require.Len(t, model.requests, 1)
	require.Len(t, model.requests[0].Attachments, 1)
	assert.Equal(t, MimePNG, model.requests[0].Attachments[0].MimeType)
}

func TestTextExtractor_BrokenPDF(t *testing.T) {
	_, err := NewTextExtractor(nil).Extract(context.Background(), MimePDF, []byte("not a pdf"))
	assert.Error(t, err)
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t>Go &amp; Rust</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got := CleanText(docxXMLToText(xml))
	assert.Equal(t, "Jane Doe\nSkills:\tGo & Rust\nLine one\nLine two", got)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "", CleanText("   \n\t\n"))
	assert.Equal(t, "a\nb", CleanText("\n a \n\n b \n"))
}
