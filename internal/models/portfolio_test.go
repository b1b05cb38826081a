package models

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioDocument_Decode(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	encoded := base64.StdEncoding.EncodeToString(pdf)

	tests := []struct {
		name     string
		doc      PortfolioDocument
		wantMime string
		wantData []byte
	}{
		{
			name:     "plain text",
			doc:      PortfolioDocument{Type: DocumentProject, FileName: "report.md", Content: "Built a compiler."},
			wantMime: "text/plain",
			wantData: []byte("Built a compiler."),
		},
		{
			name:     "base64 data uri",
			doc:      PortfolioDocument{Type: DocumentCertificate, FileName: "cert.pdf", Content: "data:application/pdf;base64," + encoded},
			wantMime: "application/pdf",
			wantData: pdf,
		},
		{
			name:     "octet stream guessed from file name",
			doc:      PortfolioDocument{Type: DocumentCertificate, FileName: "cert.PNG", Content: "data:application/octet-stream;base64," + encoded},
			wantMime: "image/png",
			wantData: pdf,
		},
		{
			name:     "non-base64 data uri",
			doc:      PortfolioDocument{Type: DocumentOther, FileName: "notes.txt", Content: "data:text/plain,hello"},
			wantMime: "text/plain",
			wantData: []byte("hello"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := tt.doc.Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, blob.MimeType)
			assert.Equal(t, tt.wantData, blob.Data)
		})
	}
}

func TestPortfolioDocument_DecodeRejectsBadPayload(t *testing.T) {
	_, err := PortfolioDocument{FileName: "cert.pdf", Content: "data:application/pdf;base64,%%%"}.Decode()
	assert.Error(t, err)

	_, err = PortfolioDocument{FileName: "cert.pdf", Content: "data:application/pdf;base64"}.Decode()
	assert.Error(t, err)
}

func TestDecodeBlob_RawBase64WithHint(t *testing.T) {
	blob, err := DecodeBlob(base64.StdEncoding.EncodeToString([]byte("abc")), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.MimeType)
	assert.Equal(t, []byte("abc"), blob.Data)
	assert.False(t, blob.IsText())

	blob, err = DecodeBlob("just text", "")
	require.NoError(t, err)
	assert.True(t, blob.IsText())
}

func TestDecodeBlob_DropsMediaTypeParameters(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("Jane Doe"))

	tests := map[string]string{
		"data:text/plain;charset=utf-8;base64," + encoded:    "text/plain",
		"data:Application/PDF;name=cv.pdf;base64," + encoded: "application/pdf",
		"data:text/markdown;charset=utf-8,Jane Doe":           "text/markdown",
	}

	for content, want := range tests {
		blob, err := DecodeBlob(content, "")
		require.NoError(t, err, content)
		assert.Equal(t, want, blob.MimeType, content)
		assert.Equal(t, []byte("Jane Doe"), blob.Data, content)
	}

	blob, err := DecodeBlob(encoded, "application/pdf; name=cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.MimeType)
}

func TestPortfolioDocument_DecodeWithParameters(t *testing.T) {
	doc := PortfolioDocument{
		Type:     DocumentCertificate,
		FileName: "cert",
		Content:  "data:application/pdf;name=cert.pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF")),
	}

	blob, err := doc.Decode()
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.MimeType)
}

func TestMimeTypeFromFileName(t *testing.T) {
	assert.Equal(t, "application/pdf", MimeTypeFromFileName("Resume.PDF"))
	assert.Equal(t, "image/jpeg", MimeTypeFromFileName("scan.jpeg"))
	assert.Equal(t, "", MimeTypeFromFileName("archive.zip"))
	assert.Equal(t, "", MimeTypeFromFileName("noext"))
}
