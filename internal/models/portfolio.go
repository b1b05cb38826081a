package models

import (
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

type PortfolioDocumentType string

const (
	DocumentCertificate PortfolioDocumentType = "certificate"
	DocumentProject     PortfolioDocumentType = "project"
	DocumentOther       PortfolioDocumentType = "other"
)

// PortfolioDocument is one input file for portfolio synthesis. Content is a
// data URI (data:<mime>;base64,<payload>) or plain text.
type PortfolioDocument struct {
	Type     PortfolioDocumentType `json:"type" validate:"required,oneof=certificate project other"`
	FileName string                `json:"fileName" validate:"required"`
	Content  string                `json:"content" validate:"required"`
}

// Blob is decoded document content.
type Blob struct {
	MimeType string
	Data     []byte
}

func (b Blob) IsText() bool {
	return strings.HasPrefix(b.MimeType, "text/")
}

// Decode resolves the document content, guessing the MIME type from the file
// name when the content does not declare one.
func (d PortfolioDocument) Decode() (Blob, error) {
	if !strings.HasPrefix(d.Content, "data:") {
		return Blob{MimeType: "text/plain", Data: []byte(d.Content)}, nil
	}
	blob, err := DecodeBlob(d.Content, "")
	if err != nil {
		return Blob{}, fmt.Errorf("failed to decode %s: %w", d.FileName, err)
	}
	if blob.MimeType == "" || blob.MimeType == "application/octet-stream" {
		if guessed := MimeTypeFromFileName(d.FileName); guessed != "" {
			blob.MimeType = guessed
		}
	}
	return blob, nil
}

// DecodeBlob accepts a data URI, or raw base64 when mimeHint names a binary
// type, or plain text otherwise.
func DecodeBlob(content, mimeHint string) (Blob, error) {
	mimeHint = mediaType(mimeHint)

	if rest, ok := strings.CutPrefix(content, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return Blob{}, fmt.Errorf("malformed data URI")
		}
		params, isBase64 := strings.CutSuffix(header, ";base64")
		mimeType := mediaType(params)
		if mimeType == "" {
			mimeType = mimeHint
		}
		if !isBase64 {
			return Blob{MimeType: mimeType, Data: []byte(payload)}, nil
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Blob{}, fmt.Errorf("invalid base64 payload: %w", err)
		}
		return Blob{MimeType: mimeType, Data: data}, nil
	}

	if mimeHint == "" || strings.HasPrefix(mimeHint, "text/") {
		return Blob{MimeType: "text/plain", Data: []byte(content)}, nil
	}

	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return Blob{}, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return Blob{MimeType: mimeHint, Data: data}, nil
}

// mediaType drops parameters such as charset or name and lowercases the
// type, so "Application/PDF;name=cv.pdf" becomes "application/pdf".
func mediaType(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(header); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(header, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

var extensionMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// MimeTypeFromFileName returns "" for unknown extensions.
func MimeTypeFromFileName(name string) string {
	return extensionMimeTypes[strings.ToLower(filepath.Ext(name))]
}
