package models

import (
	"encoding/json"
	"time"
)

type ExtractTextRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
	SessionID  string `json:"sessionId" validate:"omitempty,uuid"`
}

type DocumentTextRequest struct {
	Content  string `json:"content" validate:"required"`
	MimeType string `json:"mimeType"`
	FileName string `json:"fileName"`
}

// ScoreRequest needs one of ResumeText, Resume, or a session holding a
// resume.
type ScoreRequest struct {
	ResumeText string          `json:"resumeText"`
	Resume     json.RawMessage `json:"resume"`
	SessionID  string          `json:"sessionId" validate:"omitempty,uuid"`
}

type FeedbackRequest struct {
	ResumeText string `json:"resumeText"`
	AtsScore   *int   `json:"atsScore" validate:"omitempty,min=0,max=100"`
	SessionID  string `json:"sessionId" validate:"omitempty,uuid"`
}

type PortfolioRequest struct {
	Documents []PortfolioDocument `json:"documents" validate:"dive"`
	SessionID string              `json:"sessionId" validate:"omitempty,uuid"`
}

type Margins struct {
	Top    float64 `json:"top" validate:"min=0,max=3"`
	Right  float64 `json:"right" validate:"min=0,max=3"`
	Bottom float64 `json:"bottom" validate:"min=0,max=3"`
	Left   float64 `json:"left" validate:"min=0,max=3"`
}

type ExportRequest struct {
	HTML      string   `json:"html" validate:"required"`
	Format    string   `json:"format" validate:"omitempty,oneof=pdf html"`
	Margins   *Margins `json:"margins"`
	FileName  string   `json:"fileName"`
	Store     bool     `json:"store"`
	SessionID string   `json:"sessionId" validate:"omitempty,uuid"`
}

type ExtractResponse struct {
	Text   string  `json:"text,omitempty"`
	Resume *Resume `json:"resume"`
}

type DocumentTextResponse struct {
	Text string `json:"text"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

type SynthesizedTextResponse struct {
	SynthesizedText string `json:"synthesizedText"`
}

type ResumeResponse struct {
	Resume *Resume `json:"resume"`
}

type SessionResponse struct {
	ID        string     `json:"id"`
	Resume    *Resume    `json:"resume"`
	AtsResult *AtsResult `json:"atsResult"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// ExportResponse always comes back with 200; Success=false carries the
// failure descriptor in Error.
type ExportResponse struct {
	Success    bool   `json:"success"`
	FileName   string `json:"fileName,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	Data       string `json:"data,omitempty"`
	SizeBytes  int    `json:"sizeBytes,omitempty"`
	StorageKey string `json:"storageKey,omitempty"`
	Error      string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error      string           `json:"error"`
	Details    string           `json:"details,omitempty"`
	Violations []FieldViolation `json:"violations,omitempty"`
}
