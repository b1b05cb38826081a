package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

type ExtractHandler struct {
	ai          services.ResumeAIService
	extractor   services.TextExtractor
	archive     services.DocumentArchive
	sessions    services.SessionService
	tracker     services.ActionTracker
	maxFileSize int64
}

func NewExtractHandler(
	ai services.ResumeAIService,
	extractor services.TextExtractor,
	archive services.DocumentArchive,
	sessions services.SessionService,
	tracker services.ActionTracker,
	maxFileSize int64,
) *ExtractHandler {
	return &ExtractHandler{
		ai:          ai,
		extractor:   extractor,
		archive:     archive,
		sessions:    sessions,
		tracker:     tracker,
		maxFileSize: maxFileSize,
	}
}

// HandleExtractText handles POST /extract/text
func (h *ExtractHandler) HandleExtractText(c *fiber.Ctx) error {
	var req models.ExtractTextRequest
	if ok, err := parseRequest(c, &req); !ok {
		return err
	}

	session, err := lookupSession(h.sessions, req.SessionID)
	if err != nil {
		return respondError(c, noticeExtraction, err)
	}

	resume, err := h.extract(c.UserContext(), session, req.ResumeText)
	if err != nil {
		return respondError(c, noticeExtraction, err)
	}

	return c.JSON(models.ExtractResponse{Resume: resume})
}

// HandleUpload handles POST /extract/upload (multipart field "file").
func (h *ExtractHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "No file uploaded. Please upload a resume as 'file'.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	mimeType := detectMimeType(file.Filename, file.Header.Get("Content-Type"))
	if !h.extractor.Supports(mimeType) {
		return respondError(c, noticeTextRead, fmt.Errorf("%w: %s", services.ErrUnsupportedFormat, mimeType))
	}

	session, err := lookupSession(h.sessions, c.FormValue("sessionId"))
	if err != nil {
		return respondError(c, noticeExtraction, err)
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Failed to open uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Failed to read uploaded file",
		})
	}

	ctx := c.UserContext()

	if h.archive != nil {
		var sessionID *uuid.UUID
		if session != nil {
			sessionID = &session.ID
		}
		if _, err := h.archive.Archive(ctx, sessionID, models.PurposeUpload, file.Filename, mimeType, data); err != nil {
			log.Printf("⚠️  Failed to archive upload %s: %v\n", file.Filename, err)
		}
	}

	text, err := h.extractor.Extract(ctx, mimeType, data)
	if err != nil {
		return respondError(c, noticeTextRead, err)
	}

	resume, err := h.extract(ctx, session, text)
	if err != nil {
		return respondError(c, noticeExtraction, err)
	}

	return c.JSON(models.ExtractResponse{Text: text, Resume: resume})
}

// HandleDocumentText handles POST /documents/text: text extraction only.
func (h *ExtractHandler) HandleDocumentText(c *fiber.Ctx) error {
	var req models.DocumentTextRequest
	if ok, err := parseRequest(c, &req); !ok {
		return err
	}

	hint := req.MimeType
	if hint == "" {
		hint = models.MimeTypeFromFileName(req.FileName)
	}

	blob, err := models.DecodeBlob(req.Content, hint)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid document content",
			Details: err.Error(),
		})
	}

	text, err := h.extractor.Extract(c.UserContext(), blob.MimeType, blob.Data)
	if err != nil {
		return respondError(c, noticeTextRead, err)
	}

	return c.JSON(models.DocumentTextResponse{Text: text})
}

func (h *ExtractHandler) extract(ctx context.Context, session *models.Session, text string) (*models.Resume, error) {
	var resume *models.Resume
	err := h.tracker.Run(ctx, sessionKey(session), services.ActionExtract, func(ctx context.Context) error {
		var err error
		resume, err = h.ai.ExtractResume(ctx, text)
		if err != nil {
			return err
		}
		if session != nil {
			return h.sessions.SaveResume(session.ID, resume)
		}
		return nil
	})
	return resume, err
}

// detectMimeType prefers the file extension over the client-sent header.
func detectMimeType(fileName, header string) string {
	if byName := models.MimeTypeFromFileName(fileName); byName != "" {
		return byName
	}
	if mediaType, _, err := mime.ParseMediaType(header); err == nil {
		return strings.ToLower(mediaType)
	}
	return "application/octet-stream"
}
