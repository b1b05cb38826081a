package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

const noticeDocuments = "document lookup failed"

// DocumentHandler serves the files archived for a session.
type DocumentHandler struct {
	archive  services.DocumentArchive
	sessions services.SessionService
}

func NewDocumentHandler(archive services.DocumentArchive, sessions services.SessionService) *DocumentHandler {
	return &DocumentHandler{archive: archive, sessions: sessions}
}

// HandleList handles GET /sessions/:id/documents
func (h *DocumentHandler) HandleList(c *fiber.Ctx) error {
	session, err := lookupSession(h.sessions, c.Params("id"))
	if err != nil {
		return respondError(c, noticeDocuments, err)
	}

	docs, err := h.archive.List(session.ID)
	if err != nil {
		return respondError(c, noticeDocuments, err)
	}
	if docs == nil {
		docs = []models.Document{}
	}

	return c.JSON(models.DocumentListResponse{Documents: docs})
}

// HandleDownload handles GET /sessions/:id/documents/:docId and streams the
// stored bytes back.
func (h *DocumentHandler) HandleDownload(c *fiber.Ctx) error {
	session, err := lookupSession(h.sessions, c.Params("id"))
	if err != nil {
		return respondError(c, noticeDocuments, err)
	}

	docID, err := uuid.Parse(c.Params("docId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid document id format",
		})
	}

	doc, data, err := h.archive.Open(c.UserContext(), docID)
	if err != nil {
		return respondError(c, noticeDocuments, err)
	}
	// documents of other sessions look the same as missing ones
	if doc.SessionID == nil || *doc.SessionID != session.ID {
		return respondError(c, noticeDocuments, services.ErrDocumentNotFound)
	}

	c.Set(fiber.HeaderContentType, doc.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.OriginalFileName))
	return c.Send(data)
}
