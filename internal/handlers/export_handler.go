package handlers

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

type ExportHandler struct {
	exporter services.Exporter
	archive  services.DocumentArchive
	sessions services.SessionService
	tracker  services.ActionTracker
}

func NewExportHandler(
	exporter services.Exporter,
	archive services.DocumentArchive,
	sessions services.SessionService,
	tracker services.ActionTracker,
) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
		archive:  archive,
		sessions: sessions,
		tracker:  tracker,
	}
}

// HandleExport handles POST /export. Export failures are reported in the body
// with success=false; only malformed requests get a non-200 status.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	var req models.ExportRequest
	if ok, err := parseRequest(c, &req); !ok {
		return err
	}

	session, err := lookupSession(h.sessions, req.SessionID)
	if err != nil {
		return respondError(c, "export failed", err)
	}

	var resp models.ExportResponse
	err = h.tracker.Run(c.UserContext(), sessionKey(session), services.ActionExport, func(ctx context.Context) error {
		resp = h.export(ctx, session, req)
		return nil
	})
	if err != nil {
		return respondError(c, "export failed", err)
	}

	return c.JSON(resp)
}

func (h *ExportHandler) export(ctx context.Context, session *models.Session, req models.ExportRequest) models.ExportResponse {
	result := h.exporter.Export(ctx, services.ExportOptions{
		HTML:     req.HTML,
		Format:   req.Format,
		Margins:  req.Margins,
		FileName: req.FileName,
	})
	if !result.OK() {
		return models.ExportResponse{Success: false, Error: result.Error}
	}

	resp := models.ExportResponse{
		Success:   true,
		FileName:  result.FileName,
		MimeType:  result.MimeType,
		Data:      base64.StdEncoding.EncodeToString(result.Data),
		SizeBytes: len(result.Data),
	}

	if req.Store {
		if h.archive == nil {
			return models.ExportResponse{Success: false, Error: "export storage is not configured"}
		}
		var sessionID *uuid.UUID
		if session != nil {
			sessionID = &session.ID
		}
		doc, err := h.archive.Archive(ctx, sessionID, models.PurposeExport, result.FileName, result.MimeType, result.Data)
		if err != nil {
			log.Printf("⚠️  Failed to store export %s: %v\n", result.FileName, err)
			return models.ExportResponse{Success: false, Error: "failed to store exported document"}
		}
		resp.StorageKey = doc.StorageKey
	}

	return resp
}
