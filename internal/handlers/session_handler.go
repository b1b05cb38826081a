package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

type SessionHandler struct {
	sessions services.SessionService
}

func NewSessionHandler(sessions services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func toSessionResponse(s *models.Session) models.SessionResponse {
	return models.SessionResponse{
		ID:        s.ID.String(),
		Resume:    s.Resume,
		AtsResult: s.AtsResult,
		ExpiresAt: s.ExpiresAt,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session, err := h.sessions.Create()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(session))
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	session, err := lookupSession(h.sessions, c.Params("id"))
	if err != nil {
		return respondError(c, "session lookup failed", err)
	}

	return c.JSON(toSessionResponse(session))
}

// HandlePutResume handles PUT /sessions/:id/resume with a manually edited record.
func (h *SessionHandler) HandlePutResume(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, "session lookup failed", errInvalidSessionID)
	}

	resume, err := models.CoerceResume(c.Body())
	if err != nil {
		return respondError(c, noticeValidation, err)
	}

	if err := h.sessions.SaveResume(id, resume); err != nil {
		return respondError(c, "failed to save resume", err)
	}

	return c.JSON(models.ResumeResponse{Resume: resume})
}

// HandleValidateResume handles POST /resumes/validate. It runs the
// validation layer alone, for form entry without a session.
func (h *SessionHandler) HandleValidateResume(c *fiber.Ctx) error {
	resume, err := models.CoerceResume(c.Body())
	if err != nil {
		return respondError(c, noticeValidation, err)
	}

	return c.JSON(models.ResumeResponse{Resume: resume})
}
