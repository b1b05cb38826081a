package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

type PortfolioHandler struct {
	ai       services.ResumeAIService
	sessions services.SessionService
	tracker  services.ActionTracker
}

func NewPortfolioHandler(ai services.ResumeAIService, sessions services.SessionService, tracker services.ActionTracker) *PortfolioHandler {
	return &PortfolioHandler{ai: ai, sessions: sessions, tracker: tracker}
}

// HandleResume handles POST /portfolio/resume
func (h *PortfolioHandler) HandleResume(c *fiber.Ctx) error {
	var req models.PortfolioRequest
	if ok, err := parseRequest(c, &req); !ok {
		return err
	}

	session, err := lookupSession(h.sessions, req.SessionID)
	if err != nil {
		return respondError(c, noticePortfolio, err)
	}

	var resume *models.Resume
	err = h.tracker.Run(c.UserContext(), sessionKey(session), services.ActionPortfolio, func(ctx context.Context) error {
		var err error
		resume, err = h.ai.GenerateResumeFromPortfolio(ctx, req.Documents)
		if err != nil {
			return err
		}
		if session != nil {
			return h.sessions.SaveResume(session.ID, resume)
		}
		return nil
	})
	if err != nil {
		return respondError(c, noticePortfolio, err)
	}

	return c.JSON(models.ResumeResponse{Resume: resume})
}

// HandleText handles POST /portfolio/text
func (h *PortfolioHandler) HandleText(c *fiber.Ctx) error {
	var req models.PortfolioRequest
	if ok, err := parseRequest(c, &req); !ok {
		return err
	}

	session, err := lookupSession(h.sessions, req.SessionID)
	if err != nil {
		return respondError(c, noticePortfolio, err)
	}

	var text string
	err = h.tracker.Run(c.UserContext(), sessionKey(session), services.ActionPortfolio, func(ctx context.Context) error {
		var err error
		text, err = h.ai.SynthesizePortfolioText(ctx, req.Documents)
		return err
	})
	if err != nil {
		return respondError(c, noticePortfolio, err)
	}

	return c.JSON(models.SynthesizedTextResponse{SynthesizedText: text})
}
