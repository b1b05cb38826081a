package handlers

import (
	"bytes"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

type AtsHandler struct {
	ai       services.ResumeAIService
	sessions services.SessionService
	tracker  services.ActionTracker
}

func NewAtsHandler(ai services.ResumeAIService, sessions services.SessionService, tracker services.ActionTracker) *AtsHandler {
	return &AtsHandler{ai: ai, sessions: sessions, tracker: tracker}
}

func hasStoredResume(session *models.Session) bool {
	return session != nil && session.Resume != nil && strings.TrimSpace(session.Resume.Name) != ""
}

// HandleScore handles POST /ats/score
func (h *AtsHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if ok, err := parseRequest(c, &req); !ok {
		return err
	}

	session, err := lookupSession(h.sessions, req.SessionID)
	if err != nil {
		return respondError(c, noticeAnalysis, err)
	}

	var input services.ScoreInput
	switch {
	case strings.TrimSpace(req.ResumeText) != "":
		input.Text = req.ResumeText
	case len(req.Resume) > 0 && !bytes.Equal(bytes.TrimSpace(req.Resume), []byte("null")):
		resume, err := models.CoerceResume(req.Resume)
		if err != nil {
			return respondError(c, noticeAnalysis, err)
		}
		input.Resume = resume
	case hasStoredResume(session):
		input.Resume = session.Resume
	case session != nil:
		return respondError(c, noticeAnalysis, services.ErrNoResume)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "resumeText, resume or a session holding a resume is required",
		})
	}

	var result *models.AtsResult
	err = h.tracker.Run(c.UserContext(), sessionKey(session), services.ActionScore, func(ctx context.Context) error {
		var err error
		result, err = h.ai.ScoreResume(ctx, input)
		if err != nil {
			return err
		}
		if session != nil {
			return h.sessions.SaveAtsResult(session.ID, result)
		}
		return nil
	})
	if err != nil {
		return respondError(c, noticeAnalysis, err)
	}

	return c.JSON(result)
}

// HandleFeedback handles POST /ats/feedback
func (h *AtsHandler) HandleFeedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest
	if ok, err := parseRequest(c, &req); !ok {
		return err
	}

	session, err := lookupSession(h.sessions, req.SessionID)
	if err != nil {
		return respondError(c, noticeFeedback, err)
	}

	// detailed feedback only follows an existing score
	if session != nil && session.AtsResult == nil {
		return respondError(c, noticeFeedback, services.ErrNoScore)
	}

	text := req.ResumeText
	if strings.TrimSpace(text) == "" && hasStoredResume(session) {
		text = models.FlattenResume(session.Resume)
	}
	if strings.TrimSpace(text) == "" {
		if session != nil {
			return respondError(c, noticeFeedback, services.ErrNoResume)
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "resumeText or a session holding a resume is required",
		})
	}

	var score int
	switch {
	case req.AtsScore != nil:
		score = *req.AtsScore
	case session != nil:
		score = session.AtsResult.AtsScore
	default:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "atsScore is required",
		})
	}

	var feedback string
	err = h.tracker.Run(c.UserContext(), sessionKey(session), services.ActionFeedback, func(ctx context.Context) error {
		var err error
		feedback, err = h.ai.DetailedFeedback(ctx, text, score)
		if err != nil {
			return err
		}
		if session != nil {
			_, err = h.sessions.AppendDetailedFeedback(session.ID, session.AtsResult, feedback)
		}
		return err
	})
	if err != nil {
		return respondError(c, noticeFeedback, err)
	}

	return c.JSON(models.FeedbackResponse{Feedback: feedback})
}
