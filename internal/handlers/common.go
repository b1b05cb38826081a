package handlers

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/services"
)

// Generic per-action failure notices shown to the user.
const (
	noticeExtraction = "resume extraction failed"
	noticeAnalysis   = "resume analysis failed"
	noticeFeedback   = "feedback generation failed"
	noticePortfolio  = "portfolio synthesis failed"
	noticeTextRead   = "text extraction failed"
	noticeValidation = "resume validation failed"
)

var errInvalidSessionID = errors.New("invalid session id format")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// parseRequest decodes the JSON body into req and checks its validate tags.
// On failure the 400 response has already been written and ok is false.
func parseRequest(c *fiber.Ctx, req any) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request payload",
		})
	}

	if err := validate.Struct(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:      "Invalid request payload",
			Violations: toViolations(err),
		})
	}

	return true, nil
}

func toViolations(err error) []models.FieldViolation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldViolation{{Field: "(root)", Message: err.Error()}}
	}

	out := make([]models.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, found := strings.Cut(field, "."); found {
			field = rest
		}
		out = append(out, models.FieldViolation{
			Field:   field,
			Message: "failed on '" + fe.Tag() + "' rule",
		})
	}
	return out
}

// lookupSession resolves an optional session id. An empty id yields nil, nil.
func lookupSession(sessions services.SessionService, raw string) (*models.Session, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errInvalidSessionID
	}
	return sessions.Get(id)
}

func sessionKey(session *models.Session) string {
	if session == nil {
		return ""
	}
	return session.ID.String()
}

// respondError maps service errors to a status code and a generic notice.
func respondError(c *fiber.Ctx, notice string, err error) error {
	body := models.ErrorResponse{Error: notice, Details: err.Error()}
	status := fiber.StatusBadGateway

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		status = fiber.StatusUnprocessableEntity
		body.Violations = verr.Violations
	case errors.Is(err, errInvalidSessionID):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNoDocuments):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrDocumentNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrActionBusy),
		errors.Is(err, services.ErrNoScore),
		errors.Is(err, services.ErrNoResume),
		errors.Is(err, services.ErrStaleScore):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrUnsupportedFormat):
		status = fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrNoTextContent):
		status = fiber.StatusUnprocessableEntity
	}

	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ %s: %v\n", notice, err)
	}

	return c.Status(status).JSON(body)
}
